package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records how the current schedule file was generated.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Club        string     `json:"club"`
	Games       []GameMeta `json:"games"`
	Total       int        `json:"total"`
}

// GameMeta is the outcome of one per-game fetch.
type GameMeta struct {
	Game    string `json:"game"`
	Matches int    `json:"matches"`
	Error   string `json:"error,omitempty"`
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(path string, m Manifest) error {
	if m.Version == 0 {
		m.Version = 1
	}
	if m.GeneratedAt.IsZero() {
		m.GeneratedAt = time.Now().UTC()
	}
	if m.Games == nil {
		m.Games = []GameMeta{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}
