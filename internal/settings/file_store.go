package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"esports-schedule/internal/domain/clubs"
)

// FileStore persists settings to a single JSON or YAML file, chosen by extension.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// fileDoc distinguishes an absent club list (nil pointer) from an empty one.
type fileDoc struct {
	BackendURL string        `json:"backendUrl,omitempty" yaml:"backendUrl,omitempty"`
	Clubs      *[]clubs.Club `json:"clubs,omitempty" yaml:"clubs,omitempty"`
}

// NewFileStore constructs a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields empty settings.
func (s *FileStore) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var doc fileDoc
	if s.isYAML() {
		err = yaml.Unmarshal(data, &doc)
	} else if len(strings.TrimSpace(string(data))) > 0 {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decode settings %s: %w", s.path, err)
	}

	out := Settings{BackendURL: doc.BackendURL}
	if doc.Clubs != nil {
		out.Clubs = *doc.Clubs
		if out.Clubs == nil {
			out.Clubs = []clubs.Club{}
		}
	}
	return out, nil
}

// Save writes the settings file atomically.
func (s *FileStore) Save(ctx context.Context, settings Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := fileDoc{BackendURL: settings.BackendURL}
	if settings.Clubs != nil {
		list := settings.Clubs
		doc.Clubs = &list
	}

	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
