package snapshots

import "path/filepath"

// ManifestPath returns the manifest location that sits next to a schedule file.
func ManifestPath(schedulePath string) string {
	return filepath.Join(filepath.Dir(schedulePath), "manifest.json")
}
