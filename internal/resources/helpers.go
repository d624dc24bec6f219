package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/optigen/optigen/internal/snapshot"
)

// projectRoot walks up from cwd looking for optigen.json.
// Shared utility for resource handlers.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, snapshot.SettingsFile)
		if _, err := os.Stat(candidate); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
