// Package tools implements the MCP tool handlers that expose project
// settings operations to the agent.
//
// Each tool is a struct that receives its dependencies via constructor and
// returns a handler compatible with mcp-go's CallToolRequest signature.
// Validation-style conditions (duplicate names, missing keys) come back as
// normal tool result strings (the agent reads them as text), while I/O and
// parse failures propagate as Go errors.
//
// Design principles:
// - SRP: each file = one tool family
// - DIP: tools depend on the Workspace and the history store abstraction
package tools

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/optigen/optigen/internal/snapshot"
)

// Workspace resolves tool calls to a project directory and keeps one
// settings engine per directory, so repeated calls against the same project
// share the engine (and therefore its in-memory snapshot).
type Workspace struct {
	mu      sync.Mutex
	engines map[string]*snapshot.Settings
}

// NewWorkspace creates an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{engines: make(map[string]*snapshot.Settings)}
}

// Settings returns the engine bound to dir, opening it on first use.
// An empty dir resolves to the project root found by walking up from the
// working directory.
func (w *Workspace) Settings(dir string) (*snapshot.Settings, error) {
	if dir == "" {
		root, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.engines[abs]; ok {
		return s, nil
	}
	s, err := snapshot.Open(abs, nil)
	if err != nil {
		return nil, err
	}
	w.engines[abs] = s
	return s, nil
}

// findProjectRoot walks up from the current working directory looking for
// an existing optigen.json. If none is found, returns cwd: a fresh project
// starts wherever the agent is working.
func findProjectRoot() (string, error) {
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

// notInitialized formats the error string shown to the agent when a
// directory cannot be bound to project settings.
func notInitialized(err error) string {
	if errors.Is(err, snapshot.ErrCorruptSnapshot) {
		return fmt.Sprintf("Error: project settings file is corrupt: %v", err)
	}
	return fmt.Sprintf("Error: project settings not initialized: %v", err)
}
