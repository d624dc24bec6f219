package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SettingsFile is the name of the snapshot document inside a project directory.
const SettingsFile = "optigen.json"

// --- Lock registry ---
//
// One mutex per resolved backing-file path. Engines bound to the same file
// (including independently-constructed ones) serialize their transactions,
// while unrelated project directories never contend.

var (
	locksMu sync.Mutex
	locks   = map[string]*sync.Mutex{}
)

func lockFor(path string) *sync.Mutex {
	locksMu.Lock()
	defer locksMu.Unlock()
	mu, ok := locks[path]
	if !ok {
		mu = &sync.Mutex{}
		locks[path] = mu
	}
	return mu
}

// Settings owns the in-memory snapshot for one project directory and is the
// sole writer of its optigen.json.
//
// Read accessors return the current in-memory value without locking or I/O;
// they may race with an in-flight transaction on another goroutine. Callers
// needing a consistent read should go through Transaction. The in-memory
// snapshot is replaced wholesale on every reload, so references to
// sub-objects must not be cached across a mutating call.
type Settings struct {
	dir  string
	path string
	mu   *sync.Mutex
	snap *ProjectSnapshot
}

// Open binds a Settings engine to a project directory.
//
// If <dir>/optigen.json exists it is parsed as the initial in-memory
// snapshot (ErrCorruptSnapshot if it does not parse). Otherwise the supplied
// initial snapshot (or a fresh empty one when nil) is used, and no file is
// written until the first successful mutation or an explicit Persist.
func Open(dir string, initial *ProjectSnapshot) (*Settings, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	s := &Settings{
		dir:  abs,
		path: filepath.Join(abs, SettingsFile),
	}
	s.mu = lockFor(s.path)

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		snap, err := parseSnapshot(data)
		if err != nil {
			return nil, err
		}
		s.snap = snap
	case errors.Is(err, fs.ErrNotExist):
		if initial != nil {
			s.snap = initial
		} else {
			s.snap = NewProjectSnapshot()
		}
	default:
		return nil, fmt.Errorf("reading %s: %w", SettingsFile, err)
	}

	return s, nil
}

func parseSnapshot(data []byte) (*ProjectSnapshot, error) {
	var snap ProjectSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, SettingsFile, err)
	}
	return &snap, nil
}

// Dir returns the project directory this engine is bound to.
func (s *Settings) Dir() string { return s.dir }

// Path returns the absolute path of the backing file.
func (s *Settings) Path() string { return s.path }

// Transaction runs mutate against the freshest snapshot and commits the
// result atomically: acquire the path lock, re-read the backing file if it
// exists (picking up concurrent writers' committed state), apply the
// mutator, write the full document to a temp file and rename it over the
// target. On mutator error nothing is written; the reloaded state stays in
// memory. A mutator may return errUnchanged to commit nothing.
func (s *Settings) Transaction(mutate func(*ProjectSnapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(); err != nil {
		return err
	}
	if err := mutate(s.snap); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	return s.write()
}

// Persist commits the current in-memory snapshot without reloading.
// Used for initial file creation; mutations should use Transaction.
func (s *Settings) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// reload replaces the in-memory snapshot with the on-disk state.
// A missing file is not an error; the in-memory snapshot stands.
func (s *Settings) reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", SettingsFile, err)
	}
	snap, err := parseSnapshot(data)
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

// write serializes the snapshot to a temp file in the project directory and
// renames it over optigen.json. Rename is the only step that makes a new
// version visible, so a crash mid-write never corrupts the committed file.
// On write failure the temp file is removed and the original is untouched.
func (s *Settings) write() error {
	data, err := json.MarshalIndent(s.snap, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, SettingsFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", SettingsFile, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", SettingsFile, err)
	}
	return nil
}

// --- Read accessors (in-memory, no locking, no I/O) ---

// Title returns the project title, or nil when unset.
func (s *Settings) Title() *string { return s.snap.Title }

// Description returns the project description, or nil when unset.
func (s *Settings) Description() *string { return s.snap.Description }

// Constraints returns the current constraint list.
func (s *Settings) Constraints() []Constraint { return s.snap.Constraints }

// SchemaDefinition returns the schema pair, or nil when never set.
func (s *Settings) SchemaDefinition() *UserAPISchemaDefinition {
	return s.snap.SchemaDefinition
}

// Dataset returns the scenario list, or nil when never initialized.
func (s *Settings) Dataset() []Scenario {
	if s.snap.Dataset == nil {
		return nil
	}
	return *s.snap.Dataset
}

// Runs returns the run-record list, or nil when never initialized.
func (s *Settings) Runs() []RunSolverScript {
	if s.snap.Runs == nil {
		return nil
	}
	return *s.snap.Runs
}

// JSON serializes the current in-memory snapshot, indented for humans.
func (s *Settings) JSON() (string, error) {
	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	return string(data), nil
}

// --- Generic update ---

// SnapshotUpdate is a partial update of top-level snapshot fields.
// Nil fields are left untouched.
type SnapshotUpdate struct {
	Title            *string
	Description      *string
	SchemaDefinition *UserAPISchemaDefinition
}

// Update applies a shallow merge of the given fields onto the snapshot
// inside a transaction.
func (s *Settings) Update(u SnapshotUpdate) error {
	return s.Transaction(func(snap *ProjectSnapshot) error {
		if u.Title != nil {
			snap.Title = u.Title
		}
		if u.Description != nil {
			snap.Description = u.Description
		}
		if u.SchemaDefinition != nil {
			snap.SchemaDefinition = u.SchemaDefinition
		}
		return nil
	})
}
