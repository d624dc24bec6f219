// Package snapshot holds the optimization-project data model and its
// persistence engine.
//
// A project is described by a single ProjectSnapshot document stored as
// optigen.json inside the project directory. The Settings engine is the
// only writer of that file: every mutation goes through a serialized
// reload-mutate-atomic-write transaction so concurrent agent tool calls
// never lose each other's updates.
//
// This package follows the same design principles as the rest of the server:
// - SRP: types, engine, and per-entity operations in separate files
// - DIP: callers depend on the Settings methods, never on the file layout
package snapshot

import "fmt"

// --- Constraint type enum ---

// ConstraintType distinguishes mandatory rules from ranked objectives.
type ConstraintType string

const (
	// TypeHard marks a constraint that must always be satisfied.
	TypeHard ConstraintType = "hard"
	// TypeSoft marks an objective that may be violated at a penalty.
	// Soft constraints carry a rank: lower rank = higher priority.
	TypeSoft ConstraintType = "soft"
)

// ValidateType returns an error if the constraint type is not recognized.
func ValidateType(t ConstraintType) error {
	if t != TypeHard && t != TypeSoft {
		return fmt.Errorf("invalid constraint type %q: must be 'hard' or 'soft'", t)
	}
	return nil
}

// --- Entities ---

// Constraint is a hard rule or a ranked soft objective in the optimization
// model. Identity is the Name field: membership and update logic compare
// names only, never the full struct.
type Constraint struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        ConstraintType `json:"type"`
	Rank        *int           `json:"rank,omitempty"`
	Formula     string         `json:"formula"`
	Where       string         `json:"where"`
}

// Validate checks the fields required for a constraint to enter a snapshot.
func (c Constraint) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("constraint name must not be empty")
	}
	return ValidateType(c.Type)
}

// UserAPISchemaDefinition pairs the request and response JSON schemas of the
// user-facing solver API. The halves are updated independently but always
// stored together.
type UserAPISchemaDefinition struct {
	RequestSchema  map[string]any `json:"request_schema"`
	ResponseSchema map[string]any `json:"response_schema"`
}

// Scenario registers one example input against the project dataset.
// The request payload itself lives in an external JSON file; only the
// path is stored here. Name is optional; unnamed scenarios are never
// considered duplicates of each other.
type Scenario struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Request     string `json:"request,omitempty"`
}

// RunSolverScript records one solver execution. Two runs are the same
// record only when script name, input file, and output file all match;
// changing any one of the three makes a distinct record.
type RunSolverScript struct {
	SolverScriptName string `json:"solver_script_name"`
	InputFile        string `json:"input_file"`
	OutputFile       string `json:"output_file"`
}

// SameKey reports whether two run records share the composite key.
func (r RunSolverScript) SameKey(other RunSolverScript) bool {
	return r.SolverScriptName == other.SolverScriptName &&
		r.InputFile == other.InputFile &&
		r.OutputFile == other.OutputFile
}

// --- Aggregate root ---

// SnapshotVersionTag is the current schema version written to new snapshots.
const SnapshotVersionTag = "0.0.1"

// ProjectSnapshot is the complete serialized state of one optimization
// project's specification.
//
// Dataset and Runs are pointers to distinguish "never initialized" (nil)
// from "initialized, currently empty" (&[]); both states are observable
// through the tool surface.
type ProjectSnapshot struct {
	OptigenSnapshotVersion string                   `json:"optigen_snapshot_version"`
	SnapshotVersion        int                      `json:"snapshot_version"`
	Title                  *string                  `json:"title,omitempty"`
	Description            *string                  `json:"description,omitempty"`
	Constraints            []Constraint             `json:"constraints"`
	SchemaDefinition       *UserAPISchemaDefinition `json:"schema_definition,omitempty"`
	Dataset                *[]Scenario              `json:"dataset,omitempty"`
	Runs                   *[]RunSolverScript       `json:"runs,omitempty"`
}

// NewProjectSnapshot returns an empty snapshot with current version tags.
func NewProjectSnapshot() *ProjectSnapshot {
	return &ProjectSnapshot{
		OptigenSnapshotVersion: SnapshotVersionTag,
		SnapshotVersion:        1,
		Constraints:            []Constraint{},
	}
}

// FindConstraint returns the index of the constraint with the given name,
// or -1 if no constraint matches.
func (s *ProjectSnapshot) FindConstraint(name string) int {
	for i, c := range s.Constraints {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// FindScenario returns the index of the named scenario in the dataset,
// or -1 if the dataset is uninitialized or no scenario matches. An empty
// name never matches; unnamed scenarios have no addressable key.
func (s *ProjectSnapshot) FindScenario(name string) int {
	if name == "" || s.Dataset == nil {
		return -1
	}
	for i, sc := range *s.Dataset {
		if sc.Name == name {
			return i
		}
	}
	return -1
}

// FindRun returns the index of the run record matching the composite key,
// or -1 if the run list is uninitialized or no record matches.
func (s *ProjectSnapshot) FindRun(key RunSolverScript) int {
	if s.Runs == nil {
		return -1
	}
	for i, r := range *s.Runs {
		if r.SameKey(key) {
			return i
		}
	}
	return -1
}
