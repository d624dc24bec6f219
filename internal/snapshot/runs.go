package snapshot

import "fmt"

// AddRun records a solver execution, initializing the run list on first
// use. Uniqueness is the full composite key: script name, input file and
// output file must all match for a record to count as a duplicate.
func (s *Settings) AddRun(r RunSolverScript) error {
	if r.SolverScriptName == "" {
		return fmt.Errorf("solver script name must not be empty")
	}
	return s.Transaction(func(snap *ProjectSnapshot) error {
		if snap.FindRun(r) >= 0 {
			return fmt.Errorf("run %s (%s -> %s): %w",
				r.SolverScriptName, r.InputFile, r.OutputFile, ErrDuplicateEntity)
		}
		if snap.Runs == nil {
			snap.Runs = &[]RunSolverScript{}
		}
		*snap.Runs = append(*snap.Runs, r)
		return nil
	})
}

// RemoveRun deletes the record matching the composite key. Returns whether
// anything was removed; an absent key is a no-op that does not rewrite the
// file.
func (s *Settings) RemoveRun(key RunSolverScript) (bool, error) {
	removed := false
	err := s.Transaction(func(snap *ProjectSnapshot) error {
		if snap.Runs == nil {
			return errUnchanged
		}
		kept := (*snap.Runs)[:0:0]
		for _, r := range *snap.Runs {
			if !r.SameKey(key) {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(*snap.Runs) {
			return errUnchanged
		}
		if kept == nil {
			kept = []RunSolverScript{}
		}
		*snap.Runs = kept
		removed = true
		return nil
	})
	return removed, err
}

// GetRun looks up a run record by its composite key in the in-memory
// snapshot. There is no partial-update operation for runs: every field is
// part of the key, so changing any of them describes a different record.
func (s *Settings) GetRun(key RunSolverScript) (RunSolverScript, bool) {
	i := s.snap.FindRun(key)
	if i < 0 {
		return RunSolverScript{}, false
	}
	return (*s.snap.Runs)[i], true
}
