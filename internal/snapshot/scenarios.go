package snapshot

import "fmt"

// AddScenario appends a scenario to the dataset, initializing the dataset
// on first use. The uniqueness rule applies only to named scenarios:
// adding a second scenario with the same non-empty name fails with
// ErrDuplicateEntity, while unnamed scenarios never collide.
func (s *Settings) AddScenario(sc Scenario) error {
	return s.Transaction(func(snap *ProjectSnapshot) error {
		if sc.Name != "" && snap.FindScenario(sc.Name) >= 0 {
			return fmt.Errorf("scenario %q: %w", sc.Name, ErrDuplicateEntity)
		}
		if snap.Dataset == nil {
			snap.Dataset = &[]Scenario{}
		}
		*snap.Dataset = append(*snap.Dataset, sc)
		return nil
	})
}

// RemoveScenario deletes the named scenario from the dataset. Returns
// whether anything was removed; an absent name or an uninitialized dataset
// is a no-op that does not rewrite the file. An empty name never matches:
// unnamed scenarios cannot be addressed by key.
func (s *Settings) RemoveScenario(name string) (bool, error) {
	removed := false
	err := s.Transaction(func(snap *ProjectSnapshot) error {
		if name == "" || snap.Dataset == nil {
			return errUnchanged
		}
		kept := (*snap.Dataset)[:0:0]
		for _, sc := range *snap.Dataset {
			if sc.Name != name {
				kept = append(kept, sc)
			}
		}
		if len(kept) == len(*snap.Dataset) {
			return errUnchanged
		}
		if kept == nil {
			kept = []Scenario{}
		}
		*snap.Dataset = kept
		removed = true
		return nil
	})
	return removed, err
}

// ScenarioUpdate is a partial update of scenario fields.
// Nil fields keep their prior values.
type ScenarioUpdate struct {
	Name        *string
	Description *string
	Request     *string
}

// UpdateScenario merges the given fields into the named scenario. Returns
// false without writing when the name is not found. Renaming a scenario
// onto another existing scenario's name fails with ErrDuplicateEntity.
func (s *Settings) UpdateScenario(name string, u ScenarioUpdate) (bool, error) {
	found := false
	err := s.Transaction(func(snap *ProjectSnapshot) error {
		i := snap.FindScenario(name)
		if i < 0 {
			return errUnchanged
		}
		found = true

		sc := (*snap.Dataset)[i]
		if u.Name != nil {
			if *u.Name != "" && *u.Name != name && snap.FindScenario(*u.Name) >= 0 {
				return fmt.Errorf("scenario %q: %w", *u.Name, ErrDuplicateEntity)
			}
			sc.Name = *u.Name
		}
		if u.Description != nil {
			sc.Description = *u.Description
		}
		if u.Request != nil {
			sc.Request = *u.Request
		}

		(*snap.Dataset)[i] = sc
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetScenario looks up a scenario by name in the in-memory snapshot.
// Returns false when the dataset was never initialized or no name matches.
func (s *Settings) GetScenario(name string) (Scenario, bool) {
	i := s.snap.FindScenario(name)
	if i < 0 {
		return Scenario{}, false
	}
	return (*s.snap.Dataset)[i], true
}
