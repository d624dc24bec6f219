package snapshot

import "fmt"

// AddConstraint appends a constraint to the model. Fails with
// ErrDuplicateEntity if a constraint with the same name already exists
// (checked against the reloaded list, not a stale cached one).
func (s *Settings) AddConstraint(c Constraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.Transaction(func(snap *ProjectSnapshot) error {
		if snap.FindConstraint(c.Name) >= 0 {
			return fmt.Errorf("constraint %q: %w", c.Name, ErrDuplicateEntity)
		}
		snap.Constraints = append(snap.Constraints, c)
		return nil
	})
}

// RemoveConstraint deletes the named constraint. Returns whether anything
// was removed; removing an absent name is a no-op, not an error, and does
// not rewrite the file.
func (s *Settings) RemoveConstraint(name string) (bool, error) {
	removed := false
	err := s.Transaction(func(snap *ProjectSnapshot) error {
		kept := snap.Constraints[:0:0]
		for _, c := range snap.Constraints {
			if c.Name != name {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(snap.Constraints) {
			return errUnchanged
		}
		if kept == nil {
			kept = []Constraint{}
		}
		snap.Constraints = kept
		removed = true
		return nil
	})
	return removed, err
}

// ConstraintUpdate is a partial update of constraint fields.
// Nil fields keep their prior values.
type ConstraintUpdate struct {
	Name        *string
	Description *string
	Type        *ConstraintType
	Rank        *int
	Formula     *string
	Where       *string
}

// UpdateConstraint merges the given fields into the named constraint.
// Returns false without writing when the name is not found. Renaming a
// constraint onto another existing constraint's name fails with
// ErrDuplicateEntity rather than silently merging the two.
func (s *Settings) UpdateConstraint(name string, u ConstraintUpdate) (bool, error) {
	found := false
	err := s.Transaction(func(snap *ProjectSnapshot) error {
		i := snap.FindConstraint(name)
		if i < 0 {
			return errUnchanged
		}
		found = true

		c := snap.Constraints[i]
		if u.Name != nil {
			if *u.Name != name && snap.FindConstraint(*u.Name) >= 0 {
				return fmt.Errorf("constraint %q: %w", *u.Name, ErrDuplicateEntity)
			}
			c.Name = *u.Name
		}
		if u.Description != nil {
			c.Description = *u.Description
		}
		if u.Type != nil {
			if err := ValidateType(*u.Type); err != nil {
				return err
			}
			c.Type = *u.Type
		}
		if u.Rank != nil {
			c.Rank = u.Rank
		}
		if u.Formula != nil {
			c.Formula = *u.Formula
		}
		if u.Where != nil {
			c.Where = *u.Where
		}

		snap.Constraints[i] = c
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetConstraint looks up a constraint by name in the in-memory snapshot.
// Pure read: no locking, no I/O.
func (s *Settings) GetConstraint(name string) (Constraint, bool) {
	i := s.snap.FindConstraint(name)
	if i < 0 {
		return Constraint{}, false
	}
	return s.snap.Constraints[i], true
}
