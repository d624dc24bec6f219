package snapshot

import "testing"

func TestValidateType(t *testing.T) {
	tests := []struct {
		name    string
		ct      ConstraintType
		wantErr bool
	}{
		{"hard", TypeHard, false},
		{"soft", TypeSoft, false},
		{"empty", ConstraintType(""), true},
		{"unknown", ConstraintType("medium"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateType(tt.ct)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateType(%q) error = %v, wantErr %v", tt.ct, err, tt.wantErr)
			}
		})
	}
}

func TestConstraintValidate(t *testing.T) {
	if err := (Constraint{Name: "c1", Type: TypeHard}).Validate(); err != nil {
		t.Errorf("valid constraint rejected: %v", err)
	}
	if err := (Constraint{Name: "", Type: TypeHard}).Validate(); err == nil {
		t.Error("empty name accepted")
	}
	if err := (Constraint{Name: "c1", Type: "medium"}).Validate(); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestRunSameKey(t *testing.T) {
	base := RunSolverScript{SolverScriptName: "s1", InputFile: "a.json", OutputFile: "b.json"}

	if !base.SameKey(base) {
		t.Error("identical records must share the key")
	}
	variants := []RunSolverScript{
		{SolverScriptName: "s2", InputFile: "a.json", OutputFile: "b.json"},
		{SolverScriptName: "s1", InputFile: "x.json", OutputFile: "b.json"},
		{SolverScriptName: "s1", InputFile: "a.json", OutputFile: "y.json"},
	}
	for _, v := range variants {
		if base.SameKey(v) {
			t.Errorf("record %+v must not share the key with %+v", v, base)
		}
	}
}

func TestFindConstraint_MatchesByNameOnly(t *testing.T) {
	snap := NewProjectSnapshot()
	snap.Constraints = append(snap.Constraints,
		Constraint{Name: "c1", Description: "one", Type: TypeHard},
		Constraint{Name: "c2", Description: "two", Type: TypeSoft},
	)

	if got := snap.FindConstraint("c2"); got != 1 {
		t.Errorf("FindConstraint(c2) = %d, want 1", got)
	}
	if got := snap.FindConstraint("c3"); got != -1 {
		t.Errorf("FindConstraint(c3) = %d, want -1", got)
	}
}

func TestFindOnUninitializedLists(t *testing.T) {
	snap := NewProjectSnapshot()
	if got := snap.FindScenario("any"); got != -1 {
		t.Errorf("FindScenario on nil dataset = %d, want -1", got)
	}
	if got := snap.FindRun(RunSolverScript{SolverScriptName: "s"}); got != -1 {
		t.Errorf("FindRun on nil runs = %d, want -1", got)
	}
}
