package snapshot

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAddScenario_InitializesDataset(t *testing.T) {
	s := openSeeded(t)
	if s.Dataset() != nil {
		t.Fatal("dataset initialized before first scenario")
	}

	if err := s.AddScenario(Scenario{Name: "peak_day", Request: "scenarios/peak.json"}); err != nil {
		t.Fatalf("AddScenario failed: %v", err)
	}
	if got := s.Dataset(); len(got) != 1 || got[0].Name != "peak_day" {
		t.Errorf("dataset = %+v, want one 'peak_day' scenario", got)
	}
}

func TestAddScenario_NamedDuplicateRejected(t *testing.T) {
	s := openSeeded(t)
	if err := s.AddScenario(Scenario{Name: "peak_day", Request: "a.json"}); err != nil {
		t.Fatalf("AddScenario failed: %v", err)
	}

	err := s.AddScenario(Scenario{Name: "peak_day", Request: "b.json"})
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("duplicate named scenario: err = %v, want ErrDuplicateEntity", err)
	}
	if len(s.Dataset()) != 1 {
		t.Errorf("dataset has %d entries after rejected add, want 1", len(s.Dataset()))
	}
}

func TestAddScenario_UnnamedNeverCollide(t *testing.T) {
	s := openSeeded(t)
	for i, path := range []string{"a.json", "b.json", "c.json"} {
		if err := s.AddScenario(Scenario{Request: path}); err != nil {
			t.Fatalf("unnamed scenario %d rejected: %v", i, err)
		}
	}
	if len(s.Dataset()) != 3 {
		t.Errorf("dataset has %d entries, want 3", len(s.Dataset()))
	}
}

func TestRemoveScenario(t *testing.T) {
	s := openSeeded(t)
	if err := s.AddScenario(Scenario{Name: "peak_day", Request: "a.json"}); err != nil {
		t.Fatalf("AddScenario failed: %v", err)
	}

	removed, err := s.RemoveScenario("peak_day")
	if err != nil {
		t.Fatalf("RemoveScenario failed: %v", err)
	}
	if !removed {
		t.Fatal("RemoveScenario = false, want true")
	}

	// Emptied, not reset: the dataset stays initialized.
	if got := s.Dataset(); got == nil || len(got) != 0 {
		t.Errorf("dataset = %v, want initialized empty list", got)
	}

	var doc map[string]any
	if err := json.Unmarshal(readRawFile(t, s), &doc); err != nil {
		t.Fatal(err)
	}
	if ds, ok := doc["dataset"].([]any); !ok || len(ds) != 0 {
		t.Errorf("serialized dataset = %v, want []", doc["dataset"])
	}
}

func TestRemoveScenario_UninitializedDatasetIsNoOp(t *testing.T) {
	s := openSeeded(t)
	before := readRawFile(t, s)

	removed, err := s.RemoveScenario("anything")
	if err != nil {
		t.Fatalf("RemoveScenario failed: %v", err)
	}
	if removed {
		t.Error("RemoveScenario = true on uninitialized dataset")
	}
	if string(readRawFile(t, s)) != string(before) {
		t.Error("file rewritten by no-op remove")
	}
}

func TestRemoveScenario_EmptyNameNeverMatchesUnnamed(t *testing.T) {
	s := openSeeded(t)
	for i := 0; i < 2; i++ {
		if err := s.AddScenario(Scenario{Request: "scenarios/anon.json"}); err != nil {
			t.Fatalf("AddScenario failed: %v", err)
		}
	}
	before := readRawFile(t, s)

	removed, err := s.RemoveScenario("")
	if err != nil {
		t.Fatalf("RemoveScenario failed: %v", err)
	}
	if removed {
		t.Error("RemoveScenario(\"\") = true, unnamed scenarios must not be addressable by key")
	}
	if len(s.Dataset()) != 2 {
		t.Errorf("dataset has %d scenarios, want 2", len(s.Dataset()))
	}
	if string(readRawFile(t, s)) != string(before) {
		t.Error("file rewritten by empty-key remove")
	}
}

func TestGetScenario_EmptyNameNeverMatches(t *testing.T) {
	s := openSeeded(t)
	if err := s.AddScenario(Scenario{Request: "scenarios/anon.json"}); err != nil {
		t.Fatalf("AddScenario failed: %v", err)
	}

	if _, ok := s.GetScenario(""); ok {
		t.Error("GetScenario(\"\") matched an unnamed scenario")
	}
}

func TestUpdateScenario(t *testing.T) {
	s := openSeeded(t)
	if err := s.AddScenario(Scenario{Name: "peak_day", Description: "old", Request: "a.json"}); err != nil {
		t.Fatalf("AddScenario failed: %v", err)
	}

	desc := "busiest day of the year"
	found, err := s.UpdateScenario("peak_day", ScenarioUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateScenario failed: %v", err)
	}
	if !found {
		t.Fatal("UpdateScenario = false, want true")
	}

	sc, ok := s.GetScenario("peak_day")
	if !ok {
		t.Fatal("scenario gone after update")
	}
	if sc.Description != desc {
		t.Errorf("description = %q, want %q", sc.Description, desc)
	}
	if sc.Request != "a.json" {
		t.Errorf("request path = %q changed", sc.Request)
	}
}

func TestUpdateScenario_RenameOntoExistingNameRejected(t *testing.T) {
	s := openSeeded(t)
	if err := s.AddScenario(Scenario{Name: "one", Request: "a.json"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddScenario(Scenario{Name: "two", Request: "b.json"}); err != nil {
		t.Fatal(err)
	}

	collide := "two"
	_, err := s.UpdateScenario("one", ScenarioUpdate{Name: &collide})
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("rename onto existing scenario name: err = %v, want ErrDuplicateEntity", err)
	}
}

func TestGetScenario_UninitializedDataset(t *testing.T) {
	s := openSeeded(t)
	if _, ok := s.GetScenario("anything"); ok {
		t.Error("GetScenario = true with uninitialized dataset")
	}
}
