package history

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir(), MaxListed: 10})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	entries := []Entry{
		{Directory: "/proj/a", Operation: "add", Entity: "constraint", Key: "c1"},
		{Directory: "/proj/a", Operation: "update", Entity: "metadata", Detail: "title='Fleet Routing'"},
		{Directory: "/proj/b", Operation: "add", Entity: "scenario", Key: "peak_day"},
	}
	for _, e := range entries {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := s.Recent("/proj/a", 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries for /proj/a, want 2", len(got))
	}
	for _, e := range got {
		if e.Directory != "/proj/a" {
			t.Errorf("entry from wrong directory: %+v", e)
		}
		if e.ID == "" || e.CreatedAt == "" {
			t.Errorf("entry missing assigned id/timestamp: %+v", e)
		}
	}
}

func TestRecent_LimitCapped(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 25; i++ {
		if err := s.Record(Entry{Directory: "/proj", Operation: "add", Entity: "constraint"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := s.Recent("/proj", 100)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("got %d entries, want configured cap of 10", len(got))
	}
}

func TestRecent_EmptyDirectory(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent("/never/seen", 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries for unknown directory, want 0", len(got))
	}
}
