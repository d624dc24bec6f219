package tools

import (
	"log"

	"github.com/optigen/optigen/internal/history"
)

// Journal is the nil-safe bridge from mutating tools to the change journal.
// When the journal subsystem failed to initialize the store is nil and
// recording becomes a no-op, so settings operations never fail because of it.
type Journal struct {
	store *history.Store
}

// NewJournal creates a Journal. A nil store is valid and disables recording.
func NewJournal(store *history.Store) Journal {
	return Journal{store: store}
}

func (j Journal) record(dir, operation, entity, key, detail string) {
	if j.store == nil {
		return
	}
	err := j.store.Record(history.Entry{
		Directory: dir,
		Operation: operation,
		Entity:    entity,
		Key:       key,
		Detail:    detail,
	})
	if err != nil {
		log.Printf("WARNING: recording history entry: %v", err)
	}
}
