package snapshot

import "errors"

// Sentinel error kinds. Callers classify with errors.Is; the MCP tool layer
// turns them into human-readable result strings for the agent.
var (
	// ErrCorruptSnapshot means optigen.json exists but does not parse as a
	// snapshot. A corrupt file is never replaced with a default snapshot.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrDuplicateEntity means an Add (or a key-renaming Update) violated a
	// uniqueness rule. The transaction aborts without writing.
	ErrDuplicateEntity = errors.New("already exists")
)

// errUnchanged is returned by mutators that decided nothing needs to be
// written (e.g. removing a key that is not present). The transaction treats
// it as success without touching the file.
var errUnchanged = errors.New("snapshot unchanged")
