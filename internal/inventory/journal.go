package inventory

import (
	"fmt"
	"time"
)

// Entry is a timestamped human-readable record of a stock mutation.
// Entries are ephemeral; they are never persisted with the stock.
type Entry struct {
	At      time.Time
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.At.Format(time.RFC3339), e.Message)
}

// Journal receives mutation entries emitted by the store. Implementations
// decide retention; the store never reads entries back.
type Journal interface {
	Append(e Entry)
}

// MemoryJournal keeps the most recent entries in a bounded ring.
type MemoryJournal struct {
	cap     int
	entries []Entry
}

// NewMemoryJournal creates a journal retaining at most capacity entries.
// A capacity <= 0 falls back to 256.
func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryJournal{cap: capacity}
}

func (j *MemoryJournal) Append(e Entry) {
	j.entries = append(j.entries, e)
	if len(j.entries) > j.cap {
		j.entries = j.entries[len(j.entries)-j.cap:]
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (j *MemoryJournal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}
