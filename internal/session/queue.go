package session

import (
	"fmt"

	"github.com/abhisek/lexiz/internal/vocab"
)

const (
	// PunishmentBase is the copy-out count required after a quiz miss.
	PunishmentBase = 20

	// PunishmentStep is added to the requirement on every failed retest.
	PunishmentStep = 10
)

// Entry is a missed term with its copy-out progress.
type Entry struct {
	Term     vocab.Term
	Required int
	Current  int
}

// NewEntry returns a fresh entry for a term missed in the quiz.
func NewEntry(t vocab.Term) Entry {
	return Entry{Term: t, Required: PunishmentBase}
}

// Done reports whether the entry has been copied out enough times to retest.
func (e Entry) Done() bool {
	return e.Current == e.Required
}

func (e Entry) valid() bool {
	return e.Required >= 0 && e.Current >= 0 && e.Current <= e.Required
}

// Queue is a FIFO of punishment entries. A term appears at most once. The
// only way to change an entry in place is ReplaceHead, which never moves it.
type Queue struct {
	entries []Entry
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends e to the tail.
func (q *Queue) Push(e Entry) error {
	if !e.valid() {
		return fmt.Errorf("push %q: %w", e.Term.Text, ErrInvalidEntry)
	}
	for _, existing := range q.entries {
		if existing.Term.ID == e.Term.ID {
			return fmt.Errorf("push %q: %w", e.Term.Text, ErrDuplicateEntry)
		}
	}
	q.entries = append(q.entries, e)
	return nil
}

// PeekHead returns the head without removing it.
func (q *Queue) PeekHead() (Entry, error) {
	if len(q.entries) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	return q.entries[0], nil
}

// PopHead removes and returns the head.
func (q *Queue) PopHead() (Entry, error) {
	if len(q.entries) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, nil
}

// ReplaceHead updates the head's counts without changing queue order.
func (q *Queue) ReplaceHead(e Entry) error {
	if len(q.entries) == 0 {
		return ErrEmptyQueue
	}
	if q.entries[0].Term.ID != e.Term.ID {
		return fmt.Errorf("replace with %q: %w", e.Term.Text, ErrHeadMismatch)
	}
	if !e.valid() {
		return fmt.Errorf("replace %q: %w", e.Term.Text, ErrInvalidEntry)
	}
	q.entries[0].Required = e.Required
	q.entries[0].Current = e.Current
	return nil
}

func (q *Queue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of the queue contents, head first.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

func (q *Queue) Clear() {
	q.entries = nil
}
