package session

import (
	"slices"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/vocab"
)

// State returns a snapshot of the machine state.
func (m *Machine) State() State { return m.state }

// Config returns the timing configuration.
func (m *Machine) Config() Config { return m.cfg }

// Terms returns a copy of the current day's terms.
func (m *Machine) Terms() []vocab.Term { return slices.Clone(m.terms) }

// CurrentTerm returns the card in study, the prompt in quiz, and the queue
// head in punishment and retest.
func (m *Machine) CurrentTerm() (vocab.Term, bool) { return m.promptTerm() }

// Head returns the head punishment entry.
func (m *Machine) Head() (Entry, bool) {
	e, err := m.queue.PeekHead()
	return e, err == nil
}

// QueueLen returns the number of terms awaiting punishment.
func (m *Machine) QueueLen() int { return m.queue.Len() }

// QueueEntries returns a copy of the punishment queue, head first.
func (m *Machine) QueueEntries() []Entry { return m.queue.Entries() }

// Topics lists the vocabulary topics.
func (m *Machine) Topics() []vocab.TopicInfo { return m.src.Topics() }

// DayCount returns the number of days in a topic.
func (m *Machine) DayCount(topicID string) int { return m.src.DayCount(topicID) }

// DaySize returns the number of terms in a day, or 0 if it does not exist.
func (m *Machine) DaySize(topicID string, day int) int {
	terms, err := m.src.DayUnit(topicID, day)
	if err != nil {
		return 0
	}
	return len(terms)
}

// IsCompleted reports whether a day has been committed.
func (m *Machine) IsCompleted(topicID string, day int) bool {
	return m.completed.Has(topicID, day)
}

// IsUnlocked reports whether a day exists and may be started.
func (m *Machine) IsUnlocked(topicID string, day int) bool {
	if day < 1 || day > m.src.DayCount(topicID) {
		return false
	}
	return progress.Unlocked(m.completed, topicID, day)
}

// CompletedCount returns how many days of a topic are complete.
func (m *Machine) CompletedCount(topicID string) int {
	n := 0
	for day := 1; day <= m.src.DayCount(topicID); day++ {
		if m.completed.Has(topicID, day) {
			n++
		}
	}
	return n
}

// TotalCompleted returns the number of completed days across all topics.
func (m *Machine) TotalCompleted() int { return m.completed.Len() }
