// Package progress tracks which day units a learner has completed.
package progress

import (
	"fmt"
	"sort"
)

// DayID returns the persisted identifier for a day unit.
func DayID(topicID string, day int) string {
	return fmt.Sprintf("%s-%d", topicID, day)
}

// CompletedSet is the set of completed day-unit ids.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from ids. Duplicates collapse.
func NewCompletedSet(ids ...string) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add marks a day unit complete and reports whether it was newly added.
func (s CompletedSet) Add(topicID string, day int) bool {
	id := DayID(topicID, day)
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether the day unit is complete.
func (s CompletedSet) Has(topicID string, day int) bool {
	_, ok := s[DayID(topicID, day)]
	return ok
}

func (s CompletedSet) Len() int { return len(s) }

// IDs returns the ids in sorted order.
func (s CompletedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s CompletedSet) Clone() CompletedSet {
	c := make(CompletedSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Unlocked reports whether a day unit may be started: day 1 always is,
// later days need the previous day completed.
func Unlocked(s CompletedSet, topicID string, day int) bool {
	if day == 1 {
		return true
	}
	return day > 1 && s.Has(topicID, day-1)
}
