package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTopic is returned when a topic id is not in the catalog.
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrDayOutOfRange is returned for a day number outside 1..DayCount.
	ErrDayOutOfRange = errors.New("day out of range")
)

// ValidationError reports a vocabulary source that could not be accepted.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid vocabulary %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
