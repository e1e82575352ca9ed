package session

import "errors"

var (
	// ErrEmptyQueue is returned by head operations on an empty queue.
	ErrEmptyQueue = errors.New("punishment queue is empty")

	// ErrDuplicateEntry is returned when a term is already queued.
	ErrDuplicateEntry = errors.New("term already in punishment queue")

	// ErrHeadMismatch is returned when ReplaceHead is given a different term.
	ErrHeadMismatch = errors.New("entry does not match queue head")

	// ErrInvalidEntry is returned for counts outside 0 <= Current <= Required.
	ErrInvalidEntry = errors.New("invalid punishment entry counts")

	// ErrDayLocked is returned when starting a day whose predecessor is not complete.
	ErrDayLocked = errors.New("day is locked")

	// ErrInvalidTransition is returned when an operation is not valid in the current mode.
	ErrInvalidTransition = errors.New("operation not valid in current mode")
)
