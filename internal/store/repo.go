package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a named blob does not exist.
var ErrNotFound = errors.New("not found")

// BlobRepo is a small key-value store for opaque serialized values.
type BlobRepo interface {
	// Get returns the value stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put inserts or replaces the value stored under name.
	Put(ctx context.Context, name string, value []byte) error

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}

// DaySessionData is one entry in the drill session log.
type DaySessionData struct {
	SessionID string
	TopicID   string
	Day       int
	Action    string // start, finish, abandon
	Score     int
	Total     int
	Missed    int
	At        time.Time
}

// DaySessionRepo provides append and query access to the drill session log.
type DaySessionRepo interface {
	// AppendDaySession records one session lifecycle event.
	AppendDaySession(ctx context.Context, data DaySessionData) error

	// RecentDaySessions returns up to limit entries, newest first.
	RecentDaySessions(ctx context.Context, limit int) ([]DaySessionData, error)
}
