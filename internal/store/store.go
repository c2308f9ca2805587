package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the requested key has never been written.
	ErrNotFound = errors.New("store: key not found")
	// ErrCorrupt is returned when a persisted value cannot be decoded. Callers
	// must treat this as a fatal condition for the key, not coerce a default.
	ErrCorrupt = errors.New("store: corrupted value")
)

// Persisted collection and preference keys.
const (
	KeyUsers        = "users"
	KeyBookings     = "bookings"
	KeyReservations = "reservations"
	KeyCourses      = "gpa_courses"
	KeyTasks        = "todo_tasks"
	KeySessions     = "sessions"
	KeyTheme        = "theme"
)

// KV is the persisted collection store contract. Every value is an opaque
// JSON-serialized document; encoding and decoding happen on each access so a
// read always reflects the last write.
type KV interface {
	// Get returns the raw value for key, or ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the raw value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every key, returning the store to first-run state.
	Clear(ctx context.Context) error
	// Close releases resources held by the backend.
	Close() error
}
