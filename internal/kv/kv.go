// Package kv defines the key-value persistence contract for the checklist.
// Values are opaque JSON blobs; a missing key means "not yet initialized".
package kv

import "errors"

// Sentinel errors for persistence operations.
var (
	// ErrUnavailable indicates the backing store cannot be reached at all.
	// This is fatal: no task operation can proceed without persistence.
	ErrUnavailable = errors.New("backing store unavailable")

	// ErrStorage wraps any other backend failure.
	ErrStorage = errors.New("storage error")
)

// Well-known keys. The names are part of the persisted format and must not
// change across versions.
const (
	KeyDailyTasks     = "dailyTasks"
	KeyLastActiveDate = "lastActiveDate"
	KeyStreakInfo     = "streakInfo"
	KeyListTitle      = "listTitle"
)

// Store is the minimal key-value persistence interface.
// Set accepts multiple keys so that related writes (task set + date) land
// together; backends make this as atomic as they can.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set writes every key in kvs. Writes are durable on return.
	Set(kvs map[string][]byte) error

	// Close releases backend resources.
	Close() error
}
