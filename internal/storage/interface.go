package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key has no value
	ErrNotFound = errors.New("key not found")
	// ErrNoHistory is returned by Undo when there is nothing to revert to
	ErrNoHistory = errors.New("no previous value to restore")
	// ErrNotInitialized is returned by Load before Init has created the store
	ErrNotInitialized = errors.New("storage not initialized, run 'travelogue init' first")
	// ErrNoState is returned when no journey has been persisted yet
	ErrNoState = errors.New("no journey stored")
)

// MaxHistory is how many replaced values are kept per key
const MaxHistory = 50

// Provider is a local key/value store. Values are opaque bytes; the journey
// state codec lives in state.go.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	Get(key string) ([]byte, error)
	// Put stores value under key, pushing any previous value onto the key's history
	Put(key string, value []byte) error
	Delete(key string) error
	// Undo replaces the current value with the most recent history entry
	Undo(key string) error
	// HistoryLen returns how many previous values are kept for key
	HistoryLen(key string) (int, error)

	// Utils
	GetConfigPath() string
}
