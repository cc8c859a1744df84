package state

import (
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb"
	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb/leveldb"
	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb/memory"
	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb/pebble"
)

// Storage backends
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// OpenDB opens a keyValueDb backend by name.
func OpenDB(backend, path string) (keyValueDb.DB, error) {
	switch backend {
	case BackendPebble:
		return pebble.Open(path)
	case BackendLevelDB:
		return leveldb.Open(path)
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", keyValueDb.ErrUnknownBackend, backend)
	}
}

// Open opens a backend and wraps it in a State.
func Open(backend, path string, opts Options) (*State, error) {
	db, err := OpenDB(backend, path)
	if err != nil {
		return nil, err
	}
	s, err := New(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewMemory returns an empty in-memory State.
func NewMemory() *State {
	s, err := New(memory.New(), Options{})
	if err != nil {
		panic(err)
	}
	return s
}
