// Package state is the persistent ledger state: every ledger entry keyed by
// its keylet, stored compressed in a keyValueDb with an LRU read cache in
// front.
package state

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/storage/compression"
	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb"
)

const (
	prefixEntry byte = 's'
	prefixMeta  byte = 'm'
)

var metaApplied = []byte{prefixMeta, 'a', 'p', 'p', 'l', 'i', 'e', 'd'}

// DefaultCacheSize is the number of decoded entries kept in memory.
const DefaultCacheSize = 4096

// Options configures a State.
type Options struct {
	// CacheSize is the LRU capacity in entries. Zero means DefaultCacheSize.
	CacheSize int

	// Compression names a registered compressor. Empty means "lz4".
	Compression string
}

// State implements tx.LedgerView over a keyValueDb. Commit writes a whole
// transaction in one batch.
type State struct {
	mu      sync.RWMutex
	db      keyValueDb.DB
	cache   *lru.Cache[[32]byte, []byte]
	codec   compression.Compressor
	applied uint64
}

var (
	_ tx.LedgerView = (*State)(nil)
	_ tx.Committer  = (*State)(nil)
)

// New wraps db. The applied transaction counter is restored from db.
func New(db keyValueDb.DB, opts Options) (*State, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Compression == "" {
		opts.Compression = "lz4"
	}
	codec, err := compression.Get(opts.Compression)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[[32]byte, []byte](opts.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &State{db: db, cache: cache, codec: codec}
	raw, err := db.Read(context.Background(), metaApplied)
	switch {
	case err == nil:
		if len(raw) != 8 {
			return nil, fmt.Errorf("state: corrupt applied counter")
		}
		s.applied = binary.BigEndian.Uint64(raw)
	case errors.Is(err, keyValueDb.ErrKeyNotFound):
	default:
		return nil, fmt.Errorf("state: read applied counter: %w", err)
	}
	return s, nil
}

func entryKey(key [32]byte) []byte {
	out := make([]byte, 0, 33)
	out = append(out, prefixEntry)
	return append(out, key[:]...)
}

// Read returns the entry at k, or nil when it does not exist.
func (s *State) Read(k keylet.Keylet) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(k.Key)
}

func (s *State) read(key [32]byte) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	raw, err := s.db.Read(context.Background(), entryKey(key))
	if errors.Is(err, keyValueDb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %X: %w", key, err)
	}
	data, err := s.codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("state: decode %X: %w", key, err)
	}
	s.cache.Add(key, data)
	return data, nil
}

func (s *State) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	return data != nil, err
}

func (s *State) Insert(k keylet.Keylet, data []byte) error {
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return tx.ErrEntryExists
	}
	return s.Commit([]tx.Change{{Key: k.Key, Action: tx.ActionInsert, Current: data}})
}

func (s *State) Update(k keylet.Keylet, data []byte) error {
	original, err := s.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return tx.ErrEntryNotFound
	}
	return s.Commit([]tx.Change{{Key: k.Key, Action: tx.ActionModify, Original: original, Current: data}})
}

func (s *State) Erase(k keylet.Keylet) error {
	original, err := s.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return tx.ErrEntryNotFound
	}
	return s.Commit([]tx.Change{{Key: k.Key, Action: tx.ActionErase, Original: original}})
}

// ForEach visits every entry in key order.
func (s *State) ForEach(fn func(key [32]byte, data []byte) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := []byte{prefixEntry}
	it, err := s.db.Iterator(context.Background(), prefix, keyValueDb.PrefixEnd(prefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		raw := it.Key()
		if len(raw) != 33 {
			continue
		}
		var key [32]byte
		copy(key[:], raw[1:])
		data, err := s.codec.Decompress(it.Value())
		if err != nil {
			return fmt.Errorf("state: decode %X: %w", key, err)
		}
		if !fn(key, data) {
			return nil
		}
	}
	return it.Error()
}

// Commit writes one transaction's changes and bumps the applied counter in
// a single batch.
func (s *State) Commit(changes []tx.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := make([]keyValueDb.BatchOperation, 0, len(changes)+1)
	for _, c := range changes {
		switch c.Action {
		case tx.ActionInsert, tx.ActionModify:
			packed, err := s.codec.Compress(c.Current)
			if err != nil {
				return err
			}
			ops = append(ops, keyValueDb.BatchOperation{Type: keyValueDb.BatchPut, Key: entryKey(c.Key), Value: packed})
		case tx.ActionErase:
			ops = append(ops, keyValueDb.BatchOperation{Type: keyValueDb.BatchDelete, Key: entryKey(c.Key)})
		}
	}
	applied := s.applied + 1
	counter := make([]byte, 8)
	binary.BigEndian.PutUint64(counter, applied)
	ops = append(ops, keyValueDb.BatchOperation{Type: keyValueDb.BatchPut, Key: metaApplied, Value: counter})

	if err := s.db.Batch(context.Background(), ops); err != nil {
		return fmt.Errorf("state: commit: %w", err)
	}
	s.applied = applied

	for _, c := range changes {
		if c.Action == tx.ActionErase {
			s.cache.Remove(c.Key)
		} else {
			s.cache.Add(c.Key, c.Current)
		}
	}
	return nil
}

// Applied returns the number of committed change sets.
func (s *State) Applied() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Empty reports whether the state holds no entries.
func (s *State) Empty() (bool, error) {
	empty := true
	err := s.ForEach(func([32]byte, []byte) bool {
		empty = false
		return false
	})
	return empty, err
}

// Close closes the underlying store.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	return s.db.Close()
}
