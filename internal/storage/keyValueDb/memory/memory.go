// Package memory is an in-process keyValueDb used by tests and standalone
// runs that do not need persistence.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb"
)

type DB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

var _ keyValueDb.DB = (*DB)(nil)

func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(_ context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}
	v, ok := m.data[string(key)]
	if !ok {
		return nil, keyValueDb.ErrKeyNotFound
	}
	return bytes.Clone(v), nil
}

func (m *DB) Write(_ context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	m.data[string(key)] = bytes.Clone(value)
	return nil
}

func (m *DB) Delete(_ context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(_ context.Context, ops []keyValueDb.BatchOperation) error {
	for _, op := range ops {
		if op.Type != keyValueDb.BatchPut && op.Type != keyValueDb.BatchDelete {
			return fmt.Errorf("%w: unknown operation type %d", keyValueDb.ErrBatchOperationFailed, op.Type)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	for _, op := range ops {
		if op.Type == keyValueDb.BatchPut {
			m.data[string(op.Key)] = bytes.Clone(op.Value)
		} else {
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

// Iterator walks a snapshot taken when it is created.
func (m *DB) Iterator(_ context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}

	it := &iterator{pos: -1}
	for k, v := range m.data {
		key := []byte(k)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			continue
		}
		it.keys = append(it.keys, key)
		it.values = append(it.values, bytes.Clone(v))
	}
	sort.Sort(it)
	return it, nil
}

func (m *DB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

type iterator struct {
	keys   [][]byte
	values [][]byte
	pos    int
}

func (it *iterator) Len() int           { return len(it.keys) }
func (it *iterator) Less(i, j int) bool { return bytes.Compare(it.keys[i], it.keys[j]) < 0 }
func (it *iterator) Swap(i, j int) {
	it.keys[i], it.keys[j] = it.keys[j], it.keys[i]
	it.values[i], it.values[j] = it.values[j], it.values[i]
}

func (it *iterator) Next() bool {
	if it.pos+1 >= len(it.keys) {
		it.pos = len(it.keys)
		return false
	}
	it.pos++
	return true
}

func (it *iterator) Key() []byte   { return it.keys[it.pos] }
func (it *iterator) Value() []byte { return it.values[it.pos] }
func (it *iterator) Error() error  { return nil }
func (it *iterator) Close() error  { return nil }
