package tx

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
)

// mapView is an in-memory LedgerView for engine tests.
type mapView struct {
	entries map[[32]byte][]byte
}

func newMapView() *mapView {
	return &mapView{entries: make(map[[32]byte][]byte)}
}

func (m *mapView) Read(k keylet.Keylet) ([]byte, error) {
	return m.entries[k.Key], nil
}

func (m *mapView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := m.entries[k.Key]
	return ok, nil
}

func (m *mapView) Insert(k keylet.Keylet, data []byte) error {
	if _, ok := m.entries[k.Key]; ok {
		return ErrEntryExists
	}
	m.entries[k.Key] = data
	return nil
}

func (m *mapView) Update(k keylet.Keylet, data []byte) error {
	if _, ok := m.entries[k.Key]; !ok {
		return ErrEntryNotFound
	}
	m.entries[k.Key] = data
	return nil
}

func (m *mapView) Erase(k keylet.Keylet) error {
	if _, ok := m.entries[k.Key]; !ok {
		return ErrEntryNotFound
	}
	delete(m.entries, k.Key)
	return nil
}

func (m *mapView) ForEach(fn func(key [32]byte, data []byte) bool) error {
	for k, v := range m.entries {
		if !fn(k, v) {
			return nil
		}
	}
	return nil
}

// committingView records batch commits.
type committingView struct {
	*mapView
	commits [][]Change
}

func (c *committingView) Commit(changes []Change) error {
	c.commits = append(c.commits, changes)
	for _, ch := range changes {
		switch ch.Action {
		case ActionInsert, ActionModify:
			c.entries[ch.Key] = ch.Current
		case ActionErase:
			delete(c.entries, ch.Key)
		}
	}
	return nil
}
