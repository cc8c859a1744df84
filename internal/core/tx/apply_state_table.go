package tx

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
)

var (
	ErrEntryExists   = errors.New("entry already exists")
	ErrEntryNotFound = errors.New("entry not found")
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "CreatedNode"
	case ActionModify:
		return "ModifiedNode"
	case ActionErase:
		return "DeletedNode"
	default:
		return "Cached"
	}
}

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (state before deletion for erases)
}

// Change is one staged write, as handed to the base view on Apply.
type Change struct {
	Key      [32]byte
	Action   Action
	Original []byte
	Current  []byte
}

// Committer is implemented by base views that can write a change set
// atomically. Without it, Apply falls back to per-entry writes.
type Committer interface {
	Commit(changes []Change) error
}

// ApplyStateTable wraps a LedgerView and stages every modification. Nothing
// reaches the base view until Apply; dropping the table discards the
// transaction.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached. A missing entry returns
// nil data and no error.
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return ErrEntryExists
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}

	t.items[k.Key] = &TrackedEntry{
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return ErrEntryNotFound
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k.Key]; exists {
		switch entry.Action {
		case ActionErase:
			return ErrEntryNotFound
		case ActionInsert:
			// Inserting then deleting = no change
			delete(t.items, k.Key)
			return nil
		}
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// IsErased returns true if the entry at the given key has been erased.
func (t *ApplyStateTable) IsErased(k keylet.Keylet) bool {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action == ActionErase
	}
	return false
}

// ForEach iterates over the base merged with staged changes.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	stopped := false
	err := t.base.ForEach(func(key [32]byte, data []byte) bool {
		if _, tracked := t.items[key]; tracked {
			return true
		}
		if !fn(key, data) {
			stopped = true
			return false
		}
		return true
	})
	if err != nil || stopped {
		return err
	}
	for _, c := range t.sortedItems() {
		entry := t.items[c]
		if entry.Action == ActionErase {
			continue
		}
		if !fn(c, entry.Current) {
			return nil
		}
	}
	return nil
}

// Changes returns every staged write in key order. Reads without writes and
// modifications that restore the original bytes are omitted.
func (t *ApplyStateTable) Changes() []Change {
	var out []Change
	for _, key := range t.sortedItems() {
		entry := t.items[key]
		switch entry.Action {
		case ActionCache:
			continue
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
		}
		out = append(out, Change{
			Key:      key,
			Action:   entry.Action,
			Original: entry.Original,
			Current:  entry.Current,
		})
	}
	return out
}

// Apply commits all changes to the base view and returns generated metadata.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	changes := t.Changes()

	metadata := &Metadata{
		AffectedNodes: make([]AffectedNode, 0, len(changes)),
	}
	for _, c := range changes {
		metadata.AffectedNodes = append(metadata.AffectedNodes, buildAffectedNode(c))
	}

	if committer, ok := t.base.(Committer); ok {
		if err := committer.Commit(changes); err != nil {
			return nil, err
		}
		return metadata, nil
	}

	for _, c := range changes {
		k := keylet.Keylet{Key: c.Key}
		var err error
		switch c.Action {
		case ActionInsert:
			err = t.base.Insert(k, c.Current)
		case ActionModify:
			err = t.base.Update(k, c.Current)
		case ActionErase:
			err = t.base.Erase(k)
		}
		if err != nil {
			return nil, err
		}
	}
	return metadata, nil
}

func (t *ApplyStateTable) sortedItems() [][32]byte {
	keys := make([][32]byte, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// Metadata describes the ledger changes made by a transaction
type Metadata struct {
	AffectedNodes     []AffectedNode `json:"AffectedNodes"`
	TransactionResult Result         `json:"-"`
}

// AffectedNode is one created, modified or deleted ledger entry.
type AffectedNode struct {
	NodeType        string `json:"NodeType"`
	LedgerEntryType string `json:"LedgerEntryType"`
	LedgerIndex     string `json:"LedgerIndex"`
	FinalFields     any    `json:"FinalFields,omitempty"`
	PreviousFields  any    `json:"PreviousFields,omitempty"`
}

func buildAffectedNode(c Change) AffectedNode {
	node := AffectedNode{
		NodeType:    c.Action.String(),
		LedgerIndex: strings.ToUpper(hex.EncodeToString(c.Key[:])),
	}

	data := c.Current
	if data == nil {
		data = c.Original
	}
	if typ, err := sle.EntryType(data); err == nil {
		node.LedgerEntryType = typ.String()
	}

	if c.Action != ActionErase {
		if v, err := sle.DecodeAny(c.Current); err == nil {
			node.FinalFields = v
		}
	}
	if c.Action != ActionInsert && c.Original != nil {
		if v, err := sle.DecodeAny(c.Original); err == nil {
			node.PreviousFields = v
		}
	}
	return node
}
