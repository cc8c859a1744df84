package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
)

func key(b byte) keylet.Keylet {
	var k keylet.Keylet
	k.Type = entry.TypeAccountRoot
	k.Key[0] = b
	return k
}

func TestApplyStateTable_StagesUntilApply(t *testing.T) {
	base := newMapView()
	require.NoError(t, base.Insert(key(1), []byte("one")))
	require.NoError(t, base.Insert(key(2), []byte("two")))

	table := NewApplyStateTable(base)
	require.NoError(t, table.Insert(key(3), []byte("three")))
	require.NoError(t, table.Update(key(1), []byte("uno")))
	require.NoError(t, table.Erase(key(2)))

	data, err := table.Read(key(1))
	require.NoError(t, err)
	assert.Equal(t, []byte("uno"), data)
	data, err = table.Read(key(2))
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.True(t, table.IsErased(key(2)))

	// base untouched
	assert.Equal(t, []byte("one"), base.entries[key(1).Key])
	assert.Contains(t, base.entries, key(2).Key)
	assert.NotContains(t, base.entries, key(3).Key)

	meta, err := table.Apply()
	require.NoError(t, err)
	assert.Len(t, meta.AffectedNodes, 3)
	assert.Equal(t, []byte("uno"), base.entries[key(1).Key])
	assert.NotContains(t, base.entries, key(2).Key)
	assert.Equal(t, []byte("three"), base.entries[key(3).Key])
}

func TestApplyStateTable_Errors(t *testing.T) {
	base := newMapView()
	require.NoError(t, base.Insert(key(1), []byte("one")))
	table := NewApplyStateTable(base)

	assert.ErrorIs(t, table.Insert(key(1), []byte("x")), ErrEntryExists)
	assert.ErrorIs(t, table.Update(key(9), []byte("x")), ErrEntryNotFound)
	assert.ErrorIs(t, table.Erase(key(9)), ErrEntryNotFound)

	require.NoError(t, table.Erase(key(1)))
	assert.ErrorIs(t, table.Erase(key(1)), ErrEntryNotFound)
	assert.ErrorIs(t, table.Update(key(1), []byte("x")), ErrEntryNotFound)

	missing, err := table.Read(key(9))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestApplyStateTable_Changes(t *testing.T) {
	base := newMapView()
	require.NoError(t, base.Insert(key(1), []byte("one")))
	require.NoError(t, base.Insert(key(2), []byte("two")))
	table := NewApplyStateTable(base)

	// read only
	_, err := table.Read(key(2))
	require.NoError(t, err)
	// modify back to the original bytes
	require.NoError(t, table.Update(key(1), []byte("changed")))
	require.NoError(t, table.Update(key(1), []byte("one")))
	// insert then erase
	require.NoError(t, table.Insert(key(5), []byte("five")))
	require.NoError(t, table.Erase(key(5)))

	assert.Empty(t, table.Changes())

	// erase then re-insert is a modify
	require.NoError(t, table.Erase(key(2)))
	require.NoError(t, table.Insert(key(2), []byte("deux")))
	changes := table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionModify, changes[0].Action)
	assert.Equal(t, []byte("two"), changes[0].Original)
	assert.Equal(t, []byte("deux"), changes[0].Current)
}

func TestApplyStateTable_ForEachMerges(t *testing.T) {
	base := newMapView()
	require.NoError(t, base.Insert(key(1), []byte("one")))
	require.NoError(t, base.Insert(key(2), []byte("two")))
	table := NewApplyStateTable(base)
	require.NoError(t, table.Erase(key(1)))
	require.NoError(t, table.Update(key(2), []byte("deux")))
	require.NoError(t, table.Insert(key(3), []byte("three")))

	seen := map[byte]string{}
	require.NoError(t, table.ForEach(func(k [32]byte, data []byte) bool {
		seen[k[0]] = string(data)
		return true
	}))
	assert.Equal(t, map[byte]string{2: "deux", 3: "three"}, seen)
}

func TestApplyStateTable_UsesCommitter(t *testing.T) {
	base := &committingView{mapView: newMapView()}
	require.NoError(t, base.Insert(key(1), []byte("one")))
	table := NewApplyStateTable(base)
	require.NoError(t, table.Update(key(1), []byte("uno")))
	require.NoError(t, table.Insert(key(2), []byte("two")))

	_, err := table.Apply()
	require.NoError(t, err)
	require.Len(t, base.commits, 1)
	assert.Len(t, base.commits[0], 2)
	assert.Equal(t, []byte("uno"), base.entries[key(1).Key])
}
