package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

type mapView map[[32]byte][]byte

func (m mapView) Read(k keylet.Keylet) ([]byte, error) { return m[k.Key], nil }

func (m mapView) Insert(k keylet.Keylet, data []byte) error {
	m[k.Key] = data
	return nil
}

func (m mapView) Update(k keylet.Keylet, data []byte) error {
	m[k.Key] = data
	return nil
}

func id(b byte) types.AccountID {
	var out types.AccountID
	out[0] = b
	return out
}

var (
	creator   = id(1)
	owner     = id(2)
	auctionID = id(3)
	stranger  = id(4)
	buyer     = id(5)
	collID    = id(10)
	assetID   = id(11)
)

func newRegistry(t *testing.T) *LedgerRegistry {
	t.Helper()
	r := NewLedgerRegistry(mapView{})
	require.NoError(t, r.CreateCollection(&sle.AssetCollection{ID: collID, UpdateAuthority: creator, Name: "c"}))
	require.NoError(t, r.Mint(&sle.Asset{ID: assetID, Collection: collID, Owner: owner, Name: "a"}, creator))
	return r
}

func TestLedgerRegistry_Mint(t *testing.T) {
	r := newRegistry(t)

	info, err := r.Asset(assetID)
	require.NoError(t, err)
	assert.Equal(t, owner, info.Owner)
	assert.Equal(t, collID, info.Collection)
	assert.Equal(t, creator, info.UpdateAuthority)
	assert.False(t, info.Frozen)

	coll, err := r.Collection(collID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), coll.Size)

	t.Run("duplicate asset", func(t *testing.T) {
		err := r.Mint(&sle.Asset{ID: assetID, Collection: collID, Owner: owner}, creator)
		require.ErrorIs(t, err, ErrAssetExists)
	})

	t.Run("not update authority", func(t *testing.T) {
		err := r.Mint(&sle.Asset{ID: id(12), Collection: collID, Owner: owner}, stranger)
		require.ErrorIs(t, err, ErrNotUpdateAuthority)
	})

	t.Run("unknown collection", func(t *testing.T) {
		err := r.Mint(&sle.Asset{ID: id(12), Collection: id(99), Owner: owner}, creator)
		require.ErrorIs(t, err, ErrCollectionNotFound)
	})

	t.Run("duplicate collection", func(t *testing.T) {
		err := r.CreateCollection(&sle.AssetCollection{ID: collID, UpdateAuthority: creator})
		require.ErrorIs(t, err, ErrCollectionExists)
	})
}

func TestLedgerRegistry_FreezeBlocksTransfer(t *testing.T) {
	r := newRegistry(t)

	require.NoError(t, r.AddDelegate(assetID, owner, Delegate{Kind: FreezeDelegate, Authority: auctionID, Frozen: true}))

	require.ErrorIs(t, r.Transfer(assetID, owner, stranger), ErrFrozen)
	require.ErrorIs(t, r.RemoveDelegate(assetID, FreezeDelegate, auctionID), ErrFrozen, "frozen delegate cannot be removed")
	require.ErrorIs(t, r.UpdateFreeze(assetID, owner, false), ErrNotAuthority, "owner cannot thaw")

	require.NoError(t, r.UpdateFreeze(assetID, auctionID, false))
	require.NoError(t, r.RemoveDelegate(assetID, FreezeDelegate, auctionID))

	d, err := r.Delegate(assetID, FreezeDelegate)
	require.NoError(t, err)
	assert.Nil(t, d)

	require.NoError(t, r.Transfer(assetID, owner, buyer))
	info, err := r.Asset(assetID)
	require.NoError(t, err)
	assert.Equal(t, buyer, info.Owner)
}

func TestLedgerRegistry_TransferDelegate(t *testing.T) {
	r := newRegistry(t)

	require.ErrorIs(t, r.AddDelegate(assetID, stranger, Delegate{Kind: TransferDelegate, Authority: stranger}), ErrNotOwner)
	require.NoError(t, r.AddDelegate(assetID, owner, Delegate{Kind: TransferDelegate, Authority: owner}))
	require.ErrorIs(t, r.AddDelegate(assetID, owner, Delegate{Kind: TransferDelegate, Authority: owner}), ErrDelegateExists)

	require.ErrorIs(t, r.ApproveDelegateAuthority(assetID, TransferDelegate, stranger, stranger), ErrNotAuthority)
	require.NoError(t, r.ApproveDelegateAuthority(assetID, TransferDelegate, owner, auctionID))

	d, err := r.Delegate(assetID, TransferDelegate)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, auctionID, d.Authority)

	require.ErrorIs(t, r.Transfer(assetID, stranger, stranger), ErrNotOwner)
	require.NoError(t, r.Transfer(assetID, auctionID, buyer))

	require.ErrorIs(t, r.RemoveDelegate(assetID, TransferDelegate, buyer), ErrNotAuthority)
	require.NoError(t, r.RemoveDelegate(assetID, TransferDelegate, auctionID))
	require.ErrorIs(t, r.RemoveDelegate(assetID, TransferDelegate, auctionID), ErrDelegateNotFound)
}

func TestLedgerRegistry_Missing(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Asset(id(42))
	require.ErrorIs(t, err, ErrAssetNotFound)

	require.ErrorIs(t, r.UpdateFreeze(assetID, owner, true), ErrDelegateNotFound)

	_, err = r.Delegate(assetID, DelegateKind(9))
	require.ErrorIs(t, err, ErrUnsupported)
}
