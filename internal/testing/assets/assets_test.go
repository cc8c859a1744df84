// Package assets tests registry collections, mints, transfers and
// delegates outside of an auction.
package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
)

func TestMint(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	collection := env.CreateCollection(env.Master(), "Punks")
	coll, err := env.Ledger().AssetCollection(collection)
	require.NoError(t, err)
	assert.Equal(t, "Punks", coll.Name)
	assert.Equal(t, env.Master().ID, coll.UpdateAuthority)

	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)
	a := env.Asset(asset)
	require.NotNil(t, a)
	assert.Equal(t, collection, a.Collection)
	assert.Equal(t, "Punk #1", a.Name)
	jtx.RequireAssetOwner(t, env, asset, alice)
	jtx.RequireUnlocked(t, env, asset)
}

func TestMint_NotUpdateAuthority(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	collection := env.CreateCollection(env.Master(), "Punks")

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetMint(alice.ID, collection, "Fake")), jtx.TecNO_PERMISSION)
}

func TestMint_UnknownCollection(t *testing.T) {
	env := jtx.NewTestEnv(t)
	ghost := jtx.NewAccount("ghost").ID

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetMint(env.Master().ID, ghost, "Lost")), jtx.TecNO_ENTRY)
}

func TestTransfer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetTransfer(bob.ID, asset, bob.ID)), jtx.TecNOT_OWNER)
	jtx.RequireTxSuccess(t, env.Submit(assets.NewAssetTransfer(alice.ID, asset, bob.ID)))
	jtx.RequireAssetOwner(t, env, asset, bob)
}

func TestTransfer_ProtocolOwnedDestination(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetTransfer(alice.ID, asset, env.Vault())), jtx.TecNO_PERMISSION)
	jtx.RequireAssetOwner(t, env, asset, alice)
}

func TestDelegate_TransferDelegateMoves(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	carol := jtx.NewAccount("carol")
	env.Fund(alice, bob, carol)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	add := assets.NewAssetDelegate(alice.ID, asset, assets.KindTransfer, assets.DelegateAdd)
	add.Authority = bob.ID
	jtx.RequireTxSuccess(t, env.Submit(add))

	jtx.RequireTxSuccess(t, env.Submit(assets.NewAssetTransfer(bob.ID, asset, carol.ID)))
	jtx.RequireAssetOwner(t, env, asset, carol)
}

func TestDelegate_FreezeBlocksTransfer(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	add := assets.NewAssetDelegate(alice.ID, asset, assets.KindFreeze, assets.DelegateAdd)
	add.Authority = bob.ID
	jtx.RequireTxSuccess(t, env.Submit(add))

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetDelegate(alice.ID, asset, assets.KindFreeze, assets.DelegateFreeze)), jtx.TecNO_PERMISSION)
	jtx.RequireTxSuccess(t, env.Submit(assets.NewAssetDelegate(bob.ID, asset, assets.KindFreeze, assets.DelegateFreeze)))
	require.True(t, env.Asset(asset).Frozen())

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetTransfer(alice.ID, asset, bob.ID)), jtx.TecFROZEN_ASSET)
	jtx.RequireTxFail(t, env.Submit(assets.NewAssetDelegate(bob.ID, asset, assets.KindFreeze, assets.DelegateRemove)), jtx.TecFROZEN_ASSET)

	jtx.RequireTxSuccess(t, env.Submit(assets.NewAssetDelegate(bob.ID, asset, assets.KindFreeze, assets.DelegateThaw)))
	jtx.RequireTxSuccess(t, env.Submit(assets.NewAssetDelegate(bob.ID, asset, assets.KindFreeze, assets.DelegateRemove)))
	jtx.RequireUnlocked(t, env, asset)
}

func TestDelegate_Approve(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	add := assets.NewAssetDelegate(alice.ID, asset, assets.KindTransfer, assets.DelegateAdd)
	add.Authority = alice.ID
	jtx.RequireTxSuccess(t, env.Submit(add))
	jtx.RequireTxFail(t, env.Submit(add), jtx.TefPAST_SEQ)

	again := assets.NewAssetDelegate(alice.ID, asset, assets.KindTransfer, assets.DelegateAdd)
	again.Authority = bob.ID
	jtx.RequireTxFail(t, env.Submit(again), jtx.TecDUPLICATE)

	approve := assets.NewAssetDelegate(alice.ID, asset, assets.KindTransfer, assets.DelegateApprove)
	approve.Authority = bob.ID
	jtx.RequireTxSuccess(t, env.Submit(approve))
	assert.Equal(t, bob.ID, env.Asset(asset).TransferDelegate.Authority)
}

func TestDelegate_Malformed(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	collection := env.CreateCollection(env.Master(), "Punks")
	asset := env.MintAsset(env.Master(), collection, "Punk #1", alice)

	freezeTransfer := assets.NewAssetDelegate(alice.ID, asset, assets.KindTransfer, assets.DelegateFreeze)
	jtx.RequireTxFail(t, env.Submit(freezeTransfer), jtx.TemMALFORMED)

	noAuthority := assets.NewAssetDelegate(alice.ID, asset, assets.KindFreeze, assets.DelegateAdd)
	jtx.RequireTxFail(t, env.Submit(noAuthority), jtx.TemMALFORMED)

	unknown := assets.NewAssetDelegate(alice.ID, asset, "Burn", assets.DelegateAdd)
	jtx.RequireTxFail(t, env.Submit(unknown), jtx.TemMALFORMED)
}
