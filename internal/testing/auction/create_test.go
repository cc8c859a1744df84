package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	auctiontx "github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
)

func TestCreate_Lists(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	listing := env.NewListing(alice, "Punks")
	rent := env.ProtocolConfig().RecordRent

	jtx.RequireTxSuccess(t, env.Submit(Create(alice, listing.Target, 60).MinBid(jtx.Units(10)).Build()))

	rec := env.Record(listing.Target)
	require.NotNil(t, rec)
	assert.Equal(t, alice.ID, rec.Owner)
	assert.Equal(t, alice.ID, rec.RentPayer)
	assert.Equal(t, uint32(60), rec.DurationMinutes)
	assert.Equal(t, jtx.Units(10), rec.MinBid)
	assert.Equal(t, rent, rec.Rent)
	assert.False(t, rec.Started())
	assert.Zero(t, rec.EndsAt())
	assert.Equal(t, env.Now().Unix(), rec.CreatedAt)

	jtx.RequireBalance(t, env, alice, jtx.DefaultFunding-rent)
	jtx.RequireAssetOwner(t, env, listing.Asset, alice)
	jtx.RequireLocked(t, env, listing.Target)
	jtx.RequireSupplyConserved(t, env)

	info, err := env.Ledger().Auction(env.Seed(), listing.Collection, listing.Asset)
	require.NoError(t, err)
	assert.Equal(t, "listed", info.Status)
}

func TestCreate_DurationBounds(t *testing.T) {
	tests := []struct {
		name     string
		duration uint32
		code     string
	}{
		{"minimum", 10, jtx.TesSUCCESS},
		{"maximum", 100, jtx.TesSUCCESS},
		{"too short", 9, jtx.TecDURATION_TOO_SHORT},
		{"too long", 101, jtx.TecDURATION_TOO_LONG},
		{"zero", 0, jtx.TemBAD_DURATION},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := jtx.NewTestEnv(t, jtx.WithDurations(10, 100))
			alice := jtx.NewAccount("alice")
			env.Fund(alice)
			listing := env.NewListing(alice, tt.name)
			result := env.Submit(Create(alice, listing.Target, tt.duration).Build())
			if tt.code == jtx.TesSUCCESS {
				jtx.RequireTxSuccess(t, result)
				jtx.RequireLocked(t, env, listing.Target)
				return
			}
			jtx.RequireTxFail(t, result, tt.code)
			jtx.RequireNoRecord(t, env, listing.Target)
			jtx.RequireUnlocked(t, env, listing.Asset)
		})
	}
}

func TestCreate_NotWhitelisted(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	collection := env.CreateCollection(env.Master(), "Unlisted")
	asset := env.MintAsset(env.Master(), collection, "Unlisted #1", alice)
	target := auctiontx.Target{ConfigSeed: env.Seed(), Collection: collection, Asset: asset}

	jtx.RequireTxFail(t, env.Submit(Create(alice, target, 60).Build()), jtx.TecNO_ENTRY)
	jtx.RequireBalance(t, env, alice, jtx.DefaultFunding)
	jtx.RequireUnlocked(t, env, asset)
}

func TestCreate_WrongCollection(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	punks := env.NewListing(alice, "Punks")
	apes := env.NewListing(alice, "Apes")

	target := auctiontx.Target{ConfigSeed: env.Seed(), Collection: apes.Collection, Asset: punks.Asset}
	jtx.RequireTxFail(t, env.Submit(Create(alice, target, 60).Build()), jtx.TecWRONG_COLLECTION)
	jtx.RequireUnlocked(t, env, punks.Asset)
}

func TestCreate_UnknownAsset(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	listing := env.NewListing(alice, "Punks")

	target := listing.Target
	target.Asset = jtx.NewAccount("no such asset").ID
	jtx.RequireTxFail(t, env.Submit(Create(alice, target, 60).Build()), jtx.TecNO_ENTRY)
}

func TestCreate_NotOwner(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	listing := env.NewListing(alice, "Punks")

	jtx.RequireTxFail(t, env.Submit(Create(bob, listing.Target, 60).Build()), jtx.TecNOT_OWNER)
	jtx.RequireNoRecord(t, env, listing.Target)
	jtx.RequireBalance(t, env, bob, jtx.DefaultFunding)
}

func TestCreate_Duplicate(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	listing := env.NewListing(alice, "Punks")

	jtx.RequireTxSuccess(t, env.Submit(Create(alice, listing.Target, 60).Build()))
	before := env.Balance(alice)
	jtx.RequireTxFail(t, env.Submit(Create(alice, listing.Target, 30).Build()), jtx.TecDUPLICATE)
	jtx.RequireBalance(t, env, alice, before)
	assert.Equal(t, uint32(60), env.Record(listing.Target).DurationMinutes)
}

func TestCreate_CannotPayRent(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	rent := env.ProtocolConfig().RecordRent
	env.FundAmount(alice, rent-1)
	listing := env.NewListing(alice, "Punks")

	jtx.RequireTxFail(t, env.Submit(Create(alice, listing.Target, 60).Build()), jtx.TecUNFUNDED)
	jtx.RequireNoRecord(t, env, listing.Target)
	jtx.RequireUnlocked(t, env, listing.Asset)
	jtx.RequireBalance(t, env, alice, rent-1)
}

func TestCreate_FailureKeepsSequence(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)
	listing := env.NewListing(alice, "Punks")
	seq := env.Seq(alice)

	jtx.RequireTxFail(t, env.Submit(Create(alice, listing.Target, 100_000).Build()), jtx.TecDURATION_TOO_LONG)
	assert.Equal(t, seq, env.Seq(alice))
	jtx.RequireTxSuccess(t, env.Submit(Create(alice, listing.Target, 60).Sequence(seq).Build()))
	assert.Equal(t, seq+1, env.Seq(alice))
}

func TestCreate_ListedAssetCannotMove(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)
	listing := env.NewListing(alice, "Punks")
	jtx.RequireTxSuccess(t, env.Submit(Create(alice, listing.Target, 60).Build()))

	jtx.RequireTxFail(t, env.Submit(assets.NewAssetTransfer(alice.ID, listing.Asset, bob.ID)), jtx.TecFROZEN_ASSET)

	thaw := assets.NewAssetDelegate(alice.ID, listing.Asset, assets.KindFreeze, assets.DelegateThaw)
	jtx.RequireTxFail(t, env.Submit(thaw), jtx.TecNO_PERMISSION)

	remove := assets.NewAssetDelegate(alice.ID, listing.Asset, assets.KindTransfer, assets.DelegateRemove)
	jtx.RequireTxFail(t, env.Submit(remove), jtx.TecNO_PERMISSION)

	jtx.RequireAssetOwner(t, env, listing.Asset, alice)
	jtx.RequireLocked(t, env, listing.Target)
}
