package auction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
)

func addDelegate(t *testing.T, env *jtx.TestEnv, owner *jtx.Account, listing jtx.Listing, kind string, authority *jtx.Account, frozen bool) {
	t.Helper()
	d := assets.NewAssetDelegate(owner.ID, listing.Asset, kind, assets.DelegateAdd)
	d.Authority = authority.ID
	d.Frozen = frozen
	jtx.RequireTxSuccess(t, env.Submit(d))
}

func TestCreate_ExistingDelegates(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		other  bool
		frozen bool
		code   string
	}{
		{"own freeze delegate", assets.KindFreeze, false, false, jtx.TesSUCCESS},
		{"own transfer delegate", assets.KindTransfer, false, false, jtx.TesSUCCESS},
		{"own frozen asset", assets.KindFreeze, false, true, jtx.TecFROZEN_ASSET},
		{"foreign freeze delegate", assets.KindFreeze, true, false, jtx.TecFREEZE_DELEGATE_NOT_OWNER},
		{"foreign transfer delegate", assets.KindTransfer, true, false, jtx.TecTRANSFER_DELEGATE_NOT_OWNER},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := jtx.NewTestEnv(t)
			alice := jtx.NewAccount("alice")
			carol := jtx.NewAccount("carol")
			env.Fund(alice, carol)
			listing := env.NewListing(alice, "Punks")

			authority := alice
			if tt.other {
				authority = carol
			}
			addDelegate(t, env, alice, listing, tt.kind, authority, tt.frozen)
			before := env.Asset(listing.Asset)

			result := env.Submit(Create(alice, listing.Target, 60).Build())
			if tt.code == jtx.TesSUCCESS {
				jtx.RequireTxSuccess(t, result)
				jtx.RequireLocked(t, env, listing.Target)
				return
			}
			jtx.RequireTxFail(t, result, tt.code)
			jtx.RequireNoRecord(t, env, listing.Target)
			require.Equal(t, before, env.Asset(listing.Asset), "a refused listing leaves the asset untouched")
		})
	}
}

func TestCreate_RevokedDelegate(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	carol := jtx.NewAccount("carol")
	env.Fund(alice, carol)
	listing := env.NewListing(alice, "Punks")

	// A delegate granted to carol before listing blocks the auction
	addDelegate(t, env, alice, listing, assets.KindTransfer, carol, false)
	jtx.RequireTxFail(t, env.Submit(Create(alice, listing.Target, 60).Build()), jtx.TecTRANSFER_DELEGATE_NOT_OWNER)

	// Revoking it makes the asset listable
	revoke := assets.NewAssetDelegate(carol.ID, listing.Asset, assets.KindTransfer, assets.DelegateRemove)
	jtx.RequireTxSuccess(t, env.Submit(revoke))
	jtx.RequireTxSuccess(t, env.Submit(Create(alice, listing.Target, 60).Build()))
	jtx.RequireTxSuccess(t, env.Submit(Cancel(alice, listing.Target)))
	jtx.RequireUnlocked(t, env, listing.Asset)
}
