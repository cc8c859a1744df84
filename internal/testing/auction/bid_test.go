package auction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goAuctiond/internal/core/tx"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
	"github.com/LeJamon/goAuctiond/internal/types"
)

type bidFixture struct {
	env     *jtx.TestEnv
	alice   *jtx.Account
	bob     *jtx.Account
	carol   *jtx.Account
	listing jtx.Listing
}

// newBidFixture lists an asset of alice for 60 minutes with a minimum
// bid of 100 units.
func newBidFixture(t *testing.T, opts ...jtx.Option) *bidFixture {
	t.Helper()
	env := jtx.NewTestEnv(t, opts...)
	f := &bidFixture{
		env:   env,
		alice: jtx.NewAccount("alice"),
		bob:   jtx.NewAccount("bob"),
		carol: jtx.NewAccount("carol"),
	}
	env.Fund(f.alice, f.bob, f.carol)
	f.listing = env.NewListing(f.alice, "Punks")
	jtx.RequireTxSuccess(t, env.Submit(Create(f.alice, f.listing.Target, 60).MinBid(jtx.Units(100)).Build()))
	return f
}

func TestBid_FirstBidStartsClock(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).Build()))

	rec := env.Record(f.listing.Target)
	require.NotNil(t, rec.HighBid)
	assert.Equal(t, f.bob.ID, rec.HighBid.Buyer)
	assert.Equal(t, jtx.Units(100), rec.CurrentBid())
	assert.Equal(t, env.Now().Unix(), rec.FirstBidAt)
	assert.Equal(t, env.Now().Add(time.Hour).Unix(), rec.EndsAt())

	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding-jtx.Units(100))
	jtx.RequireBalanceOf(t, env, env.Vault(), jtx.Units(100))
	jtx.RequireSupplyConserved(t, env)
}

func TestBid_OutbidRefundsPrevious(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).Build()))
	firstBidAt := env.Record(f.listing.Target).FirstBidAt
	env.AdvanceMinutes(10)
	jtx.RequireTxSuccess(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.Units(150)).Build()))

	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding)
	jtx.RequireBalance(t, env, f.carol, jtx.DefaultFunding-jtx.Units(150))
	jtx.RequireBalanceOf(t, env, env.Vault(), jtx.Units(150))

	rec := env.Record(f.listing.Target)
	assert.Equal(t, f.carol.ID, rec.HighBid.Buyer)
	assert.Equal(t, firstBidAt, rec.FirstBidAt, "later bids do not extend the auction")
	jtx.RequireSupplyConserved(t, env)
}

func TestBid_TooLow(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxFail(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(99)).Build()), jtx.TecINVALID_BID)
	assert.False(t, env.Record(f.listing.Target).Started())

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(120)).Build()))
	jtx.RequireTxFail(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.Units(120)).Build()), jtx.TecINVALID_BID)
	jtx.RequireTxFail(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.Units(110)).Build()), jtx.TecINVALID_BID)
	jtx.RequireBalance(t, env, f.carol, jtx.DefaultFunding)
}

func TestBid_ZeroAmount(t *testing.T) {
	f := newBidFixture(t)
	jtx.RequireTxFail(t, f.env.Submit(Bid(f.bob, f.listing.Target, 0).Build()), jtx.TemBAD_AMOUNT)
}

func TestBid_Owner(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxFail(t, env.Submit(Bid(f.alice, f.listing.Target, jtx.Units(200)).Build()), jtx.TecOWNER_BID)
	jtx.RequireTxFail(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(200)).For(f.alice).Build()), jtx.TecOWNER_BID)
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding)
}

func TestBid_OnBehalfOfBuyer(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).For(f.carol).Build()))
	rec := env.Record(f.listing.Target)
	assert.Equal(t, f.carol.ID, rec.HighBid.Buyer)
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding-jtx.Units(100))

	// The refund goes to the buyer, not the payer
	dave := jtx.NewAccount("dave")
	env.Fund(dave)
	jtx.RequireTxSuccess(t, env.Submit(Bid(dave, f.listing.Target, jtx.Units(200)).Build()))
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding-jtx.Units(100))
	jtx.RequireBalance(t, env, f.carol, jtx.DefaultFunding+jtx.Units(100))
	jtx.RequireSupplyConserved(t, env)
}

func TestBid_Unfunded(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).Build()))
	jtx.RequireTxFail(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.DefaultFunding+1).Build()), jtx.TecUNFUNDED)

	// The refund of the failed outbid was rolled back
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding-jtx.Units(100))
	jtx.RequireBalanceOf(t, env, env.Vault(), jtx.Units(100))
	assert.Equal(t, f.bob.ID, env.Record(f.listing.Target).HighBid.Buyer)
}

func TestBid_AfterEnd(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).Build()))

	env.Advance(59*time.Minute + 59*time.Second)
	jtx.RequireTxSuccess(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.Units(110)).Build()))

	env.Advance(time.Second)
	jtx.RequireTxFail(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(500)).Build()), jtx.TecAUCTION_ENDED)
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding)

	info, err := env.Ledger().Auction(env.Seed(), f.listing.Collection, f.listing.Asset)
	require.NoError(t, err)
	assert.Equal(t, "ended", info.Status)
}

func TestBid_NoListing(t *testing.T) {
	f := newBidFixture(t)
	other := f.env.NewListing(f.alice, "Apes")

	jtx.RequireTxFail(t, f.env.Submit(Bid(f.bob, other.Target, jtx.Units(100)).Build()), jtx.TecNO_ENTRY)
}

func TestBid_Concurrent(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	bidders := make([]*jtx.Account, 8)
	bids := make([]tx.Transaction, len(bidders))
	for i := range bidders {
		bidders[i] = jtx.NewAccount("bidder" + string(rune('a'+i)))
		env.Fund(bidders[i])
		bid := Bid(bidders[i], f.listing.Target, jtx.Units(uint64(100+10*i))).Build()
		bid.GetCommon().SetSequence(env.Seq(bidders[i]))
		require.NoError(t, tx.Sign(bid, bidders[i].KeyPair))
		bids[i] = bid
	}

	var g errgroup.Group
	for _, bid := range bids {
		bid := bid
		g.Go(func() error {
			_, err := env.Ledger().Submit(context.Background(), bid)
			return err
		})
	}
	require.NoError(t, g.Wait())

	rec := env.Record(f.listing.Target)
	require.NotNil(t, rec.HighBid)
	jtx.RequireBalanceOf(t, env, env.Vault(), rec.CurrentBid())
	for _, b := range bidders {
		want := jtx.DefaultFunding
		if b.ID == rec.HighBid.Buyer {
			want -= rec.CurrentBid()
		}
		jtx.RequireBalance(t, env, b, want)
	}
	jtx.RequireSupplyConserved(t, env)
}

func TestBid_ProtocolOwnedBuyer(t *testing.T) {
	f := newBidFixture(t)
	env := f.env

	for _, buyer := range []struct {
		name string
		id   types.AccountID
	}{
		{"vault", env.Vault()},
		{"treasury", env.Treasury()},
	} {
		t.Run(buyer.name, func(t *testing.T) {
			result := env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).ForID(buyer.id).Build())
			jtx.RequireTxFail(t, result, jtx.TecNO_PERMISSION)
		})
	}
	assert.False(t, env.Record(f.listing.Target).Started())
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding)
	jtx.RequireBalanceOf(t, env, env.Vault(), 0)

	// Competitive bidding still works afterwards
	jtx.RequireTxSuccess(t, env.Submit(Bid(f.bob, f.listing.Target, jtx.Units(100)).Build()))
	jtx.RequireTxSuccess(t, env.Submit(Bid(f.carol, f.listing.Target, jtx.Units(150)).Build()))
	jtx.RequireBalance(t, env, f.bob, jtx.DefaultFunding)
	jtx.RequireBalanceOf(t, env, env.Vault(), jtx.Units(150))
	jtx.RequireSupplyConserved(t, env)
}
