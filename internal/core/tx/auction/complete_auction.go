package auction

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeAuctionComplete, func() tx.Transaction {
		return &AuctionComplete{BaseTx: *tx.NewBaseTx(tx.TypeAuctionComplete, types.AccountID{})}
	})
}

// AuctionComplete settles a closed auction. Anyone may submit it once the
// bidding window has elapsed.
type AuctionComplete struct {
	tx.BaseTx
	Target
}

// NewAuctionComplete creates a new AuctionComplete transaction
func NewAuctionComplete(submitter types.AccountID, target Target) *AuctionComplete {
	return &AuctionComplete{
		BaseTx: *tx.NewBaseTx(tx.TypeAuctionComplete, submitter),
		Target: target,
	}
}

func (c *AuctionComplete) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	return c.Target.validate()
}

func (c *AuctionComplete) SubjectKey() keylet.Keylet {
	return c.RecordKey()
}

func (c *AuctionComplete) Apply(ctx *tx.ApplyContext) tx.Result {
	cfgKey, cfg, result := readConfig(ctx, c.ConfigSeed)
	if !result.IsSuccess() {
		return result
	}
	recordKey := c.RecordKey()
	rec, result := readRecord(ctx, recordKey)
	if !result.IsSuccess() {
		return result
	}

	if !rec.Started() {
		return tx.TecAUCTION_NOT_STARTED
	}
	if !rec.Ended(ctx.CloseTime()) {
		return tx.TecAUCTION_RUNNING
	}

	split, result := settle(ctx, cfgKey, cfg, recordKey, rec)
	if !result.IsSuccess() {
		return result
	}

	buyer := rec.HighBid.Buyer
	_, locks := lockManager(ctx)
	if err := locks.Release(lockFor(recordKey, rec), buyer); err != nil {
		ctx.Log().Error("asset release failed", "asset", rec.Asset, "record", keylet.AuctionAuthority(recordKey), "error", err)
		return resultFromLock(err)
	}

	if result := closeRecord(ctx, recordKey, rec, rec.Owner); !result.IsSuccess() {
		return result
	}

	ctx.Log().Debug("auction completed",
		"asset", rec.Asset, "buyer", buyer, "bid", rec.CurrentBid(),
		"treasury", split.Treasury, "owner", split.Owner, "residual", split.Residual)
	return tx.TesSUCCESS
}
