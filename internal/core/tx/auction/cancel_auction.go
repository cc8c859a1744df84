package auction

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeAuctionCancel, func() tx.Transaction {
		return &AuctionCancel{BaseTx: *tx.NewBaseTx(tx.TypeAuctionCancel, types.AccountID{})}
	})
}

// AuctionCancel withdraws a listing that has not received a bid. The asset
// lock is released and the record rent is returned to whoever paid it.
type AuctionCancel struct {
	tx.BaseTx
	Target
}

// NewAuctionCancel creates a new AuctionCancel transaction
func NewAuctionCancel(owner types.AccountID, target Target) *AuctionCancel {
	return &AuctionCancel{
		BaseTx: *tx.NewBaseTx(tx.TypeAuctionCancel, owner),
		Target: target,
	}
}

func (c *AuctionCancel) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	return c.Target.validate()
}

func (c *AuctionCancel) SubjectKey() keylet.Keylet {
	return c.RecordKey()
}

func (c *AuctionCancel) Apply(ctx *tx.ApplyContext) tx.Result {
	recordKey := c.RecordKey()
	rec, result := readRecord(ctx, recordKey)
	if !result.IsSuccess() {
		return result
	}
	if ctx.AccountID != rec.Owner {
		return tx.TecNO_PERMISSION
	}
	if rec.HighBid != nil {
		return tx.TecAUCTION_STARTED
	}

	_, locks := lockManager(ctx)
	if err := locks.Release(lockFor(recordKey, rec), types.ZeroAccount); err != nil {
		ctx.Log().Error("asset release failed", "asset", rec.Asset, "record", keylet.AuctionAuthority(recordKey), "error", err)
		return resultFromLock(err)
	}

	if result := closeRecord(ctx, recordKey, rec, rec.RentPayer); !result.IsSuccess() {
		return result
	}

	ctx.Log().Debug("auction cancelled", "asset", rec.Asset, "owner", rec.Owner)
	return tx.TesSUCCESS
}
