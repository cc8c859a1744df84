package auction

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeAuctionCreate, func() tx.Transaction {
		return &AuctionCreate{BaseTx: *tx.NewBaseTx(tx.TypeAuctionCreate, types.AccountID{})}
	})
}

// AuctionCreate lists an asset for a fixed-length English auction. The
// signer must own the asset; the new record takes freeze and transfer
// control of it until the auction is cancelled or completed.
type AuctionCreate struct {
	tx.BaseTx
	Target

	// DurationMinutes is counted from the first accepted bid
	DurationMinutes uint32 `json:"DurationMinutes"`

	// MinBid is the smallest acceptable first bid in drops
	MinBid uint64 `json:"MinBid,omitempty"`
}

// NewAuctionCreate creates a new AuctionCreate transaction
func NewAuctionCreate(owner types.AccountID, target Target, durationMinutes uint32, minBid uint64) *AuctionCreate {
	return &AuctionCreate{
		BaseTx:          *tx.NewBaseTx(tx.TypeAuctionCreate, owner),
		Target:          target,
		DurationMinutes: durationMinutes,
		MinBid:          minBid,
	}
}

func (c *AuctionCreate) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if err := c.Target.validate(); err != nil {
		return err
	}
	if c.DurationMinutes == 0 {
		return errors.New("temBAD_DURATION: DurationMinutes must be positive")
	}
	return nil
}

func (c *AuctionCreate) SubjectKey() keylet.Keylet {
	return c.RecordKey()
}

func (c *AuctionCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	cfgKey, cfg, result := readConfig(ctx, c.ConfigSeed)
	if !result.IsSuccess() {
		return result
	}
	if c.DurationMinutes < cfg.MinDuration {
		return tx.TecDURATION_TOO_SHORT
	}
	if c.DurationMinutes > cfg.MaxDuration {
		return tx.TecDURATION_TOO_LONG
	}

	entryKey := keylet.Collection(cfgKey, c.Collection)
	whitelisted, err := ctx.View.Exists(entryKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if !whitelisted {
		return tx.TecNO_ENTRY
	}

	reg, locks := lockManager(ctx)
	info, err := reg.Asset(c.Asset)
	if err != nil {
		if errors.Is(err, asset.ErrAssetNotFound) {
			return tx.TecNO_ENTRY
		}
		return tx.TefINTERNAL
	}
	if info.Collection != c.Collection {
		return tx.TecWRONG_COLLECTION
	}
	if info.Owner != ctx.AccountID {
		return tx.TecNOT_OWNER
	}

	recordKey := keylet.Auction(entryKey, c.Asset)
	exists, err := ctx.View.Exists(recordKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		return tx.TecDUPLICATE
	}

	if result := ctx.Debit(ctx.AccountID, cfg.RecordRent, ctx.SignerAuthority()); !result.IsSuccess() {
		return result
	}

	rec := &sle.AuctionRecord{
		Config:          cfgKey.Key,
		CollectionEntry: entryKey.Key,
		Collection:      c.Collection,
		Asset:           c.Asset,
		Owner:           ctx.AccountID,
		DurationMinutes: c.DurationMinutes,
		MinBid:          c.MinBid,
		CreatedAt:       ctx.CloseTime(),
		RentPayer:       ctx.AccountID,
		Rent:            cfg.RecordRent,
	}
	if result := writeRecord(ctx, recordKey, rec, true); !result.IsSuccess() {
		return result
	}

	if err := locks.Acquire(lockFor(recordKey, rec)); err != nil {
		ctx.Log().Debug("asset lock refused", "asset", c.Asset, "error", err)
		return resultFromLock(err)
	}

	ctx.Log().Debug("auction created",
		"asset", c.Asset, "owner", ctx.AccountID, "duration", c.DurationMinutes, "min_bid", c.MinBid)
	return tx.TesSUCCESS
}
