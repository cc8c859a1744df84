package auction

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/assetlock"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// Target identifies one auction record: the protocol instance, the
// whitelisted collection and the listed asset.
type Target struct {
	ConfigSeed uint64          `json:"ConfigSeed"`
	Collection types.AccountID `json:"Collection"`
	Asset      types.AccountID `json:"Asset"`
}

func (t Target) validate() error {
	if t.Collection.IsZero() {
		return fmt.Errorf("%w: Collection", tx.ErrMissingRequiredField)
	}
	if t.Asset.IsZero() {
		return fmt.Errorf("%w: Asset", tx.ErrMissingRequiredField)
	}
	return nil
}

// ConfigKey returns the protocol config keylet.
func (t Target) ConfigKey() keylet.Keylet {
	return keylet.ProtocolConfig(t.ConfigSeed)
}

// CollectionKey returns the whitelist entry keylet.
func (t Target) CollectionKey() keylet.Keylet {
	return keylet.Collection(t.ConfigKey(), t.Collection)
}

// RecordKey returns the auction record keylet.
func (t Target) RecordKey() keylet.Keylet {
	return keylet.Auction(t.CollectionKey(), t.Asset)
}

func readConfig(ctx *tx.ApplyContext, seed uint64) (keylet.Keylet, *sle.ProtocolConfig, tx.Result) {
	k := keylet.ProtocolConfig(seed)
	data, err := ctx.View.Read(k)
	if err != nil {
		return k, nil, tx.TefINTERNAL
	}
	if data == nil {
		return k, nil, tx.TecNO_ENTRY
	}
	cfg, err := sle.ParseProtocolConfig(data)
	if err != nil {
		return k, nil, tx.TefINTERNAL
	}
	return k, cfg, tx.TesSUCCESS
}

func readRecord(ctx *tx.ApplyContext, k keylet.Keylet) (*sle.AuctionRecord, tx.Result) {
	data, err := ctx.View.Read(k)
	if err != nil {
		return nil, tx.TefINTERNAL
	}
	if data == nil {
		return nil, tx.TecNO_ENTRY
	}
	rec, err := sle.ParseAuctionRecord(data)
	if err != nil {
		return nil, tx.TefINTERNAL
	}
	return rec, tx.TesSUCCESS
}

func writeRecord(ctx *tx.ApplyContext, k keylet.Keylet, rec *sle.AuctionRecord, insert bool) tx.Result {
	data, err := sle.SerializeAuctionRecord(rec)
	if err != nil {
		return tx.TefINTERNAL
	}
	if insert {
		err = ctx.View.Insert(k, data)
	} else {
		err = ctx.View.Update(k, data)
	}
	if err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// closeRecord erases the record and pays its rent back.
func closeRecord(ctx *tx.ApplyContext, k keylet.Keylet, rec *sle.AuctionRecord, rentTo types.AccountID) tx.Result {
	if err := ctx.View.Erase(k); err != nil {
		return tx.TefINTERNAL
	}
	return ctx.Credit(rentTo, rec.Rent)
}

func lockFor(k keylet.Keylet, rec *sle.AuctionRecord) assetlock.Lock {
	return assetlock.Lock{
		Asset:     rec.Asset,
		Owner:     rec.Owner,
		Authority: keylet.AuctionAuthority(k),
	}
}

func lockManager(ctx *tx.ApplyContext) (*asset.LedgerRegistry, *assetlock.Manager) {
	reg := asset.NewLedgerRegistry(ctx.View)
	return reg, assetlock.New(reg, ctx.Log())
}

// resultFromLock maps saga and registry errors to result codes.
func resultFromLock(err error) tx.Result {
	switch {
	case err == nil:
		return tx.TesSUCCESS
	case errors.Is(err, assetlock.ErrNotOwner), errors.Is(err, asset.ErrNotOwner):
		return tx.TecNOT_OWNER
	case errors.Is(err, assetlock.ErrFrozenAsset), errors.Is(err, asset.ErrFrozen):
		return tx.TecFROZEN_ASSET
	case errors.Is(err, assetlock.ErrFreezeDelegateNotOwner):
		return tx.TecFREEZE_DELEGATE_NOT_OWNER
	case errors.Is(err, assetlock.ErrTransferDelegateNotOwner):
		return tx.TecTRANSFER_DELEGATE_NOT_OWNER
	case errors.Is(err, asset.ErrAssetNotFound), errors.Is(err, asset.ErrCollectionNotFound):
		return tx.TecNO_ENTRY
	case errors.Is(err, asset.ErrNotAuthority), errors.Is(err, asset.ErrDelegateNotFound):
		return tx.TecNO_PERMISSION
	default:
		return tx.TefINTERNAL
	}
}
