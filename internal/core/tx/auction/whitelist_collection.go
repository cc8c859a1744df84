package auction

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeWhitelistCollection, func() tx.Transaction {
		return &WhitelistCollection{BaseTx: *tx.NewBaseTx(tx.TypeWhitelistCollection, types.AccountID{})}
	})
}

// WhitelistCollection allows assets of a collection to be auctioned under
// a protocol config. Only the config admin may submit it.
type WhitelistCollection struct {
	tx.BaseTx

	ConfigSeed uint64          `json:"ConfigSeed"`
	Collection types.AccountID `json:"Collection"`
}

// NewWhitelistCollection creates a new WhitelistCollection transaction
func NewWhitelistCollection(admin types.AccountID, seed uint64, collection types.AccountID) *WhitelistCollection {
	return &WhitelistCollection{
		BaseTx:     *tx.NewBaseTx(tx.TypeWhitelistCollection, admin),
		ConfigSeed: seed,
		Collection: collection,
	}
}

func (w *WhitelistCollection) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.Collection.IsZero() {
		return fmt.Errorf("%w: Collection", tx.ErrMissingRequiredField)
	}
	return nil
}

func (w *WhitelistCollection) SubjectKey() keylet.Keylet {
	return keylet.Collection(keylet.ProtocolConfig(w.ConfigSeed), w.Collection)
}

func (w *WhitelistCollection) Apply(ctx *tx.ApplyContext) tx.Result {
	cfgKey, cfg, result := readConfig(ctx, w.ConfigSeed)
	if !result.IsSuccess() {
		return result
	}
	if ctx.AccountID != cfg.Admin {
		return tx.TecNO_PERMISSION
	}

	if _, err := asset.NewLedgerRegistry(ctx.View).Collection(w.Collection); err != nil {
		if errors.Is(err, asset.ErrCollectionNotFound) {
			return tx.TecNO_ENTRY
		}
		return tx.TefINTERNAL
	}

	entryKey := keylet.Collection(cfgKey, w.Collection)
	exists, err := ctx.View.Exists(entryKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		return tx.TecDUPLICATE
	}

	data, err := sle.SerializeCollectionEntry(&sle.CollectionEntry{
		Config:      cfgKey.Key,
		Collection:  w.Collection,
		WhitelistAt: ctx.CloseTime(),
	})
	if err != nil {
		return tx.TefINTERNAL
	}
	if err := ctx.View.Insert(entryKey, data); err != nil {
		return tx.TefINTERNAL
	}

	ctx.Log().Debug("collection whitelisted", "config", w.ConfigSeed, "collection", w.Collection)
	return tx.TesSUCCESS
}
