package tx

import (
	"errors"
	"io"
	"log/slog"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// View provides read/write access to ledger state (the ApplyStateTable)
	View LedgerView

	// AccountID is the signer of the transaction
	AccountID types.AccountID

	// Config holds engine configuration (close time, signature policy)
	Config EngineConfig

	// TxHash is the hash of the current transaction
	TxHash [32]byte

	// Engine provides access to shared helper methods
	Engine *Engine

	// retained tracks rounding residue left in each vault by this transaction
	retained map[types.AccountID]uint64
}

// Authority is an identity that can authorize debits and registry calls.
// A signer authority is the transaction signer. A record authority is
// derived from an auction record and may only draw from that record's vault.
type Authority struct {
	ID      types.AccountID
	vault   types.AccountID
	derived bool
}

// IsDerived reports whether the authority belongs to an auction record.
func (a Authority) IsDerived() bool {
	return a.derived
}

// CanDebit reports whether the authority may move funds out of from.
func (a Authority) CanDebit(from types.AccountID) bool {
	if a.derived {
		return from == a.vault
	}
	return from == a.ID
}

// CloseTime returns the ledger close time in unix seconds.
func (ctx *ApplyContext) CloseTime() int64 {
	return ctx.Config.CloseTime
}

// Log returns the engine logger.
func (ctx *ApplyContext) Log() *slog.Logger {
	if ctx.Config.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ctx.Config.Logger
}

// Credit adds drops to an account, creating it when missing. It is only
// for value released from a ledger object, such as record rent.
func (ctx *ApplyContext) Credit(to types.AccountID, drops uint64) Result {
	if drops == 0 {
		return TesSUCCESS
	}
	dst, err := ctx.ReadAccount(to)
	if err != nil {
		return TefINTERNAL
	}
	if dst == nil {
		dst = &sle.AccountRoot{Account: to, Sequence: 1}
	}
	credited, err := amount.Add(dst.Balance, drops)
	if err != nil {
		return TecINVARIANT_FAILED
	}
	dst.Balance = credited
	if err := ctx.WriteAccount(dst); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// Debit removes drops from the signer's account, for value moved into a
// ledger object such as record rent.
func (ctx *ApplyContext) Debit(from types.AccountID, drops uint64, auth Authority) Result {
	if !auth.CanDebit(from) {
		return TecNO_PERMISSION
	}
	if drops == 0 {
		return TesSUCCESS
	}
	src, err := ctx.ReadAccount(from)
	if err != nil {
		return TefINTERNAL
	}
	if src == nil || src.Balance < drops {
		return TecUNFUNDED
	}
	src.Balance -= drops
	if err := ctx.WriteAccount(src); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// SignerAuthority returns the authority of the transaction signer.
func (ctx *ApplyContext) SignerAuthority() Authority {
	return Authority{ID: ctx.AccountID}
}

// RecordAuthority returns the authority derived from an auction record. The
// record must exist in the current view.
func (ctx *ApplyContext) RecordAuthority(record keylet.Keylet) (Authority, Result) {
	data, err := ctx.View.Read(record)
	if err != nil {
		return Authority{}, TefINTERNAL
	}
	if data == nil {
		return Authority{}, TecNO_ENTRY
	}
	rec, err := sle.ParseAuctionRecord(data)
	if err != nil {
		return Authority{}, TefINTERNAL
	}
	cfg := keylet.Keylet{Type: entry.TypeProtocolConfig, Key: rec.Config}
	return Authority{
		ID:      keylet.AuctionAuthority(record),
		vault:   keylet.VaultAccount(cfg),
		derived: true,
	}, TesSUCCESS
}

// ReadAccount returns the account root of id, or nil if it does not exist.
func (ctx *ApplyContext) ReadAccount(id types.AccountID) (*sle.AccountRoot, error) {
	data, err := ctx.View.Read(keylet.Account(id))
	if err != nil || data == nil {
		return nil, err
	}
	return sle.ParseAccountRoot(data)
}

// WriteAccount inserts or updates an account root.
func (ctx *ApplyContext) WriteAccount(a *sle.AccountRoot) error {
	data, err := sle.SerializeAccountRoot(a)
	if err != nil {
		return err
	}
	k := keylet.Account(a.Account)
	err = ctx.View.Update(k, data)
	if errors.Is(err, ErrEntryNotFound) {
		return ctx.View.Insert(k, data)
	}
	return err
}

// Transfer moves native currency between accounts. The destination is
// created when it does not exist. Debits require an authority for from.
func (ctx *ApplyContext) Transfer(from, to types.AccountID, drops uint64, auth Authority) Result {
	if !auth.CanDebit(from) {
		return TecNO_PERMISSION
	}
	if drops == 0 || from == to {
		return TesSUCCESS
	}

	src, err := ctx.ReadAccount(from)
	if err != nil {
		return TefINTERNAL
	}
	if src == nil {
		return TecUNFUNDED
	}
	if src.Balance < drops {
		return TecUNFUNDED
	}

	dst, err := ctx.ReadAccount(to)
	if err != nil {
		return TefINTERNAL
	}
	if dst == nil {
		dst = &sle.AccountRoot{Account: to, Sequence: 1}
	}
	credited, err := amount.Add(dst.Balance, drops)
	if err != nil {
		return TecINVARIANT_FAILED
	}

	src.Balance -= drops
	dst.Balance = credited
	if err := ctx.WriteAccount(src); err != nil {
		return TefINTERNAL
	}
	if err := ctx.WriteAccount(dst); err != nil {
		return TefINTERNAL
	}
	return TesSUCCESS
}

// RetainInVault records rounding residue that stays in a vault. The vault
// accounting invariant allows exactly this much extra.
func (ctx *ApplyContext) RetainInVault(vault types.AccountID, drops uint64) {
	if drops == 0 {
		return
	}
	if ctx.retained == nil {
		ctx.retained = make(map[types.AccountID]uint64)
	}
	ctx.retained[vault] += drops
}
