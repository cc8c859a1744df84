package auction

import (
	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
)

// settle pays the winning bid out of the vault: the fee to the treasury
// first, then the proceeds to the owner. Both transfers are made under the
// record authority. The residual left by rounding stays in the vault.
func settle(ctx *tx.ApplyContext, cfgKey keylet.Keylet, cfg *sle.ProtocolConfig, recordKey keylet.Keylet, rec *sle.AuctionRecord) (amount.Split, tx.Result) {
	split, err := amount.FeeSplit(rec.CurrentBid(), cfg.FeeBps)
	if err != nil {
		return amount.Split{}, tx.TefINTERNAL
	}

	auth, result := ctx.RecordAuthority(recordKey)
	if !result.IsSuccess() {
		return split, result
	}

	vault := keylet.VaultAccount(cfgKey)
	if result := ctx.Transfer(vault, keylet.TreasuryAccount(cfgKey), split.Treasury, auth); !result.IsSuccess() {
		return split, result
	}
	if result := ctx.Transfer(vault, rec.Owner, split.Owner, auth); !result.IsSuccess() {
		return split, result
	}
	ctx.RetainInVault(vault, split.Residual)
	return split, tx.TesSUCCESS
}
