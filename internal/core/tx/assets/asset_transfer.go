package assets

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeAssetTransfer, func() tx.Transaction {
		return &AssetTransfer{BaseTx: *tx.NewBaseTx(tx.TypeAssetTransfer, types.AccountID{})}
	})
}

// AssetTransfer moves an asset. The signer must be the owner or hold the
// transfer delegate, and the asset must not be frozen.
type AssetTransfer struct {
	tx.BaseTx

	Asset       types.AccountID `json:"Asset"`
	Destination types.AccountID `json:"Destination"`
}

// NewAssetTransfer creates a new AssetTransfer transaction
func NewAssetTransfer(account, assetID, destination types.AccountID) *AssetTransfer {
	return &AssetTransfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeAssetTransfer, account),
		Asset:       assetID,
		Destination: destination,
	}
}

func (t *AssetTransfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.Asset.IsZero() {
		return fmt.Errorf("%w: Asset", tx.ErrMissingRequiredField)
	}
	if t.Destination.IsZero() {
		return errors.New("temMALFORMED: Destination is required")
	}
	return nil
}

func (t *AssetTransfer) SubjectKey() keylet.Keylet {
	return keylet.Asset(t.Asset)
}

func (t *AssetTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	dst, err := ctx.ReadAccount(t.Destination)
	if err != nil {
		return tx.TefINTERNAL
	}
	if dst != nil && dst.IsProtocolOwned() {
		return tx.TecNO_PERMISSION
	}
	reg := asset.NewLedgerRegistry(ctx.View)
	return resultFromRegistry(reg.Transfer(t.Asset, ctx.AccountID, t.Destination))
}
