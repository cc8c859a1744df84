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
	tx.Register(tx.TypeAssetDelegate, func() tx.Transaction {
		return &AssetDelegate{BaseTx: *tx.NewBaseTx(tx.TypeAssetDelegate, types.AccountID{})}
	})
}

// Delegate actions
const (
	DelegateAdd     = "Add"
	DelegateApprove = "Approve"
	DelegateFreeze  = "Freeze"
	DelegateThaw    = "Thaw"
	DelegateRemove  = "Remove"
)

// Delegate kinds as named on the wire
const (
	KindFreeze   = "Freeze"
	KindTransfer = "Transfer"
)

// AssetDelegate manages one delegation slot of an asset with the signer's
// own authority. It is how owners grant delegations outside of an auction.
type AssetDelegate struct {
	tx.BaseTx

	Asset  types.AccountID `json:"Asset"`
	Kind   string          `json:"Kind"`
	Action string          `json:"Action"`

	// Authority is the new delegate for Add and Approve
	Authority types.AccountID `json:"Authority,omitempty"`

	// Frozen is the initial state of an added freeze delegate
	Frozen bool `json:"Frozen,omitempty"`
}

// NewAssetDelegate creates a new AssetDelegate transaction
func NewAssetDelegate(account, assetID types.AccountID, kind, action string) *AssetDelegate {
	return &AssetDelegate{
		BaseTx: *tx.NewBaseTx(tx.TypeAssetDelegate, account),
		Asset:  assetID,
		Kind:   kind,
		Action: action,
	}
}

func (d *AssetDelegate) delegateKind() (asset.DelegateKind, error) {
	switch d.Kind {
	case KindFreeze:
		return asset.FreezeDelegate, nil
	case KindTransfer:
		return asset.TransferDelegate, nil
	default:
		return 0, fmt.Errorf("temMALFORMED: unknown delegate kind %q", d.Kind)
	}
}

func (d *AssetDelegate) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.Asset.IsZero() {
		return fmt.Errorf("%w: Asset", tx.ErrMissingRequiredField)
	}
	kind, err := d.delegateKind()
	if err != nil {
		return err
	}
	switch d.Action {
	case DelegateAdd, DelegateApprove:
		if d.Authority.IsZero() {
			return fmt.Errorf("%w: Authority", tx.ErrMissingRequiredField)
		}
	case DelegateFreeze, DelegateThaw:
		if kind != asset.FreezeDelegate {
			return errors.New("temMALFORMED: only a freeze delegate can freeze")
		}
	case DelegateRemove:
	default:
		return fmt.Errorf("temMALFORMED: unknown delegate action %q", d.Action)
	}
	if d.Frozen && (d.Action != DelegateAdd || kind != asset.FreezeDelegate) {
		return errors.New("temMALFORMED: Frozen only applies when adding a freeze delegate")
	}
	return nil
}

func (d *AssetDelegate) SubjectKey() keylet.Keylet {
	return keylet.Asset(d.Asset)
}

func (d *AssetDelegate) Apply(ctx *tx.ApplyContext) tx.Result {
	kind, err := d.delegateKind()
	if err != nil {
		return tx.TemMALFORMED
	}
	reg := asset.NewLedgerRegistry(ctx.View)
	signer := ctx.AccountID

	switch d.Action {
	case DelegateAdd:
		err = reg.AddDelegate(d.Asset, signer, asset.Delegate{Kind: kind, Authority: d.Authority, Frozen: d.Frozen})
	case DelegateApprove:
		err = reg.ApproveDelegateAuthority(d.Asset, kind, signer, d.Authority)
	case DelegateFreeze:
		err = reg.UpdateFreeze(d.Asset, signer, true)
	case DelegateThaw:
		err = reg.UpdateFreeze(d.Asset, signer, false)
	case DelegateRemove:
		err = reg.RemoveDelegate(d.Asset, kind, signer)
	}
	return resultFromRegistry(err)
}
