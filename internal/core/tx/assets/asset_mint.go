package assets

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
	tx.Register(tx.TypeAssetMint, func() tx.Transaction {
		return &AssetMint{BaseTx: *tx.NewBaseTx(tx.TypeAssetMint, types.AccountID{})}
	})
}

// AssetMint creates an asset in a collection. The signer must be the
// collection update authority.
type AssetMint struct {
	tx.BaseTx

	Collection types.AccountID `json:"Collection"`
	Name       string          `json:"Name"`
	URI        string          `json:"URI,omitempty"`

	// Owner defaults to the signer
	Owner *types.AccountID `json:"Owner,omitempty"`
}

// NewAssetMint creates a new AssetMint transaction
func NewAssetMint(account, collection types.AccountID, name string) *AssetMint {
	return &AssetMint{
		BaseTx:     *tx.NewBaseTx(tx.TypeAssetMint, account),
		Collection: collection,
		Name:       name,
	}
}

// SetOwner mints directly to another account.
func (m *AssetMint) SetOwner(owner types.AccountID) {
	m.Owner = &owner
}

func (m *AssetMint) Validate() error {
	if err := m.BaseTx.Validate(); err != nil {
		return err
	}
	if m.Collection.IsZero() {
		return fmt.Errorf("%w: Collection", tx.ErrMissingRequiredField)
	}
	if m.Name == "" {
		return errors.New("temMALFORMED: Name is required")
	}
	if m.Owner != nil && m.Owner.IsZero() {
		return errors.New("temINVALID_ACCOUNT: Owner is zero")
	}
	return nil
}

// AssetID returns the id this transaction creates.
func (m *AssetMint) AssetID() types.AccountID {
	return AssetID(m.Account, m.GetSequence())
}

func (m *AssetMint) SubjectKey() keylet.Keylet {
	return keylet.Asset(m.AssetID())
}

func (m *AssetMint) Apply(ctx *tx.ApplyContext) tx.Result {
	owner := ctx.AccountID
	if m.Owner != nil {
		owner = *m.Owner
	}
	reg := asset.NewLedgerRegistry(ctx.View)
	err := reg.Mint(&sle.Asset{
		ID:         m.AssetID(),
		Collection: m.Collection,
		Owner:      owner,
		Name:       m.Name,
		URI:        m.URI,
	}, ctx.AccountID)
	return resultFromRegistry(err)
}
