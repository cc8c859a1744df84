package assets

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeCollectionCreate, func() tx.Transaction {
		return &CollectionCreate{BaseTx: *tx.NewBaseTx(tx.TypeCollectionCreate, types.AccountID{})}
	})
}

// CollectionCreate creates a registry collection with the signer as update
// authority. The collection id is derived from the signer and sequence.
type CollectionCreate struct {
	tx.BaseTx

	Name string `json:"Name"`
	URI  string `json:"URI,omitempty"`
}

// NewCollectionCreate creates a new CollectionCreate transaction
func NewCollectionCreate(account types.AccountID, name, uri string) *CollectionCreate {
	return &CollectionCreate{
		BaseTx: *tx.NewBaseTx(tx.TypeCollectionCreate, account),
		Name:   name,
		URI:    uri,
	}
}

func (c *CollectionCreate) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("temMALFORMED: Name is required")
	}
	if len(c.Name) > 256 || len(c.URI) > 512 {
		return errors.New("temMALFORMED: Name or URI too long")
	}
	return nil
}

// CollectionID returns the id this transaction creates.
func (c *CollectionCreate) CollectionID() types.AccountID {
	return CollectionID(c.Account, c.GetSequence())
}

func (c *CollectionCreate) SubjectKey() keylet.Keylet {
	return keylet.AssetCollection(c.CollectionID())
}

func (c *CollectionCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	reg := asset.NewLedgerRegistry(ctx.View)
	err := reg.CreateCollection(&sle.AssetCollection{
		ID:              c.CollectionID(),
		UpdateAuthority: ctx.AccountID,
		Name:            c.Name,
		URI:             c.URI,
	})
	return resultFromRegistry(err)
}
