package asset

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// View is the slice of ledger state the registry reads and writes.
type View interface {
	Read(k keylet.Keylet) ([]byte, error)
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
}

// LedgerRegistry stores assets and collections as ledger entries. Writes go
// to the view it wraps, so inside a transaction they are staged with the
// rest of the transaction.
type LedgerRegistry struct {
	view View
}

var _ Registry = (*LedgerRegistry)(nil)

func NewLedgerRegistry(view View) *LedgerRegistry {
	return &LedgerRegistry{view: view}
}

// Collection returns a registry collection.
func (r *LedgerRegistry) Collection(id types.AccountID) (*sle.AssetCollection, error) {
	data, err := r.view.Read(keylet.AssetCollection(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrCollectionNotFound
	}
	return sle.ParseAssetCollection(data)
}

// CreateCollection inserts a new collection.
func (r *LedgerRegistry) CreateCollection(c *sle.AssetCollection) error {
	k := keylet.AssetCollection(c.ID)
	existing, err := r.view.Read(k)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrCollectionExists
	}
	data, err := sle.SerializeAssetCollection(c)
	if err != nil {
		return err
	}
	return r.view.Insert(k, data)
}

// Mint creates an asset in a collection. Only the collection update
// authority may mint.
func (r *LedgerRegistry) Mint(a *sle.Asset, signer types.AccountID) error {
	coll, err := r.Collection(a.Collection)
	if err != nil {
		return err
	}
	if coll.UpdateAuthority != signer {
		return ErrNotUpdateAuthority
	}
	k := keylet.Asset(a.ID)
	existing, err := r.view.Read(k)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAssetExists
	}
	if err := r.write(a, true); err != nil {
		return err
	}
	coll.Size++
	data, err := sle.SerializeAssetCollection(coll)
	if err != nil {
		return err
	}
	return r.view.Update(keylet.AssetCollection(coll.ID), data)
}

// Entry returns the stored asset.
func (r *LedgerRegistry) Entry(id types.AccountID) (*sle.Asset, error) {
	data, err := r.view.Read(keylet.Asset(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrAssetNotFound
	}
	return sle.ParseAsset(data)
}

func (r *LedgerRegistry) Asset(id types.AccountID) (*Info, error) {
	a, err := r.Entry(id)
	if err != nil {
		return nil, err
	}
	info := &Info{
		ID:         a.ID,
		Collection: a.Collection,
		Owner:      a.Owner,
		Frozen:     a.Frozen(),
	}
	if coll, err := r.Collection(a.Collection); err == nil {
		info.UpdateAuthority = coll.UpdateAuthority
	} else if !errors.Is(err, ErrCollectionNotFound) {
		return nil, err
	}
	return info, nil
}

func (r *LedgerRegistry) Delegate(id types.AccountID, kind DelegateKind) (*Delegate, error) {
	a, err := r.Entry(id)
	if err != nil {
		return nil, err
	}
	switch kind {
	case FreezeDelegate:
		if a.FreezeDelegate == nil {
			return nil, nil
		}
		return &Delegate{Kind: kind, Authority: a.FreezeDelegate.Authority, Frozen: a.FreezeDelegate.Frozen}, nil
	case TransferDelegate:
		if a.TransferDelegate == nil {
			return nil, nil
		}
		return &Delegate{Kind: kind, Authority: a.TransferDelegate.Authority}, nil
	default:
		return nil, ErrUnsupported
	}
}

func (r *LedgerRegistry) AddDelegate(id types.AccountID, signer types.AccountID, d Delegate) error {
	a, err := r.Entry(id)
	if err != nil {
		return err
	}
	if a.Owner != signer {
		return ErrNotOwner
	}
	switch d.Kind {
	case FreezeDelegate:
		if a.FreezeDelegate != nil {
			return ErrDelegateExists
		}
		a.FreezeDelegate = &sle.FreezeDelegate{Authority: d.Authority, Frozen: d.Frozen}
	case TransferDelegate:
		if a.TransferDelegate != nil {
			return ErrDelegateExists
		}
		if d.Frozen {
			return ErrUnsupported
		}
		a.TransferDelegate = &sle.TransferDelegate{Authority: d.Authority}
	default:
		return ErrUnsupported
	}
	return r.write(a, false)
}

func (r *LedgerRegistry) ApproveDelegateAuthority(id types.AccountID, kind DelegateKind, signer, authority types.AccountID) error {
	a, err := r.Entry(id)
	if err != nil {
		return err
	}
	current, err := currentAuthority(a, kind)
	if err != nil {
		return err
	}
	if current != signer {
		return ErrNotAuthority
	}
	switch kind {
	case FreezeDelegate:
		a.FreezeDelegate.Authority = authority
	case TransferDelegate:
		a.TransferDelegate.Authority = authority
	}
	return r.write(a, false)
}

func (r *LedgerRegistry) UpdateFreeze(id types.AccountID, signer types.AccountID, frozen bool) error {
	a, err := r.Entry(id)
	if err != nil {
		return err
	}
	if a.FreezeDelegate == nil {
		return ErrDelegateNotFound
	}
	if a.FreezeDelegate.Authority != signer {
		return ErrNotAuthority
	}
	a.FreezeDelegate.Frozen = frozen
	return r.write(a, false)
}

func (r *LedgerRegistry) RemoveDelegate(id types.AccountID, kind DelegateKind, signer types.AccountID) error {
	a, err := r.Entry(id)
	if err != nil {
		return err
	}
	current, err := currentAuthority(a, kind)
	if err != nil {
		return err
	}
	if current != signer {
		return ErrNotAuthority
	}
	switch kind {
	case FreezeDelegate:
		if a.FreezeDelegate.Frozen {
			return ErrFrozen
		}
		a.FreezeDelegate = nil
	case TransferDelegate:
		a.TransferDelegate = nil
	}
	return r.write(a, false)
}

func (r *LedgerRegistry) Transfer(id types.AccountID, signer, newOwner types.AccountID) error {
	a, err := r.Entry(id)
	if err != nil {
		return err
	}
	if a.Frozen() {
		return ErrFrozen
	}
	delegated := a.TransferDelegate != nil && a.TransferDelegate.Authority == signer
	if a.Owner != signer && !delegated {
		return ErrNotOwner
	}
	a.Owner = newOwner
	return r.write(a, false)
}

func currentAuthority(a *sle.Asset, kind DelegateKind) (types.AccountID, error) {
	switch kind {
	case FreezeDelegate:
		if a.FreezeDelegate == nil {
			return types.AccountID{}, ErrDelegateNotFound
		}
		return a.FreezeDelegate.Authority, nil
	case TransferDelegate:
		if a.TransferDelegate == nil {
			return types.AccountID{}, ErrDelegateNotFound
		}
		return a.TransferDelegate.Authority, nil
	default:
		return types.AccountID{}, ErrUnsupported
	}
}

func (r *LedgerRegistry) write(a *sle.Asset, insert bool) error {
	data, err := sle.SerializeAsset(a)
	if err != nil {
		return err
	}
	if insert {
		return r.view.Insert(keylet.Asset(a.ID), data)
	}
	return r.view.Update(keylet.Asset(a.ID), data)
}
