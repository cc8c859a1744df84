// Package asset is the registry of unique assets and their collections. It
// owns asset ownership and the two delegations an owner can hand out: a
// freeze delegate, which can block every transfer, and a transfer delegate,
// which can move the asset on the owner's behalf.
package asset

//go:generate mockgen -destination=mock/registry.go -package=mock github.com/LeJamon/goAuctiond/internal/core/asset Registry

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/types"
)

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAssetExists        = errors.New("asset already exists")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrDelegateExists     = errors.New("delegate already exists")
	ErrDelegateNotFound   = errors.New("delegate not found")
	ErrNotAuthority       = errors.New("signer is not the delegate authority")
	ErrNotOwner           = errors.New("signer is not the asset owner")
	ErrNotUpdateAuthority = errors.New("signer is not the collection update authority")
	ErrFrozen             = errors.New("asset is frozen")
	ErrUnsupported        = errors.New("operation not supported by delegate kind")
)

// DelegateKind names a delegation slot on an asset.
type DelegateKind int

const (
	FreezeDelegate DelegateKind = iota + 1
	TransferDelegate
)

func (k DelegateKind) String() string {
	switch k {
	case FreezeDelegate:
		return "FreezeDelegate"
	case TransferDelegate:
		return "TransferDelegate"
	default:
		return fmt.Sprintf("DelegateKind(%d)", int(k))
	}
}

// Delegate is the state of one delegation slot. Frozen only applies to a
// freeze delegate.
type Delegate struct {
	Kind      DelegateKind
	Authority types.AccountID
	Frozen    bool
}

// Info is the registry view of an asset.
type Info struct {
	ID              types.AccountID
	Collection      types.AccountID
	Owner           types.AccountID
	UpdateAuthority types.AccountID
	Frozen          bool
}

// Registry is what the auction core needs from the asset registry. Signer
// arguments name the identity authorizing the call; registry rules decide
// whether it may.
type Registry interface {
	// Asset returns ownership data, ErrAssetNotFound if missing.
	Asset(id types.AccountID) (*Info, error)

	// Delegate returns the delegation of kind, or nil when none is installed.
	Delegate(id types.AccountID, kind DelegateKind) (*Delegate, error)

	// AddDelegate installs a delegation. Only the owner may add one.
	AddDelegate(id types.AccountID, signer types.AccountID, d Delegate) error

	// ApproveDelegateAuthority hands a delegation to a new authority. Only
	// the current authority may do so.
	ApproveDelegateAuthority(id types.AccountID, kind DelegateKind, signer, authority types.AccountID) error

	// UpdateFreeze sets the frozen flag of the freeze delegate. Only its
	// authority may do so.
	UpdateFreeze(id types.AccountID, signer types.AccountID, frozen bool) error

	// RemoveDelegate uninstalls a delegation. Only its authority may do so,
	// and a frozen freeze delegate cannot be removed.
	RemoveDelegate(id types.AccountID, kind DelegateKind, signer types.AccountID) error

	// Transfer changes the owner. The signer must be the owner or the
	// transfer delegate authority, and the asset must not be frozen.
	Transfer(id types.AccountID, signer, newOwner types.AccountID) error
}
