package sle

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// FreezeDelegate lets its authority freeze and thaw an asset.
type FreezeDelegate struct {
	Authority types.AccountID `codec:"authority" json:"Authority"`
	Frozen    bool            `codec:"frozen" json:"Frozen"`
}

// TransferDelegate lets its authority move an asset on the owner's behalf.
type TransferDelegate struct {
	Authority types.AccountID `codec:"authority" json:"Authority"`
}

// Asset is a unique item held in the registry.
type Asset struct {
	ID               types.AccountID   `codec:"id" json:"ID"`
	Collection       types.AccountID   `codec:"collection" json:"Collection"`
	Owner            types.AccountID   `codec:"owner" json:"Owner"`
	Name             string            `codec:"name" json:"Name"`
	URI              string            `codec:"uri" json:"URI,omitempty"`
	FreezeDelegate   *FreezeDelegate   `codec:"freeze,omitempty" json:"FreezeDelegate,omitempty"`
	TransferDelegate *TransferDelegate `codec:"transfer,omitempty" json:"TransferDelegate,omitempty"`
}

// Frozen reports whether an installed freeze delegate currently blocks
// the asset.
func (a *Asset) Frozen() bool {
	return a.FreezeDelegate != nil && a.FreezeDelegate.Frozen
}

// AssetCollection groups assets under one update authority.
type AssetCollection struct {
	ID              types.AccountID `codec:"id" json:"ID"`
	UpdateAuthority types.AccountID `codec:"update_authority" json:"UpdateAuthority"`
	Name            string          `codec:"name" json:"Name"`
	URI             string          `codec:"uri" json:"URI,omitempty"`
	Size            uint32          `codec:"size" json:"Size"`
}

func ParseAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := Decode(data, entry.TypeAsset, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func SerializeAsset(a *Asset) ([]byte, error) {
	return Encode(entry.TypeAsset, a)
}

func ParseAssetCollection(data []byte) (*AssetCollection, error) {
	var c AssetCollection
	if err := Decode(data, entry.TypeAssetCollection, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func SerializeAssetCollection(c *AssetCollection) ([]byte, error) {
	return Encode(entry.TypeAssetCollection, c)
}
