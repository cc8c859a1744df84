// Package assets holds the transactions that create and move registry
// assets outside of an auction.
package assets

import (
	"encoding/binary"
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/asset"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/crypto"
	"github.com/LeJamon/goAuctiond/internal/types"
)

const (
	labelCollection = "collection"
	labelAsset      = "asset"
)

// deriveID returns the id of an object created by account at seq.
func deriveID(label string, account types.AccountID, seq uint32) types.AccountID {
	seed := make([]byte, 0, types.AccountIDSize+4)
	seed = append(seed, account[:]...)
	seed = binary.BigEndian.AppendUint32(seed, seq)
	return crypto.DerivedAccountID(label, seed)
}

// CollectionID returns the id a CollectionCreate by account at seq creates.
func CollectionID(account types.AccountID, seq uint32) types.AccountID {
	return deriveID(labelCollection, account, seq)
}

// AssetID returns the id an AssetMint by account at seq creates.
func AssetID(account types.AccountID, seq uint32) types.AccountID {
	return deriveID(labelAsset, account, seq)
}

func resultFromRegistry(err error) tx.Result {
	switch {
	case err == nil:
		return tx.TesSUCCESS
	case errors.Is(err, asset.ErrAssetNotFound), errors.Is(err, asset.ErrCollectionNotFound),
		errors.Is(err, asset.ErrDelegateNotFound):
		return tx.TecNO_ENTRY
	case errors.Is(err, asset.ErrAssetExists), errors.Is(err, asset.ErrCollectionExists),
		errors.Is(err, asset.ErrDelegateExists):
		return tx.TecDUPLICATE
	case errors.Is(err, asset.ErrNotOwner):
		return tx.TecNOT_OWNER
	case errors.Is(err, asset.ErrNotAuthority), errors.Is(err, asset.ErrNotUpdateAuthority):
		return tx.TecNO_PERMISSION
	case errors.Is(err, asset.ErrFrozen):
		return tx.TecFROZEN_ASSET
	case errors.Is(err, asset.ErrUnsupported):
		return tx.TemMALFORMED
	default:
		return tx.TefINTERNAL
	}
}
