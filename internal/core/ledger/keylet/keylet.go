package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/crypto"
	common "github.com/LeJamon/goAuctiond/internal/crypto/common"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// Space identifiers for keylet generation
const (
	spaceAccount         uint16 = 'a' // Account root
	spaceConfig          uint16 = 'c' // Protocol config
	spaceCollection      uint16 = 'e' // Whitelisted collection
	spaceAuction         uint16 = 'u' // Auction record
	spaceAsset           uint16 = 'A' // Registry asset
	spaceAssetCollection uint16 = 'C' // Registry collection
)

// Labels for protocol-controlled accounts derived from a keylet.
const (
	labelVault     = "vault"
	labelTreasury  = "treasury"
	labelAuthority = "auction"
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return common.Sha512Half(inputs...)
}

// Account returns the keylet for an account root entry.
func Account(accountID types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAccountRoot,
		Key:  indexHash(spaceAccount, accountID[:]),
	}
}

// ProtocolConfig returns the keylet of the protocol instance created with seed.
func ProtocolConfig(seed uint64) Keylet {
	seedBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seedBytes, seed)
	return Keylet{
		Type: entry.TypeProtocolConfig,
		Key:  indexHash(spaceConfig, seedBytes),
	}
}

// Collection returns the whitelist entry keylet of a collection under a config.
func Collection(config Keylet, collection types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeCollectionEntry,
		Key:  indexHash(spaceCollection, config.Key[:], collection[:]),
	}
}

// Auction returns the auction record keylet for an asset listed under a
// whitelisted collection entry. At most one record can exist per pair.
func Auction(collectionEntry Keylet, asset types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAuctionRecord,
		Key:  indexHash(spaceAuction, collectionEntry.Key[:], asset[:]),
	}
}

// Asset returns the keylet of a registry asset.
func Asset(asset types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAsset,
		Key:  indexHash(spaceAsset, asset[:]),
	}
}

// AssetCollection returns the keylet of a registry collection.
func AssetCollection(collection types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAssetCollection,
		Key:  indexHash(spaceAssetCollection, collection[:]),
	}
}

// VaultAccount returns the escrow account shared by every auction of a config.
func VaultAccount(config Keylet) types.AccountID {
	return crypto.DerivedAccountID(labelVault, config.Key[:])
}

// TreasuryAccount returns the fee recipient of a config.
func TreasuryAccount(config Keylet) types.AccountID {
	return crypto.DerivedAccountID(labelTreasury, config.Key[:])
}

// AuctionAuthority returns the signing authority derived from an auction
// record. No key pair exists for it; only code acting for the record can
// use it.
func AuctionAuthority(record Keylet) types.AccountID {
	return crypto.DerivedAccountID(labelAuthority, record.Key[:])
}
