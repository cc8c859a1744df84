package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	TypeAccountRoot     Type = 0x0061 // Native balance holders
	TypeProtocolConfig  Type = 0x0063 // Auction protocol parameters (one per seed)
	TypeCollectionEntry Type = 0x0065 // Whitelisted collection
	TypeAuctionRecord   Type = 0x0075 // Open auction for one asset
	TypeAsset           Type = 0x0041 // Registry asset
	TypeAssetCollection Type = 0x0043 // Registry collection
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeProtocolConfig:
		return "ProtocolConfig"
	case TypeCollectionEntry:
		return "CollectionEntry"
	case TypeAuctionRecord:
		return "AuctionRecord"
	case TypeAsset:
		return "Asset"
	case TypeAssetCollection:
		return "AssetCollection"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// Valid reports whether t is a known entry type.
func (t Type) Valid() bool {
	switch t {
	case TypeAccountRoot, TypeProtocolConfig, TypeCollectionEntry,
		TypeAuctionRecord, TypeAsset, TypeAssetCollection:
		return true
	}
	return false
}
