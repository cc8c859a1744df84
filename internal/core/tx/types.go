package tx

import "fmt"

// Type represents a transaction type code
type Type uint16

// All transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	// Native currency and asset registry setup
	TypePayment          Type = 0
	TypeCollectionCreate Type = 1
	TypeAssetMint        Type = 2
	TypeAssetTransfer    Type = 3
	TypeAssetDelegate    Type = 4

	// Auction protocol
	TypeWhitelistCollection Type = 10
	TypeAuctionCreate       Type = 11
	TypeAuctionBid          Type = 12
	TypeAuctionCancel       Type = 13
	TypeAuctionComplete     Type = 14
)

var typeNames = map[Type]string{
	TypePayment:             "Payment",
	TypeCollectionCreate:    "CollectionCreate",
	TypeAssetMint:           "AssetMint",
	TypeAssetTransfer:       "AssetTransfer",
	TypeAssetDelegate:       "AssetDelegate",
	TypeWhitelistCollection: "WhitelistCollection",
	TypeAuctionCreate:       "AuctionCreate",
	TypeAuctionBid:          "AuctionBid",
	TypeAuctionCancel:       "AuctionCancel",
	TypeAuctionComplete:     "AuctionComplete",
}

var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// String returns the string representation of the transaction type
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// IsAuction reports whether the type belongs to the auction protocol.
func (t Type) IsAuction() bool {
	return t >= TypeWhitelistCollection && t <= TypeAuctionComplete
}

// TypeFromName returns the transaction type for a given name
func TypeFromName(name string) (Type, bool) {
	t, ok := typeByName[name]
	return t, ok
}
