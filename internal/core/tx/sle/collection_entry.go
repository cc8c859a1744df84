package sle

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// CollectionEntry whitelists a registry collection for auctions under one
// config. Its existence is the only listing authorization.
type CollectionEntry struct {
	Config      [32]byte        `codec:"config" json:"Config"`
	Collection  types.AccountID `codec:"collection" json:"Collection"`
	WhitelistAt int64           `codec:"whitelisted_at" json:"WhitelistedAt"`
}

func ParseCollectionEntry(data []byte) (*CollectionEntry, error) {
	var c CollectionEntry
	if err := Decode(data, entry.TypeCollectionEntry, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func SerializeCollectionEntry(c *CollectionEntry) ([]byte, error) {
	return Encode(entry.TypeCollectionEntry, c)
}
