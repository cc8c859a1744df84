package keylet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func id(b byte) types.AccountID {
	var out types.AccountID
	for i := range out {
		out[i] = b
	}
	return out
}

func TestKeyletTypes(t *testing.T) {
	cfg := ProtocolConfig(7)
	coll := Collection(cfg, id(1))

	assert.Equal(t, entry.TypeAccountRoot, Account(id(1)).Type)
	assert.Equal(t, entry.TypeProtocolConfig, cfg.Type)
	assert.Equal(t, entry.TypeCollectionEntry, coll.Type)
	assert.Equal(t, entry.TypeAuctionRecord, Auction(coll, id(2)).Type)
	assert.Equal(t, entry.TypeAsset, Asset(id(2)).Type)
	assert.Equal(t, entry.TypeAssetCollection, AssetCollection(id(1)).Type)
}

func TestKeylet_Deterministic(t *testing.T) {
	cfg := ProtocolConfig(7)
	assert.Equal(t, cfg, ProtocolConfig(7))
	assert.Equal(t, Auction(Collection(cfg, id(1)), id(2)), Auction(Collection(cfg, id(1)), id(2)))
}

func TestKeylet_Distinct(t *testing.T) {
	cfgA := ProtocolConfig(1)
	cfgB := ProtocolConfig(2)
	assert.NotEqual(t, cfgA.Key, cfgB.Key)

	collA := Collection(cfgA, id(1))
	collB := Collection(cfgB, id(1))
	assert.NotEqual(t, collA.Key, collB.Key, "same collection under two configs")

	assert.NotEqual(t, Auction(collA, id(2)).Key, Auction(collA, id(3)).Key)
	assert.NotEqual(t, Auction(collA, id(2)).Key, Auction(collB, id(2)).Key)

	// Same raw bytes in different spaces must not collide.
	assert.NotEqual(t, Account(id(9)).Key, Asset(id(9)).Key)
	assert.NotEqual(t, Asset(id(9)).Key, AssetCollection(id(9)).Key)
}

func TestDerivedAccounts(t *testing.T) {
	cfg := ProtocolConfig(1)
	record := Auction(Collection(cfg, id(1)), id(2))

	vault := VaultAccount(cfg)
	treasury := TreasuryAccount(cfg)
	authority := AuctionAuthority(record)

	assert.NotEqual(t, vault, treasury)
	assert.NotEqual(t, vault, authority)
	assert.Equal(t, vault, VaultAccount(ProtocolConfig(1)))
	assert.NotEqual(t, vault, VaultAccount(ProtocolConfig(2)))
	assert.False(t, authority.IsZero())
}
