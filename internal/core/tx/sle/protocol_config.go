package sle

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// ProtocolConfig is the singleton parameter set of one auction protocol
// instance. It is written once at genesis.
type ProtocolConfig struct {
	Seed  uint64          `codec:"seed" json:"Seed"`
	Admin types.AccountID `codec:"admin" json:"Admin"`
	// FeeBps is the treasury cut in basis points, 0..10000.
	FeeBps uint16 `codec:"fee_bps" json:"FeeBps"`
	// MinDuration and MaxDuration bound auction length in minutes.
	MinDuration uint32          `codec:"min_duration" json:"MinDuration"`
	MaxDuration uint32          `codec:"max_duration" json:"MaxDuration"`
	Vault       types.AccountID `codec:"vault" json:"Vault"`
	Treasury    types.AccountID `codec:"treasury" json:"Treasury"`
	// RecordRent is charged to the lister and refunded when the record closes.
	RecordRent uint64 `codec:"record_rent" json:"RecordRent"`
}

func ParseProtocolConfig(data []byte) (*ProtocolConfig, error) {
	var c ProtocolConfig
	if err := Decode(data, entry.TypeProtocolConfig, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func SerializeProtocolConfig(c *ProtocolConfig) ([]byte, error) {
	return Encode(entry.TypeProtocolConfig, c)
}
