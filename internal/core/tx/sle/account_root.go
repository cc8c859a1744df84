package sle

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// AccountRoot holds the native balance of an account.
type AccountRoot struct {
	Account  types.AccountID `codec:"account" json:"Account"`
	Balance  uint64          `codec:"balance" json:"Balance"`
	Sequence uint32          `codec:"sequence" json:"Sequence"`
	// Flags marks protocol-derived accounts that no key can sign for.
	Flags uint32 `codec:"flags" json:"Flags"`
}

// Account flags
const (
	// LsfVault marks the escrow account of a config.
	LsfVault uint32 = 0x00000001
	// LsfTreasury marks the fee account of a config.
	LsfTreasury uint32 = 0x00000002
)

// IsVault reports whether the account holds escrowed bids.
func (a *AccountRoot) IsVault() bool {
	return a.Flags&LsfVault != 0
}

// IsProtocolOwned reports whether the account is derived from a config and
// has no key.
func (a *AccountRoot) IsProtocolOwned() bool {
	return a.Flags&(LsfVault|LsfTreasury) != 0
}

func ParseAccountRoot(data []byte) (*AccountRoot, error) {
	var a AccountRoot
	if err := Decode(data, entry.TypeAccountRoot, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func SerializeAccountRoot(a *AccountRoot) ([]byte, error) {
	return Encode(entry.TypeAccountRoot, a)
}
