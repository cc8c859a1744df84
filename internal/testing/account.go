package testing

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// Account represents a test account with keypair and address information.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// KeyPair signs the account's transactions.
	KeyPair *secp256k1.KeyPair

	// ID is the 20-byte account ID derived from the public key.
	ID types.AccountID

	// Address is the base58 form of ID.
	Address string
}

// NewAccount creates a new test account with a deterministic keypair derived from the name.
// Using the same name will always produce the same account, making tests reproducible.
func NewAccount(name string) *Account {
	return newAccount(name, name)
}

// MasterAccount returns the genesis account that holds the initial supply
// and administers config seed 0.
func MasterAccount() *Account {
	return newAccount("master", genesis.MasterPassphrase)
}

func newAccount(name, passphrase string) *Account {
	kp, err := secp256k1.KeyPairFromPassphrase(passphrase)
	if err != nil {
		panic("failed to derive keypair for account " + name + ": " + err.Error())
	}
	id := types.AccountID(kp.AccountID())
	return &Account{
		Name:    name,
		KeyPair: kp,
		ID:      id,
		Address: id.String(),
	}
}

// String returns the account name.
func (a *Account) String() string {
	return a.Name
}
