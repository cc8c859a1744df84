// Package genesis writes the initial ledger state: the protocol config, its
// vault and treasury accounts, and the funded accounts.
package genesis

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// MasterPassphrase derives the well-known genesis account.
const MasterPassphrase = "masterpassphrase"

// InitialSupply is the balance of the genesis account when no accounts are
// configured: 100 billion units.
var InitialSupply = amount.Units(100_000_000_000)

var (
	ErrAlreadyInitialized = errors.New("genesis: protocol config already exists")
	ErrInvalidConfig      = errors.New("genesis: invalid config")
)

// Protocol holds the parameters of the config entry.
type Protocol struct {
	Seed        uint64
	Admin       types.AccountID
	FeeBps      uint16
	MinDuration uint32
	MaxDuration uint32
	RecordRent  uint64
}

// Account is a funded account created at genesis.
type Account struct {
	ID      types.AccountID
	Balance uint64
}

// Config describes the initial state.
type Config struct {
	Protocol Protocol
	Accounts []Account
}

// GenesisAccountID returns the account derived from MasterPassphrase.
func GenesisAccountID() (types.AccountID, string, error) {
	kp, err := secp256k1.KeyPairFromPassphrase(MasterPassphrase)
	if err != nil {
		return types.AccountID{}, "", err
	}
	id := types.AccountID(kp.AccountID())
	return id, id.String(), nil
}

// DefaultConfig funds the genesis account with the whole supply and makes it
// the admin of config seed 0 with a 5% fee and auctions of 1 minute to 7 days.
func DefaultConfig() Config {
	id, _, err := GenesisAccountID()
	if err != nil {
		panic(err)
	}
	return Config{
		Protocol: Protocol{
			Seed:        0,
			Admin:       id,
			FeeBps:      500,
			MinDuration: 1,
			MaxDuration: 7 * 24 * 60,
			RecordRent:  amount.Units(2),
		},
		Accounts: []Account{{ID: id, Balance: InitialSupply}},
	}
}

// Validate checks the protocol parameters.
func (c Config) Validate() error {
	p := c.Protocol
	if p.Admin.IsZero() {
		return fmt.Errorf("%w: admin is required", ErrInvalidConfig)
	}
	if p.FeeBps > amount.BasisPoints {
		return fmt.Errorf("%w: fee_bps %d above %d", ErrInvalidConfig, p.FeeBps, amount.BasisPoints)
	}
	if p.MinDuration == 0 {
		return fmt.Errorf("%w: min_duration must be positive", ErrInvalidConfig)
	}
	if p.MaxDuration <= p.MinDuration {
		return fmt.Errorf("%w: max_duration %d must exceed min_duration %d", ErrInvalidConfig, p.MaxDuration, p.MinDuration)
	}
	seen := make(map[types.AccountID]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.ID.IsZero() {
			return fmt.Errorf("%w: zero account", ErrInvalidConfig)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate account %s", ErrInvalidConfig, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// Result names the objects genesis created.
type Result struct {
	Config   keylet.Keylet
	Vault    types.AccountID
	Treasury types.AccountID
}

// Create writes the genesis entries to view in one change set.
func Create(view tx.LedgerView, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfgKey := keylet.ProtocolConfig(cfg.Protocol.Seed)
	exists, err := view.Exists(cfgKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInitialized
	}

	res := &Result{
		Config:   cfgKey,
		Vault:    keylet.VaultAccount(cfgKey),
		Treasury: keylet.TreasuryAccount(cfgKey),
	}

	table := tx.NewApplyStateTable(view)
	entry, err := sle.SerializeProtocolConfig(&sle.ProtocolConfig{
		Seed:        cfg.Protocol.Seed,
		Admin:       cfg.Protocol.Admin,
		FeeBps:      cfg.Protocol.FeeBps,
		MinDuration: cfg.Protocol.MinDuration,
		MaxDuration: cfg.Protocol.MaxDuration,
		Vault:       res.Vault,
		Treasury:    res.Treasury,
		RecordRent:  cfg.Protocol.RecordRent,
	})
	if err != nil {
		return nil, err
	}
	if err := table.Insert(cfgKey, entry); err != nil {
		return nil, err
	}

	roots := []*sle.AccountRoot{
		{Account: res.Vault, Sequence: 1, Flags: sle.LsfVault},
		{Account: res.Treasury, Sequence: 1, Flags: sle.LsfTreasury},
	}
	for _, a := range cfg.Accounts {
		roots = append(roots, &sle.AccountRoot{Account: a.ID, Balance: a.Balance, Sequence: 1})
	}
	for _, root := range roots {
		data, err := sle.SerializeAccountRoot(root)
		if err != nil {
			return nil, err
		}
		if err := table.Insert(keylet.Account(root.Account), data); err != nil {
			return nil, fmt.Errorf("genesis: account %s: %w", root.Account, err)
		}
	}

	if _, err := table.Apply(); err != nil {
		return nil, err
	}
	return res, nil
}
