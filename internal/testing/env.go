package testing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/state"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	"github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	"github.com/LeJamon/goAuctiond/internal/core/tx/payment"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// TestEnv manages a test ledger environment for transaction testing.
// It provides a simplified interface for creating accounts, funding them,
// submitting transactions, and verifying results.
type TestEnv struct {
	t        *testing.T
	ledger   *service.Ledger
	clock    *clockwork.FakeClock
	master   *Account
	accounts map[types.AccountID]*Account
	seed     uint64
}

// Option adjusts the environment before the ledger starts.
type Option func(*envConfig)

type envConfig struct {
	genesis genesis.Config
	history relationaldb.HistoryStore
	skipSig bool
}

// WithProtocol edits the protocol parameters written at genesis.
func WithProtocol(fn func(p *genesis.Protocol)) Option {
	return func(c *envConfig) { fn(&c.genesis.Protocol) }
}

// WithFeeBps sets the treasury fee.
func WithFeeBps(bps uint16) Option {
	return WithProtocol(func(p *genesis.Protocol) { p.FeeBps = bps })
}

// WithDurations sets the allowed auction lengths in minutes.
func WithDurations(min, max uint32) Option {
	return WithProtocol(func(p *genesis.Protocol) {
		p.MinDuration = min
		p.MaxDuration = max
	})
}

// WithHistory records every submission in store.
func WithHistory(store relationaldb.HistoryStore) Option {
	return func(c *envConfig) { c.history = store }
}

// WithoutSignatures accepts unsigned transactions.
func WithoutSignatures() Option {
	return func(c *envConfig) { c.skipSig = true }
}

// NewTestEnv creates a new test environment with a genesis ledger.
func NewTestEnv(t *testing.T, opts ...Option) *TestEnv {
	t.Helper()

	cfg := envConfig{genesis: genesis.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	clock := NewClock()
	l := service.New(state.NewMemory(), service.Config{
		SkipSignatureVerification: cfg.skipSig,
		Standalone:                true,
		Genesis:                   cfg.genesis,
		Clock:                     clock,
		History:                   cfg.history,
	})
	if _, err := l.Start(); err != nil {
		t.Fatalf("Failed to start ledger: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	env := &TestEnv{
		t:        t,
		ledger:   l,
		clock:    clock,
		master:   MasterAccount(),
		accounts: make(map[types.AccountID]*Account),
		seed:     cfg.genesis.Protocol.Seed,
	}

	// Register master account
	env.accounts[env.master.ID] = env.master
	return env
}

// Ledger returns the ledger service under test.
func (e *TestEnv) Ledger() *service.Ledger {
	return e.ledger
}

// Clock returns the fake clock driving close times.
func (e *TestEnv) Clock() *clockwork.FakeClock {
	return e.clock
}

// Master returns the genesis account.
func (e *TestEnv) Master() *Account {
	return e.master
}

// Seed returns the config seed of the environment.
func (e *TestEnv) Seed() uint64 {
	return e.seed
}

// Now returns the current close time.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// Advance moves the close time forward by d.
func (e *TestEnv) Advance(d time.Duration) {
	e.clock.Advance(d)
}

// AdvanceMinutes moves the close time forward by n minutes.
func (e *TestEnv) AdvanceMinutes(n int) {
	e.clock.Advance(time.Duration(n) * time.Minute)
}

// Register makes the environment sign for accounts without funding them.
func (e *TestEnv) Register(accounts ...*Account) {
	for _, acc := range accounts {
		e.accounts[acc.ID] = acc
	}
}

// Fund sends DefaultFunding from the master account to each account.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, DefaultFunding)
	}
}

// FundAmount sends amount drops from the master account to acc.
func (e *TestEnv) FundAmount(acc *Account, amount uint64) {
	e.t.Helper()
	e.Register(acc)
	result := e.Submit(payment.NewPayment(e.master.ID, acc.ID, amount))
	if !result.Success {
		e.t.Fatalf("Failed to fund %s with %d drops: %s: %s", acc.Name, amount, result.Code, result.Message)
	}
}

// Submit fills in the sequence when it is missing, signs with the
// transaction account's key when that account is known and submits.
func (e *TestEnv) Submit(transaction tx.Transaction) TxResult {
	e.t.Helper()
	common := transaction.GetCommon()
	if common.Sequence == nil {
		seq, err := e.ledger.NextSequence(common.Account)
		switch {
		case err == nil:
			common.SetSequence(seq)
		case errors.Is(err, service.ErrNotFound):
			// Unfunded accounts get a sequence so the engine reports terNO_ACCOUNT
			common.SetSequence(1)
		default:
			e.t.Fatalf("Failed to read sequence of %s: %v", common.Account, err)
		}
	}
	if acc, ok := e.accounts[common.Account]; ok && !common.IsSigned() {
		if err := tx.Sign(transaction, acc.KeyPair); err != nil {
			e.t.Fatalf("Failed to sign for %s: %v", acc.Name, err)
		}
	}
	return e.SubmitRaw(transaction)
}

// SubmitRaw submits transaction as is.
func (e *TestEnv) SubmitRaw(transaction tx.Transaction) TxResult {
	e.t.Helper()
	res, err := e.ledger.Submit(context.Background(), transaction)
	if err != nil {
		e.t.Fatalf("Submit failed: %v", err)
	}
	return TxResult{
		Code:     res.Code,
		Result:   res.Result,
		Success:  res.Applied,
		Message:  res.Message,
		Hash:     res.Hash,
		Metadata: res.Metadata,
	}
}

// AccountRoot returns the account entry of acc, nil when it does not exist.
func (e *TestEnv) AccountRoot(id types.AccountID) *sle.AccountRoot {
	e.t.Helper()
	root, err := e.ledger.Account(id)
	if errors.Is(err, service.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("Failed to read account %s: %v", id, err)
	}
	return root
}

// Balance returns the balance of acc in drops, 0 when it does not exist.
func (e *TestEnv) Balance(acc *Account) uint64 {
	e.t.Helper()
	return e.BalanceOf(acc.ID)
}

// BalanceOf returns the balance of id in drops, 0 when it does not exist.
func (e *TestEnv) BalanceOf(id types.AccountID) uint64 {
	e.t.Helper()
	root := e.AccountRoot(id)
	if root == nil {
		return 0
	}
	return root.Balance
}

// Exists reports whether acc has an account entry.
func (e *TestEnv) Exists(acc *Account) bool {
	e.t.Helper()
	return e.AccountRoot(acc.ID) != nil
}

// Seq returns the next sequence number of acc.
func (e *TestEnv) Seq(acc *Account) uint32 {
	e.t.Helper()
	seq, err := e.ledger.NextSequence(acc.ID)
	if err != nil {
		e.t.Fatalf("Failed to read sequence of %s: %v", acc.Name, err)
	}
	return seq
}

// ProtocolConfig returns the config entry of the environment seed.
func (e *TestEnv) ProtocolConfig() *sle.ProtocolConfig {
	e.t.Helper()
	cfg, err := e.ledger.Config(e.seed)
	if err != nil {
		e.t.Fatalf("Failed to read protocol config: %v", err)
	}
	return cfg
}

// Vault returns the escrow account of the environment seed.
func (e *TestEnv) Vault() types.AccountID {
	return keylet.VaultAccount(keylet.ProtocolConfig(e.seed))
}

// Treasury returns the fee account of the environment seed.
func (e *TestEnv) Treasury() types.AccountID {
	return keylet.TreasuryAccount(keylet.ProtocolConfig(e.seed))
}

// Supply returns the sum of all balances and record rents.
func (e *TestEnv) Supply() uint64 {
	e.t.Helper()
	supply, err := e.ledger.Supply()
	if err != nil {
		e.t.Fatalf("Failed to compute supply: %v", err)
	}
	return supply
}

// Asset returns the registry asset id, nil when it does not exist.
func (e *TestEnv) Asset(id types.AccountID) *sle.Asset {
	e.t.Helper()
	a, err := e.ledger.Asset(id)
	if errors.Is(err, service.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("Failed to read asset %s: %v", id, err)
	}
	return a
}

// Record returns the auction record of target, nil when it does not exist.
func (e *TestEnv) Record(target auction.Target) *sle.AuctionRecord {
	e.t.Helper()
	info, err := e.ledger.Auction(target.ConfigSeed, target.Collection, target.Asset)
	if errors.Is(err, service.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("Failed to read auction record: %v", err)
	}
	return info.AuctionRecord
}

// CreateCollection creates a registry collection with authority as update
// authority and returns its id.
func (e *TestEnv) CreateCollection(authority *Account, name string) types.AccountID {
	e.t.Helper()
	c := assets.NewCollectionCreate(authority.ID, name, "")
	c.SetSequence(e.Seq(authority))
	e.mustSucceed("CollectionCreate", e.Submit(c))
	return c.CollectionID()
}

// MintAsset mints an asset of collection owned by owner. The collection
// update authority signs.
func (e *TestEnv) MintAsset(authority *Account, collection types.AccountID, name string, owner *Account) types.AccountID {
	e.t.Helper()
	m := assets.NewAssetMint(authority.ID, collection, name)
	if owner != nil && owner.ID != authority.ID {
		m.SetOwner(owner.ID)
	}
	m.SetSequence(e.Seq(authority))
	e.mustSucceed("AssetMint", e.Submit(m))
	return m.AssetID()
}

// Whitelist allows collection under the environment seed.
func (e *TestEnv) Whitelist(collection types.AccountID) {
	e.t.Helper()
	e.mustSucceed("WhitelistCollection", e.Submit(auction.NewWhitelistCollection(e.master.ID, e.seed, collection)))
}

// Listing is a whitelisted collection with one minted asset.
type Listing struct {
	Collection types.AccountID
	Asset      types.AccountID
	Target     auction.Target
}

// NewListing creates a whitelisted collection and mints one asset to
// owner, ready to be auctioned.
func (e *TestEnv) NewListing(owner *Account, name string) Listing {
	e.t.Helper()
	collection := e.CreateCollection(e.master, name)
	e.Whitelist(collection)
	asset := e.MintAsset(e.master, collection, name+" #1", owner)
	return Listing{
		Collection: collection,
		Asset:      asset,
		Target:     auction.Target{ConfigSeed: e.seed, Collection: collection, Asset: asset},
	}
}

func (e *TestEnv) mustSucceed(what string, result TxResult) {
	e.t.Helper()
	if !result.Success {
		e.t.Fatalf("%s failed: %s: %s", what, result.Code, result.Message)
	}
}
