package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/tx/payment"
)

func TestNewAccount_Deterministic(t *testing.T) {
	a := NewAccount("alice")
	b := NewAccount("alice")
	c := NewAccount("bob")

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Address, b.Address)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, a.ID.String(), a.Address)
}

func TestMasterAccount_IsGenesis(t *testing.T) {
	id, address, err := genesis.GenesisAccountID()
	require.NoError(t, err)
	master := MasterAccount()
	assert.Equal(t, id, master.ID)
	assert.Equal(t, address, master.Address)
}

func TestEnv_FundAndBalance(t *testing.T) {
	env := NewTestEnv(t)
	alice := NewAccount("alice")

	assert.False(t, env.Exists(alice))
	env.Fund(alice)
	assert.True(t, env.Exists(alice))
	RequireBalance(t, env, alice, DefaultFunding)
	RequireBalance(t, env, env.Master(), genesis.InitialSupply-DefaultFunding)
	RequireSupplyConserved(t, env)
}

func TestEnv_SubmitFillsSequence(t *testing.T) {
	env := NewTestEnv(t)
	alice := NewAccount("alice")
	bob := NewAccount("bob")
	env.Fund(alice, bob)

	before := env.Seq(alice)
	RequireTxSuccess(t, env.Submit(payment.NewPayment(alice.ID, bob.ID, Units(1))))
	assert.Equal(t, before+1, env.Seq(alice))
}

func TestEnv_UnknownAccountIsNotSigned(t *testing.T) {
	env := NewTestEnv(t)
	stranger := NewAccount("stranger")
	result := env.Submit(payment.NewPayment(stranger.ID, env.Master().ID, 1))
	RequireTxFail(t, result, TefNOT_SIGNED)
}

func TestEnv_UnfundedAccount(t *testing.T) {
	env := NewTestEnv(t)
	ghost := NewAccount("ghost")
	env.Register(ghost)
	RequireTxFail(t, env.Submit(payment.NewPayment(ghost.ID, env.Master().ID, 1)), TerNO_ACCOUNT)
}

func TestEnv_Clock(t *testing.T) {
	env := NewTestEnv(t)
	start := env.Now()
	assert.Equal(t, DefaultStartTime, start)

	env.AdvanceMinutes(90)
	assert.Equal(t, start.Add(90*time.Minute), env.Now())
	env.Advance(time.Second)
	assert.Equal(t, start.Add(90*time.Minute+time.Second), env.Now())
}

func TestEnv_ProtocolOptions(t *testing.T) {
	env := NewTestEnv(t, WithFeeBps(250), WithDurations(5, 30))
	cfg := env.ProtocolConfig()
	assert.Equal(t, uint16(250), cfg.FeeBps)
	assert.Equal(t, uint32(5), cfg.MinDuration)
	assert.Equal(t, uint32(30), cfg.MaxDuration)
	assert.Equal(t, env.Vault(), cfg.Vault)
	assert.Equal(t, env.Treasury(), cfg.Treasury)
	RequireBalanceOf(t, env, env.Vault(), 0)
}

func TestEnv_NewListing(t *testing.T) {
	env := NewTestEnv(t)
	alice := NewAccount("alice")
	env.Fund(alice)

	listing := env.NewListing(alice, "Art")
	RequireAssetOwner(t, env, listing.Asset, alice)
	RequireUnlocked(t, env, listing.Asset)
	RequireNoRecord(t, env, listing.Target)
	assert.Equal(t, listing.Collection, env.Asset(listing.Asset).Collection)
}

func TestTxResult_Classes(t *testing.T) {
	env := NewTestEnv(t)
	alice := NewAccount("alice")
	env.Fund(alice)

	tec := env.Submit(payment.NewPayment(alice.ID, env.Master().ID, Units(1_000_000)))
	RequireTxFail(t, tec, TecUNFUNDED)
	assert.True(t, tec.IsTec())
	assert.False(t, tec.IsMalformed())

	tem := env.Submit(payment.NewPayment(alice.ID, alice.ID, 1))
	RequireTxFail(t, tem, TemDST_IS_SRC)
	assert.True(t, tem.IsMalformed())
}
