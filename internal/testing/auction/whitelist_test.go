package auction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jtx "github.com/LeJamon/goAuctiond/internal/testing"
)

func TestWhitelist_Admin(t *testing.T) {
	env := jtx.NewTestEnv(t)
	collection := env.CreateCollection(env.Master(), "Punks")

	jtx.RequireTxSuccess(t, env.Submit(Whitelist(env.Master(), env.Seed(), collection)))

	entry, err := env.Ledger().Collection(env.Seed(), collection)
	require.NoError(t, err)
	assert.Equal(t, collection, entry.Collection)
	assert.Equal(t, env.Now().Unix(), entry.WhitelistAt)
}

func TestWhitelist_NotAdmin(t *testing.T) {
	env := jtx.NewTestEnv(t)
	bob := jtx.NewAccount("bob")
	env.Fund(bob)
	collection := env.CreateCollection(bob, "Bobs")

	jtx.RequireTxFail(t, env.Submit(Whitelist(bob, env.Seed(), collection)), jtx.TecNO_PERMISSION)
}

func TestWhitelist_Duplicate(t *testing.T) {
	env := jtx.NewTestEnv(t)
	collection := env.CreateCollection(env.Master(), "Punks")

	jtx.RequireTxSuccess(t, env.Submit(Whitelist(env.Master(), env.Seed(), collection)))
	jtx.RequireTxFail(t, env.Submit(Whitelist(env.Master(), env.Seed(), collection)), jtx.TecDUPLICATE)
}

func TestWhitelist_UnknownCollection(t *testing.T) {
	env := jtx.NewTestEnv(t)
	ghost := jtx.NewAccount("ghost collection")

	jtx.RequireTxFail(t, env.Submit(Whitelist(env.Master(), env.Seed(), ghost.ID)), jtx.TecNO_ENTRY)
}

func TestWhitelist_UnknownConfig(t *testing.T) {
	env := jtx.NewTestEnv(t)
	collection := env.CreateCollection(env.Master(), "Punks")

	jtx.RequireTxFail(t, env.Submit(Whitelist(env.Master(), env.Seed()+1, collection)), jtx.TecNO_ENTRY)
}
