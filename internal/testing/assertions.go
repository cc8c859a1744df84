package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// RequireBalance asserts that an account has the expected balance in drops.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	actual := env.Balance(acc)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d drops, got %d drops",
		acc.Name, expected, actual)
}

// RequireBalanceOf asserts the balance of an account without a key, such
// as the vault or the treasury.
func RequireBalanceOf(t *testing.T, env *TestEnv, id types.AccountID, expected uint64) {
	t.Helper()
	actual := env.BalanceOf(id)
	require.Equal(t, expected, actual,
		"Account %s balance mismatch: expected %d drops, got %d drops", id, expected, actual)
}

// RequireTxSuccess asserts that a transaction result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected transaction success, got %s: %s", result.Code, result.Message)
	require.Equal(t, TesSUCCESS, result.Code,
		"Expected tesSUCCESS, got %s: %s", result.Code, result.Message)
}

// RequireTxFail asserts that a transaction result indicates failure with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expectedCode string) {
	t.Helper()
	require.False(t, result.Success,
		"Expected transaction failure with code %s, but transaction succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s: %s", expectedCode, result.Code, result.Message)
}

// RequireAssetOwner asserts the registry owner of an asset.
func RequireAssetOwner(t *testing.T, env *TestEnv, asset types.AccountID, owner *Account) {
	t.Helper()
	a := env.Asset(asset)
	require.NotNil(t, a, "Expected asset %s to exist", asset)
	require.Equal(t, owner.ID, a.Owner,
		"Asset %s owner mismatch: expected %s, got %s", asset, owner.Name, a.Owner)
}

// RequireLocked asserts that the auction record of target holds both
// delegates of the asset and keeps it frozen.
func RequireLocked(t *testing.T, env *TestEnv, target auction.Target) {
	t.Helper()
	a := env.Asset(target.Asset)
	require.NotNil(t, a)
	require.True(t, a.Frozen(), "Expected asset %s to be frozen", target.Asset)
	require.NotNil(t, a.FreezeDelegate)
	require.NotNil(t, a.TransferDelegate)
	require.Equal(t, a.FreezeDelegate.Authority, a.TransferDelegate.Authority,
		"Expected one authority for both delegates")
}

// RequireUnlocked asserts that an asset carries no delegates and is not
// frozen.
func RequireUnlocked(t *testing.T, env *TestEnv, asset types.AccountID) {
	t.Helper()
	a := env.Asset(asset)
	require.NotNil(t, a)
	require.False(t, a.Frozen(), "Expected asset %s to be thawed", asset)
	require.Nil(t, a.FreezeDelegate, "Expected no freeze delegate on %s", asset)
	require.Nil(t, a.TransferDelegate, "Expected no transfer delegate on %s", asset)
}

// RequireNoRecord asserts that target has no auction record.
func RequireNoRecord(t *testing.T, env *TestEnv, target auction.Target) {
	t.Helper()
	require.Nil(t, env.Record(target), "Expected no auction record for asset %s", target.Asset)
}

// RequireSupplyConserved asserts that balances and record rents still add
// up to the genesis supply.
func RequireSupplyConserved(t *testing.T, env *TestEnv) {
	t.Helper()
	require.Equal(t, genesis.InitialSupply, env.Supply(), "Supply changed")
}
