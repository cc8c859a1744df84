// Package testing provides the test environment for transaction tests.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: a started ledger over in-memory state with a fake clock
//   - Account: deterministic test accounts with key pairs
//   - Amount helpers for whole units and drops
//   - Environment helpers that create collections, mint assets and
//     whitelist collections in one call
//   - Assertions for results, balances, ownership and supply
//
// # Basic Usage
//
//	func TestPayment(t *testing.T) {
//	    env := jtx.NewTestEnv(t)
//
//	    alice := jtx.NewAccount("alice")
//	    bob := jtx.NewAccount("bob")
//	    env.Fund(alice, bob)
//
//	    result := env.Submit(payment.NewPayment(alice.ID, bob.ID, jtx.Units(100)))
//	    jtx.RequireTxSuccess(t, result)
//	}
//
// # TestEnv
//
// Submit fills in the sequence number when it is missing and signs with
// the key of the transaction account when that account is known to the
// environment. Time only moves through Advance and AdvanceMinutes.
//
//	env.Fund(alice)                 // 1000 units from the master account
//	env.FundAmount(bob, jtx.Units(5))
//	env.AdvanceMinutes(61)          // close time moves 61 minutes
//	env.Balance(alice)              // balance in drops
//
// # Account
//
// Accounts are derived from their name; the same name always yields the
// same key pair and address. MasterAccount is the genesis account.
package testing
