// Package testing provides test infrastructure for bonded market scenarios.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: an in-memory ledger with a funded base mint and an engine
//   - Account: deterministic test accounts with secp256k1 keypairs
//   - Amount helpers: conversions between whole tokens and ledger units
//   - Assertions: require-style helpers for balances, curve state, and results
//
// # Basic Usage
//
//	func TestBuy(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//	    alice := testing.NewAccount("alice")
//	    env.Fund(testing.Tokens("100"), alice)
//
//	    mint := env.CreateMarket(alice, "alpha")
//	    testing.RequireTxSuccess(t, env.Buy(alice, mint, testing.Tokens("24.24")))
//	    testing.RequireCurveSupply(t, env, mint, testing.Tokens("24.24"))
//	}
//
// # Clock Control
//
// Receipts are stamped with a ManualClock:
//
//	env.AdvanceTime(10 * time.Second)
//	env.Now()
package testing
