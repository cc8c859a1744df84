package tx

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// ErrInvariant wraps every invariant violation.
var ErrInvariant = errors.New("invariant violated")

// InvariantCheck inspects the change set of a successful transaction before
// it is committed.
type InvariantCheck func(ctx *ApplyContext, changes []Change) error

var invariantChecks = []InvariantCheck{
	checkCurrencyConserved,
	checkVaultMatchesBids,
	checkAuctionRecords,
}

func checkInvariants(ctx *ApplyContext, changes []Change) error {
	for _, check := range invariantChecks {
		if err := check(ctx, changes); err != nil {
			return err
		}
	}
	return nil
}

type decodedChange struct {
	Change
	typ entry.Type
}

func decodeChanges(changes []Change) ([]decodedChange, error) {
	out := make([]decodedChange, 0, len(changes))
	for _, c := range changes {
		data := c.Current
		if data == nil {
			data = c.Original
		}
		typ, err := sle.EntryType(data)
		if err != nil {
			return nil, err
		}
		out = append(out, decodedChange{Change: c, typ: typ})
	}
	return out, nil
}

// before and after return the entry bytes around the transaction. Erased
// entries have no after state and inserted entries no before state.
func (c decodedChange) before() []byte {
	if c.Action == ActionInsert {
		return nil
	}
	return c.Original
}

func (c decodedChange) after() []byte {
	if c.Action == ActionErase {
		return nil
	}
	return c.Current
}

func accountBalance(data []byte) (types.AccountID, *big.Int, uint32, error) {
	if data == nil {
		return types.AccountID{}, new(big.Int), 0, nil
	}
	a, err := sle.ParseAccountRoot(data)
	if err != nil {
		return types.AccountID{}, nil, 0, err
	}
	return a.Account, new(big.Int).SetUint64(a.Balance), a.Flags, nil
}

func auctionRecord(data []byte) (*sle.AuctionRecord, error) {
	if data == nil {
		return nil, nil
	}
	return sle.ParseAuctionRecord(data)
}

// checkCurrencyConserved requires balances plus record rent to sum to the
// same total before and after.
func checkCurrencyConserved(_ *ApplyContext, changes []Change) error {
	decoded, err := decodeChanges(changes)
	if err != nil {
		return err
	}
	delta := new(big.Int)
	for _, c := range decoded {
		switch c.typ {
		case entry.TypeAccountRoot:
			_, before, _, err := accountBalance(c.before())
			if err != nil {
				return err
			}
			_, after, _, err := accountBalance(c.after())
			if err != nil {
				return err
			}
			delta.Add(delta, after).Sub(delta, before)
		case entry.TypeAuctionRecord:
			before, err := auctionRecord(c.before())
			if err != nil {
				return err
			}
			after, err := auctionRecord(c.after())
			if err != nil {
				return err
			}
			if before != nil {
				delta.Sub(delta, new(big.Int).SetUint64(before.Rent))
			}
			if after != nil {
				delta.Add(delta, new(big.Int).SetUint64(after.Rent))
			}
		}
	}
	if delta.Sign() != 0 {
		return fmt.Errorf("%w: native currency changed by %s drops", ErrInvariant, delta)
	}
	return nil
}

// checkVaultMatchesBids requires every vault to move by exactly the change
// in escrowed bids of its auctions plus the residue retained this
// transaction.
func checkVaultMatchesBids(ctx *ApplyContext, changes []Change) error {
	decoded, err := decodeChanges(changes)
	if err != nil {
		return err
	}
	expected := map[types.AccountID]*big.Int{}
	actual := map[types.AccountID]*big.Int{}
	at := func(m map[types.AccountID]*big.Int, id types.AccountID) *big.Int {
		if m[id] == nil {
			m[id] = new(big.Int)
		}
		return m[id]
	}

	for _, c := range decoded {
		switch c.typ {
		case entry.TypeAccountRoot:
			id, before, flags, err := accountBalance(c.before())
			if err != nil {
				return err
			}
			id2, after, flags2, err := accountBalance(c.after())
			if err != nil {
				return err
			}
			if c.after() != nil {
				id, flags = id2, flags2
			}
			if flags&sle.LsfVault == 0 {
				continue
			}
			at(actual, id).Add(at(actual, id), after).Sub(at(actual, id), before)
		case entry.TypeAuctionRecord:
			before, err := auctionRecord(c.before())
			if err != nil {
				return err
			}
			after, err := auctionRecord(c.after())
			if err != nil {
				return err
			}
			rec := after
			if rec == nil {
				rec = before
			}
			vault := keylet.VaultAccount(keylet.Keylet{Type: entry.TypeProtocolConfig, Key: rec.Config})
			e := at(expected, vault)
			if after != nil {
				e.Add(e, new(big.Int).SetUint64(after.CurrentBid()))
			}
			if before != nil {
				e.Sub(e, new(big.Int).SetUint64(before.CurrentBid()))
			}
		}
	}
	if ctx != nil {
		for vault, drops := range ctx.retained {
			e := at(expected, vault)
			e.Add(e, new(big.Int).SetUint64(drops))
		}
	}

	for vault, got := range actual {
		want := at(expected, vault)
		if got.Cmp(want) != 0 {
			return fmt.Errorf("%w: vault %s moved %s drops, escrowed bids moved %s", ErrInvariant, vault, got, want)
		}
	}
	for vault, want := range expected {
		if want.Sign() != 0 && actual[vault] == nil {
			return fmt.Errorf("%w: escrowed bids moved %s drops without vault %s", ErrInvariant, want, vault)
		}
	}
	return nil
}

// checkAuctionRecords enforces the per-record state rules.
func checkAuctionRecords(_ *ApplyContext, changes []Change) error {
	decoded, err := decodeChanges(changes)
	if err != nil {
		return err
	}
	for _, c := range decoded {
		if c.typ != entry.TypeAuctionRecord {
			continue
		}
		before, err := auctionRecord(c.before())
		if err != nil {
			return err
		}
		after, err := auctionRecord(c.after())
		if err != nil {
			return err
		}
		if after == nil {
			continue
		}
		if (after.HighBid == nil) != (after.FirstBidAt == 0) {
			return fmt.Errorf("%w: bid state and first bid time disagree", ErrInvariant)
		}
		if after.HighBid != nil && after.HighBid.Buyer == after.Owner {
			return fmt.Errorf("%w: owner holds the high bid", ErrInvariant)
		}
		if before == nil {
			if after.HighBid != nil {
				return fmt.Errorf("%w: record created with a bid", ErrInvariant)
			}
			continue
		}
		if after.CurrentBid() < before.CurrentBid() {
			return fmt.Errorf("%w: bid decreased from %d to %d", ErrInvariant, before.CurrentBid(), after.CurrentBid())
		}
		if before.FirstBidAt != 0 && after.FirstBidAt != before.FirstBidAt {
			return fmt.Errorf("%w: first bid time changed", ErrInvariant)
		}
		if after.Owner != before.Owner || after.Asset != before.Asset || after.DurationMinutes != before.DurationMinutes {
			return fmt.Errorf("%w: immutable record fields changed", ErrInvariant)
		}
	}
	return nil
}
