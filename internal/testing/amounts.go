package testing

import "github.com/LeJamon/goAuctiond/internal/core/amount"

// DefaultFunding is what Fund sends to each account.
var DefaultFunding = Units(1000)

// Units converts whole units to drops.
func Units(n uint64) uint64 {
	return amount.Units(n)
}

// Drops returns n unchanged. It documents amounts that are meant as drops.
func Drops(n uint64) uint64 {
	return n
}
