// Package amount holds native currency arithmetic and the settlement fee
// split.
package amount

import (
	"errors"
	"fmt"
	"math/bits"
)

// BasisPoints is the denominator of every fee rate.
const BasisPoints = 10_000

// DropsPerUnit is the number of drops in one whole currency unit.
const DropsPerUnit uint64 = 1_000_000

var (
	ErrOverflow   = errors.New("amount overflow")
	ErrUnderflow  = errors.New("amount underflow")
	ErrInvalidBps = errors.New("fee rate above 10000 basis points")
)

// Units converts whole units to drops.
func Units(n uint64) uint64 {
	return n * DropsPerUnit
}

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrUnderflow.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Split is the result of dividing a winning bid between treasury and owner.
type Split struct {
	Treasury uint64
	Owner    uint64
	// Residual is what rounding leaves behind. It stays in the vault.
	Residual uint64
}

func (s Split) String() string {
	return fmt.Sprintf("treasury=%d owner=%d residual=%d", s.Treasury, s.Owner, s.Residual)
}

// FeeSplit computes the treasury cut as ceil(bid*bps/10000) and the owner
// proceeds as floor(bid*(10000-bps)/10000) with exact 128-bit arithmetic.
// Treasury and owner never exceed bid together; whatever is left over is
// reported as residual.
func FeeSplit(bid uint64, feeBps uint16) (Split, error) {
	if feeBps > BasisPoints {
		return Split{}, ErrInvalidBps
	}
	treasury := mulDiv(bid, uint64(feeBps), true)
	owner := mulDiv(bid, uint64(BasisPoints-feeBps), false)
	paid, err := Add(treasury, owner)
	if err != nil || paid > bid {
		return Split{}, fmt.Errorf("fee split of %d at %d bps exceeds bid", bid, feeBps)
	}
	return Split{Treasury: treasury, Owner: owner, Residual: bid - paid}, nil
}

// mulDiv returns x*y/10000 for y <= 10000, rounding up when ceil is set.
func mulDiv(x, y uint64, ceil bool) uint64 {
	hi, lo := bits.Mul64(x, y)
	q, r := bits.Div64(hi, lo, BasisPoints)
	if ceil && r != 0 {
		q++
	}
	return q
}
