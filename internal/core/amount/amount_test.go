package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeSplit(t *testing.T) {
	tests := []struct {
		name     string
		bid      uint64
		bps      uint16
		treasury uint64
		owner    uint64
	}{
		{name: "five percent even", bid: 10_000, bps: 500, treasury: 500, owner: 9_500},
		{name: "rounding toward treasury", bid: 10_003, bps: 333, treasury: 334, owner: 9_669},
		{name: "zero fee", bid: 12_345, bps: 0, treasury: 0, owner: 12_345},
		{name: "full fee", bid: 12_345, bps: 10_000, treasury: 12_345, owner: 0},
		{name: "one drop", bid: 1, bps: 1, treasury: 1, owner: 0},
		{name: "zero bid", bid: 0, bps: 500, treasury: 0, owner: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			split, err := FeeSplit(tc.bid, tc.bps)
			require.NoError(t, err)
			assert.Equal(t, tc.treasury, split.Treasury)
			assert.Equal(t, tc.owner, split.Owner)
			assert.Equal(t, tc.bid, split.Treasury+split.Owner+split.Residual)
		})
	}
}

func TestFeeSplit_NeverExceedsBid(t *testing.T) {
	for _, bps := range []uint16{1, 7, 250, 333, 999, 5_000, 9_999} {
		for _, bid := range []uint64{1, 3, 99, 10_003, 1_234_567, math.MaxUint64} {
			split, err := FeeSplit(bid, bps)
			require.NoError(t, err, "bid=%d bps=%d", bid, bps)
			assert.LessOrEqual(t, split.Treasury, bid)
			assert.Equal(t, bid, split.Treasury+split.Owner+split.Residual)
		}
	}
}

func TestFeeSplit_LargeBidIsExact(t *testing.T) {
	split, err := FeeSplit(math.MaxUint64, 500)
	require.NoError(t, err)
	// 18446744073709551615 * 0.05 = 922337203685477580.75
	assert.Equal(t, uint64(922337203685477581), split.Treasury)
	assert.Equal(t, uint64(17524406870024074034), split.Owner)
}

func TestFeeSplit_InvalidRate(t *testing.T) {
	_, err := FeeSplit(100, 10_001)
	require.ErrorIs(t, err, ErrInvalidBps)
}

func TestAddSub(t *testing.T) {
	_, err := Add(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Sub(1, 2)
	require.ErrorIs(t, err, ErrUnderflow)

	v, err := Sub(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)
	assert.Equal(t, uint64(2_000_000), Units(2))
}
