package curve

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLinear(t *testing.T) *LinearCurve {
	t.Helper()
	c, err := NewLinear(DefaultParams().Constant)
	require.NoError(t, err)
	return c
}

func TestNewDispatch(t *testing.T) {
	c, err := New(Linear, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, Linear, c.Kind())

	_, err = New(Kind(1), DefaultParams())
	require.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, Supported(Kind(7)))

	_, err = New(Linear, Params{})
	require.ErrorIs(t, err, ErrBadParams)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, Linear, k)
	assert.Equal(t, "linear", k.String())

	_, err = ParseKind("quadratic")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "curve(3)", Kind(3).String())
}

func TestLinearMarginalPrice(t *testing.T) {
	c := defaultLinear(t)

	tests := []struct {
		supply uint64
		want   string
	}{
		{0, "0"},
		{100_000_000, "1"},
		{24_240_000, "0.2424"},
		{50_000_000, "0.5"},
	}
	for _, tt := range tests {
		got := c.MarginalPrice(tt.supply)
		assert.True(t, got.Equal(mustDecimal(t, tt.want)), "supply %d: got %s", tt.supply, got)
	}
}

func TestLinearArea(t *testing.T) {
	c := defaultLinear(t)

	assert.Equal(t, 0, c.Area(500, 500).Sign())
	assert.Equal(t, big.NewRat(2_937_888, 1), c.Area(0, 24_240_000))

	fwd := c.Area(1_000, 9_000)
	rev := c.Area(9_000, 1_000)
	assert.Equal(t, 0, new(big.Rat).Add(fwd, rev).Sign())
}

func TestLinearAreaAdditive(t *testing.T) {
	c := defaultLinear(t)
	points := [][3]uint64{
		{0, 1, 2},
		{0, 12_345_678, 24_240_000},
		{1_000_000, 1_000_001, 5_000_000_000},
		{7, 7, 7},
	}
	for _, p := range points {
		sum := new(big.Rat).Add(c.Area(p[0], p[1]), c.Area(p[1], p[2]))
		assert.Equal(t, 0, sum.Cmp(c.Area(p[0], p[2])), "points %v", p)
	}
}

func TestLinearMonotonic(t *testing.T) {
	c := defaultLinear(t)
	prev := c.Area(0, 1_000)
	for s := uint64(1_000); s < 100_000_000; s *= 3 {
		cur := c.Area(s, s+1_000)
		assert.Equal(t, 1, cur.Cmp(prev), "supply %d", s)
		prev = cur
	}
}

func TestLinearCostRoundsUp(t *testing.T) {
	c := defaultLinear(t)

	cost, err := c.Cost(0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cost)

	cost, err = c.Cost(1_000_000_000, 1_000_000_001)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), cost)

	cost, err = c.Cost(0, 24_240_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_937_888), cost)

	cost, err = c.Cost(10, 10)
	require.NoError(t, err)
	assert.Zero(t, cost)
}

func TestLinearRefundRoundsDown(t *testing.T) {
	c := defaultLinear(t)

	refund, err := c.Refund(0, 1)
	require.NoError(t, err)
	assert.Zero(t, refund)

	refund, err = c.Refund(1_000_000_000, 1_000_000_001)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), refund)
}

func TestLinearRoundTripNeverProfits(t *testing.T) {
	c := defaultLinear(t)
	intervals := [][2]uint64{
		{0, 1},
		{0, 24_240_000},
		{22_907_000, 23_907_000},
		{123_456, 7_654_321},
		{999_999_999, 1_000_000_123},
	}
	for _, iv := range intervals {
		cost, err := c.Cost(iv[0], iv[1])
		require.NoError(t, err)
		refund, err := c.Refund(iv[0], iv[1])
		require.NoError(t, err)
		assert.LessOrEqual(t, refund, cost)
		assert.LessOrEqual(t, cost-refund, uint64(1), "interval %v", iv)
	}
}

func TestLinearReversedInterval(t *testing.T) {
	c := defaultLinear(t)
	_, err := c.Cost(10, 5)
	require.ErrorIs(t, err, ErrInterval)
	_, err = c.Refund(10, 5)
	require.ErrorIs(t, err, ErrInterval)
}

func TestLinearOverflow(t *testing.T) {
	c, err := NewLinear(1)
	require.NoError(t, err)
	_, err = c.Cost(0, math.MaxUint64)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = c.Refund(0, math.MaxUint64)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFloorCeilNegative(t *testing.T) {
	r := big.NewRat(-3, 2)
	assert.Equal(t, int64(-2), floorRat(r).Int64())
	assert.Equal(t, int64(-1), ceilRat(r).Int64())
	assert.Equal(t, int64(-2), floorRat(big.NewRat(-2, 1)).Int64())
}
