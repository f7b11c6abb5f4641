package curve

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// LinearCurve prices supply s at s/K. The area from a to b is
// (b² − a²) / 2K, computed exactly and rounded only at settlement.
type LinearCurve struct {
	k uint64
}

// NewLinear returns a linear curve with divisor k.
func NewLinear(k uint64) (*LinearCurve, error) {
	if k == 0 {
		return nil, fmt.Errorf("%w: linear constant must be positive", ErrBadParams)
	}
	return &LinearCurve{k: k}, nil
}

// Kind implements Curve.
func (c *LinearCurve) Kind() Kind { return Linear }

// Constant returns K.
func (c *LinearCurve) Constant() uint64 { return c.k }

// MarginalPrice implements Curve.
func (c *LinearCurve) MarginalPrice(supply uint64) decimal.Decimal {
	num := decimal.NewFromBigInt(new(big.Int).SetUint64(supply), 0)
	den := decimal.NewFromBigInt(new(big.Int).SetUint64(c.k), 0)
	return num.DivRound(den, 18)
}

// Area implements Curve.
func (c *LinearCurve) Area(a, b uint64) *big.Rat {
	bb := new(big.Int).SetUint64(b)
	bb.Mul(bb, bb)
	aa := new(big.Int).SetUint64(a)
	aa.Mul(aa, aa)

	den := new(big.Int).SetUint64(c.k)
	den.Lsh(den, 1)

	return new(big.Rat).SetFrac(bb.Sub(bb, aa), den)
}

// Cost implements Curve.
func (c *LinearCurve) Cost(a, b uint64) (uint64, error) {
	if a > b {
		return 0, fmt.Errorf("%w: %d > %d", ErrInterval, a, b)
	}
	return toUint64(ceilRat(c.Area(a, b)))
}

// Refund implements Curve.
func (c *LinearCurve) Refund(a, b uint64) (uint64, error) {
	if a > b {
		return 0, fmt.Errorf("%w: %d > %d", ErrInterval, a, b)
	}
	return toUint64(floorRat(c.Area(a, b)))
}
