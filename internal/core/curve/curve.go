// Package curve implements bonding-curve pricing.
//
// A curve maps the curve-supply of a target token to a price denominated in
// base-token units. Curves are a closed set selected by Kind; each kind is a
// pure strategy with no state beyond its parameters.
package curve

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects a curve shape. Values are persisted in market records.
type Kind uint8

const (
	// Linear prices supply s at s/K base units per target unit.
	Linear Kind = 0
)

var (
	// ErrUnsupported is returned for a Kind with no implementation.
	ErrUnsupported = errors.New("unsupported curve")

	// ErrOverflow is returned when a settlement does not fit in 64 bits.
	ErrOverflow = errors.New("curve settlement overflows uint64")

	// ErrInterval is returned when a settlement interval is reversed.
	ErrInterval = errors.New("curve interval start exceeds end")

	// ErrBadParams is returned for unusable curve parameters.
	ErrBadParams = errors.New("invalid curve parameters")
)

// String returns the lower-case curve name.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("curve(%d)", uint8(k))
	}
}

// ParseKind parses a curve name as produced by String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "0":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
}

// Curve is a pricing strategy over integer curve-supply.
type Curve interface {
	// Kind returns the selector this strategy implements.
	Kind() Kind

	// MarginalPrice returns the instantaneous price in base units per
	// target unit at the given curve-supply.
	MarginalPrice(supply uint64) decimal.Decimal

	// Area returns the exact signed base-unit settlement for moving
	// curve-supply from a to b. Area(a, b) == -Area(b, a).
	Area(a, b uint64) *big.Rat

	// Cost is the amount a buyer owes to move supply from a up to b,
	// rounded up.
	Cost(a, b uint64) (uint64, error)

	// Refund is the amount a seller receives to move supply from b down
	// to a, rounded down.
	Refund(a, b uint64) (uint64, error)
}

// Params configures a curve.
type Params struct {
	// Constant is the linear divisor K.
	Constant uint64
}

// DefaultParams matches the deployed markets: K = 1e8.
func DefaultParams() Params {
	return Params{Constant: 100_000_000}
}

// New returns the strategy for kind.
func New(kind Kind, params Params) (Curve, error) {
	switch kind {
	case Linear:
		return NewLinear(params.Constant)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
}

// Supported reports whether kind has an implementation.
func Supported(kind Kind) bool {
	return kind == Linear
}

func ceilRat(r *big.Rat) *big.Int {
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func floorRat(r *big.Rat) *big.Int {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if r.Sign() < 0 && new(big.Int).Mul(q, r.Denom()).Cmp(r.Num()) != 0 {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

func toUint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}
