package delta

import (
	"fmt"
	"math"
)

// PositiveValue is a float64 guaranteed to be >= 0.
type PositiveValue struct {
	v float64
}

// NewPositiveValue fails with ErrNegativeValue if x < 0.
func NewPositiveValue(x float64) (PositiveValue, error) {
	if x < 0 {
		return PositiveValue{}, &NegativeValueError{Field: "uncertainty", Value: x}
	}
	return PositiveValue{v: x}, nil
}

// Float64 returns the wrapped value.
func (p PositiveValue) Float64() float64 { return p.v }

// Unit says whether an uncertainty magnitude is absolute or relative.
type Unit int

const (
	UnitDollars Unit = iota
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitDollars:
		return "dollars"
	case UnitPercent:
		return "percent"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// UncertaintyType is a magnitude in dollars or in percent of the nominal value.
type UncertaintyType struct {
	unit   Unit
	amount PositiveValue
}

// Dollars is an absolute spread.
func Dollars(amount PositiveValue) UncertaintyType {
	return UncertaintyType{unit: UnitDollars, amount: amount}
}

// Percent is a spread relative to |value|.
func Percent(amount PositiveValue) UncertaintyType {
	return UncertaintyType{unit: UnitPercent, amount: amount}
}

// Unit returns whether the magnitude is in dollars or percent.
func (t UncertaintyType) Unit() Unit { return t.unit }

// Amount returns the raw magnitude.
func (t UncertaintyType) Amount() float64 { return t.amount.v }

// spread returns the absolute distance from value this magnitude represents.
func (t UncertaintyType) spread(value float64) float64 {
	if t.unit == UnitPercent {
		return t.amount.v * math.Abs(value) / 100
	}
	return t.amount.v
}

func (t UncertaintyType) String() string {
	if t.unit == UnitPercent {
		return fmt.Sprintf("%g%%", t.amount.v)
	}
	return fmt.Sprintf("$%g", t.amount.v)
}

// Kind distinguishes the three uncertainty shapes.
type Kind int

const (
	KindBalanced Kind = iota
	KindUnbalanced
	KindBounds
)

func (k Kind) String() string {
	switch k {
	case KindBalanced:
		return "balanced"
	case KindUnbalanced:
		return "unbalanced"
	case KindBounds:
		return "bounds"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Uncertainty is a confidence range around a delta's nominal value.
// A nil *Uncertainty means the value is exact.
type Uncertainty struct {
	kind      Kind
	low, high UncertaintyType
	lowBound  float64
	highBound float64
}

// Balanced spreads the same magnitude on both sides of the value.
func Balanced(t UncertaintyType) *Uncertainty {
	return &Uncertainty{kind: KindBalanced, low: t, high: t}
}

// Unbalanced uses low for the minimum and high for the maximum.
func Unbalanced(low, high UncertaintyType) *Uncertainty {
	return &Uncertainty{kind: KindUnbalanced, low: low, high: high}
}

// Bounds gives the minimum and maximum explicitly. The owning delta checks
// low <= value <= high when it is constructed.
func Bounds(low, high float64) *Uncertainty {
	return &Uncertainty{kind: KindBounds, lowBound: low, highBound: high}
}

// Kind returns the uncertainty shape.
func (u *Uncertainty) Kind() Kind { return u.kind }

// Low returns the magnitude used for the minimum. Not meaningful for bounds.
func (u *Uncertainty) Low() UncertaintyType { return u.low }

// High returns the magnitude used for the maximum. Not meaningful for bounds.
func (u *Uncertainty) High() UncertaintyType { return u.high }

// BoundValues returns the explicit bounds. Only meaningful for KindBounds.
func (u *Uncertainty) BoundValues() (low, high float64) { return u.lowBound, u.highBound }

// Min returns the lower bound for the given nominal value.
func (u *Uncertainty) Min(value float64) float64 {
	if u == nil {
		return value
	}
	if u.kind == KindBounds {
		return u.lowBound
	}
	return value - u.low.spread(value)
}

// Max returns the upper bound for the given nominal value.
func (u *Uncertainty) Max(value float64) float64 {
	if u == nil {
		return value
	}
	if u.kind == KindBounds {
		return u.highBound
	}
	return value + u.high.spread(value)
}

func (u *Uncertainty) String() string {
	if u == nil {
		return "exact"
	}
	switch u.kind {
	case KindBalanced:
		return "±" + u.low.String()
	case KindUnbalanced:
		return fmt.Sprintf("-%s/+%s", u.low, u.high)
	default:
		return fmt.Sprintf("[%g, %g]", u.lowBound, u.highBound)
	}
}

func (u *Uncertainty) validate(value float64) error {
	if u == nil || u.kind != KindBounds {
		return nil
	}
	if u.lowBound <= value && value <= u.highBound {
		return nil
	}
	return &BoundsError{Low: u.lowBound, High: u.highBound, Value: value}
}
