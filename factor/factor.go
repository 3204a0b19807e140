package factor

import (
	"fmt"
	"math/big"
)

// Factor is the "rational or double" scalar coefficient of spec.md §3. The
// engine only ever multiplies/divides by small integers (symmetry factors,
// antisymmetrisation halves, spin-loop powers of two) so an exact rational
// is representable and avoids floating-point drift across large
// derivations; no third-party rational-number library appears anywhere in
// the example corpus, so this is the one place SPEC_FULL.md accepts the
// standard library (math/big.Rat) for lack of an ecosystem alternative
// (see DESIGN.md).
type Factor struct {
	r *big.Rat
}

// One is the multiplicative identity.
func One() Factor { return FromInt(1) }

// Zero is the additive identity.
func Zero() Factor { return Factor{r: new(big.Rat)} }

// FromInt builds a Factor from an integer.
func FromInt(n int64) Factor {
	return Factor{r: new(big.Rat).SetInt64(n)}
}

// FromRat builds a Factor from a numerator/denominator pair.
func FromRat(num, den int64) Factor {
	return Factor{r: new(big.Rat).SetFrac64(num, den)}
}

// FromFloat builds a Factor approximating f.
func FromFloat(f float64) Factor {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Factor{r: r}
}

func (f Factor) rat() *big.Rat {
	if f.r == nil {
		return new(big.Rat)
	}
	return f.r
}

// Mul returns f*other.
func (f Factor) Mul(other Factor) Factor {
	return Factor{r: new(big.Rat).Mul(f.rat(), other.rat())}
}

// Add returns f+other.
func (f Factor) Add(other Factor) Factor {
	return Factor{r: new(big.Rat).Add(f.rat(), other.rat())}
}

// Sub returns f-other.
func (f Factor) Sub(other Factor) Factor {
	return Factor{r: new(big.Rat).Sub(f.rat(), other.rat())}
}

// Neg returns -f.
func (f Factor) Neg() Factor {
	return Factor{r: new(big.Rat).Neg(f.rat())}
}

// Div returns f/other.
func (f Factor) Div(other Factor) Factor {
	return Factor{r: new(big.Rat).Quo(f.rat(), other.rat())}
}

// IsZero reports whether f is exactly zero.
func (f Factor) IsZero() bool {
	return f.rat().Sign() == 0
}

// Abs returns the absolute value of f.
func (f Factor) Abs() Factor {
	return Factor{r: new(big.Rat).Abs(f.rat())}
}

// Float64 returns the nearest float64 approximation.
func (f Factor) Float64() float64 {
	v, _ := f.rat().Float64()
	return v
}

// LessThanAbs reports whether f is below threshold in absolute value.
func (f Factor) LessThanAbs(threshold float64) bool {
	return f.Abs().Float64() < threshold
}

// Equal reports exact equality.
func (f Factor) Equal(other Factor) bool {
	return f.rat().Cmp(other.rat()) == 0
}

func (f Factor) String() string {
	if f.rat().IsInt() {
		return f.rat().RatString()
	}
	return fmt.Sprintf("\\frac{%s}{%s}", f.rat().Num().String(), f.rat().Denom().String())
}
