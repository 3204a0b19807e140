package matrices

import (
	"fmt"

	"github.com/thoschr/quantwo/orbital"
)

// Kronecker is a pair (A, B) of orbitals asserted equal, produced by a Wick
// contraction; the convention is "replace B by A on substitution"
// (spec.md §3).
type Kronecker struct {
	A, B orbital.Orbital
}

// NewKronecker builds a Kronecker delta.
func NewKronecker(a, b orbital.Orbital) Kronecker {
	return Kronecker{A: a, B: b}
}

// Equal reports value equality (order-sensitive, matching the underlying
// Product<Kronecker> equality used to detect redundant contractions).
func (k Kronecker) Equal(other Kronecker) bool {
	return k.A.Equal(other.A) && k.B.Equal(other.B)
}

// Less gives an artificial order used for canonicalisation.
func (k Kronecker) Less(other Kronecker) bool {
	if !k.A.Equal(other.A) {
		return k.A.Less(other.A)
	}
	return k.B.Less(other.B)
}

func (k Kronecker) String() string {
	return fmt.Sprintf("\\delta_{%s%s}", k.A, k.B)
}
