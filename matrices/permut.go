package matrices

import (
	"fmt"
	"strings"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/orbital"
)

// Permut is a symmetry operation mapping an orbital tuple (From) to another
// (To); the identity permutation has an empty From (spec.md §3).
type Permut struct {
	From container.Product[orbital.Orbital]
	To   container.Product[orbital.Orbital]
}

// Identity returns the identity permutation.
func Identity() Permut {
	return Permut{}
}

// NewPermut builds a permutation from two equal-length orbital tuples.
func NewPermut(from, to container.Product[orbital.Orbital]) Permut {
	return Permut{From: from, To: to}
}

// IsIdentity reports whether this is the identity permutation.
func (p Permut) IsIdentity() bool {
	return p.From.Len() == 0
}

// Mul composes two permutations by concatenating their orbital tuples
// (mirrors the original's Permut::operator*=, which simply appends).
func (p Permut) Mul(other Permut) Permut {
	return Permut{From: p.From.MulProduct(other.From), To: p.To.MulProduct(other.To)}
}

// Apply substitutes, for every (from,to) pair, from by to in orb.
func (p Permut) Apply(orb orbital.Orbital) orbital.Orbital {
	for i := 0; i < p.From.Len(); i++ {
		if p.From.At(i).Equal(orb) {
			return p.To.At(i)
		}
	}
	return orb
}

// Equal reports value equality of the two orbital tuples.
func (p Permut) Equal(other Permut) bool {
	return p.From.Equal(other.From) && p.To.Equal(other.To)
}

// Less gives an artificial order used for canonicalisation.
func (p Permut) Less(other Permut) bool {
	if !p.From.Equal(other.From) {
		return p.From.Less(other.From)
	}
	return p.To.Less(other.To)
}

func (p Permut) String() string {
	if p.IsIdentity() {
		return "1"
	}
	var sb strings.Builder
	sb.WriteString("\\Perm{")
	for i := 0; i < p.From.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s", p.From.At(i))
	}
	sb.WriteByte('/')
	for i := 0; i < p.To.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s", p.To.At(i))
	}
	sb.WriteByte('}')
	return sb.String()
}
