// Package matrices implements named tensors (amplitudes, integrals, Fock
// matrices, ...) and the two small value types built from orbital tuples
// that the algebraic engine contracts against them: Permut and Kronecker.
package matrices

import (
	"fmt"
	"strings"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/orbital"
)

// OpType enumerates the kinds of matrix/operator a Matrices value can
// represent (spec.md §3 "Matrices").
type OpType int8

// The recognised matrix kinds.
const (
	None OpType = iota
	Fock
	OneEl
	FluctP
	XPert
	Exc
	Deexc
	Exc0
	Deexc0
	Interm
	Number
)

func (t OpType) String() string {
	switch t {
	case None:
		return "None"
	case Fock:
		return "Fock"
	case OneEl:
		return "OneEl"
	case FluctP:
		return "FluctP"
	case XPert:
		return "XPert"
	case Exc:
		return "Exc"
	case Deexc:
		return "Deexc"
	case Exc0:
		return "Exc0"
	case Deexc0:
		return "Deexc0"
	case Interm:
		return "Interm"
	case Number:
		return "Number"
	default:
		return "?optype"
	}
}

// SpinSym is the spin symmetry of a matrix.
type SpinSym int8

// The two recognised spin symmetries. Triplet is a stub per Design Note
// 9(iii): any path constructing one must reject it explicitly.
const (
	Singlet SpinSym = iota
	Triplet
)

func (s SpinSym) String() string {
	if s == Triplet {
		return "triplet"
	}
	return "singlet"
}

// Matrices is a named tensor: an ordered orbital tuple, an operator kind,
// spin symmetry, the antisymmetrisation flag, and the bookkeeping fields
// (exccl/intlines/intvirt/connected2) set later by Term.MatrixKind and
// the connection setters below (spec.md §3, §4.4).
type Matrices struct {
	Type        OpType
	Orbs        container.Product[orbital.Orbital]
	Name        string
	SpinSym     SpinSym
	AntisymForm bool

	// ExcClass, IntLines, IntVirt classify the matrix per the
	// Kallay-Surjan scheme (spec.md §4.4 MatrixKind); set to -1 until
	// classified.
	ExcClass int16
	IntLines int16
	IntVirt  int16

	// Connected2 lists, 1-based with sign, the matrices this one shares a
	// summation index with (spec.md §3 "connected2").
	Connected2 container.Product[container.Int]
}

// New builds a Matrices value with default (singlet, not antisymmetrised,
// unclassified) bookkeeping fields.
func New(t OpType, orbs container.Product[orbital.Orbital], name string) Matrices {
	return Matrices{
		Type:     t,
		Orbs:     orbs,
		Name:     name,
		SpinSym:  Singlet,
		ExcClass: -1,
		IntLines: -1,
		IntVirt:  -1,
	}
}

// NewAntisym builds an antisymmetrised two-electron Matrices value.
func NewAntisym(t OpType, orbs container.Product[orbital.Orbital], name string) Matrices {
	m := New(t, orbs, name)
	m.AntisymForm = true
	return m
}

// Equal reports whether two matrices have the same type, orbital tuple,
// name and spin symmetry (spec.md §3: "Two matrices are equal iff type,
// orbs, name, spinsym, and antisym match").
func (m Matrices) Equal(other Matrices) bool {
	return m.Type == other.Type &&
		m.Name == other.Name &&
		m.SpinSym == other.SpinSym &&
		m.AntisymForm == other.AntisymForm &&
		m.Orbs.Equal(other.Orbs)
}

// Less gives an artificial order used for canonicalisation.
func (m Matrices) Less(other Matrices) bool {
	if m.Name != other.Name {
		return m.Name < other.Name
	}
	if m.Type != other.Type {
		return m.Type < other.Type
	}
	return m.Orbs.Less(other.Orbs)
}

// Replace substitutes orb1 by orb2 throughout the orbital tuple.
func (m Matrices) Replace(orb1, orb2 orbital.Orbital) Matrices {
	m.Orbs = m.Orbs.Map(func(o orbital.Orbital) orbital.Orbital {
		if o.Equal(orb1) {
			return orb2
		}
		return o
	})
	return m
}

// MapOrbs rewrites every orbital of the tuple through f, e.g. to apply a
// Permut (spec.md §4.4 "permute").
func (m Matrices) MapOrbs(f func(orbital.Orbital) orbital.Orbital) Matrices {
	m.Orbs = m.Orbs.Map(f)
	return m
}

// SetKind records the Kallay-Surjan classification (spec.md §4.4).
func (m Matrices) SetKind(exccl, intlines, intvirt int16) Matrices {
	m.ExcClass = exccl
	m.IntLines = intlines
	m.IntVirt = intvirt
	return m
}

// SetConnect overwrites the connection list.
func (m Matrices) SetConnect(c container.Product[container.Int]) Matrices {
	m.Connected2 = c
	return m
}

// AddConnect appends one connection index.
func (m Matrices) AddConnect(idx int) Matrices {
	m.Connected2 = m.Connected2.Mul(container.Int(idx))
	return m
}

// IsTwoElectron reports whether the matrix carries pairs of electrons
// (orbs.Len() == 2*npairs), per spec.md §3's invariant for two-electron
// operators.
func (m Matrices) IsTwoElectron() bool {
	switch m.Type {
	case FluctP:
		return true
	default:
		return false
	}
}

// ExpandAntisym expands an antisymmetrised two-electron matrix
// <AB||CD> = <AB|CD> - <AB|DC> into one of its two normal-form halves
// (spec.md §4.4 ExpandIntegral/ExpandAntisym): firstPart selects <AB|CD>,
// !firstPart selects <AB|DC> (columns 3 and 4, 0-based positions 2 and 3,
// swapped).
func (m Matrices) ExpandAntisym(firstPart bool) Matrices {
	out := m
	out.AntisymForm = false
	if firstPart || m.Orbs.Len() < 4 {
		return out
	}
	orbs := m.Orbs.Slice()
	orbs[2], orbs[3] = orbs[3], orbs[2]
	out.Orbs = container.Of(orbs...)
	return out
}

func (m Matrices) String() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	if m.Orbs.Len() > 0 {
		sb.WriteByte('[')
		for i := 0; i < m.Orbs.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s", m.Orbs.At(i))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
