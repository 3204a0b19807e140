// Package orbital provides the value types that name a tensor index in the
// derivation engine: an orbital letter, its occupation type and its spin.
package orbital

import (
	"fmt"
	"strings"
)

// Type is the occupation class of an orbital.
type Type int8

// The occupation classes recognised by the engine.
const (
	Occ Type = iota
	Virt
	Act
	GenT
	Gen
	MaxType
)

func (t Type) String() string {
	switch t {
	case Occ:
		return "occ"
	case Virt:
		return "virt"
	case Act:
		return "act"
	case GenT:
		return "gent"
	case Gen:
		return "gen"
	default:
		return "?type"
	}
}

// SpinType is the spin label carried by an orbital.
type SpinType int8

// Recognised spin labels.
const (
	NoSpin SpinType = iota
	Alpha
	Beta
	// Gen is the spin-general default (spec.md §6 prog.spinintegr=false):
	// orbitals carry no definite spin label but are not yet spin-summed.
	Gen
	GenS // spin-integrated general spin (spin-summed)
	GenD // spin-difference, used for the triplet part of an operator
)

func (s SpinType) String() string {
	switch s {
	case NoSpin:
		return ""
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Gen:
		return "gen"
	case GenS:
		return "sigma"
	case GenD:
		return "Delta"
	default:
		return "?spin"
	}
}

// Orbital names a tensor index: a letter, its occupation type and its spin.
// Orbitals are value types; two orbitals with identical fields are the same
// index.
type Orbital struct {
	Name string
	Typ  Type
	Spin SpinType
}

// classifyLetter assigns an occupation type to a bare orbital letter,
// following the standard quantum-chemistry convention: i,j,k,... occupied,
// a,b,c,... virtual, t,u,v,... active, p,q,r,s general. See SPEC_FULL.md's
// resolution of the orbital-letter-to-type Open Question.
func classifyLetter(r byte) Type {
	switch {
	case r >= 'i' && r <= 'o':
		return Occ
	case r >= 'a' && r <= 'h':
		return Virt
	case r >= 't' && r <= 'z':
		return Act
	case r >= 'p' && r <= 's':
		return Gen
	default:
		return Gen
	}
}

// New builds an orbital, inferring its type from the first letter of name
// (upper-case letters are classified like their lower-case form) and
// defaulting its spin to NoSpin.
func New(name string) Orbital {
	return Orbital{Name: name, Typ: inferType(name), Spin: NoSpin}
}

// NewWithSpin builds an orbital with an explicit spin, type still inferred.
func NewWithSpin(name string, spin SpinType) Orbital {
	return Orbital{Name: name, Typ: inferType(name), Spin: spin}
}

// NewTyped builds an orbital with an explicit type and spin, bypassing
// letter classification. Used for programmatically constructed orbitals
// (e.g. the general P,Q,R,S lines of a Fock/fluctuation-potential matrix).
func NewTyped(name string, typ Type, spin SpinType) Orbital {
	return Orbital{Name: name, Typ: typ, Spin: spin}
}

func inferType(name string) Type {
	if name == "" {
		return Gen
	}
	r := name[0]
	if r >= 'A' && r <= 'Z' {
		r = r - 'A' + 'a'
	}
	return classifyLetter(r)
}

// LetName strips any trailing digits from the orbital's name, yielding its
// "letter family" (e.g. "a12" -> "a").
func (o Orbital) LetName() string {
	i := len(o.Name)
	for i > 0 && o.Name[i-1] >= '0' && o.Name[i-1] <= '9' {
		i--
	}
	return o.Name[:i]
}

// SameLetterFamily reports whether two orbitals share a letter family.
func (o Orbital) SameLetterFamily(other Orbital) bool {
	return o.LetName() == other.LetName()
}

// WithSpin returns a copy of o with a different spin.
func (o Orbital) WithSpin(s SpinType) Orbital {
	o.Spin = s
	return o
}

// Equal reports value equality.
func (o Orbital) Equal(other Orbital) bool {
	return o == other
}

// Compare orders orbitals lexicographically by (type, name, spin), as
// required for canonicalisation (spec.md §3).
func Compare(a, b Orbital) int {
	if a.Typ != b.Typ {
		if a.Typ < b.Typ {
			return -1
		}
		return 1
	}
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	if a.Spin != b.Spin {
		if a.Spin < b.Spin {
			return -1
		}
		return 1
	}
	return 0
}

// Less implements the container.Orderable constraint.
func (o Orbital) Less(other Orbital) bool {
	return Compare(o, other) < 0
}

func (o Orbital) String() string {
	var sb strings.Builder
	sb.WriteString(o.Name)
	if o.Spin != NoSpin {
		fmt.Fprintf(&sb, "_%s", o.Spin)
	}
	return sb.String()
}

// NextLetterInFamily returns the next unused orbital in the same letter
// family as last, by incrementing a trailing numeric suffix (the family's
// bare letter has no suffix, the next is "1", then "2", ...).
func NextLetterInFamily(last Orbital) Orbital {
	letname := last.LetName()
	suffix := strings.TrimPrefix(last.Name, letname)
	n := 0
	if suffix != "" {
		fmt.Sscanf(suffix, "%d", &n)
	}
	n++
	return Orbital{Name: fmt.Sprintf("%s%d", letname, n), Typ: last.Typ, Spin: last.Spin}
}
