// Package sqop implements a single second-quantised operator: a creator,
// annihilator or general operator acting on one orbital.
package sqop

import (
	"fmt"

	"github.com/thoschr/quantwo/orbital"
)

// Gender is the kind of second-quantised operator.
type Gender int8

// The three operator genders.
const (
	Creator Gender = iota
	Annihilator
	General
)

func (g Gender) String() string {
	switch g {
	case Creator:
		return "creator"
	case Annihilator:
		return "annihilator"
	default:
		return "general"
	}
}

// SQOp is a single second-quantised operator: (creator|annihilator|general)
// acting on an orbital.
type SQOp struct {
	Gender Gender
	Orb    orbital.Orbital
}

// New builds a second-quantised operator.
func New(gender Gender, orb orbital.Orbital) SQOp {
	return SQOp{Gender: gender, Orb: orb}
}

// GenderPH returns the gender this operator takes in particle-hole
// formalism: an occupied creator becomes an annihilator and vice versa;
// active and general-template orbitals always become General (spec.md §3,
// SPEC_FULL.md Supplemented Feature 1).
func (s SQOp) GenderPH() Gender {
	switch s.Orb.Typ {
	case orbital.Occ:
		if s.Gender == Creator {
			return Annihilator
		}
		if s.Gender == Annihilator {
			return Creator
		}
		return s.Gender
	case orbital.Act, orbital.GenT:
		return General
	default:
		return s.Gender
	}
}

// Equal reports value equality.
func (s SQOp) Equal(other SQOp) bool {
	return s.Gender == other.Gender && s.Orb.Equal(other.Orb)
}

// Less gives an artificial total order: by gender first, then by orbital.
func (s SQOp) Less(other SQOp) bool {
	if s.Gender != other.Gender {
		return s.Gender < other.Gender
	}
	return s.Orb.Less(other.Orb)
}

// Replace substitutes orb1 by orb2 if s acts on orb1, returning a new SQOp.
func (s SQOp) Replace(orb1, orb2 orbital.Orbital) SQOp {
	if s.Orb.Equal(orb1) {
		s.Orb = orb2
	}
	return s
}

func (s SQOp) String() string {
	if s.Gender == Creator {
		return fmt.Sprintf("\\op{%s}^\\dg", s.Orb)
	}
	return fmt.Sprintf("\\op{%s}", s.Orb)
}
