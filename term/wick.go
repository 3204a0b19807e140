package term

import (
	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/sqop"
)

// TermSum is the Sum<Term,factor> of spec.md §4.4: every distinct
// contraction pattern Wick's theorem produces is its own entry, so the
// keyEqual predicate never merges (insertion order is the contraction
// tree's order, per the "Ordering guarantee").
type TermSum = container.Sum[Term, factor.Factor]

func noMerge(Term, Term) bool { return false }

// NewTermSum returns an empty TermSum.
func NewTermSum() TermSum {
	return container.NewSum[Term, factor.Factor](noMerge, factorAdd, factor.Zero())
}

type wickItem struct {
	idx    int
	orb    orbital.Orbital
	gender sqop.Gender
}

type wickBranch struct {
	survivingIdx []int
	krons        []matrices.Kronecker
	sign         int
}

func typeCompatible(a, b orbital.Type) bool {
	return a == b || a == orbital.Gen || b == orbital.Gen
}

// contractible reports whether two operators can be paired by a Wick
// contraction: one must be a Creator and the other an Annihilator (in
// whichever gender convention the caller chose), acting on compatible
// orbital types. When genw is set (generalised Wick's theorem), a pair of
// General-gender operators (active/GenT lines in particle-hole form) may
// also contract, producing an active-space density-matrix element
// (represented as an ordinary Kronecker rather than a distinct
// density-matrix list).
func contractible(a, b wickItem, genw bool) bool {
	if !typeCompatible(a.orb.Typ, b.orb.Typ) {
		return false
	}
	if (a.gender == sqop.Creator && b.gender == sqop.Annihilator) ||
		(a.gender == sqop.Annihilator && b.gender == sqop.Creator) {
		return true
	}
	return genw && a.gender == sqop.General && b.gender == sqop.General
}

// wickBranches is the recursive core of Wick's theorem (spec.md §4.4
// "wickstheorem"): pick the first remaining operator and either leave it
// normal-ordered, or contract it with a compatible later operator, paying a
// sign for every operator crossed in between.
func wickBranches(items []wickItem, genw bool) []wickBranch {
	if len(items) == 0 {
		return []wickBranch{{}}
	}
	first := items[0]
	rest := items[1:]
	var out []wickBranch

	for _, b := range wickBranches(rest, genw) {
		out = append(out, wickBranch{
			survivingIdx: append([]int{first.idx}, b.survivingIdx...),
			krons:        b.krons,
			sign:         orOne(b.sign),
		})
	}

	for k := range rest {
		if !contractible(first, rest[k], genw) {
			continue
		}
		newRest := make([]wickItem, 0, len(rest)-1)
		newRest = append(newRest, rest[:k]...)
		newRest = append(newRest, rest[k+1:]...)
		crossSign := 1
		if k%2 == 1 {
			crossSign = -1
		}
		for _, b := range wickBranches(newRest, genw) {
			out = append(out, wickBranch{
				survivingIdx: b.survivingIdx,
				krons:        append(append([]matrices.Kronecker{}, b.krons...), matrices.NewKronecker(first.orb, rest[k].orb)),
				sign:         orOne(b.sign) * crossSign,
			})
		}
	}
	return out
}

func orOne(sign int) int {
	if sign == 0 {
		return 1
	}
	return sign
}

// wickCore runs the recursive pairing over t.OpProd, optionally mapping
// genders to their particle-hole form first, and assembles one Term per
// surviving branch.
func (t Term) wickCore(fullyContractedOnly, genw, ph bool) TermSum {
	orig := t.OpProd.Slice()
	items := make([]wickItem, len(orig))
	genderOf := func(op sqop.SQOp) sqop.Gender {
		if ph {
			return op.GenderPH()
		}
		return op.Gender
	}
	for i, op := range orig {
		items[i] = wickItem{idx: i, orb: op.Orb, gender: genderOf(op)}
	}

	out := NewTermSum()
	for _, b := range wickBranches(items, genw) {
		if fullyContractedOnly && len(b.survivingIdx) != 0 {
			continue
		}
		nt := t.clone()
		newOps := container.Empty[sqop.SQOp]()
		for _, idx := range b.survivingIdx {
			newOps = newOps.Mul(sqop.New(genderOf(orig[idx]), orig[idx].Orb))
		}
		nt.OpProd = newOps
		for _, k := range b.krons {
			nt.KProd = nt.KProd.Mul(k)
		}
		if b.sign < 0 {
			nt.Prefac = nt.Prefac.Neg()
		}
		out = out.Add(nt, nt.Prefac)
	}
	return out
}

// WicksTheorem expands the term into its full set of normal-ordered and
// contracted descendants (spec.md §4.4). The engine works exclusively in
// particle-hole formalism relative to a closed-shell reference (occupied
// creators are holes), so contractibility is always judged on the
// particle-hole gender mapping; genw selects the generalised form, which
// additionally allows active/GenT operators to contract among themselves.
func (t Term) WicksTheorem(genw bool) TermSum {
	return t.wickCore(false, genw, true)
}

// NormalOrder runs the same recursive pairing using the operators' literal
// (non particle-hole-mapped) genders — the "true vacuum" convention kept
// for completeness and for testing against operators that were already
// built in creator/annihilator form without a PH transform.
func (t Term) NormalOrder(fullyContractedOnly bool) TermSum {
	return t.wickCore(fullyContractedOnly, false, false)
}

// NormalOrderPH runs the recursive pairing using particle-hole gender
// mapping, as used throughout the rest of the pipeline.
func (t Term) NormalOrderPH(fullyContractedOnly bool) TermSum {
	return t.wickCore(fullyContractedOnly, false, true)
}
