package oper

import (
	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
	"github.com/thoschr/quantwo/sqop"
)

// NewExcitation builds an Exc/Deexc/Exc0/Deexc0 operator from explicit
// occupied and virtual orbital tuples (spec.md §3 "Oper"; grounded on
// operators.cpp Oper::create_Oper(occs, virts, name)).
//
// For Deexc/Deexc0 the roles of occs/virts as creators/annihilators are
// swapped (a de-excitation operator annihilates virtuals and creates
// occupieds). The prefactor is the inverse product of factorials of the
// per-orbital-type multiplicities on each side (SPEC_FULL.md Supplemented
// Feature 2), which for a same-type pure single/double excitation reduces
// to the familiar 1/(exccl!)^2 symmetry factor but is exact for mixed-type
// excitations too (e.g. one occupied and one active line).
func NewExcitation(t matrices.OpType, occs, virts container.Product[orbital.Orbital], name string) (Oper, error) {
	if t != matrices.Exc && t != matrices.Deexc && t != matrices.Exc0 && t != matrices.Deexc0 {
		return Oper{}, qerr.Enginef("oper", "NewExcitation: unsupported type %s", t)
	}
	creatorSide, annihilatorSide := virts, occs
	if t == matrices.Deexc || t == matrices.Deexc0 {
		creatorSide, annihilatorSide = occs, virts
	}
	return buildExcitationOper(t, creatorSide, annihilatorSide, name)
}

// buildExcitationOper assembles the operator from an already-resolved
// creator-side/annihilator-side pair (no occ/virt role swapping).
func buildExcitationOper(t matrices.OpType, creatorSide, annihilatorSide container.Product[orbital.Orbital], name string) (Oper, error) {
	ncrea, nanni := creatorSide.Len(), annihilatorSide.Len()
	nmax := ncrea
	if nanni > nmax {
		nmax = nanni
	}

	isFake := t == matrices.Exc0 || t == matrices.Deexc0

	var sq container.Product[sqop.SQOp]
	porbs := container.Empty[orbital.Orbital]()
	sumIdx := container.NewOrbitalSet()
	fakeIdx := container.NewOrbitalSet()
	symCrea := map[orbital.Type]int{}
	symAnni := map[orbital.Type]int{}

	for i := 0; i < nmax; i++ {
		var sharedSpin orbital.SpinType
		haveSpin := false
		if i < ncrea {
			o := creatorSide.At(i)
			sharedSpin, haveSpin = o.Spin, true
			sq = sq.Mul(sqop.New(sqop.Creator, o))
			porbs = porbs.Mul(o)
			sumIdx.Add(o)
			if isFake {
				fakeIdx.Add(o)
			}
			symCrea[o.Typ]++
		}
		if i < nanni {
			o := annihilatorSide.At(i)
			if haveSpin && sharedSpin != orbital.NoSpin {
				o = o.WithSpin(sharedSpin)
			}
			sq = sq.Mul(sqop.New(sqop.Annihilator, o))
			porbs = porbs.Mul(o)
			sumIdx.Add(o)
			if isFake {
				fakeIdx.Add(o)
			}
			symAnni[o.Typ]++
		}
	}

	prefacInv := factor.One()
	for _, n := range symCrea {
		prefacInv = prefacInv.Mul(factorial(n))
	}
	for _, n := range symAnni {
		prefacInv = prefacInv.Mul(factorial(n))
	}

	return Oper{
		Mat:         matrices.New(t, porbs, name),
		SQProd:      sq,
		SumIndx:     sumIdx,
		FakeSumIndx: fakeIdx,
		Prefac:      factor.One().Div(prefacInv),
	}, nil
}

func factorial(n int) factor.Factor {
	f := factor.One()
	for i := 2; i <= n; i++ {
		f = f.Mul(factor.FromInt(int64(i)))
	}
	return f
}

// NewGeneralized builds a parameterised Exc/Deexc operator whose orbital
// names are looked up per orbital.Type from orbNames, using orbTypes[0]
// (creator-type slots) and orbTypes[1] (annihilator-type slots) to decide,
// for each slot, which free name (and which repeated-letter suffix) to use
// (spec.md §4.2/§4.3 "orbtypes"; grounded on operators.cpp
// Oper::create_Oper(exccl, orbnames, orbtypes, name, lm)).
func NewGeneralized(t matrices.OpType, orbNames map[orbital.Type]orbital.Orbital, orbTypes [2][]orbital.Type, name string) (Oper, error) {
	build := func(types []orbital.Type) (container.Product[orbital.Orbital], error) {
		out := container.Empty[orbital.Orbital]()
		seen := map[orbital.Type]int{}
		for _, ot := range types {
			base, ok := orbNames[ot]
			if !ok {
				return out, qerr.Enginef("oper", "no free orbital name registered for type %s", ot)
			}
			idx := seen[ot]
			seen[ot]++
			o := base
			if idx > 0 {
				o = orbital.NextLetterInFamily(base)
				for k := 1; k < idx; k++ {
					o = orbital.NextLetterInFamily(o)
				}
			}
			out = out.Mul(o)
		}
		return out, nil
	}
	creas, err := build(orbTypes[0])
	if err != nil {
		return Oper{}, err
	}
	annis, err := build(orbTypes[1])
	if err != nil {
		return Oper{}, err
	}
	return buildExcitationOper(t, creas, annis, name)
}
