// Package oper builds Oper values: a constructed compound operator (a
// Hamiltonian part, a bare/parameterised excitation operator, or the
// identity) carrying its own Matrices, its second-quantised operator
// product, its internal summation indices and its prefactor (spec.md §3
// "Oper", §4.3 handle_operator/handle_excitation).
package oper

import (
	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
	"github.com/thoschr/quantwo/sqop"
)

// Oper is a fully constructed compound operator, ready to be multiplied
// into a Term.
type Oper struct {
	Mat         matrices.Matrices
	SQProd      container.Product[sqop.SQOp]
	SumIndx     container.OrbitalSet
	FakeSumIndx container.OrbitalSet
	Prefac      factor.Factor
}

// Identity is the blank operator ("1"): no matrix, no SQOps, prefactor 1.
// It is what reference bra/kets and a not-yet-discovered excitation
// operator (Discover phase) reduce to.
func Identity() Oper {
	return Oper{Mat: matrices.New(matrices.None, container.Empty[orbital.Orbital](), ""), Prefac: factor.One()}
}

// RealSumIndx returns the summation indices visible to the user: SumIndx
// minus FakeSumIndx (spec.md §3 "realsumindx").
func (o Oper) RealSumIndx() container.OrbitalSet {
	return o.SumIndx.Minus(o.FakeSumIndx)
}

// NewHamiltonianPart builds the Fock / one-electron / fluctuation-potential
// / perturbation operator, in the chemist-notation, fully general-index
// form (spec.md §4.3 handle_operator, case (a); grounded on
// operators.cpp Oper::create_Oper(name, antisym)).
//
// The one-electron parts (Fock, OneEl, XPert) use two general lines P,Q ->
// P^dg Q; the two-electron part (FluctP) uses four general lines P,Q,R,S in
// chemical notation (PQ|RS) -> P^dg R^dg S Q (operators.cpp's
// `if (InSet(_type, Ops::Fock, Ops::XPert))` one-electron branch versus its
// FluctP-only else branch). Every part's own Prefac starts at 1, matching
// the convention of every other operator; the two-electron permutation
// symmetry factor of 1/4 is not pre-baked here but is supplied by the
// caller's formula via an explicit \frac token, same as any other numeric
// coefficient (spec.md §8 scenario 1).
func NewHamiltonianPart(t matrices.OpType, name string, antisym bool) (Oper, error) {
	switch t {
	case matrices.Fock, matrices.OneEl, matrices.XPert:
		return oneElectronOper(t, name, antisym), nil
	case matrices.FluctP:
		return twoElectronOper(t, name, antisym), nil
	default:
		return Oper{}, qerr.Enginef("oper", "NewHamiltonianPart: unsupported type %s", t)
	}
}

func oneElectronOper(t matrices.OpType, name string, antisym bool) Oper {
	p := orbital.NewTyped("P", orbital.Gen, orbital.NoSpin)
	q := orbital.NewTyped("Q", orbital.Gen, orbital.NoSpin)
	orbs := container.Of(p, q)
	sq := container.Of(sqop.New(sqop.Creator, p), sqop.New(sqop.Annihilator, q))
	sum := container.NewOrbitalSet(p, q)
	var mat matrices.Matrices
	if antisym {
		mat = matrices.NewAntisym(t, orbs, name)
	} else {
		mat = matrices.New(t, orbs, name)
	}
	return Oper{
		Mat:     mat,
		SQProd:  sq,
		SumIndx: sum,
		Prefac:  factor.One(),
	}
}

func twoElectronOper(t matrices.OpType, name string, antisym bool) Oper {
	p := orbital.NewTyped("P", orbital.Gen, orbital.NoSpin)
	q := orbital.NewTyped("Q", orbital.Gen, orbital.NoSpin)
	r := orbital.NewTyped("R", orbital.Gen, orbital.NoSpin)
	s := orbital.NewTyped("S", orbital.Gen, orbital.NoSpin)
	orbs := container.Of(p, q, r, s)
	sq := container.Of(
		sqop.New(sqop.Creator, p),
		sqop.New(sqop.Creator, r),
		sqop.New(sqop.Annihilator, s),
		sqop.New(sqop.Annihilator, q),
	)
	sum := container.NewOrbitalSet(p, q, r, s)
	var mat matrices.Matrices
	if antisym {
		mat = matrices.NewAntisym(t, orbs, name)
	} else {
		mat = matrices.New(t, orbs, name)
	}
	return Oper{
		Mat:     mat,
		SQProd:  sq,
		SumIndx: sum,
		Prefac:  factor.One(),
	}
}
