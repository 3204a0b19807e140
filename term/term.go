// Package term implements Term, the central aggregate of the derivation
// engine (spec.md §3 "Term"), and the algebraic engine built on top of it:
// Wick's theorem (wick.go), spin integration (spin.go), reduction and
// matrix classification (reduce.go), antisymmetric expansion (antisym.go),
// structural equality (equal.go) and canonical output (canon.go).
package term

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/oper"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
	"github.com/thoschr/quantwo/sqop"
)

// tracer traces with key 'quantwo.term'.
func tracer() tracing.Trace {
	return tracing.Select("quantwo.term")
}

// Permuts is the Sum<Permut,TFactor> of spec.md §3: the symmetry operators
// still to be applied to a term, each with a weighting factor.
type Permuts = container.Sum[matrices.Permut, factor.Factor]

func permutEqual(a, b matrices.Permut) bool { return a.Equal(b) }
func factorAdd(a, b factor.Factor) factor.Factor { return a.Add(b) }

// NewPermuts returns an empty Permuts accumulator.
func NewPermuts() Permuts {
	return container.NewSum[matrices.Permut, factor.Factor](permutEqual, factorAdd, factor.Zero())
}

// Term is the central aggregate: a product of surviving second-quantised
// operators, a product of Kronecker contraction constraints, a product of
// tensors, summation index sets, a scalar prefactor, the connection
// constraints inherited from the lexic layer, the symmetry operators still
// to be applied, and the per-orbital-type "last assigned name" cursor
// (spec.md §3).
type Term struct {
	OpProd      container.Product[sqop.SQOp]
	KProd       container.Product[matrices.Kronecker]
	Mat         container.Product[matrices.Matrices]
	SumIndx     container.OrbitalSet
	RealSumIndx container.OrbitalSet
	Prefac      factor.Factor
	Connections []container.Product[container.Int]
	Perm        Permuts
	LastOrb     map[orbital.Type]orbital.Orbital

	// nLoops, nIntLoops and nOcc are the loop and occupied-index counts
	// recorded by SpinIntegration. The external-line orbitals are not
	// stored: the ExtIndx method derives them from OpProd, Mat and SumIndx
	// (spec.md §3 invariant).
	nLoops, nIntLoops, nOcc int
}

// New creates an empty term: prefactor 1, one placeholder None matrix
// (spec.md §3 "Lifecycle": "A Term is created empty (addmatrix(empty))").
func New() Term {
	t := Term{
		Prefac:  factor.One(),
		SumIndx: container.NewOrbitalSet(),
		Perm:    NewPermuts(),
		LastOrb: map[orbital.Type]orbital.Orbital{},
	}
	t.Mat = t.Mat.Mul(matrices.New(matrices.None, container.Empty[orbital.Orbital](), ""))
	return t
}

// SetLastOrb records orb as the last orbital name claimed for its type,
// optionally only if it is larger than what is already recorded
// (SPEC_FULL.md Supplemented Feature 4).
func (t *Term) SetLastOrb(orb orbital.Orbital, onlyIfLarger bool) {
	if onlyIfLarger {
		if cur, ok := t.LastOrb[orb.Typ]; ok && !cur.Less(orb) {
			return
		}
	}
	t.LastOrb[orb.Typ] = orb
}

// FreeOrbName returns an orbital name for typ that does not clash with
// LastOrb[typ] nor with any index already bound in SumIndx, then advances
// the cursor (spec.md §4.4 "freeorbname").
func (t *Term) FreeOrbName(typ orbital.Type) orbital.Orbital {
	base, ok := t.LastOrb[typ]
	if !ok {
		base = defaultLetter(typ)
		if !t.collides(base) {
			t.LastOrb[typ] = base
			return base
		}
	}
	cand := orbital.NextLetterInFamily(base)
	for t.collides(cand) {
		cand = orbital.NextLetterInFamily(cand)
	}
	t.LastOrb[typ] = cand
	return cand
}

func (t *Term) collides(o orbital.Orbital) bool {
	return t.SumIndx.Contains(o)
}

func defaultLetter(typ orbital.Type) orbital.Orbital {
	switch typ {
	case orbital.Occ:
		return orbital.NewTyped("i", orbital.Occ, orbital.NoSpin)
	case orbital.Virt:
		return orbital.NewTyped("a", orbital.Virt, orbital.NoSpin)
	case orbital.Act:
		return orbital.NewTyped("t", orbital.Act, orbital.NoSpin)
	case orbital.GenT:
		return orbital.NewTyped("q", orbital.GenT, orbital.NoSpin)
	default:
		return orbital.NewTyped("p", orbital.Gen, orbital.NoSpin)
	}
}

// MulOper appends an operator's matrix, merges its summation indices (fake
// ones excluded from RealSumIndx), multiplies the prefactor, and appends
// its SQOp product (spec.md §4.4 "operator *= Oper").
func (t Term) MulOper(o oper.Oper) Term {
	out := t.clone()
	out.Mat = out.Mat.Mul(o.Mat)
	out.OpProd = out.OpProd.MulProduct(o.SQProd)
	out.Prefac = out.Prefac.Mul(o.Prefac)
	for _, orb := range o.SumIndx.Slice() {
		out.SumIndx.Add(orb)
	}
	for _, orb := range o.RealSumIndx().Slice() {
		out.RealSumIndx.Add(orb)
	}
	return out
}

// MulFactor multiplies the prefactor by fac.
func (t Term) MulFactor(fac factor.Factor) Term {
	out := t.clone()
	out.Prefac = out.Prefac.Mul(fac)
	return out
}

// MulPermut appends a permutation operator to every matrix/SQOp by renaming
// orbitals in place (applying the permutation once to the whole term,
// as opposed to AddPermut which queues it as a symmetrisation to apply
// later).
func (t Term) MulPermut(p matrices.Permut) Term {
	return t.Permute(p)
}

// AddPermut queues p (with weight 1) as a symmetry operator still to be
// applied when the term is finally emitted.
func (t Term) AddPermut(p matrices.Permut) Term {
	return t.AddPermutWeighted(p, factor.One())
}

// AddPermutWeighted queues p with an explicit weighting factor.
func (t Term) AddPermutWeighted(p matrices.Permut, fac factor.Factor) Term {
	out := t.clone()
	out.Perm = out.Perm.Add(p, fac)
	return out
}

// AddConnection records one connection-constraint group (spec.md §3
// "connections"; 1-based indices into Mat, sign = required-connected vs
// required-disconnected).
func (t Term) AddConnection(group container.Product[container.Int]) Term {
	out := t.clone()
	out.Connections = append(append([]container.Product[container.Int]{}, out.Connections...), group)
	return out
}

// AddSummation binds every orbital of orbs as a (real) summation index.
func (t Term) AddSummation(orbs container.Product[orbital.Orbital]) Term {
	out := t.clone()
	for i := 0; i < orbs.Len(); i++ {
		out.SumIndx.Add(orbs.At(i))
		out.RealSumIndx.Add(orbs.At(i))
	}
	return out
}

// AddMatrix appends a matrix to Mat.
func (t Term) AddMatrix(m matrices.Matrices) Term {
	out := t.clone()
	out.Mat = out.Mat.Mul(m)
	return out
}

// ReplaceMatrix overwrites the matrix at position ipos (0-based).
func (t Term) ReplaceMatrix(m matrices.Matrices, ipos int) (Term, error) {
	if ipos < 0 || ipos >= t.Mat.Len() {
		return t, qerr.Enginef("term", "ReplaceMatrix: position %d out of range [0,%d)", ipos, t.Mat.Len())
	}
	out := t.clone()
	items := out.Mat.Slice()
	items[ipos] = m
	out.Mat = container.Of(items...)
	return out, nil
}

// clone makes a defensive value copy sharing no mutable backing state with
// t (container.Product values are already copy-on-write-safe; LastOrb and
// SumIndx need an explicit copy).
func (t Term) clone() Term {
	out := t
	out.LastOrb = make(map[orbital.Type]orbital.Orbital, len(t.LastOrb))
	for k, v := range t.LastOrb {
		out.LastOrb[k] = v
	}
	out.SumIndx = t.SumIndx.Clone()
	out.RealSumIndx = t.RealSumIndx.Clone()
	out.Connections = append([]container.Product[container.Int]{}, t.Connections...)
	return out
}

// ExtIndx computes the external-line orbitals: every orbital appearing in
// OpProd or Mat that is not bound in SumIndx (spec.md §3 invariant).
func (t Term) ExtIndx() container.OrbitalSet {
	ext := container.NewOrbitalSet()
	t.OpProd.ForEach(func(_ int, op sqop.SQOp) {
		if !t.SumIndx.Contains(op.Orb) {
			ext.Add(op.Orb)
		}
	})
	t.Mat.ForEach(func(_ int, m matrices.Matrices) {
		for i := 0; i < m.Orbs.Len(); i++ {
			o := m.Orbs.At(i)
			if !t.SumIndx.Contains(o) {
				ext.Add(o)
			}
		}
	})
	return ext
}

// IsZero reports whether the term's prefactor is (numerically) below
// minfac, i.e. should be treated as zero (spec.md §4.3 addterm).
func (t Term) IsZero(minfac float64) bool {
	return t.Prefac.LessThanAbs(minfac)
}

// ResetPrefac sets the prefactor to one.
func (t Term) ResetPrefac() Term {
	out := t.clone()
	out.Prefac = factor.One()
	return out
}

// Validate checks the structural invariants of spec.md §8 property 2:
// every connection entry's indices fall inside [1, Mat.Len()].
func (t Term) Validate() error {
	for _, group := range t.Connections {
		for i := 0; i < group.Len(); i++ {
			idx := int(group.At(i))
			abs := idx
			if abs < 0 {
				abs = -abs
			}
			if abs < 1 || abs > t.Mat.Len() {
				return qerr.Enginef("term", "connection index %d out of range [1,%d]", idx, t.Mat.Len())
			}
		}
	}
	return nil
}

// Permute applies p once to every orbital occurring in OpProd, Mat and
// SumIndx (spec.md §4.4 "permute").
func (t Term) Permute(p matrices.Permut) Term {
	if p.IsIdentity() {
		return t
	}
	out := t.clone()
	out.OpProd = out.OpProd.Map(func(op sqop.SQOp) sqop.SQOp {
		return sqop.New(op.Gender, p.Apply(op.Orb))
	})
	out.Mat = out.Mat.Map(func(m matrices.Matrices) matrices.Matrices {
		return m.MapOrbs(p.Apply)
	})
	newSum := container.NewOrbitalSet()
	for _, o := range out.SumIndx.Slice() {
		newSum.Add(p.Apply(o))
	}
	out.SumIndx = newSum
	newReal := container.NewOrbitalSet()
	for _, o := range out.RealSumIndx.Slice() {
		newReal.Add(p.Apply(o))
	}
	out.RealSumIndx = newReal
	return out
}

// sortedMatNames returns the names of the term's matrices in sorted order;
// nothing in the module calls it at present.
func (t Term) sortedMatNames() []string {
	names := make([]string, 0, t.Mat.Len())
	t.Mat.ForEach(func(_ int, m matrices.Matrices) { names = append(names, m.Name) })
	sort.Strings(names)
	return names
}
