package term

import (
	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/sqop"
)

// ReduceTerm consumes every Kronecker (a,b) in KProd by replacing b by a
// throughout OpProd, Mat and SumIndx, then drops it (spec.md §4.4
// "reduceTerm"). Post-condition: KProd is empty.
func (t Term) ReduceTerm() Term {
	out := t
	for out.KProd.Len() > 0 {
		k := out.KProd.At(0)
		tracer().Debugf("reduceTerm: substituting %s by %s", k.B, k.A)
		out.KProd = out.KProd.Without(0)
		out = out.substitute(k.B, k.A)
	}
	return out
}

// substitute replaces every occurrence of from by to across the term's
// operator string, matrix tuples and summation-index bookkeeping.
func (t Term) substitute(from, to orbital.Orbital) Term {
	out := t.clone()
	out.OpProd = out.OpProd.Map(func(op sqop.SQOp) sqop.SQOp { return op.Replace(from, to) })
	out.Mat = out.Mat.Map(func(m matrices.Matrices) matrices.Matrices { return m.Replace(from, to) })
	wasBound := out.SumIndx.Contains(from)
	out.SumIndx.Remove(from)
	out.RealSumIndx.Remove(from)
	if wasBound {
		out.SumIndx.Add(to)
	}
	return out
}

// MatrixKind classifies every matrix of the term by the Kállay-Surján
// scheme: excitation class (creator count above the Fermi level minus
// annihilator count, folded to an absolute class), the number of internal
// (summed) lines, and the number of those that are virtual (spec.md §4.4
// "matrixkind"). Classification only makes sense on a reduced term (no
// Kroneckers left, connections already consumed), matching the original's
// comment "Determine connections (in reduced term!)".
func (t Term) MatrixKind() Term {
	out := t.clone()
	items := out.Mat.Slice()
	for i, m := range items {
		exccl, intlines, intvirt := classifyMatrix(m, out.SumIndx)
		items[i] = m.SetKind(exccl, intlines, intvirt)
	}
	out.Mat = container.Of(items...)
	return out
}

func classifyMatrix(m matrices.Matrices, sumIdx container.OrbitalSet) (exccl, intlines, intvirt int16) {
	var ncrea, nanni int
	for i := 0; i < m.Orbs.Len(); i++ {
		o := m.Orbs.At(i)
		if sumIdx.Contains(o) {
			intlines++
			if o.Typ == orbital.Virt {
				intvirt++
			}
		}
	}
	switch m.Type {
	case matrices.Exc, matrices.Exc0:
		ncrea = m.Orbs.Len() / 2
		nanni = m.Orbs.Len() - ncrea
	case matrices.Deexc, matrices.Deexc0:
		nanni = m.Orbs.Len() / 2
		ncrea = m.Orbs.Len() - nanni
	}
	cl := ncrea - nanni
	if cl < 0 {
		cl = -cl
	}
	return int16(cl), intlines, intvirt
}

// DeleteNoneMats drops every matrix of kind None (spec.md §4.4
// "deleteNoneMats"); must run after connection bookkeeping has already
// consumed the positional indices of those placeholders.
func (t Term) DeleteNoneMats() Term {
	out := t.clone()
	kept := make([]matrices.Matrices, 0, out.Mat.Len())
	out.Mat.ForEach(func(_ int, m matrices.Matrices) {
		if m.Type != matrices.None {
			kept = append(kept, m)
		}
	})
	out.Mat = container.Of(kept...)
	return out
}

// Brillouin reports whether the term is a pure Fock occ-virt block with no
// other surviving matrices, and hence vanishes at the reference determinant
// (spec.md §4.4 "brilloin").
func (t Term) Brillouin() bool {
	if t.Mat.Len() != 1 {
		return false
	}
	m := t.Mat.At(0)
	if m.Type != matrices.Fock || m.Orbs.Len() != 2 {
		return false
	}
	a, b := m.Orbs.At(0), m.Orbs.At(1)
	return (a.Typ == orbital.Occ && b.Typ == orbital.Virt) || (a.Typ == orbital.Virt && b.Typ == orbital.Occ)
}

// PropertConnect verifies the connection constraints inherited from the
// lexic layer: for every recorded group, the matrices named by its
// (1-based, signed) indices must share at least one summation index when
// the group's sign is positive (Connect), or share none when negative
// (Disconnect) (spec.md §4.4 "properconnect").
func (t Term) PropertConnect() bool {
	for _, group := range t.Connections {
		if !t.checkConnectionGroup(group) {
			return false
		}
	}
	return true
}

func (t Term) checkConnectionGroup(group container.Product[container.Int]) bool {
	if group.Len() == 0 {
		return true
	}
	wantConnected := group.At(0) > 0
	mats := make([]matrices.Matrices, group.Len())
	for i := 0; i < group.Len(); i++ {
		idx := int(group.At(i))
		if idx < 0 {
			idx = -idx
		}
		mats[i] = t.Mat.At(idx - 1)
	}
	shared := false
	for i := 0; i < len(mats) && !shared; i++ {
		for j := i + 1; j < len(mats) && !shared; j++ {
			if sharesIndex(mats[i], mats[j], t.SumIndx) {
				shared = true
			}
		}
	}
	if wantConnected {
		return shared
	}
	return !shared
}

func sharesIndex(a, b matrices.Matrices, sumIdx container.OrbitalSet) bool {
	for i := 0; i < a.Orbs.Len(); i++ {
		oa := a.Orbs.At(i)
		if !sumIdx.Contains(oa) {
			continue
		}
		for j := 0; j < b.Orbs.Len(); j++ {
			if b.Orbs.At(j).Equal(oa) {
				return true
			}
		}
	}
	return false
}
