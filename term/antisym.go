package term

import (
	"github.com/thoschr/quantwo/matrices"
)

// Antisymmetrized reports whether any surviving matrix still carries the
// antisymmetric-integral flag.
func (t Term) Antisymmetrized() bool {
	found := false
	t.Mat.ForEach(func(_ int, m matrices.Matrices) {
		if m.AntisymForm {
			found = true
		}
	})
	return found
}

// ExpandIntegral rewrites the matrix at ipos from its antisymmetrised form
// <AB||CD> into one of its two normal-form halves: firstPart selects
// <AB|CD>, !firstPart selects <AB|DC> (spec.md §4.4 "expandintegral").
// Returns the term unchanged (ok=false) if that matrix was not
// antisymmetrised.
func (t Term) ExpandIntegral(ipos int, firstPart bool) (out Term, ok bool) {
	m := t.Mat.At(ipos)
	if !m.AntisymForm {
		return t, false
	}
	nt, err := t.ReplaceMatrix(m.ExpandAntisym(firstPart), ipos)
	if err != nil {
		return t, false
	}
	return nt, true
}

// ExpandAntisym expands every antisymmetrised matrix of the term into a
// two-term sum: <AB||CD> = <AB|CD> - <AB|DC>, the second half carrying the
// opposite sign (spec.md §4.4, §8 property 6). A term with no
// antisymmetrised matrix contributes itself, unchanged.
func (t Term) ExpandAntisym() TermSum {
	idx := firstAntisymMatrix(t)
	if idx == -1 {
		out := NewTermSum()
		return out.Add(t, t.Prefac)
	}
	first, _ := t.ExpandIntegral(idx, true)
	second, _ := t.ExpandIntegral(idx, false)
	second.Prefac = second.Prefac.Neg()

	out := NewTermSum()
	for _, e := range first.ExpandAntisym().Entries() {
		out = out.Add(e.Key, e.Value)
	}
	for _, e := range second.ExpandAntisym().Entries() {
		out = out.Add(e.Key, e.Value)
	}
	return out
}

func firstAntisymMatrix(t Term) int {
	idx := -1
	t.Mat.ForEach(func(i int, m matrices.Matrices) {
		if idx == -1 && m.AntisymForm {
			idx = i
		}
	})
	return idx
}
