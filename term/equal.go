package term

import (
	"github.com/cnf/structhash"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
)

// matrixSignature is the part of a Matrices value that survives
// renaming of bound indices: everything matrixkind/name/type contribute,
// deliberately excluding the concrete orbital tuple.
type matrixSignature struct {
	Type     matrices.OpType
	Name     string
	SpinSym  matrices.SpinSym
	ExcClass int16
	IntLines int16
	IntVirt  int16
}

func signatureOf(m matrices.Matrices) matrixSignature {
	return matrixSignature{
		Type: m.Type, Name: m.Name, SpinSym: m.SpinSym,
		ExcClass: m.ExcClass, IntLines: m.IntLines, IntVirt: m.IntVirt,
	}
}

// coarseHash is the cheap, renaming-invariant fingerprint of a term used to
// short-circuit Equal before attempting the expensive permutation search
// (spec.md §4.4 "equal": "(nloops, nintloops, nocc, matrixkind) as a coarse
// hash"). structhash gives us a stable string key over the signature
// multiset the same way the teacher's earley parser hashes (item, state)
// pairs for its item-set cache.
func (t Term) coarseHash() string {
	sigs := make([]matrixSignature, 0, t.Mat.Len())
	t.Mat.ForEach(func(_ int, m matrices.Matrices) { sigs = append(sigs, signatureOf(m)) })
	sortSignatures(sigs)
	key := struct {
		NLoops, NIntLoops, NOcc int
		NOps                    int
		Sigs                    []matrixSignature
	}{t.nLoops, t.nIntLoops, t.nOcc, t.OpProd.Len(), sigs}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func sortSignatures(s []matrixSignature) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func less(a, b matrixSignature) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.ExcClass != b.ExcClass {
		return a.ExcClass < b.ExcClass
	}
	if a.IntLines != b.IntLines {
		return a.IntLines < b.IntLines
	}
	return a.IntVirt < b.IntVirt
}

// Equal reports whether t and other are the same term up to a renaming of
// bound indices and a reordering of indistinguishable matrices (spec.md
// §4.4 "equal"). On success, the returned Permut maps other's bound
// orbitals onto t's.
func (t Term) Equal(other Term) (bool, matrices.Permut) {
	if t.nLoops != other.nLoops || t.nIntLoops != other.nIntLoops || t.nOcc != other.nOcc {
		return false, matrices.Permut{}
	}
	if t.Mat.Len() != other.Mat.Len() || t.OpProd.Len() != other.OpProd.Len() {
		return false, matrices.Permut{}
	}
	if !t.ExtIndx().Equal(other.ExtIndx()) {
		return false, matrices.Permut{}
	}
	if t.coarseHash() != other.coarseHash() {
		return false, matrices.Permut{}
	}

	groupsT := groupByType(t.SumIndx.Slice())
	groupsO := groupByType(other.SumIndx.Slice())
	for typ, g := range groupsT {
		if len(g) != len(groupsO[typ]) {
			return false, matrices.Permut{}
		}
	}

	var found matrices.Permut
	ok := permuteGroups(groupsO, groupsT, func(from, to []orbital.Orbital) bool {
		p := matrices.NewPermut(container.Of(from...), container.Of(to...))
		renamed := other.Permute(p)
		if renamed.Mat.Equal(t.Mat) && renamed.OpProd.Equal(t.OpProd) && renamed.Prefac.Equal(t.Prefac) {
			found = p
			return true
		}
		return false
	})
	return ok, found
}

func groupByType(orbs []orbital.Orbital) map[orbital.Type][]orbital.Orbital {
	out := map[orbital.Type][]orbital.Orbital{}
	for _, o := range orbs {
		out[o.Typ] = append(out[o.Typ], o)
	}
	return out
}

// permuteGroups tries every combination of per-type permutations of from's
// groups against to's groups (which stay fixed, defining the target
// order), calling try(fromPermuted, toFlat) for each; stops at the first
// true.
func permuteGroups(from, to map[orbital.Type][]orbital.Orbital, try func(from, to []orbital.Orbital) bool) bool {
	types := make([]orbital.Type, 0, len(to))
	for typ := range to {
		types = append(types, typ)
	}
	toFlat := make([]orbital.Orbital, 0)
	for _, typ := range types {
		toFlat = append(toFlat, to[typ]...)
	}

	var rec func(i int, acc []orbital.Orbital) bool
	rec = func(i int, acc []orbital.Orbital) bool {
		if i == len(types) {
			return try(append([]orbital.Orbital{}, acc...), toFlat)
		}
		group := from[types[i]]
		return permute(group, func(p []orbital.Orbital) bool {
			return rec(i+1, append(acc, p...))
		})
	}
	return rec(0, nil)
}

// permute calls f with every ordering of items, stopping at the first true.
func permute(items []orbital.Orbital, f func([]orbital.Orbital) bool) bool {
	n := len(items)
	cur := append([]orbital.Orbital{}, items...)
	var rec func(k int) bool
	rec = func(k int) bool {
		if k == n {
			return f(cur)
		}
		for i := k; i < n; i++ {
			cur[k], cur[i] = cur[i], cur[k]
			if rec(k + 1) {
				return true
			}
			cur[k], cur[i] = cur[i], cur[k]
		}
		return false
	}
	if n == 0 {
		return f(cur)
	}
	return rec(0)
}
