package term

// Finalize runs the full algebraic engine over t and returns the sum of
// surviving descendant Terms, each keyed to its own Prefac (spec.md §2
// control flow: "each Term: Wick → spin-integrate → reduce Kroneckers →
// classify matrices → apply permutation symmetries → canonicalise →
// emit"). genw selects the generalised form of Wick's theorem.
//
// Connection constraints are checked with PropertConnect right after
// ReduceTerm, while Mat still carries the None placeholder its 1-based
// indices assume; DeleteNoneMats only runs once that check has passed.
// Brillouin's theorem is checked per permutation-expanded descendant, after
// DeleteNoneMats, since it requires Mat.Len()==1.
func (t Term) Finalize(genw bool) TermSum {
	out := NewTermSum()
	for _, branch := range t.WicksTheorem(genw).Entries() {
		nt := branch.Key
		nt = nt.SpinIntegration(true)
		nt = nt.ReduceTerm()
		if !nt.PropertConnect() {
			continue
		}
		nt = nt.MatrixKind()
		nt = nt.DeleteNoneMats()
		for _, expanded := range nt.applyPermutations() {
			if expanded.Brillouin() {
				continue
			}
			out = out.Add(expanded, expanded.Prefac)
		}
	}
	return out
}

// applyPermutations expands the term's queued Perm symmetrisers (spec.md
// §4.4 "apply permutation symmetries"): the base term plus, for every
// queued (Permut, weight) entry, one additional copy with that permutation
// applied and the prefactor scaled by weight.
func (t Term) applyPermutations() []Term {
	out := make([]Term, 0, 1+t.Perm.Len())
	out = append(out, t)
	for _, e := range t.Perm.Entries() {
		out = append(out, t.Permute(e.Key).MulFactor(e.Value))
	}
	return out
}
