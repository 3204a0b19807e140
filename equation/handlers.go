package equation

import (
	"strconv"
	"strings"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/lexic"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/oper"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
	"github.com/thoschr/quantwo/term"
)

// handleBraKet dispatches a Bra/Ket token: a configured reference name
// yields the identity, a configured CSF keyword opens an explicit
// excitation block, anything else is a (possibly parameterised) bare
// excitation operator (spec.md §4.3 "handle_braket").
func (eq *Equation) handleBraKet(lel lexic.Lelem, t *term.Term, excopsonly bool) (oper.Oper, error) {
	if lel.Reference {
		return oper.Identity(), nil
	}
	base, rest := lexic.SplitBase(lel.Name)
	if eq.scanner.IsCSF(base) {
		return eq.handleExplExcitation(t, rest, lel.Lex == lexic.Bra, excopsonly)
	}
	return eq.handleExcitation(t, lel.Name, lel.Lex == lexic.Bra, 0, excopsonly)
}

// handleExplExcitation builds a \tau-style excitation operator from a
// literal orbital list ("^{ab}_{ij}": superscript names the virtual
// (creator) lines, subscript the occupied (annihilator) lines), renaming
// any already-registered bare excitation operator whose free name collides
// with one of these literals (spec.md §4.3 "handle_explexcitation",
// SUPPLEMENTED FEATURE 3).
func (eq *Equation) handleExplExcitation(t *term.Term, suffix string, dg bool, excopsonly bool) (oper.Oper, error) {
	_, supers, subs := lexic.ParseGroups(suffix)
	var virtNames, occNames []string
	if len(supers) > 0 {
		virtNames = lexic.SplitTokens(supers[0])
	}
	if len(subs) > 0 {
		occNames = lexic.SplitTokens(subs[0])
	}
	if len(virtNames) == 0 && len(occNames) == 0 {
		return oper.Oper{}, qerr.Syntaxf(stage, "explicit excitation has no orbitals: %q", suffix)
	}
	spin := eq.cfg.DefaultSpin()
	occs := buildTyped(occNames, orbital.Occ, spin)
	virts := buildTyped(virtNames, orbital.Virt, spin)
	for i := 0; i < occs.Len(); i++ {
		t.SetLastOrb(occs.At(i), true)
	}
	for i := 0; i < virts.Len(); i++ {
		t.SetLastOrb(virts.At(i), true)
	}
	eq.correctOrbs(t, occs.Slice())
	eq.correctOrbs(t, virts.Slice())
	if excopsonly {
		return oper.Identity(), nil
	}
	matType := matrices.Exc0
	if dg {
		matType = matrices.Deexc0
	}
	return oper.NewExcitation(matType, occs, virts, "\\tau")
}

func buildTyped(names []string, typ orbital.Type, spin orbital.SpinType) container.Product[orbital.Orbital] {
	out := container.Empty[orbital.Orbital]()
	for _, n := range names {
		out = out.Mul(orbital.NewTyped(n, typ, spin))
	}
	return out
}

// correctOrbs renames, for every already-registered excitation operator,
// any free orbital name that collides (by letter family, type and spin)
// with one of orbs (SUPPLEMENTED FEATURE 3).
func (eq *Equation) correctOrbs(t *term.Term, orbs []orbital.Orbital) {
	if len(eq.excops) == 0 {
		return
	}
	for _, o := range orbs {
		literal := orbital.NewTyped(o.LetName(), o.Typ, o.Spin)
		for _, info := range eq.excops {
			for typ, bound := range info.orb4t {
				if bound.Equal(literal) {
					info.orb4t[typ] = t.FreeOrbName(typ)
				}
			}
		}
	}
}

// handleExcitation builds a parameterised Exc/Deexc operator for a bare
// excitation operator name, registering (on first use) or tracking the
// term-position of (on later uses) its LExcitationInfo (spec.md §4.3
// "handle_excitation").
func (eq *Equation) handleExcitation(t *term.Term, name string, dg bool, lmel int, excopsonly bool) (oper.Oper, error) {
	parsed, err := lexic.Parse(name, lexic.FDg|lexic.FLmel|lexic.FExcl|lexic.FOrbtypes|lexic.FOrbs, eq.cfg)
	if err != nil {
		return oper.Oper{}, err
	}
	dg = dg != parsed.Dg
	if parsed.Lmel != 0 && lmel != 0 && parsed.Lmel != lmel {
		return oper.Oper{}, qerr.Semanticf(stage, "mismatch in non-conserving class in %s", name)
	}
	if lmel == 0 {
		lmel = parsed.Lmel
	}
	if !parsed.HasExcl && parsed.Excl == 0 && lmel <= 0 {
		return oper.Oper{}, qerr.Semanticf(stage, "no excitation class in %s", name)
	}
	info := eq.registerOrTrack(t, name, parsed.HasOrbtyp, parsed.OrbTypes, parsed.Excl)
	if excopsonly {
		return oper.Identity(), nil
	}
	creatorTypes, annihilatorTypes := defaultExcTypes(int(info.exccl))
	if parsed.HasOrbtyp {
		creatorTypes, annihilatorTypes = parsed.OrbTypes[0], parsed.OrbTypes[1]
	}
	if dg {
		creatorTypes, annihilatorTypes = annihilatorTypes, creatorTypes
	}
	matType := matrices.Exc
	if dg {
		matType = matrices.Deexc
	}
	return oper.NewGeneralized(matType, info.orb4t, [2][]orbital.Type{creatorTypes, annihilatorTypes}, name)
}

// registerOrTrack looks up key in eq.excops: on first use it claims a free
// orbital name per orbital type (the union of both orbtype slots, or the
// Occ/Virt default when none were given) and registers a new
// LExcitationInfo; on a later use within the same pass it just records the
// operator's matrix position in the term currently being built, for
// handleSum/handleParameters to resolve against (spec.md §4.3).
func (eq *Equation) registerOrTrack(t *term.Term, key string, hasOrbtyp bool, orbTypes [2][]orbital.Type, excl int16) *excitationInfo {
	if info, ok := eq.excops[key]; ok {
		info.posInTerm = t.Mat.Len()
		return info
	}
	orb4t := map[orbital.Type]orbital.Orbital{}
	if hasOrbtyp {
		for _, typ := range append(append([]orbital.Type{}, orbTypes[0]...), orbTypes[1]...) {
			if _, ok := orb4t[typ]; !ok {
				orb4t[typ] = t.FreeOrbName(typ)
			}
		}
	} else {
		orb4t[orbital.Occ] = t.FreeOrbName(orbital.Occ)
		orb4t[orbital.Virt] = t.FreeOrbName(orbital.Virt)
	}
	info := &excitationInfo{orb4t: orb4t, exccl: excl, spinsym: matrices.Singlet, posInTerm: -1}
	eq.excops[key] = info
	return info
}

// defaultExcTypes returns the creator-type/annihilator-type slot lists for
// an exccl-fold excitation with no explicit orbtypes: exccl virtual
// creators, exccl occupied annihilators (the plain Exc orientation; dg
// swaps the two).
func defaultExcTypes(exccl int) (creators, annihilators []orbital.Type) {
	if exccl <= 0 {
		exccl = 1
	}
	creators = make([]orbital.Type, exccl)
	annihilators = make([]orbital.Type, exccl)
	for i := range creators {
		creators[i] = orbital.Virt
		annihilators[i] = orbital.Occ
	}
	return creators, annihilators
}

// handleOperator dispatches a plain Oper token: a configured reference name
// (yielding the identity), a configured Hamiltonian symbol, a bare
// excitation operator (dispatched to handleExcitation using its
// subscript/free-label as the registry key), or a parameterised
// amplitude/intermediate operator (spec.md §4.3 "handle_operator").
func (eq *Equation) handleOperator(lel lexic.Lelem, t *term.Term, excopsonly bool) (oper.Oper, error) {
	if lel.Reference {
		return oper.Identity(), nil
	}
	base, _ := lexic.SplitBase(lel.Name)
	if optype, antisym, ok := eq.hamiltonianLookup(base); ok {
		if excopsonly {
			return oper.Identity(), nil
		}
		return oper.NewHamiltonianPart(optype, base, antisym)
	}

	bareExc := eq.scanner.IsBareExcOp(base)
	fields := lexic.FDg | lexic.FLmel
	if bareExc {
		fields |= lexic.FOrbs | lexic.FExcitation
	} else {
		fields |= lexic.FNameadd | lexic.FExcl | lexic.FOrbtypes
	}
	parsed, err := lexic.Parse(lel.Name, fields, eq.cfg)
	if err != nil {
		return oper.Oper{}, err
	}
	if !parsed.HasExcl && parsed.FreeLabel == "" && parsed.Lmel == 0 {
		return oper.Oper{}, qerr.Semanticf(stage, "no excitation class in operator %s", lel.Name)
	}

	if bareExc {
		key := parsed.FreeLabel
		if key == "" {
			key = strconv.Itoa(int(parsed.Excl))
		}
		return eq.handleExcitation(t, key, parsed.Dg, parsed.Lmel, excopsonly)
	}
	if excopsonly {
		return oper.Identity(), nil
	}
	if !parsed.HasExcl && parsed.Lmel <= 0 {
		return oper.Oper{}, qerr.Semanticf(stage, "excitation class in %s", lel.Name)
	}
	registryKey := parsed.Name
	if parsed.Nameadd != "" {
		registryKey += "^{" + parsed.Nameadd + "}"
	}
	info := eq.registerOrTrack(t, registryKey, parsed.HasOrbtyp, parsed.OrbTypes, parsed.Excl)
	if excopsonly {
		return oper.Identity(), nil
	}
	creatorTypes, annihilatorTypes := defaultExcTypes(int(info.exccl))
	if parsed.HasOrbtyp {
		creatorTypes, annihilatorTypes = parsed.OrbTypes[0], parsed.OrbTypes[1]
	}
	if parsed.Dg {
		creatorTypes, annihilatorTypes = annihilatorTypes, creatorTypes
	}
	matType := matrices.Exc
	if parsed.Dg {
		matType = matrices.Deexc
	}
	return oper.NewGeneralized(matType, info.orb4t, [2][]orbital.Type{creatorTypes, annihilatorTypes}, registryKey)
}

func (eq *Equation) hamiltonianLookup(name string) (matrices.OpType, bool, bool) {
	h := eq.cfg.Hamilton
	switch {
	case h.Fock != "" && name == h.Fock:
		return matrices.Fock, true, true
	case h.OneElOp != "" && name == h.OneElOp:
		return matrices.OneEl, true, true
	case h.FlucPot != "" && name == h.FlucPot:
		return matrices.FluctP, true, true
	case h.DFlucPot != "" && name == h.DFlucPot:
		return matrices.FluctP, false, true
	case h.Perturbation != "" && name == h.Perturbation:
		return matrices.XPert, true, true
	default:
		return 0, false, false
	}
}

// handleFactor parses a bare-integer or \frac{num}{den} prefactor token
// (spec.md §4.3 "handle_factor").
func handleFactor(lel lexic.Lelem) (factor.Factor, error) {
	switch lel.Lex {
	case lexic.Num:
		n, err := lexic.ParseNum(lel)
		if err != nil {
			return factor.Factor{}, err
		}
		return factor.FromInt(int64(n)), nil
	case lexic.Frac:
		groups := extractBraces(lel.Name)
		if len(groups) != 2 {
			return factor.Factor{}, qerr.Syntaxf(stage, "malformed \\frac: %q", lel.Name)
		}
		num, err1 := strconv.Atoi(strings.TrimSpace(groups[0]))
		den, err2 := strconv.Atoi(strings.TrimSpace(groups[1]))
		if err1 != nil || err2 != nil {
			return factor.Factor{}, qerr.Syntaxf(stage, "non-integer \\frac: %q", lel.Name)
		}
		return factor.FromRat(int64(num), int64(den)), nil
	default:
		return factor.Factor{}, qerr.Syntaxf(stage, "%s is not a factor", lel)
	}
}

// handleSum resolves a queued "\sum_{name1,name2,...}" directive against
// the excitation operators it names, binding the matching operator's
// orbital tuple as a (real) summation index of t (spec.md §4.3
// "handle_sum").
func (eq *Equation) handleSum(lel lexic.Lelem, t *term.Term) {
	groups := extractBraces(lel.Name)
	if len(groups) != 1 {
		eq.diags.Warn(stage, "malformed \\sum: %q", lel.Name)
		return
	}
	for _, name := range lexic.SplitTokens(groups[0]) {
		info, ok := eq.excops[name]
		if !ok {
			eq.diags.Warn(stage, "no excitation operator corresponding to summation index %s", name)
			continue
		}
		if info.posInTerm < 0 {
			eq.diags.Warn(stage, "sum is not present in this term: %s", name)
			continue
		}
		m := t.Mat.At(info.posInTerm)
		*t = t.AddSummation(m.Orbs)
	}
}

// handlePermutation parses a "\perm{a b/c d}" directive into a Permut
// mapping the first orbital list onto the second (spec.md §4.3
// "handle_permutation").
func handlePermutation(lel lexic.Lelem) (matrices.Permut, error) {
	groups := extractBraces(lel.Name)
	if len(groups) != 1 {
		return matrices.Permut{}, qerr.Syntaxf(stage, "malformed \\perm: %q", lel.Name)
	}
	parts := strings.SplitN(groups[0], "/", 2)
	if len(parts) != 2 {
		return matrices.Permut{}, qerr.Syntaxf(stage, "\\perm is missing a '/': %q", lel.Name)
	}
	fromNames := lexic.SplitTokens(parts[0])
	toNames := lexic.SplitTokens(parts[1])
	if len(fromNames) != len(toNames) {
		return matrices.Permut{}, qerr.Syntaxf(stage, "\\perm: mismatched orbital counts in %q", lel.Name)
	}
	from := container.Empty[orbital.Orbital]()
	to := container.Empty[orbital.Orbital]()
	for i := range fromNames {
		from = from.Mul(orbital.New(fromNames[i]))
		to = to.Mul(orbital.New(toNames[i]))
	}
	return matrices.NewPermut(from, to), nil
}

// handleParameters resolves every queued Param token against the term
// currently being built: a parameter with no subscript becomes a bare
// Number matrix, one with a subscript naming a registered excitation
// operator replaces that operator's matrix with an Interm tensor over the
// same orbital tuple (spec.md §4.3 "handle_parameters", SUPPLEMENTED
// FEATURE 5). When reset is true (a zero term was discarded, or this is
// the end of a pass) only the per-operator term-position bookkeeping is
// cleared.
func (eq *Equation) handleParameters(t *term.Term, paramterm lexic.LelString, reset bool) error {
	if !reset {
		for _, lel := range paramterm {
			name, supers, subs := lexic.ParseGroups(lel.Name)
			fullName := name
			if len(supers) > 0 && supers[0] != "" {
				fullName += "^{" + supers[0] + "}"
			}
			if len(subs) == 0 {
				*t = t.AddMatrix(matrices.New(matrices.Number, container.Empty[orbital.Orbital](), fullName))
				continue
			}
			excn := subs[0]
			info, ok := eq.excops[excn]
			if !ok {
				return qerr.Semanticf(stage, "unknown excitation in parameter %s", excn)
			}
			if info.posInTerm < 0 {
				eq.diags.Warn(stage, "parameter is not present in this term: %s", lel.Name)
				continue
			}
			m := t.Mat.At(info.posInTerm)
			mat := matrices.New(matrices.Interm, m.Orbs, fullName)
			replaced, err := t.ReplaceMatrix(mat, info.posInTerm)
			if err != nil {
				return err
			}
			*t = replaced
		}
	}
	for _, info := range eq.excops {
		info.posInTerm = -1
	}
	return nil
}

// extractBraces returns the ordered contents of every top-level "{...}"
// group in s (no nested braces).
func extractBraces(s string) []string {
	var out []string
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		}
	}
	return out
}
