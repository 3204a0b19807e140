package lexic

import (
	"github.com/thoschr/quantwo/qerr"
)

const stage = "lexic"

// ConnGroup is a connection constraint captured while expanding a
// parenthesis marked Connect or Disconnect: the lexic-element positions of
// every operator token that fell inside it (spec.md §4.1 "expandpar").
type ConnGroup struct {
	Conn      Conn
	Positions []int
}

// LelString is a sequence of lexic elements together with the operations
// spec.md §4.1 describes on it.
type LelString []Lelem

// Closbrack finds the matching RPar for the LPar at pos.
func (s LelString) Closbrack(pos int) (int, error) {
	if pos < 0 || pos >= len(s) || s[pos].Lex != LPar {
		return 0, qerr.Syntaxf(stage, "closbrack: position %d is not an LPar", pos)
	}
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i].Lex {
		case LPar:
			depth++
		case RPar:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, qerr.UnbalancedBrackets(stage, pos)
}

// Openbrack finds the matching LPar for the RPar at pos.
func (s LelString) Openbrack(pos int) (int, error) {
	if pos < 0 || pos >= len(s) || s[pos].Lex != RPar {
		return 0, qerr.Syntaxf(stage, "openbrack: position %d is not an RPar", pos)
	}
	depth := 0
	for i := pos; i >= 0; i-- {
		switch s[i].Lex {
		case RPar:
			depth++
		case LPar:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, qerr.UnbalancedBrackets(stage, pos)
}

// Expanded reports whether no parentheses remain and every bra/ket token
// has its BraExpanded flag set (spec.md §4.1 "expanded").
func (s LelString) Expanded() bool {
	for _, e := range s {
		if e.Lex == LPar || e.Lex == RPar {
			return false
		}
		if (e.Lex == Bra || e.Lex == Ket) && !e.BraExpanded {
			return false
		}
	}
	return true
}

// Elem finds the end (inclusive index) of the atomic element starting at
// beg. If bk is true, a Bra acts as an opening bracket and the matching Ket
// as its closing bracket, so a whole "<...|...|...>" projection is one
// element (spec.md §4.1 "elem").
func (s LelString) Elem(beg int, bk bool) (int, error) {
	if beg < 0 || beg >= len(s) {
		return 0, qerr.Syntaxf(stage, "elem: position %d out of range", beg)
	}
	switch s[beg].Lex {
	case LPar:
		return s.Closbrack(beg)
	case Bra:
		if !bk {
			return beg, nil
		}
		for i := beg + 1; i < len(s); i++ {
			if s[i].Lex == Ket {
				return i, nil
			}
		}
		return 0, qerr.UnbalancedBrackets(stage, beg)
	default:
		return beg, nil
	}
}

// ExpandNewOps repeatedly substitutes every occurrence of a macro name by
// its expansion (wrapped in a parenthesis pair to preserve precedence),
// detecting cyclic macro definitions (spec.md §4.1 "expandnewops").
func (s LelString) ExpandNewOps(macros map[string]LelString) (LelString, error) {
	out := append(LelString{}, s...)
	// cyclic reports whether the definition of name reaches name again.
	onPath, done := map[string]bool{}, map[string]bool{}
	var cyclic func(name string) bool
	cyclic = func(name string) bool {
		if onPath[name] || done[name] {
			return onPath[name]
		}
		onPath[name] = true
		for _, e := range macros[name] {
			if _, ok := macros[e.Name]; ok && e.Lex == Oper && cyclic(e.Name) {
				return true
			}
		}
		onPath[name], done[name] = false, true
		return false
	}
	for {
		idx, name := out.firstMacroUse(macros)
		if idx == -1 {
			return out, nil
		}
		if cyclic(name) {
			return nil, qerr.CyclicMacro(stage, name)
		}
		body := macros[name]
		replacement := make(LelString, 0, len(body)+2)
		replacement = append(replacement, New("(", LPar))
		replacement = append(replacement, body...)
		replacement = append(replacement, New(")", RPar))

		next := make(LelString, 0, len(out)-1+len(replacement))
		next = append(next, out[:idx]...)
		next = append(next, replacement...)
		next = append(next, out[idx+1:]...)
		out = next
	}
}

func (s LelString) firstMacroUse(macros map[string]LelString) (int, string) {
	for i, e := range s {
		if e.Lex == Oper {
			if _, ok := macros[e.Name]; ok {
				return i, e.Name
			}
		}
	}
	return -1, ""
}

// Expand repeatedly expands the leftmost parenthesis until Expanded
// returns true, accumulating connection constraints (spec.md §4.1
// "expand").
func (s LelString) Expand() (LelString, []ConnGroup, error) {
	out := append(LelString{}, s...)
	var conns []ConnGroup
	for !out.Expanded() {
		pos := -1
		for i, e := range out {
			if e.Lex == LPar {
				pos = i
				break
			}
		}
		if pos == -1 {
			// no parentheses left: mark every bra/ket expanded and stop.
			for i := range out {
				if out[i].Lex == Bra || out[i].Lex == Ket {
					out[i].BraExpanded = true
				}
			}
			break
		}
		var grp *ConnGroup
		var err error
		out, grp, err = out.expandPar(pos)
		if err != nil {
			return nil, nil, err
		}
		if grp != nil {
			conns = append(conns, *grp)
		}
	}
	return out, conns, nil
}

// expandPar rewrites "(A+B)*C" into "A*C + B*C", preserving sign, and
// records a connection group when the parenthesis carries a Connect or
// Disconnect marker (spec.md §4.1 "expandpar").
func (s LelString) expandPar(pos int) (LelString, *ConnGroup, error) {
	end, err := s.Closbrack(pos)
	if err != nil {
		return nil, nil, err
	}
	marker := s[pos].Connection
	inner := s[pos+1 : end]

	branches := splitTopLevelTerms(inner)

	prefix := s[:pos]
	suffix := s[end+1:]

	out := make(LelString, 0, len(s))
	var grp *ConnGroup
	for bi, br := range branches {
		sign := br.sign
		body := br.body
		if bi == 0 {
			out = append(out, prefix...)
		} else {
			if sign > 0 {
				out = append(out, Lelem{Lex: Plus})
			} else {
				out = append(out, Lelem{Lex: Minus})
			}
		}
		if bi == 0 && sign < 0 {
			out = append(out, Lelem{Lex: Minus})
		}
		out = append(out, body...)
		out = append(out, suffix...)

		if marker == Connect || marker == Disconnect {
			positions := operatorPositionsAfter(out, len(out)-len(body)-len(suffix), len(out))
			if grp == nil {
				grp = &ConnGroup{Conn: marker}
			}
			grp.Positions = append(grp.Positions, positions...)
		}
	}
	return out, grp, nil
}

type signedBranch struct {
	sign int
	body LelString
}

// splitTopLevelTerms splits a parenthesis's contents on Plus/Minus tokens
// that occur at bracket depth zero, carrying the sign of each branch.
func splitTopLevelTerms(inner LelString) []signedBranch {
	var branches []signedBranch
	depth := 0
	sign := 1
	start := 0
	flush := func(end int) {
		branches = append(branches, signedBranch{sign: sign, body: inner[start:end]})
	}
	for i, e := range inner {
		switch e.Lex {
		case LPar:
			depth++
		case RPar:
			depth--
		case Plus:
			if depth == 0 {
				flush(i)
				sign = 1
				start = i + 1
			}
		case Minus:
			if depth == 0 {
				flush(i)
				sign = -1
				start = i + 1
			}
		}
	}
	flush(len(inner))
	return branches
}

// operatorPositionsAfter collects the indices of Oper/Param tokens in
// out[from:to].
func operatorPositionsAfter(out LelString, from, to int) []int {
	if from < 0 {
		from = 0
	}
	var positions []int
	for i := from; i < to && i < len(out); i++ {
		if out[i].Lex == Oper || out[i].Lex == Param {
			positions = append(positions, i)
		}
	}
	return positions
}
