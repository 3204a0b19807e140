// Package equation implements LEquation, the pipeline driver that turns one
// raw equation string into a sum of fully-expanded Terms (spec.md §4.3).
// It owns the lexic scan, the parenthesis/macro expansion, and the
// two-pass walk (Discover registers every excitation operator's free
// orbital names before any Term is actually built; Emit builds and
// accumulates Terms) that the original's do_sumterms performs in one
// function with an excopsonly flag.
package equation

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/thoschr/quantwo/config"
	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/diag"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/lexic"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/oper"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
	"github.com/thoschr/quantwo/term"
)

const stage = "equation"

// tracer traces with key 'quantwo.equation'.
func tracer() tracing.Trace {
	return tracing.Select("quantwo.equation")
}

// excitationInfo is the LExcitationInfo of spec.md §3: the free orbital
// names a bare excitation operator's name was first bound to, its
// excitation class, its spin symmetry, and (reset every term) the position
// of its matrix within the term currently being built, used by handleSum
// to resolve "\sum_{T}" against the operator named T.
type excitationInfo struct {
	orb4t    map[orbital.Type]orbital.Orbital
	exccl    int16
	spinsym  matrices.SpinSym
	posInTerm int // -1 when not present in the current term
}

// Equation is the pipeline driver for one raw equation string.
type Equation struct {
	cfg     config.Config
	scanner *lexic.Scanner

	eqn         lexic.LelString
	connections []lexic.ConnGroup
	excops      map[string]*excitationInfo

	diags diag.Sink
}

// New scans raw and every macro body, expands macros and parentheses, and
// prunes degenerate/duplicate connection groups (spec.md §4.3 "extractit").
// macros maps a bare operator name to its (already tokenised) replacement
// body.
func New(cfg config.Config, raw string, macros map[string]lexic.LelString) (*Equation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sc, err := lexic.NewScanner(cfg)
	if err != nil {
		return nil, err
	}
	toks, err := sc.Scan(raw)
	if err != nil {
		return nil, err
	}
	eq := &Equation{cfg: cfg, scanner: sc, excops: map[string]*excitationInfo{}}
	if err := eq.extractit(toks, macros); err != nil {
		return nil, err
	}
	return eq, nil
}

// extractit expands macros then parentheses, and removes redundant
// connection groups: a connection naming a number, a group smaller than
// two members, or a group duplicating an earlier one (spec.md §4.3
// "extractit").
func (eq *Equation) extractit(toks lexic.LelString, macros map[string]lexic.LelString) error {
	expanded, err := toks.ExpandNewOps(macros)
	if err != nil {
		return err
	}
	expanded, conns, err := expanded.Expand()
	if err != nil {
		return err
	}
	eq.eqn = expanded

	pruned := conns[:0:0]
	for _, c := range conns {
		var kept []int
		for _, p := range c.Positions {
			idx := p
			if idx < 0 {
				idx = -idx
			}
			if idx >= len(eq.eqn) {
				continue
			}
			if eq.eqn[idx].Lex == lexic.Num || eq.eqn[idx].Lex == lexic.Frac {
				continue // connection to a number
			}
			kept = append(kept, p)
		}
		if len(kept) < 2 {
			continue
		}
		c.Positions = kept
		dup := false
		for _, p := range pruned {
			if sameGroup(p, c) {
				dup = true
				break
			}
		}
		if !dup {
			pruned = append(pruned, c)
		}
	}
	eq.connections = pruned
	return nil
}

func sameGroup(a, b lexic.ConnGroup) bool {
	if a.Conn != b.Conn || len(a.Positions) != len(b.Positions) {
		return false
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			return false
		}
	}
	return true
}

// Run executes the two-pass walk over the expanded equation and returns the
// accumulated sum of Terms, together with the diagnostics raised along the
// way (spec.md §4.3 "do_sumterms").
func (eq *Equation) Run() (term.TermSum, diag.Sink, error) {
	if _, err := eq.doSumTerms(nil, true); err != nil {
		return term.TermSum{}, eq.diags, err
	}
	sums := term.NewTermSum()
	result, err := eq.doSumTerms(&sums, false)
	if err != nil {
		return term.TermSum{}, eq.diags, err
	}
	return *result, eq.diags, nil
}

// doSumTerms is the single walk spec.md §4.3 describes, parameterised by
// excopsonly: the Discover pass (excopsonly=true) only registers excitation
// operators' free orbital names and never builds or emits a Term; the Emit
// pass (excopsonly=false, sums non-nil) builds every Term and accumulates
// it into *sums.
func (eq *Equation) doSumTerms(sums *term.TermSum, excopsonly bool) (*term.TermSum, error) {
	if !eq.eqn.Expanded() {
		return sums, qerr.Semanticf(stage, "equation must be expanded before do_sumterms")
	}
	var (
		beg             = 0
		plus            = true
		bra, ket        bool
		t               = eq.resetTerm()
		indxoperterm    []int
		sumsterm        lexic.LelString
		paramterm       lexic.LelString
	)
	for i, lel := range eq.eqn {
		switch lel.Lex {
		case lexic.Bra, lexic.Ket:
			if lel.Lex == lexic.Bra {
				if bra {
					return sums, qerr.Syntaxf(stage, "cannot handle two BRAs in one term")
				}
				bra = true
			} else {
				if ket {
					return sums, qerr.Syntaxf(stage, "cannot handle two KETs in one term")
				}
				ket = true
			}
			op, err := eq.handleBraKet(lel, &t, excopsonly)
			if err != nil {
				return sums, err
			}
			t = t.MulOper(op)
			indxoperterm = append(indxoperterm, i)
		case lexic.Minus, lexic.Plus:
			bra, ket = false, false
			if !excopsonly {
				if i > 0 {
					var err error
					sums, err = eq.addTerm(sums, t, plus, beg, i-1, indxoperterm, sumsterm, paramterm)
					if err != nil {
						return sums, err
					}
				}
				plus = lel.Lex == lexic.Plus
				beg = i + 1
				t = eq.resetTerm()
				indxoperterm = nil
				sumsterm = nil
				paramterm = nil
			}
		case lexic.Frac, lexic.Num:
			fac, err := handleFactor(lel)
			if err != nil {
				return sums, err
			}
			t = t.MulFactor(fac)
		case lexic.Oper:
			op, err := eq.handleOperator(lel, &t, excopsonly)
			if err != nil {
				return sums, err
			}
			t = t.MulOper(op)
			indxoperterm = append(indxoperterm, i)
		case lexic.Sum:
			if !excopsonly {
				sumsterm = append(sumsterm, lel)
			}
		case lexic.Param:
			if !excopsonly {
				paramterm = append(paramterm, lel)
			}
		case lexic.Perm:
			if !excopsonly {
				p, err := handlePermutation(lel)
				if err != nil {
					return sums, err
				}
				t = t.AddPermut(p)
			}
		case lexic.Times:
			// nothing to do
		case lexic.Div:
			return sums, qerr.Semanticf(stage, "division is not supported")
		default:
			return sums, qerr.Syntaxf(stage, "%s is not implemented yet", lel)
		}
	}
	if len(eq.eqn) > 0 {
		var err error
		sums, err = eq.addTerm(sums, t, plus, beg, len(eq.eqn)-1, indxoperterm, sumsterm, paramterm)
		if err != nil {
			return sums, err
		}
	}
	return sums, nil
}

// resetTerm builds a fresh Term whose lastorb cursor already accounts for
// every orbital name claimed by a previously registered excitation
// operator (SPEC_FULL.md Supplemented Feature 4).
func (eq *Equation) resetTerm() term.Term {
	t := term.New()
	for _, info := range eq.excops {
		for _, orb := range info.orb4t {
			t.SetLastOrb(orb, true)
		}
	}
	return t
}

// addTerm flushes the segment eqn[beg:end+1] as one Term: resolves queued
// \sum and parameter directives, attaches the connection groups that fall
// wholly inside this segment, validates, and (unless the term is
// identically zero) accumulates it into *sums with the segment's sign
// (spec.md §4.3 "addterm").
func (eq *Equation) addTerm(sums *term.TermSum, t term.Term, plus bool, beg, end int, indxoperterm []int, sumsterm, paramterm lexic.LelString) (*term.TermSum, error) {
	if sums == nil || t.IsZero(eq.cfg.MinFactor) {
		eq.handleParameters(&t, paramterm, true)
		return sums, nil
	}
	for _, lel := range sumsterm {
		eq.handleSum(lel, &t)
	}
	if err := eq.handleParameters(&t, paramterm, false); err != nil {
		return sums, err
	}

	for _, grp := range eq.connections {
		if !groupWithinSegment(grp, beg, end) {
			continue
		}
		conn := container.Empty[container.Int]()
		for _, p := range grp.Positions {
			idx := p
			sign := 1
			if idx < 0 {
				idx, sign = -idx, -1
			}
			pos := indexOf(indxoperterm, idx)
			if pos < 0 {
				return sums, qerr.Enginef(stage, "connected operator at lexic position %d is not in this term", idx)
			}
			matIdx := sign * (pos + 2) // +1 for the None placeholder at Mat[0], +1 for 1-based
			conn = conn.Mul(container.Int(matIdx))
		}
		t = t.AddConnection(conn)
	}

	if err := t.Validate(); err != nil {
		return sums, err
	}
	if !plus {
		t = t.MulFactor(factor.FromInt(-1))
	}
	out := sums.AddAll(t.Finalize(eq.cfg.GeneralizedWick))
	return &out, nil
}

func groupWithinSegment(grp lexic.ConnGroup, beg, end int) bool {
	for _, p := range grp.Positions {
		idx := p
		if idx < 0 {
			idx = -idx
		}
		if idx < beg || idx > end {
			return false
		}
	}
	return len(grp.Positions) > 0
}

func indexOf(haystack []int, v int) int {
	for i, h := range haystack {
		if h == v {
			return i
		}
	}
	return -1
}
