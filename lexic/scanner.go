package lexic

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/thoschr/quantwo/config"
	"github.com/thoschr/quantwo/qerr"
)

// tracer traces with key 'quantwo.lexic'.
func tracer() tracing.Trace {
	return tracing.Select("quantwo.lexic")
}

// Scanner tokenises a raw input string into a LelString, using a
// lexmachine DFA compiled once per Config (spec.md §6 "Input
// mini-language"; grounded on lr/scanner/lexmach.LMAdapter, the teacher's
// own lexmachine wrapper).
type Scanner struct {
	lexer *lexmachine.Lexer
	cfg   config.Config
}

// NewScanner compiles a Scanner for cfg. The DFA recognises the fixed
// mini-language punctuation first (so it wins ties against the generic
// identifier rule added last), then the configured bra/ket/csf/bexcop/
// hamiltonian keywords are recognised by the generic Oper/Bra/Ket rules at
// scan time via a name lookup, not by baking them into the grammar.
func NewScanner(cfg config.Config) (*Scanner, error) {
	lx := lexmachine.NewLexer()

	add := func(pattern string, kind Kind) {
		k := kind
		lx.Add([]byte(pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return Lelem{Name: string(m.Bytes), Lex: k}, nil
		})
	}

	// \frac, \sum and \perm carry their whole bracketed argument list as
	// one token's name (handle_factor/handle_sum/handle_permutation parse
	// it themselves); nested braces inside an argument are not supported
	// (spec.md §4.1 simplification, see DESIGN.md).
	add(`\\frac\{[^{}]*\}\{[^{}]*\}`, Frac)
	add(`\\sum_\{[^{}]*\}`, Sum)
	add(`\\perm\{[^{}]*\}`, Perm)
	add(`\langle`, Bra)
	add(`\|`, Ket)
	add(`\(`, LPar)
	add(`\)`, RPar)
	add(`\+`, Plus)
	add(`-`, Minus)
	add(`\*`, Times)
	add(`/`, Div)
	lx.Add([]byte(`[0-9]+`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Lelem{Name: string(m.Bytes), Lex: Num}, nil
	})
	lx.Add([]byte(`[A-Za-z][A-Za-z0-9_^{}\\+.,<>/|-]*`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Lelem{Name: string(m.Bytes), Lex: Oper}, nil
	})
	lx.Add([]byte(`( |\t|\n)+`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return nil, nil
	})

	if err := lx.Compile(); err != nil {
		tracer().Errorf("lexic scanner: error compiling DFA: %v", err)
		return nil, qerr.Wrap(qerr.Syntax, "lexic", err)
	}
	return &Scanner{lexer: lx, cfg: cfg}, nil
}

// Scan tokenises raw into a LelString, reclassifying bare-name Oper tokens
// against the configured reference/csf/bexcop keyword lists.
func (sc *Scanner) Scan(raw string) (LelString, error) {
	s, err := sc.lexer.Scanner([]byte(raw))
	if err != nil {
		return nil, qerr.Wrap(qerr.Syntax, "lexic", err)
	}
	var out LelString
	for {
		tok, err, eof := s.Next()
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				s.TC = ui.FailTC
				continue
			}
			return nil, qerr.Syntaxf("lexic", "scanner error: %v", err)
		}
		if eof {
			break
		}
		elem := tok.(Lelem)
		out = append(out, sc.classify(elem))
	}
	return out, nil
}

// classify reclassifies a bare-name Oper token once its base name is known:
// a reference name (syntax.ref) stays an Oper but is flagged Reference, so
// the term builder yields the identity operator for it; everything else is
// left as a plain Oper for handle_operator to sort out (bexcop dispatch
// happens there, csf dispatch in handle_braket, spec.md §4.3).
func (sc *Scanner) classify(e Lelem) Lelem {
	if e.Lex != Oper {
		return e
	}
	base := baseName(e.Name)
	for _, ref := range sc.cfg.Syntax.References {
		if base == ref {
			e.Reference = true
			return e
		}
	}
	return e
}

// IsCSF reports whether name (the base name of a Bra/Ket token) opens an
// explicit configuration-state-function excitation block (syntax.csf).
func (sc *Scanner) IsCSF(name string) bool {
	base := baseName(name)
	for _, csf := range sc.cfg.Syntax.CSF {
		if base == csf {
			return true
		}
	}
	return false
}

// IsBareExcOp reports whether name (an Oper token's base name) is a
// configured bare excitation operator (syntax.bexcop).
func (sc *Scanner) IsBareExcOp(name string) bool {
	base := baseName(name)
	for _, b := range sc.cfg.Syntax.BareExcOps {
		if base == b {
			return true
		}
	}
	return false
}

// baseName strips any "^{...}"/"_{...}" suffix, returning the bare symbol.
func baseName(name string) string {
	head, _ := SplitBase(name)
	return head
}

// SplitBase splits name at its first "^" or "_", returning the bare leading
// symbol and everything from that marker onward (used by handle_braket to
// separate a CSF keyword like "Phi" from its "^{ab}_{ij}" excitation
// suffix).
func SplitBase(name string) (head, rest string) {
	if i := strings.IndexAny(name, "^_"); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

// ParseNum parses a Num lexic element's text into an integer, used by
// do_sumterms when it meets a bare integer prefactor (spec.md §4.3).
func ParseNum(e Lelem) (int, error) {
	n, err := strconv.Atoi(e.Name)
	if err != nil {
		return 0, qerr.Syntaxf("lexic", "malformed integer %q: %v", e.Name, err)
	}
	return n, nil
}
