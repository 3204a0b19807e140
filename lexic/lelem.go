// Package lexic implements the tokeniser and lexic-element rewriting layer
// of the derivation engine: Lelem/LelString (bracket matching, macro
// expansion, parenthesis expansion with connection tracking) and
// LParsedName (the sub/superscript mini-language of an operator token),
// backed by a lexmachine-compiled scanner (spec.md §4.1, §4.2).
package lexic

import "fmt"

// Kind is the lexic category of one token (spec.md §4.1).
type Kind int8

// The recognised lexic kinds.
const (
	Bra Kind = iota
	Ket
	LPar
	RPar
	Oper
	Param
	Num
	Frac
	Plus
	Minus
	Times
	Div
	Sum
	Perm
)

func (k Kind) String() string {
	switch k {
	case Bra:
		return "Bra"
	case Ket:
		return "Ket"
	case LPar:
		return "LPar"
	case RPar:
		return "RPar"
	case Oper:
		return "Oper"
	case Param:
		return "Param"
	case Num:
		return "Num"
	case Frac:
		return "Frac"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Times:
		return "Times"
	case Div:
		return "Div"
	case Sum:
		return "Sum"
	case Perm:
		return "Perm"
	default:
		return "?lex"
	}
}

// Conn is the connection marker a parenthesis (or the tokens it contains)
// can carry (spec.md §4.1 "expandpar").
type Conn int8

// The three connection markers.
const (
	Normal Conn = iota
	Connect
	Disconnect
)

// Lelem is a single lexic element: its raw text, its kind, an inherited
// connection marker, and a flag preventing a bra-ket pair from being
// re-expanded (spec.md §4.1).
type Lelem struct {
	Name        string
	Lex         Kind
	Connection  Conn
	BraExpanded bool
	// Reference marks a token whose base name is a configured reference
	// name (syntax.ref), so the term builder treats it as the identity
	// operator rather than an excitation (spec.md §4.3 "handle_braket").
	Reference bool
}

// New builds a plain Lelem with Normal connection.
func New(name string, kind Kind) Lelem {
	return Lelem{Name: name, Lex: kind}
}

func (l Lelem) String() string {
	return fmt.Sprintf("%s(%q)", l.Lex, l.Name)
}
