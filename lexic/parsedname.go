package lexic

import (
	"strconv"
	"strings"

	"github.com/thoschr/quantwo/config"
	"github.com/thoschr/quantwo/orbital"
)

// Field selects which parts of a parsed name the caller is interested in;
// LParsedName.Parse must not fail just because an unrequested field could
// not be determined (spec.md §4.2).
type Field uint16

// The recognised fields.
const (
	FName Field = 1 << iota
	FDg
	FLmel
	FExcl
	FNameadd
	FOrbs
	FExcitation
	FOrbtypes
)

// FAll requests every field.
const FAll = FName | FDg | FLmel | FExcl | FNameadd | FOrbs | FExcitation | FOrbtypes

// LParsedName is the result of parsing an operator/parameter token of the
// form "Name^{superscript}_{subscript}" (spec.md §4.2).
type LParsedName struct {
	Name       string
	Dg         bool
	Lmel       int
	Excl       int16
	HasExcl    bool
	Nameadd    string
	FreeLabel  string
	OrbTypes   [2][]orbital.Type
	HasOrbtyp  bool
}

type bracedGroup struct {
	super   bool
	content string
}

// Parse parses raw per spec.md §4.2, populating only the fields named by
// fields (others are left zero without raising an error on failure).
func Parse(raw string, fields Field, cfg config.Config) (LParsedName, error) {
	name, groups := splitNameAndGroups(raw)
	out := LParsedName{Name: name}

	var supers, subs []string
	for _, g := range groups {
		if g.super {
			supers = append(supers, g.content)
		} else {
			subs = append(subs, g.content)
		}
	}

	if len(supers) > 0 && (fields&(FDg|FLmel|FNameadd)) != 0 {
		rest := supers[0]
		if fields&FDg != 0 {
			for _, dg := range cfg.Syntax.Dagger {
				if strings.Contains(rest, dg) {
					out.Dg = true
					rest = strings.Replace(rest, dg, "", 1)
					break
				}
			}
		}
		if fields&FLmel != 0 {
			less, more := cfg.Syntax.LessMore[0], cfg.Syntax.LessMore[1]
			switch {
			case less != "" && strings.HasPrefix(rest, less):
				if n, err := strconv.Atoi(strings.TrimPrefix(rest, less)); err == nil {
					out.Lmel = -n
					rest = ""
				}
			case more != "" && strings.HasPrefix(rest, more):
				if n, err := strconv.Atoi(strings.TrimPrefix(rest, more)); err == nil {
					out.Lmel = n
					rest = ""
				}
			default:
				if n, err := strconv.Atoi(rest); err == nil {
					out.Lmel = n
					rest = ""
				}
			}
		}
		if fields&FNameadd != 0 {
			out.Nameadd = rest
		}
	}

	if len(subs) > 0 && (fields&(FExcl|FOrbs)) != 0 {
		if n, err := strconv.Atoi(subs[0]); err == nil {
			out.Excl = int16(n)
			out.HasExcl = true
		} else {
			out.FreeLabel = subs[0]
		}
	}

	if out.HasExcl && fields&FOrbtypes != 0 && len(supers) > 1 && len(subs) > 1 {
		out.OrbTypes[0] = classifyList(supers[1])
		out.OrbTypes[1] = classifyList(subs[1])
		out.HasOrbtyp = true
	}

	return out, nil
}

func classifyList(s string) []orbital.Type {
	toks := SplitTokens(s)
	out := make([]orbital.Type, 0, len(toks))
	for _, tok := range toks {
		out = append(out, orbital.New(tok).Typ)
	}
	return out
}

// SplitTokens splits a braced group's content on commas (and whitespace),
// trimming each token. Used both for orbital-type classification and for
// an explicit excitation's literal orbital-name lists (spec.md §4.2).
func SplitTokens(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParseGroups splits raw into its leading name and the ordered content of
// every "^{...}" group and every "_{...}" group (in the order they occur),
// without attempting Name/Dg/Lmel/Excl classification. Used by an explicit
// (CSF-style) excitation name such as "^{ab}_{ij}" (spec.md §4.3
// handle_explexcitation).
func ParseGroups(raw string) (name string, supers, subs []string) {
	name, groups := splitNameAndGroups(raw)
	for _, g := range groups {
		if g.super {
			supers = append(supers, g.content)
		} else {
			subs = append(subs, g.content)
		}
	}
	return name, supers, subs
}

// splitNameAndGroups extracts the leading name and the ordered sequence of
// "^{...}" / "_{...}" groups following it.
func splitNameAndGroups(raw string) (string, []bracedGroup) {
	i := 0
	for i < len(raw) && raw[i] != '^' && raw[i] != '_' {
		i++
	}
	name := raw[:i]
	var groups []bracedGroup
	for i < len(raw) {
		super := raw[i] == '^'
		i++
		if i >= len(raw) || raw[i] != '{' {
			continue
		}
		j := i + 1
		depth := 1
		for j < len(raw) && depth > 0 {
			switch raw[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth > 0 {
				j++
			}
		}
		groups = append(groups, bracedGroup{super: super, content: raw[i+1 : j]})
		i = j + 1
	}
	return name, groups
}
