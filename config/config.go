// Package config defines the immutable configuration value threaded through
// the whole pipeline (spec.md §6, Design Note 9 "Global configuration").
// Building a Config from a dictionary file is the (out-of-scope) loader's
// job; this package only defines the shape and validates it.
package config

import (
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/qerr"
)

// Syntax holds the configured lexic keywords (spec.md §6 "syntax.*" keys).
type Syntax struct {
	// Dagger lists the symbols treated as a dagger marker; the first is
	// canonical (syntax.dg).
	Dagger []string
	// LessMore is the [less, more] prefix pair for non-conserving electron
	// counts (syntax.lessmore); both strings must have equal length.
	LessMore [2]string
	// References lists reference bra/ket names that yield the identity
	// operator (syntax.ref).
	References []string
	// CSF lists configuration-state-function keywords that open an
	// explicit excitation block (syntax.csf).
	CSF []string
	// BareExcOps lists operator base names treated as bare excitation
	// operators (syntax.bexcop).
	BareExcOps []string
}

// Hamiltonian maps Hamiltonian-part roles to their configured symbols
// (spec.md §6 "hamilton" key).
type Hamiltonian struct {
	Fock         string
	OneElOp      string
	FlucPot      string
	DFlucPot     string
	Perturbation string
}

// Config is the single immutable value passed through every stage of the
// pipeline (lexic layer, term builder, algebraic engine). Nothing in the
// pipeline mutates it after construction.
type Config struct {
	Syntax Syntax
	Hamilton Hamiltonian
	// MinFactor is the float threshold below which a term's prefactor is
	// treated as zero (prog.minfac).
	MinFactor float64
	// SpinIntegrated selects spin-integrated (GenS) default orbital spin
	// when true, spin-general (Gen) when false (prog.spinintegr).
	SpinIntegrated bool
	// GeneralizedWick selects the generalised form of Wick's theorem
	// (additionally allowing active/GenT operators to contract among
	// themselves) when building Terms in the equation pipeline.
	GeneralizedWick bool
}

// Default returns a Config with the conventional keyword set used
// throughout spec.md's worked examples (§8): \dg and + for daggers,
// less/more for lessmore, reference names "0" and "HF", csf keyword "Phi",
// bare excitation operators T/L/R, and the Hamiltonian-part names F (Fock),
// h (one-electron), W (fluctuation potential), dW and X (perturbation).
func Default() Config {
	return Config{
		Syntax: Syntax{
			Dagger:     []string{"\\dg", "+"},
			LessMore:   [2]string{"less", "more"},
			References: []string{"0", "HF"},
			CSF:        []string{"Phi"},
			BareExcOps: []string{"T", "L", "R"},
		},
		Hamilton: Hamiltonian{
			Fock:         "F",
			OneElOp:      "h",
			FlucPot:      "W",
			DFlucPot:     "dW",
			Perturbation: "X",
		},
		MinFactor:      1e-10,
		SpinIntegrated: true,
	}
}

// Validate checks the internal consistency requirements spec.md §6/§7
// place on the syntax dictionary, returning a *qerr.Error{Kind: qerr.Config}
// on the first violation found.
func (c Config) Validate() error {
	const stage = "config"
	if len(c.Syntax.Dagger) == 0 {
		return qerr.Configf(stage, "syntax.dg must list at least one dagger marker")
	}
	if len(c.Syntax.LessMore[0]) != len(c.Syntax.LessMore[1]) {
		return qerr.Configf(stage, "syntax.lessmore: less/more strings differ in length (%q vs %q)",
			c.Syntax.LessMore[0], c.Syntax.LessMore[1])
	}
	if c.Hamilton.Fock == "" && c.Hamilton.FlucPot == "" && c.Hamilton.Perturbation == "" {
		return qerr.Configf(stage, "hamilton: no Hamiltonian-part symbols configured")
	}
	if c.MinFactor < 0 {
		return qerr.Configf(stage, "prog.minfac must be non-negative, got %v", c.MinFactor)
	}
	return nil
}

// DefaultSpin returns the default spin assigned to orbitals parsed without
// an explicit spin, per prog.spinintegr.
func (c Config) DefaultSpin() orbital.SpinType {
	if c.SpinIntegrated {
		return orbital.GenS
	}
	return orbital.Gen
}
