package config

import (
	"testing"

	"github.com/thoschr/quantwo/orbital"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsEmptyDagger(t *testing.T) {
	cfg := Default()
	cfg.Syntax.Dagger = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an empty dagger list")
	}
}

func TestValidateRejectsMismatchedLessMore(t *testing.T) {
	cfg := Default()
	cfg.Syntax.LessMore = [2]string{"lt", "more"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject mismatched less/more lengths")
	}
}

func TestValidateRejectsNoHamiltonianSymbols(t *testing.T) {
	cfg := Default()
	cfg.Hamilton = Hamiltonian{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a config with no Hamiltonian-part symbols")
	}
}

func TestValidateRejectsNegativeMinFactor(t *testing.T) {
	cfg := Default()
	cfg.MinFactor = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a negative MinFactor")
	}
}

func TestDefaultSpin(t *testing.T) {
	spinIntegrated := Default()
	if got := spinIntegrated.DefaultSpin(); got != orbital.GenS {
		t.Errorf("DefaultSpin() = %s, want %s", got, orbital.GenS)
	}
	spinGeneral := Default()
	spinGeneral.SpinIntegrated = false
	if got := spinGeneral.DefaultSpin(); got != orbital.Gen {
		t.Errorf("DefaultSpin() = %s, want %s", got, orbital.Gen)
	}
}
