package oper

import (
	"testing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/factor"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
)

func TestNewExcitationSingleHasUnitPrefactor(t *testing.T) {
	occs := container.Of(orbital.New("i"))
	virts := container.Of(orbital.New("a"))
	op, err := NewExcitation(matrices.Exc, occs, virts, "T")
	if err != nil {
		t.Fatalf("NewExcitation: %v", err)
	}
	if !op.Prefac.Equal(factor.One()) {
		t.Errorf("a single (non-repeated) excitation should have prefactor 1, got %s", op.Prefac)
	}
}

func TestNewExcitationDoubleSameTypeHasQuarterSymmetryFactor(t *testing.T) {
	occs := container.Of(orbital.New("i"), orbital.New("j"))
	virts := container.Of(orbital.New("a"), orbital.New("b"))
	op, err := NewExcitation(matrices.Exc, occs, virts, "T")
	if err != nil {
		t.Fatalf("NewExcitation: %v", err)
	}
	want := factor.One().Div(factor.FromInt(2 * 2))
	if !op.Prefac.Equal(want) {
		t.Errorf("a double same-type excitation should carry prefactor 1/(2!*2!)=1/4, got %s", op.Prefac)
	}
}

func TestNewExcitationDeexcSwapsCreatorAnnihilatorRoles(t *testing.T) {
	occs := container.Of(orbital.New("i"))
	virts := container.Of(orbital.New("a"))
	exc, err := NewExcitation(matrices.Exc, occs, virts, "T")
	if err != nil {
		t.Fatalf("NewExcitation(Exc): %v", err)
	}
	deexc, err := NewExcitation(matrices.Deexc, occs, virts, "T")
	if err != nil {
		t.Fatalf("NewExcitation(Deexc): %v", err)
	}
	// Exc creates the virtual and annihilates the occupied; Deexc does the
	// opposite, so the orbital bound to the first (creator) SQOp differs.
	if exc.SQProd.At(0).Orb.Name != "a" {
		t.Errorf("Exc should create the virtual orbital first, got %s", exc.SQProd.At(0).Orb.Name)
	}
	if deexc.SQProd.At(0).Orb.Name != "i" {
		t.Errorf("Deexc should create the occupied orbital first, got %s", deexc.SQProd.At(0).Orb.Name)
	}
}

func TestNewExcitationRejectsWrongType(t *testing.T) {
	occs := container.Of(orbital.New("i"))
	virts := container.Of(orbital.New("a"))
	if _, err := NewExcitation(matrices.Fock, occs, virts, "T"); err == nil {
		t.Error("NewExcitation should reject a non-excitation matrix type")
	}
}
