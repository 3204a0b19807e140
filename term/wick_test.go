package term

import (
	"testing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/sqop"
)

func singlePairTerm() Term {
	t := New()
	t.OpProd = container.Of(
		sqop.New(sqop.Creator, orbital.New("i")),
		sqop.New(sqop.Annihilator, orbital.New("j")),
	)
	return t
}

func TestNormalOrderPHContractsOccupiedCreatorAnnihilatorPair(t *testing.T) {
	term := singlePairTerm()
	sums := term.NormalOrderPH(true)
	if sums.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (the only fully-contracted branch)", sums.Len())
	}
	entry := sums.Entries()[0]
	if entry.Key.KProd.Len() != 1 {
		t.Fatalf("contracted term should carry one Kronecker, got %d", entry.Key.KProd.Len())
	}
	k := entry.Key.KProd.At(0)
	if k.A.Name != "i" || k.B.Name != "j" {
		t.Errorf("Kronecker = (%s,%s), want (i,j)", k.A, k.B)
	}
	if entry.Key.OpProd.Len() != 0 {
		t.Errorf("a fully contracted term should have no surviving operators, got %d", entry.Key.OpProd.Len())
	}
}

func TestNormalOrderPHKeepsUncontractedBranchWhenNotRestricted(t *testing.T) {
	term := singlePairTerm()
	sums := term.NormalOrderPH(false)
	if sums.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (normal-ordered survivor + contraction)", sums.Len())
	}
}

func TestWicksTheoremOnTwoIndependentPairsProducesFourBranches(t *testing.T) {
	term := New()
	term.OpProd = container.Of(
		sqop.New(sqop.Creator, orbital.New("i")),
		sqop.New(sqop.Annihilator, orbital.New("j")),
		sqop.New(sqop.Creator, orbital.New("a")),
		sqop.New(sqop.Annihilator, orbital.New("b")),
	)
	sums := term.WicksTheorem(false)
	// Each of the two independent i/j and a/b pairs contracts independently
	// or not: 2*2 = 4 branches total.
	if sums.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sums.Len())
	}
}
