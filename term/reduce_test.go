package term

import (
	"testing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/matrices"
	"github.com/thoschr/quantwo/orbital"
	"github.com/thoschr/quantwo/sqop"
)

func TestReduceTermSubstitutesAndDropsKronecker(t *testing.T) {
	term := New()
	term.OpProd = container.Of(sqop.New(sqop.Creator, orbital.New("j")))
	term.KProd = container.Of(matrices.NewKronecker(orbital.New("i"), orbital.New("j")))

	reduced := term.ReduceTerm()
	if reduced.KProd.Len() != 0 {
		t.Errorf("ReduceTerm should consume every Kronecker, %d left", reduced.KProd.Len())
	}
	if reduced.OpProd.At(0).Orb.Name != "i" {
		t.Errorf("substitute(j -> i) should rewrite the operator string, got %s", reduced.OpProd.At(0).Orb.Name)
	}
}

func TestMatrixKindClassifiesExcitationClass(t *testing.T) {
	orbs := container.Of(orbital.New("a"), orbital.New("b"), orbital.New("i"), orbital.New("j"))
	m := matrices.New(matrices.Exc, orbs, "T")
	term := New().AddMatrix(m)
	classified := term.MatrixKind()
	got := classified.Mat.At(1)
	if got.ExcClass != 0 {
		t.Errorf("a balanced double excitation (2 creators, 2 annihilators) should have ExcClass 0, got %d", got.ExcClass)
	}
}

func TestDeleteNoneMatsDropsPlaceholder(t *testing.T) {
	term := New()
	m := matrices.New(matrices.Fock, container.Of(orbital.New("a"), orbital.New("i")), "F")
	term = term.AddMatrix(m)
	if term.Mat.Len() != 2 {
		t.Fatalf("sanity: expected 2 matrices before deletion, got %d", term.Mat.Len())
	}
	cleaned := term.DeleteNoneMats()
	if cleaned.Mat.Len() != 1 || cleaned.Mat.At(0).Type != matrices.Fock {
		t.Errorf("DeleteNoneMats should drop only the None placeholder, got %v", cleaned.Mat.Slice())
	}
}

func TestBrillouinDetectsOccVirtFockBlock(t *testing.T) {
	fockOV := matrices.New(matrices.Fock, container.Of(orbital.New("i"), orbital.New("a")), "F")
	term := New().AddMatrix(fockOV).DeleteNoneMats()
	if !term.Brillouin() {
		t.Error("a lone occ-virt Fock block should satisfy Brillouin")
	}
}

func TestBrillouinRejectsOtherMatrices(t *testing.T) {
	fockOO := matrices.New(matrices.Fock, container.Of(orbital.New("i"), orbital.New("j")), "F")
	term := New().AddMatrix(fockOO).DeleteNoneMats()
	if term.Brillouin() {
		t.Error("an occ-occ Fock block should not satisfy Brillouin")
	}
}

func TestPropertConnectRequiresSharedIndexWhenConnected(t *testing.T) {
	i := orbital.New("i")
	m1 := matrices.New(matrices.Fock, container.Of(i, orbital.New("a")), "F")
	m2 := matrices.New(matrices.Number, container.Of(i), "X")
	term := New().AddMatrix(m1).AddMatrix(m2)
	term = term.AddSummation(container.Of(i))
	connected := term.AddConnection(container.Of(container.Int(2), container.Int(3)))
	if !connected.PropertConnect() {
		t.Error("two matrices sharing a summation index should satisfy a Connect group")
	}
}

func TestPropertConnectRejectsWhenDisconnectRequiredButShared(t *testing.T) {
	i := orbital.New("i")
	m1 := matrices.New(matrices.Fock, container.Of(i, orbital.New("a")), "F")
	m2 := matrices.New(matrices.Number, container.Of(i), "X")
	term := New().AddMatrix(m1).AddMatrix(m2)
	term = term.AddSummation(container.Of(i))
	disconnected := term.AddConnection(container.Of(container.Int(-2), container.Int(-3)))
	if disconnected.PropertConnect() {
		t.Error("a Disconnect group should fail when the matrices do share a summation index")
	}
}
