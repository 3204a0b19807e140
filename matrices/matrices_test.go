package matrices

import (
	"testing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/orbital"
)

func abOrbs() container.Product[orbital.Orbital] {
	return container.Of(orbital.New("a"), orbital.New("b"))
}

func TestNewDefaultsUnclassified(t *testing.T) {
	m := New(Fock, abOrbs(), "F")
	if m.ExcClass != -1 || m.IntLines != -1 || m.IntVirt != -1 {
		t.Errorf("New() should leave classification fields unset, got %+v", m)
	}
	if m.SpinSym != Singlet {
		t.Errorf("New() should default to Singlet, got %s", m.SpinSym)
	}
}

func TestEqualIgnoresClassificationFields(t *testing.T) {
	a := New(Fock, abOrbs(), "F").SetKind(1, 2, 3)
	b := New(Fock, abOrbs(), "F")
	if !a.Equal(b) {
		t.Error("Equal should compare type/orbs/name/spinsym/antisym, not classification bookkeeping")
	}
}

func TestEqualDistinguishesAntisymForm(t *testing.T) {
	a := NewAntisym(FluctP, abOrbs(), "W")
	b := New(FluctP, abOrbs(), "W")
	if a.Equal(b) {
		t.Error("antisymmetrised and plain matrices with the same orbitals should not be equal")
	}
}

func TestReplace(t *testing.T) {
	m := New(Fock, abOrbs(), "F")
	r := m.Replace(orbital.New("a"), orbital.New("c"))
	if r.Orbs.At(0).Name != "c" || r.Orbs.At(1).Name != "b" {
		t.Errorf("Replace did not substitute correctly: %v", r.Orbs.Slice())
	}
}

func TestExpandAntisymSwapsLastTwoColumns(t *testing.T) {
	orbs := container.Of(orbital.New("a"), orbital.New("b"), orbital.New("c"), orbital.New("d"))
	m := NewAntisym(FluctP, orbs, "W")

	first := m.ExpandAntisym(true)
	if first.AntisymForm {
		t.Error("ExpandAntisym should clear the antisym flag")
	}
	if first.Orbs.At(2).Name != "c" || first.Orbs.At(3).Name != "d" {
		t.Errorf("first half should keep original order, got %v", first.Orbs.Slice())
	}

	second := m.ExpandAntisym(false)
	if second.Orbs.At(2).Name != "d" || second.Orbs.At(3).Name != "c" {
		t.Errorf("second half should swap the last two columns, got %v", second.Orbs.Slice())
	}
}

func TestIsTwoElectron(t *testing.T) {
	if !New(FluctP, abOrbs(), "W").IsTwoElectron() {
		t.Error("FluctP should be a two-electron operator")
	}
	if New(Fock, abOrbs(), "F").IsTwoElectron() {
		t.Error("Fock should not be a two-electron operator")
	}
	if New(XPert, abOrbs(), "X").IsTwoElectron() {
		t.Error("XPert is a one-electron part, should not be a two-electron operator")
	}
}

func TestAddConnectAndSetConnect(t *testing.T) {
	m := New(Fock, abOrbs(), "F")
	m = m.AddConnect(2).AddConnect(-3)
	if m.Connected2.Len() != 2 || m.Connected2.At(0) != 2 || m.Connected2.At(1) != -3 {
		t.Errorf("AddConnect did not accumulate as expected: %v", m.Connected2.Slice())
	}
}
