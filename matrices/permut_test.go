package matrices

import (
	"testing"

	"github.com/thoschr/quantwo/container"
	"github.com/thoschr/quantwo/orbital"
)

func TestIdentityPermutIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity() should report IsIdentity")
	}
}

func TestPermutApplySwapsNamedOrbitals(t *testing.T) {
	p := NewPermut(
		container.Of(orbital.New("a"), orbital.New("b")),
		container.Of(orbital.New("b"), orbital.New("a")),
	)
	if got := p.Apply(orbital.New("a")); got.Name != "b" {
		t.Errorf("Apply(a) = %s, want b", got.Name)
	}
	if got := p.Apply(orbital.New("c")); got.Name != "c" {
		t.Errorf("Apply(c) should be unchanged, got %s", got.Name)
	}
}

func TestPermutMulConcatenates(t *testing.T) {
	p1 := NewPermut(container.Of(orbital.New("a")), container.Of(orbital.New("b")))
	p2 := NewPermut(container.Of(orbital.New("c")), container.Of(orbital.New("d")))
	combined := p1.Mul(p2)
	if combined.From.Len() != 2 || combined.To.Len() != 2 {
		t.Errorf("Mul should concatenate both tuples, got %v / %v", combined.From.Slice(), combined.To.Slice())
	}
}

func TestPermutEqual(t *testing.T) {
	a := NewPermut(container.Of(orbital.New("a")), container.Of(orbital.New("b")))
	b := NewPermut(container.Of(orbital.New("a")), container.Of(orbital.New("b")))
	if !a.Equal(b) {
		t.Error("permutations built from equal tuples should be equal")
	}
}
