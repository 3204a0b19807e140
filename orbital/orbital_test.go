package orbital

import "testing"

func TestNewInfersType(t *testing.T) {
	cases := []struct {
		name string
		want Type
	}{
		{"i", Occ},
		{"j3", Occ},
		{"a", Virt},
		{"b7", Virt},
		{"t", Act},
		{"u1", Act},
		{"p", Gen},
		{"P", Gen},
	}
	for _, c := range cases {
		if got := New(c.name).Typ; got != c.want {
			t.Errorf("New(%q).Typ = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestLetName(t *testing.T) {
	o := New("a12")
	if got := o.LetName(); got != "a" {
		t.Errorf("LetName() = %q, want %q", got, "a")
	}
}

func TestSameLetterFamily(t *testing.T) {
	a := New("a1")
	b := New("a2")
	c := New("b1")
	if !a.SameLetterFamily(b) {
		t.Error("a1 and a2 should share a letter family")
	}
	if a.SameLetterFamily(c) {
		t.Error("a1 and b1 should not share a letter family")
	}
}

func TestNextLetterInFamily(t *testing.T) {
	a := New("a")
	n1 := NextLetterInFamily(a)
	if n1.Name != "a1" {
		t.Errorf("NextLetterInFamily(a) = %q, want %q", n1.Name, "a1")
	}
	n2 := NextLetterInFamily(n1)
	if n2.Name != "a2" {
		t.Errorf("NextLetterInFamily(a1) = %q, want %q", n2.Name, "a2")
	}
}

func TestCompareOrdersByTypeThenNameThenSpin(t *testing.T) {
	occ := New("i")
	virt := New("a")
	if Compare(occ, virt) >= 0 {
		t.Error("an occupied orbital should sort before a virtual one")
	}
	if !occ.Less(virt) {
		t.Error("Less should agree with Compare")
	}
}

func TestEqual(t *testing.T) {
	a := NewTyped("a", Virt, Alpha)
	b := NewTyped("a", Virt, Alpha)
	c := NewTyped("a", Virt, Beta)
	if !a.Equal(b) {
		t.Error("identical orbitals should be equal")
	}
	if a.Equal(c) {
		t.Error("orbitals differing in spin should not be equal")
	}
}

func TestWithSpin(t *testing.T) {
	a := New("a")
	b := a.WithSpin(Alpha)
	if a.Spin != NoSpin {
		t.Error("WithSpin must not mutate the receiver")
	}
	if b.Spin != Alpha {
		t.Error("WithSpin should set the new spin")
	}
}
