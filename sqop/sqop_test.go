package sqop

import (
	"testing"

	"github.com/thoschr/quantwo/orbital"
)

func TestGenderPHFlipsOccupied(t *testing.T) {
	c := New(Creator, orbital.New("i"))
	if g := c.GenderPH(); g != Annihilator {
		t.Errorf("occupied creator should flip to annihilator under PH, got %s", g)
	}
	a := New(Annihilator, orbital.New("j"))
	if g := a.GenderPH(); g != Creator {
		t.Errorf("occupied annihilator should flip to creator under PH, got %s", g)
	}
}

func TestGenderPHLeavesVirtualAlone(t *testing.T) {
	c := New(Creator, orbital.New("a"))
	if g := c.GenderPH(); g != Creator {
		t.Errorf("virtual creator should stay a creator under PH, got %s", g)
	}
}

func TestGenderPHActiveBecomesGeneral(t *testing.T) {
	c := New(Creator, orbital.New("t"))
	if g := c.GenderPH(); g != General {
		t.Errorf("active orbital should become General under PH, got %s", g)
	}
	gent := New(Annihilator, orbital.NewTyped("w", orbital.GenT, orbital.NoSpin))
	if g := gent.GenderPH(); g != General {
		t.Errorf("general-template orbital should become General under PH, got %s", g)
	}
}

func TestReplace(t *testing.T) {
	s := New(Creator, orbital.New("a"))
	r := s.Replace(orbital.New("a"), orbital.New("b"))
	if r.Orb.Name != "b" {
		t.Errorf("Replace should substitute the matching orbital, got %s", r.Orb.Name)
	}
	same := s.Replace(orbital.New("x"), orbital.New("y"))
	if same.Orb.Name != "a" {
		t.Error("Replace must not touch a non-matching orbital")
	}
}

func TestEqualAndLess(t *testing.T) {
	a := New(Creator, orbital.New("a"))
	b := New(Creator, orbital.New("a"))
	if !a.Equal(b) {
		t.Error("identical SQOps should be equal")
	}
	c := New(Annihilator, orbital.New("a"))
	if a.Equal(c) {
		t.Error("differing genders should not be equal")
	}
	if !a.Less(c) {
		t.Error("Creator should sort before Annihilator")
	}
}
