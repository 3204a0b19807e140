package lexic

import (
	"testing"

	"github.com/thoschr/quantwo/config"
	"github.com/thoschr/quantwo/orbital"
)

func TestParseDaggerAndExcitationClass(t *testing.T) {
	cfg := config.Default()
	p, err := Parse(`T^{\dg}_{2}`, FAll, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "T" {
		t.Errorf("Name = %q, want T", p.Name)
	}
	if !p.Dg {
		t.Error("Dg should be true")
	}
	if !p.HasExcl || p.Excl != 2 {
		t.Errorf("Excl/HasExcl = %d/%v, want 2/true", p.Excl, p.HasExcl)
	}
}

func TestParseNonConservingLessMore(t *testing.T) {
	cfg := config.Default()
	p, err := Parse("R^{more1}_{2}", FAll, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Lmel != 1 {
		t.Errorf("Lmel = %d, want 1", p.Lmel)
	}
	if p.Dg {
		t.Error("Dg should be false, no dagger marker present")
	}
	if !p.HasExcl || p.Excl != 2 {
		t.Errorf("Excl/HasExcl = %d/%v, want 2/true", p.Excl, p.HasExcl)
	}
}

func TestParseNonConservingLess(t *testing.T) {
	cfg := config.Default()
	p, err := Parse("R^{less1}_{2}", FAll, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Lmel != -1 {
		t.Errorf("Lmel = %d, want -1", p.Lmel)
	}
}

func TestParseFreeLabelSubscript(t *testing.T) {
	cfg := config.Default()
	p, err := Parse(`mu_{ab}`, FAll, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.HasExcl {
		t.Error("a non-integer subscript should not set HasExcl")
	}
	if p.FreeLabel != "ab" {
		t.Errorf("FreeLabel = %q, want %q", p.FreeLabel, "ab")
	}
}

func TestParseOrbtypesSecondLayer(t *testing.T) {
	cfg := config.Default()
	p, err := Parse("T^{2}^{a,b}_{2}_{i,j}", FAll, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.HasOrbtyp {
		t.Fatal("HasOrbtyp should be true with two super and two sub groups")
	}
	if len(p.OrbTypes[0]) != 2 || p.OrbTypes[0][0] != orbital.Virt {
		t.Errorf("OrbTypes[0] = %v, want virtual slots for 'a,b'", p.OrbTypes[0])
	}
	if len(p.OrbTypes[1]) != 2 || p.OrbTypes[1][0] != orbital.Occ {
		t.Errorf("OrbTypes[1] = %v, want occupied slots for 'i,j'", p.OrbTypes[1])
	}
}

func TestParseDoesNotErrorOnUnrequestedFields(t *testing.T) {
	cfg := config.Default()
	// A malformed/ambiguous subscript should not raise when FOrbtypes/FExcl
	// were not requested.
	if _, err := Parse("X_{notanumber}", FName, cfg); err != nil {
		t.Errorf("Parse with a minimal field mask should not fail: %v", err)
	}
}

func TestParseGroupsSplitsNameAndBracedGroups(t *testing.T) {
	name, supers, subs := ParseGroups("Phi^{ab}_{ij}")
	if name != "Phi" {
		t.Errorf("name = %q, want Phi", name)
	}
	if len(supers) != 1 || supers[0] != "ab" {
		t.Errorf("supers = %v, want [ab]", supers)
	}
	if len(subs) != 1 || subs[0] != "ij" {
		t.Errorf("subs = %v, want [ij]", subs)
	}
}

func TestSplitTokensTrimsAndSplitsOnCommaOrSpace(t *testing.T) {
	got := SplitTokens("a, b ,c")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("SplitTokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitTokens[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitTokensEmpty(t *testing.T) {
	if got := SplitTokens(""); got != nil {
		t.Errorf("SplitTokens(\"\") = %v, want nil", got)
	}
}

func TestClassifyListInfersOrbitalTypes(t *testing.T) {
	cfg := config.Default()
	p, err := Parse("T^{2}^{a,b}_{2}_{i,j}", FOrbtypes|FExcl, cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.HasOrbtyp {
		t.Fatal("HasOrbtyp should be true")
	}
	if len(p.OrbTypes[0]) == 0 || p.OrbTypes[0][0] != orbital.Virt {
		t.Errorf("first orbtypes slot for 'a,b' should classify as Virt, got %v", p.OrbTypes[0])
	}
}
