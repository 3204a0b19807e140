package diag

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWarnRecordsAndFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quantwo.diag")
	defer teardown()

	var s Sink
	s.Warn("equation", "unused summation index %s", "i")
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got := s.All()[0]
	if got.Stage != "equation" {
		t.Errorf("Stage = %q, want %q", got.Stage, "equation")
	}
	if got.Message != "unused summation index i" {
		t.Errorf("Message = %q, want %q", got.Message, "unused summation index i")
	}
	if got.String() != "[equation] unused summation index i" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestWarnAccumulatesInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quantwo.diag")
	defer teardown()

	var s Sink
	s.Warn("a", "first")
	s.Warn("b", "second")
	all := s.All()
	if len(all) != 2 || all[0].Stage != "a" || all[1].Stage != "b" {
		t.Errorf("All() = %v, want insertion order preserved", all)
	}
}

func TestAllReturnsDefensiveCopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quantwo.diag")
	defer teardown()

	var s Sink
	s.Warn("a", "first")
	got := s.All()
	got[0].Message = "tampered"
	if s.All()[0].Message != "first" {
		t.Error("All() must return a defensive copy")
	}
}
