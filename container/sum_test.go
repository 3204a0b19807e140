package container

import "testing"

func intKeyEqual(a, b Int) bool { return a == b }
func intAdd(a, b Int) Int       { return a + b }

func TestSumAddMergesEqualKeys(t *testing.T) {
	s := NewSum(intKeyEqual, intAdd, Int(0))
	s = s.Add(Int(1), Int(10))
	s = s.Add(Int(1), Int(5))
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (keys should merge)", s.Len())
	}
	if s.Entries()[0].Value != 15 {
		t.Errorf("merged value = %d, want 15", s.Entries()[0].Value)
	}
}

func TestSumAddKeepsDistinctKeysInInsertionOrder(t *testing.T) {
	s := NewSum(intKeyEqual, intAdd, Int(0))
	s = s.Add(Int(2), Int(1))
	s = s.Add(Int(1), Int(1))
	s = s.Add(Int(2), Int(1))
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len() = %d, want 2", len(entries))
	}
	if entries[0].Key != 2 || entries[1].Key != 1 {
		t.Errorf("first-insertion order not preserved: %v", entries)
	}
	if entries[0].Value != 2 {
		t.Errorf("key 2 should have accumulated to 2, got %d", entries[0].Value)
	}
}

func TestSumAddDoesNotMutateReceiver(t *testing.T) {
	s := NewSum(intKeyEqual, intAdd, Int(0))
	s = s.Add(Int(1), Int(1))
	_ = s.Add(Int(1), Int(1))
	if s.Entries()[0].Value != 1 {
		t.Error("Add must not mutate the receiver")
	}
}

func TestSumAddAll(t *testing.T) {
	a := NewSum(intKeyEqual, intAdd, Int(0)).Add(Int(1), Int(1))
	b := NewSum(intKeyEqual, intAdd, Int(0)).Add(Int(1), Int(2)).Add(Int(2), Int(3))
	merged := a.AddAll(b)
	if merged.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", merged.Len())
	}
	entries := merged.Entries()
	if entries[0].Value != 3 {
		t.Errorf("key 1 should have accumulated to 3, got %d", entries[0].Value)
	}
}

// keyEqual that never merges, mirroring term.noMerge: every Add appends.
func neverEqual(a, b Int) bool { return false }

func TestSumWithNoMergeKeyEqualAppendsEveryEntry(t *testing.T) {
	s := NewSum(neverEqual, intAdd, Int(0))
	s = s.Add(Int(1), Int(1))
	s = s.Add(Int(1), Int(1))
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (a never-merging keyEqual must append)", s.Len())
	}
}
