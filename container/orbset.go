package container

import (
	"sort"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/thoschr/quantwo/orbital"
)

// OrbitalSet is the Set<Orbital> of spec.md §3 (Term.sumindx,
// Term.realsumindx): an ordered set of orbitals. It wraps
// github.com/emirpasic/gods/sets/treeset the same way the teacher's
// lr.tables.go wraps it for sets of LR states (treeset.NewWith plus a
// Comparator), giving us sorted, duplicate-free iteration for free.
type OrbitalSet struct {
	set *treeset.Set
}

func orbitalComparator(a, b interface{}) int {
	return orbital.Compare(a.(orbital.Orbital), b.(orbital.Orbital))
}

// NewOrbitalSet builds a set from zero or more orbitals.
func NewOrbitalSet(orbs ...orbital.Orbital) OrbitalSet {
	s := treeset.NewWith(orbitalComparator)
	for _, o := range orbs {
		s.Add(o)
	}
	return OrbitalSet{set: s}
}

// Add inserts an orbital (no-op if already present).
func (s OrbitalSet) Add(o orbital.Orbital) {
	s.set.Add(o)
}

// Remove deletes an orbital (no-op if absent).
func (s OrbitalSet) Remove(o orbital.Orbital) {
	s.set.Remove(o)
}

// Contains reports set membership. The zero OrbitalSet contains nothing.
func (s OrbitalSet) Contains(o orbital.Orbital) bool {
	return s.set != nil && s.set.Contains(o)
}

// Len returns the number of distinct orbitals (0 for the zero OrbitalSet).
func (s OrbitalSet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Size()
}

// Slice returns the orbitals in sorted order (nil for the zero OrbitalSet).
func (s OrbitalSet) Slice() []orbital.Orbital {
	if s.set == nil {
		return nil
	}
	vals := s.set.Values()
	out := make([]orbital.Orbital, len(vals))
	for i, v := range vals {
		out[i] = v.(orbital.Orbital)
	}
	sort.Slice(out, func(i, j int) bool { return orbital.Compare(out[i], out[j]) < 0 })
	return out
}

// Clone returns an independent copy.
func (s OrbitalSet) Clone() OrbitalSet {
	return NewOrbitalSet(s.Slice()...)
}

// Equal reports whether s and other contain exactly the same orbitals.
func (s OrbitalSet) Equal(other OrbitalSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, o := range s.Slice() {
		if !other.Contains(o) {
			return false
		}
	}
	return true
}

// Union returns a new set containing every orbital of s and other.
func (s OrbitalSet) Union(other OrbitalSet) OrbitalSet {
	out := s.Clone()
	for _, o := range other.Slice() {
		out.Add(o)
	}
	return out
}

// Minus returns a new set containing the orbitals of s not present in other.
func (s OrbitalSet) Minus(other OrbitalSet) OrbitalSet {
	out := NewOrbitalSet()
	for _, o := range s.Slice() {
		if !other.Contains(o) {
			out.Add(o)
		}
	}
	return out
}

// Int is a small Orderable wrapper over a signed index, used for
// Product<long int> (connection groups, operator-position lists).
type Int int

// Less implements container.Orderable.
func (i Int) Less(other Int) bool { return i < other }

// Equal implements container.Orderable.
func (i Int) Equal(other Int) bool { return i == other }
