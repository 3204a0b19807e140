package container

// Sum accumulates values of type V keyed by K, merging contributions whose
// keys compare equal under the caller-supplied equality rather than Go's
// built-in `==` (spec.md Term/Permut equality is structural-modulo-renaming,
// not bitwise). Insertion order of distinct keys is preserved, which keeps
// Wick-expansion output order deterministic (spec.md §4.4 "Ordering
// guarantee").
type Sum[K any, V any] struct {
	keyEqual func(a, b K) bool
	add      func(a, b V) V
	zero     V
	entries  []Entry[K, V]
}

// Entry is one (key, accumulated value) pair of a Sum.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// NewSum creates an empty Sum. keyEqual decides when two keys merge; add
// combines the values of two contributions that merge onto the same key.
func NewSum[K any, V any](keyEqual func(a, b K) bool, add func(a, b V) V, zero V) Sum[K, V] {
	return Sum[K, V]{keyEqual: keyEqual, add: add, zero: zero}
}

// Add merges in a (key, value) contribution, combining with any existing
// entry whose key compares equal. Returns the updated Sum; the receiver is
// left unmodified, since both the merge and the append path copy the
// entries into a freshly allocated slice.
func (s Sum[K, V]) Add(k K, v V) Sum[K, V] {
	for i := range s.entries {
		if s.keyEqual(s.entries[i].Key, k) {
			merged := make([]Entry[K, V], len(s.entries))
			copy(merged, s.entries)
			merged[i].Value = s.add(merged[i].Value, v)
			return Sum[K, V]{keyEqual: s.keyEqual, add: s.add, zero: s.zero, entries: merged}
		}
	}
	out := make([]Entry[K, V], len(s.entries)+1)
	copy(out, s.entries)
	out[len(s.entries)] = Entry[K, V]{Key: k, Value: v}
	return Sum[K, V]{keyEqual: s.keyEqual, add: s.add, zero: s.zero, entries: out}
}

// AddAll merges every entry of other into s, in order.
func (s Sum[K, V]) AddAll(other Sum[K, V]) Sum[K, V] {
	out := s
	for _, e := range other.entries {
		out = out.Add(e.Key, e.Value)
	}
	return out
}

// Entries returns a defensive copy of the accumulated (key, value) pairs,
// in first-insertion order.
func (s Sum[K, V]) Entries() []Entry[K, V] {
	cp := make([]Entry[K, V], len(s.entries))
	copy(cp, s.entries)
	return cp
}

// Len returns the number of distinct keys accumulated.
func (s Sum[K, V]) Len() int { return len(s.entries) }
