// Package container provides the two generic algebraic containers the
// derivation engine is built from: an ordered Product of elements (used for
// operator strings, matrix products, orbital tuples, ...), and a Sum that
// accumulates values keyed by a structurally-equal key (used for sums of
// Terms, sums of Permuts). Per Design Note 9 ("Operator overloading for
// algebra"), both are implemented as plain owned slices with explicit
// combinator methods rather than operator overloads.
package container

// Orderable is the constraint every element type stored in a Product must
// satisfy: a total order (for canonicalisation) and a value equality.
type Orderable[T any] interface {
	Less(other T) bool
	Equal(other T) bool
}

// Product is an ordered, immutable sequence of T. All mutating-looking
// methods return a new Product; the receiver is never modified.
type Product[T Orderable[T]] struct {
	items []T
}

// Empty returns the identity product (zero elements).
func Empty[T Orderable[T]]() Product[T] {
	return Product[T]{}
}

// Of builds a Product from a literal list of elements, preserving order.
func Of[T Orderable[T]](items ...T) Product[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return Product[T]{items: cp}
}

// Len returns the number of elements.
func (p Product[T]) Len() int { return len(p.items) }

// At returns the i-th element (0-based).
func (p Product[T]) At(i int) T { return p.items[i] }

// Slice returns a defensive copy of the underlying elements, in order.
func (p Product[T]) Slice() []T {
	cp := make([]T, len(p.items))
	copy(cp, p.items)
	return cp
}

// Mul appends a single element, returning the extended Product.
func (p Product[T]) Mul(t T) Product[T] {
	out := make([]T, len(p.items)+1)
	copy(out, p.items)
	out[len(p.items)] = t
	return Product[T]{items: out}
}

// MulProduct concatenates two Products, returning the combined Product.
func (p Product[T]) MulProduct(other Product[T]) Product[T] {
	out := make([]T, 0, len(p.items)+len(other.items))
	out = append(out, p.items...)
	out = append(out, other.items...)
	return Product[T]{items: out}
}

// Without returns a copy with the element at position i removed.
func (p Product[T]) Without(i int) Product[T] {
	out := make([]T, 0, len(p.items)-1)
	out = append(out, p.items[:i]...)
	out = append(out, p.items[i+1:]...)
	return Product[T]{items: out}
}

// Map replaces every element with f(element), preserving order.
func (p Product[T]) Map(f func(T) T) Product[T] {
	out := make([]T, len(p.items))
	for i, e := range p.items {
		out[i] = f(e)
	}
	return Product[T]{items: out}
}

// IndexOf returns the position of the first element equal to t, or -1.
func (p Product[T]) IndexOf(t T) int {
	for i, e := range p.items {
		if e.Equal(t) {
			return i
		}
	}
	return -1
}

// Equal reports structural (order-sensitive) equality.
func (p Product[T]) Equal(other Product[T]) bool {
	if len(p.items) != len(other.items) {
		return false
	}
	for i := range p.items {
		if !p.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Less gives the artificial total order used for canonicalisation: shorter
// products sort first, otherwise lexicographic elementwise comparison.
func (p Product[T]) Less(other Product[T]) bool {
	if len(p.items) != len(other.items) {
		return len(p.items) < len(other.items)
	}
	for i := range p.items {
		if p.items[i].Less(other.items[i]) {
			return true
		}
		if other.items[i].Less(p.items[i]) {
			return false
		}
	}
	return false
}

// ForEach walks the elements in order.
func (p Product[T]) ForEach(f func(int, T)) {
	for i, e := range p.items {
		f(i, e)
	}
}
