package container

import "testing"

func TestProductMulAppends(t *testing.T) {
	p := Empty[Int]().Mul(Int(1)).Mul(Int(2))
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if p.At(0) != 1 || p.At(1) != 2 {
		t.Errorf("Mul did not preserve insertion order: %v", p.Slice())
	}
}

func TestProductMulDoesNotMutateReceiver(t *testing.T) {
	base := Empty[Int]().Mul(Int(1))
	_ = base.Mul(Int(2))
	if base.Len() != 1 {
		t.Error("Mul must not mutate the receiver")
	}
}

func TestProductWithout(t *testing.T) {
	p := Of(Int(1), Int(2), Int(3))
	q := p.Without(1)
	if q.Len() != 2 || q.At(0) != 1 || q.At(1) != 3 {
		t.Errorf("Without(1) = %v, want [1 3]", q.Slice())
	}
	if p.Len() != 3 {
		t.Error("Without must not mutate the receiver")
	}
}

func TestProductEqual(t *testing.T) {
	a := Of(Int(1), Int(2))
	b := Of(Int(1), Int(2))
	c := Of(Int(2), Int(1))
	if !a.Equal(b) {
		t.Error("same-order products should be equal")
	}
	if a.Equal(c) {
		t.Error("Product.Equal is order-sensitive")
	}
}

func TestProductLessByLengthThenElements(t *testing.T) {
	short := Of(Int(5))
	long := Of(Int(1), Int(2))
	if !short.Less(long) {
		t.Error("a shorter product should sort before a longer one")
	}
	a := Of(Int(1), Int(2))
	b := Of(Int(1), Int(3))
	if !a.Less(b) {
		t.Error("elementwise comparison should decide equal-length products")
	}
}

func TestProductIndexOf(t *testing.T) {
	p := Of(Int(1), Int(2), Int(3))
	if p.IndexOf(Int(2)) != 1 {
		t.Errorf("IndexOf(2) = %d, want 1", p.IndexOf(Int(2)))
	}
	if p.IndexOf(Int(9)) != -1 {
		t.Error("IndexOf should return -1 for an absent element")
	}
}

func TestProductMulProduct(t *testing.T) {
	a := Of(Int(1), Int(2))
	b := Of(Int(3), Int(4))
	c := a.MulProduct(b)
	if c.Len() != 4 || c.At(2) != 3 {
		t.Errorf("MulProduct() = %v, want [1 2 3 4]", c.Slice())
	}
}
