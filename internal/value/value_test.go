package value

import "testing"

func TestScalarAndArray(t *testing.T) {
	n := Number(3)
	if !n.IsScalar() || n.Rank() != 0 || n.Count() != 1 {
		t.Fatalf("Number(3) = %+v, want scalar rank 0 count 1", n)
	}

	arr := NewArray(KindNumber, []int{2, 3}, []interface{}{
		1.0, 2.0, 3.0,
		4.0, 5.0, 6.0,
	})
	if arr.Rank() != 2 || arr.Count() != 6 {
		t.Fatalf("NewArray shape [2,3] = rank %d count %d, want 2, 6", arr.Rank(), arr.Count())
	}
	if arr.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", arr.Rows())
	}
	row1 := arr.Row(1)
	want := []float64{4, 5, 6}
	got, ok := row1.AsFloats()
	if !ok || len(got) != len(want) {
		t.Fatalf("Row(1).AsFloats() = %v, %v; want %v, true", got, ok, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Row(1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMatch(t *testing.T) {
	a := NewArray(KindNumber, []int{3}, []interface{}{1.0, 2.0, 3.0})
	b := NewArray(KindNumber, []int{3}, []interface{}{1.0, 2.0, 3.0})
	c := NewArray(KindNumber, []int{2}, []interface{}{1.0, 2.0})

	if !Match(a, b) {
		t.Errorf("Match(a, b) = false, want true for equal arrays")
	}
	if Match(a, c) {
		t.Errorf("Match(a, c) = true, want false for differing shapes")
	}
}

func TestBoxUnbox(t *testing.T) {
	inner := Number(42)
	boxed := Box(inner)
	if boxed.Kind != KindBox {
		t.Fatalf("Box() kind = %v, want KindBox", boxed.Kind)
	}
	out, ok := Unbox(boxed)
	if !ok || !Match(out, inner) {
		t.Fatalf("Unbox(Box(v)) = %+v, %v; want %+v, true", out, ok, inner)
	}
	if _, ok := Unbox(inner); ok {
		t.Fatalf("Unbox(non-box) should fail")
	}
}

func TestAsIntsRejectsFractional(t *testing.T) {
	v := Number(1.5)
	if _, ok := v.AsInts(); ok {
		t.Fatalf("AsInts() on 1.5 should fail")
	}
	v2 := Number(2)
	ints, ok := v2.AsInts()
	if !ok || len(ints) != 1 || ints[0] != 2 {
		t.Fatalf("AsInts() on 2 = %v, %v; want [2], true", ints, ok)
	}
}
