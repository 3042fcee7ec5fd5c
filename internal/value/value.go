// Package value implements the runtime's sole data type: a rank-N array
// of a closed set of element kinds.
package value

import (
	"fmt"
	"strings"
)

// ElemKind is the closed set of element kinds a Value's buffer can hold.
type ElemKind int

const (
	KindNumber ElemKind = iota
	KindChar
	KindBox
	KindFunction
	KindByte
	KindComplex
)

func (k ElemKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindChar:
		return "character"
	case KindBox:
		return "box"
	case KindFunction:
		return "function"
	case KindByte:
		return "byte"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Value is the runtime's only datum: shape plus a flat, row-major
// content buffer.
type Value struct {
	Kind  ElemKind
	Shape []int
	Elems []interface{}
	Fill  *interface{}
	Label *string
}

// Rank is len(Shape).
func (v Value) Rank() int { return len(v.Shape) }

// Count is the product of Shape; the element count.
func (v Value) Count() int {
	n := 1
	for _, d := range v.Shape {
		n *= d
	}
	return n
}

// IsScalar reports whether v has rank 0.
func (v Value) IsScalar() bool { return len(v.Shape) == 0 }

// Scalar builds a rank-0 Value from a single element.
func Scalar(kind ElemKind, elem interface{}) Value {
	return Value{Kind: kind, Shape: nil, Elems: []interface{}{elem}}
}

// Number is a convenience constructor for a scalar number.
func Number(n float64) Value { return Scalar(KindNumber, n) }

// StringValue builds a rank-1 character array from a Go string.
func StringValue(s string) Value {
	r := []rune(s)
	elems := make([]interface{}, len(r))
	for i, c := range r {
		elems[i] = c
	}
	return Value{Kind: KindChar, Shape: []int{len(r)}, Elems: elems}
}

// Bool renders a Uiua boolean as a number, 0 or 1.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// NewArray builds an array Value from an explicit shape and row-major
// element buffer. Panics if the element count doesn't match the shape;
// callers within this package are expected to have already validated
// shape/count agreement, exactly as the dispatcher does before calling in.
func NewArray(kind ElemKind, shape []int, elems []interface{}) Value {
	shp := append([]int(nil), shape...)
	n := 1
	for _, d := range shp {
		n *= d
	}
	if n != len(elems) {
		panic(fmt.Sprintf("value: shape %v wants %d elements, got %d", shp, n, len(elems)))
	}
	return Value{Kind: kind, Shape: shp, Elems: elems}
}

// RowShape is the shape of one row: Shape[1:].
func (v Value) RowShape() []int {
	if len(v.Shape) == 0 {
		return nil
	}
	return v.Shape[1:]
}

// RowSize is the element count of one row.
func (v Value) RowSize() int {
	n := 1
	for _, d := range v.RowShape() {
		n *= d
	}
	return n
}

// Rows returns the leading dimension's length, or 1 for a scalar (a
// scalar is conventionally its own sole row).
func (v Value) Rows() int {
	if len(v.Shape) == 0 {
		return 1
	}
	return v.Shape[0]
}

// Row extracts row i as its own Value of rank Rank()-1.
func (v Value) Row(i int) Value {
	rs := v.RowSize()
	return Value{Kind: v.Kind, Shape: append([]int(nil), v.RowShape()...), Elems: v.Elems[i*rs : (i+1)*rs]}
}

// Match reports whether two Values have identical shape and pairwise-equal
// elements "match" equality.
func Match(a, b Value) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		if !elemEqual(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}

func elemEqual(x, y interface{}) bool {
	switch xv := x.(type) {
	case float64:
		yv, ok := y.(float64)
		return ok && xv == yv
	case rune:
		yv, ok := y.(rune)
		return ok && xv == yv
	case *Value:
		yv, ok := y.(*Value)
		return ok && Match(*xv, *yv)
	default:
		return x == y
	}
}

// Box wraps v at exactly one level.
func Box(v Value) Value {
	cp := v
	return Scalar(KindBox, &cp)
}

// Unbox strips exactly one level of boxing.
func Unbox(v Value) (Value, bool) {
	if v.Kind != KindBox || len(v.Elems) != 1 {
		return Value{}, false
	}
	inner, ok := v.Elems[0].(*Value)
	if !ok {
		return Value{}, false
	}
	return *inner, true
}

// AsFloats extracts the flat numeric buffer, for ops that only make sense
// on numbers (e.g. shape/index arguments).
func (v Value) AsFloats() ([]float64, bool) {
	if v.Kind != KindNumber {
		return nil, false
	}
	out := make([]float64, len(v.Elems))
	for i, e := range v.Elems {
		f, ok := e.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// AsInts extracts the flat buffer as integers, failing if any element is
// not integral.
func (v Value) AsInts() ([]int, bool) {
	fs, ok := v.AsFloats()
	if !ok {
		return nil, false
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		if f != float64(int(f)) {
			return nil, false
		}
		out[i] = int(f)
	}
	return out, true
}

// String renders a Value for debug/trace output (Dump/Stack/Trace).
func (v Value) String() string {
	if v.IsScalar() {
		return elemString(v.Elems[0])
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < v.Rows(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.Row(i).String())
	}
	b.WriteByte(']')
	return b.String()
}

func elemString(e interface{}) string {
	switch x := e.(type) {
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case rune:
		return string(x)
	case *Value:
		return "□" + x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
