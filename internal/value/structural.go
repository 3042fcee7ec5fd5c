package value

import "fmt"

// asRow1 promotes a scalar to a rank-1, length-1 array
// "scalars promoted to rank 1" join rule.
func asRow1(v Value) Value {
	if !v.IsScalar() {
		return v
	}
	return Value{Kind: v.Kind, Shape: []int{1}, Elems: append([]interface{}(nil), v.Elems...)}
}

// Join concatenates a and b along axis 0, reconciling rank: scalars
// promote to rank 1; a rank-n array may join against a rank-(n+1) array
// whose trailing shape matches, treating the lower-rank side as a single
// row.
func Join(a, b Value) (Value, error) {
	a, b = asRow1(a), asRow1(b)
	if a.Kind != b.Kind {
		return Value{}, fmt.Errorf("join: element kind mismatch %s vs %s", a.Kind, b.Kind)
	}
	switch {
	case sameShape(a.RowShape(), b.RowShape()):
		shape := append([]int{a.Rows() + b.Rows()}, a.RowShape()...)
		elems := append(append([]interface{}(nil), a.Elems...), b.Elems...)
		return Value{Kind: a.Kind, Shape: shape, Elems: elems}, nil
	case a.Rank() == b.Rank()-1 && sameShape(a.Shape, b.RowShape()):
		shape := append([]int{b.Rows() + 1}, b.RowShape()...)
		elems := append(append([]interface{}(nil), a.Elems...), b.Elems...)
		return Value{Kind: a.Kind, Shape: shape, Elems: elems}, nil
	case b.Rank() == a.Rank()-1 && sameShape(b.Shape, a.RowShape()):
		shape := append([]int{a.Rows() + 1}, a.RowShape()...)
		elems := append(append([]interface{}(nil), a.Elems...), b.Elems...)
		return Value{Kind: a.Kind, Shape: shape, Elems: elems}, nil
	default:
		return Value{}, fmt.Errorf("join: shape mismatch %v vs %v", a.Shape, b.Shape)
	}
}

// Couple stacks two equally-shaped arrays along a new axis 0.
func Couple(a, b Value) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, fmt.Errorf("couple: element kind mismatch")
	}
	if !sameShape(a.Shape, b.Shape) {
		return Value{}, fmt.Errorf("couple: shape mismatch %v vs %v", a.Shape, b.Shape)
	}
	shape := append([]int{2}, a.Shape...)
	elems := append(append([]interface{}(nil), a.Elems...), b.Elems...)
	return Value{Kind: a.Kind, Shape: shape, Elems: elems}, nil
}

// Reshape refills or truncates v's element buffer to match shape, cycling
// through the existing elements.
func Reshape(shape []int, v Value) (Value, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return Value{}, fmt.Errorf("reshape: negative dimension %d", d)
		}
		n *= d
	}
	if len(v.Elems) == 0 {
		if n == 0 {
			return Value{Kind: v.Kind, Shape: append([]int(nil), shape...), Elems: []interface{}{}}, nil
		}
		return Value{}, fmt.Errorf("reshape: cannot fill nonempty shape from empty array")
	}
	out := make([]interface{}, n)
	for i := range out {
		out[i] = v.Elems[i%len(v.Elems)]
	}
	return Value{Kind: v.Kind, Shape: append([]int(nil), shape...), Elems: out}, nil
}

// Transpose cycles v's axes left by one.
func Transpose(v Value) (Value, error) {
	if v.Rank() < 2 {
		return v, nil
	}
	shape := append(append([]int(nil), v.Shape[1:]...), v.Shape[0])
	strides := rowMajorStrides(v.Shape)
	newStrides := rowMajorStrides(shape)
	out := make([]interface{}, len(v.Elems))
	idx := make([]int, v.Rank())
	for flat := range v.Elems {
		unflatten(flat, v.Shape, strides, idx)
		// rotate index left by one to match the axis cycle
		rotated := append(append([]int(nil), idx[1:]...), idx[0])
		newFlat := flatten(rotated, newStrides)
		out[newFlat] = v.Elems[flat]
	}
	return Value{Kind: v.Kind, Shape: shape, Elems: out}, nil
}

func rowMajorStrides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func unflatten(flat int, shape, strides []int, out []int) {
	for i := range shape {
		out[i] = (flat / strides[i]) % shape[i]
	}
}

func flatten(idx, strides []int) int {
	f := 0
	for i, s := range strides {
		f += idx[i] * s
	}
	return f
}

// Rotate cyclically shifts v's rows by n (may be negative).
func Rotate(n int, v Value) (Value, error) {
	rows := v.Rows()
	if rows == 0 {
		return v, nil
	}
	rs := v.RowSize()
	n = ((n % rows) + rows) % rows
	out := make([]interface{}, len(v.Elems))
	for i := 0; i < rows; i++ {
		src := (i + n) % rows
		copy(out[i*rs:(i+1)*rs], v.Elems[src*rs:(src+1)*rs])
	}
	return Value{Kind: v.Kind, Shape: append([]int(nil), v.Shape...), Elems: out}, nil
}

// Windows yields the contiguous windows of size k along axis 0.
func Windows(k int, v Value) (Value, error) {
	rows := v.Rows()
	if k < 0 || k > rows {
		return Value{}, fmt.Errorf("windows: size %d out of range for %d rows", k, rows)
	}
	rs := v.RowSize()
	nWindows := rows - k + 1
	shape := append([]int{nWindows, k}, v.RowShape()...)
	out := make([]interface{}, nWindows*k*rs)
	pos := 0
	for w := 0; w < nWindows; w++ {
		copy(out[pos:pos+k*rs], v.Elems[w*rs:(w+k)*rs])
		pos += k * rs
	}
	return Value{Kind: v.Kind, Shape: shape, Elems: out}, nil
}

// Take keeps the first n rows (or last |n| if n is negative).
func Take(n int, v Value) (Value, error) {
	rows := v.Rows()
	rs := v.RowSize()
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs > rows {
		return Value{}, fmt.Errorf("take: %d out of range for %d rows", n, rows)
	}
	var elems []interface{}
	if n >= 0 {
		elems = v.Elems[:n*rs]
	} else {
		elems = v.Elems[(rows+n)*rs:]
	}
	shape := append([]int{abs}, v.RowShape()...)
	return Value{Kind: v.Kind, Shape: shape, Elems: append([]interface{}(nil), elems...)}, nil
}

// Drop removes the first n rows (or last |n| if n is negative).
func Drop(n int, v Value) (Value, error) {
	rows := v.Rows()
	rs := v.RowSize()
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs > rows {
		abs = rows
	}
	var elems []interface{}
	var keep int
	if n >= 0 {
		elems = v.Elems[abs*rs:]
		keep = rows - abs
	} else {
		elems = v.Elems[:(rows-abs)*rs]
		keep = rows - abs
	}
	shape := append([]int{keep}, v.RowShape()...)
	return Value{Kind: v.Kind, Shape: shape, Elems: append([]interface{}(nil), elems...)}, nil
}

// Pick indexes a single element/row out of v by a coordinate array.
func Pick(idx Value, v Value) (Value, error) {
	coords, ok := idx.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("pick: index must be natural")
	}
	if len(coords) > v.Rank() {
		return Value{}, fmt.Errorf("pick: rank mismatch")
	}
	for i, c := range coords {
		if c < 0 || c >= v.Shape[i] {
			return Value{}, fmt.Errorf("pick: index %d out of bounds for axis of size %d", c, v.Shape[i])
		}
	}
	remShape := v.Shape[len(coords):]
	rs := 1
	for _, d := range remShape {
		rs *= d
	}
	offset := 0
	for i, c := range coords {
		offset = offset*v.Shape[i] + c
	}
	begin := offset * rs
	return Value{Kind: v.Kind, Shape: append([]int(nil), remShape...), Elems: append([]interface{}(nil), v.Elems[begin:begin+rs]...)}, nil
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Select gathers rows of v at the indices listed in idx.
func Select(idx Value, v Value) (Value, error) {
	indices, ok := idx.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("select: indices must be natural")
	}
	rs := v.RowSize()
	rows := v.Rows()
	out := make([]interface{}, 0, len(indices)*rs)
	for _, i := range indices {
		if i < 0 || i >= rows {
			return Value{}, fmt.Errorf("select: index %d out of bounds for %d rows", i, rows)
		}
		out = append(out, v.Elems[i*rs:(i+1)*rs]...)
	}
	shape := append([]int{len(indices)}, v.RowShape()...)
	return Value{Kind: v.Kind, Shape: shape, Elems: out}, nil
}

// Rerank changes v's rank while keeping the same flat elements, grouping
// or flattening leading axes to match the requested rank.
func Rerank(rank int, v Value) (Value, error) {
	if rank < 0 {
		return Value{}, fmt.Errorf("rerank: negative rank")
	}
	if rank >= v.Rank() {
		shape := make([]int, rank)
		for i := 0; i < rank-v.Rank(); i++ {
			shape[i] = 1
		}
		copy(shape[rank-v.Rank():], v.Shape)
		return Value{Kind: v.Kind, Shape: shape, Elems: append([]interface{}(nil), v.Elems...)}, nil
	}
	folded := 1
	for _, d := range v.Shape[:v.Rank()-rank+1] {
		folded *= d
	}
	shape := append([]int{folded}, v.Shape[v.Rank()-rank+1:]...)
	return Value{Kind: v.Kind, Shape: shape, Elems: append([]interface{}(nil), v.Elems...)}, nil
}
