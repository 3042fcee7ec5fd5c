package value

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"
)

// rowLess defines the lexicographic total order on rows used by rise,
// fall, sort and grade.
func rowLess(v Value, i, j int) bool {
	rs := v.RowSize()
	ei, ej := v.Elems[i*rs:(i+1)*rs], v.Elems[j*rs:(j+1)*rs]
	for k := range ei {
		c := compareElem(ei[k], ej[k])
		if c != 0 {
			return c < 0
		}
	}
	return false
}

func compareElem(a, b interface{}) int {
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case rune:
		bv := b.(rune)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Grade returns the permutation of row indices that sorts v ascending,
// stably. Rise is its name in user-facing code; Grade is carried as a
// distinct catalogue entry but computes the same order.
func Grade(v Value) Value {
	rows := v.Rows()
	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return rowLess(v, idx[a], idx[b]) })
	out := make([]interface{}, rows)
	for i, x := range idx {
		out[i] = float64(x)
	}
	return Value{Kind: KindNumber, Shape: []int{rows}, Elems: out}
}

// Rise is Grade under its spec name.
func Rise(v Value) Value { return Grade(v) }

// Fall returns the permutation of row indices that sorts v descending,
// stably.
func Fall(v Value) Value {
	rows := v.Rows()
	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return rowLess(v, idx[b], idx[a]) })
	out := make([]interface{}, rows)
	for i, x := range idx {
		out[i] = float64(x)
	}
	return Value{Kind: KindNumber, Shape: []int{rows}, Elems: out}
}

// Sort stably sorts v's rows ascending; it is documented as
// morally equal to `Select Rise Dup`.
func Sort(v Value) (Value, error) {
	rise := Rise(v)
	return Select(rise, v)
}

// Deduplicate removes duplicate rows, keeping the first occurrence of
// each, order preserved.
func Deduplicate(v Value) Value {
	rows := v.Rows()
	rs := v.RowSize()
	var kept []int
	for i := 0; i < rows; i++ {
		dup := false
		for _, k := range kept {
			if rowsEqual(v, i, k, rs) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, i)
		}
	}
	out := make([]interface{}, 0, len(kept)*rs)
	for _, k := range kept {
		out = append(out, v.Elems[k*rs:(k+1)*rs]...)
	}
	return Value{Kind: v.Kind, Shape: append([]int{len(kept)}, v.RowShape()...), Elems: out}
}

func rowsEqual(v Value, i, j, rs int) bool {
	for k := 0; k < rs; k++ {
		if !elemEqual(v.Elems[i*rs+k], v.Elems[j*rs+k]) {
			return false
		}
	}
	return true
}

// Classify assigns a unique, order-of-first-appearance index to each
// unique row.
func Classify(v Value) Value {
	rows := v.Rows()
	rs := v.RowSize()
	var seen []int
	out := make([]interface{}, rows)
	for i := 0; i < rows; i++ {
		cls := -1
		for ci, s := range seen {
			if rowsEqual(v, i, s, rs) {
				cls = ci
				break
			}
		}
		if cls == -1 {
			cls = len(seen)
			seen = append(seen, i)
		}
		out[i] = float64(cls)
	}
	return Value{Kind: KindNumber, Shape: []int{rows}, Elems: out}
}

// Member reports, for each row of needle, whether it occurs as a row of
// haystack.
func Member(needle, haystack Value) Value {
	out := make([]interface{}, needle.Rows())
	for i := 0; i < needle.Rows(); i++ {
		row := needle.Row(i)
		found := false
		for j := 0; j < haystack.Rows(); j++ {
			if Match(row, haystack.Row(j)) {
				found = true
				break
			}
		}
		out[i] = boolNum(found)
	}
	return Value{Kind: KindNumber, Shape: []int{needle.Rows()}, Elems: out}
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// IndexOf finds, for each row of needle, the first row-index of a match
// in haystack, or haystack.Rows() if absent.
func IndexOf(needle, haystack Value) Value {
	out := make([]interface{}, needle.Rows())
	for i := 0; i < needle.Rows(); i++ {
		row := needle.Row(i)
		idx := haystack.Rows()
		for j := 0; j < haystack.Rows(); j++ {
			if Match(row, haystack.Row(j)) {
				idx = j
				break
			}
		}
		out[i] = float64(idx)
	}
	return Value{Kind: KindNumber, Shape: []int{needle.Rows()}, Elems: out}
}

// Find locates the first index at which pattern occurs as a contiguous
// run of rows within haystack, or -1 if absent.
func Find(pattern, haystack Value) Value {
	pr, hr := pattern.Rows(), haystack.Rows()
	if pr == 0 || pr > hr {
		return Number(-1)
	}
	for start := 0; start+pr <= hr; start++ {
		ok := true
		for k := 0; k < pr; k++ {
			if !Match(pattern.Row(k), haystack.Row(start+k)) {
				ok = false
				break
			}
		}
		if ok {
			return Number(float64(start))
		}
	}
	return Number(-1)
}

// Group buckets rows of v by an integer key assigned by keys (one key per
// row), producing an array of boxed per-bucket arrays ordered by
// ascending key.
func Group(keys Value, v Value) (Value, error) {
	ks, ok := keys.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("group: keys must be natural")
	}
	if len(ks) != v.Rows() {
		return Value{}, fmt.Errorf("group: key count %d does not match %d rows", len(ks), v.Rows())
	}
	buckets := map[int][]int{}
	var order []int
	for i, k := range ks {
		if k < 0 {
			continue
		}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], i)
	}
	slices.Sort(order)
	out := make([]interface{}, len(order))
	for oi, k := range order {
		rows := buckets[k]
		rs := v.RowSize()
		elems := make([]interface{}, 0, len(rows)*rs)
		for _, r := range rows {
			elems = append(elems, v.Row(r).Elems...)
		}
		grouped := Value{Kind: v.Kind, Shape: append([]int{len(rows)}, v.RowShape()...), Elems: elems}
		cp := grouped
		out[oi] = &cp
	}
	return Value{Kind: KindBox, Shape: []int{len(order)}, Elems: out}, nil
}

// Partition buckets rows of v into contiguous runs of equal key, in
// encounter order.
func Partition(keys Value, v Value) (Value, error) {
	ks, ok := keys.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("partition: keys must be natural")
	}
	if len(ks) != v.Rows() {
		return Value{}, fmt.Errorf("partition: key count %d does not match %d rows", len(ks), v.Rows())
	}
	var parts [][]int
	for i, k := range ks {
		if k <= 0 {
			continue
		}
		if len(parts) > 0 && ks[i-1] == k {
			parts[len(parts)-1] = append(parts[len(parts)-1], i)
			continue
		}
		parts = append(parts, []int{i})
	}
	rs := v.RowSize()
	out := make([]interface{}, len(parts))
	for pi, rows := range parts {
		elems := make([]interface{}, 0, len(rows)*rs)
		for _, r := range rows {
			elems = append(elems, v.Row(r).Elems...)
		}
		part := Value{Kind: v.Kind, Shape: append([]int{len(rows)}, v.RowShape()...), Elems: elems}
		cp := part
		out[pi] = &cp
	}
	return Value{Kind: KindBox, Shape: []int{len(parts)}, Elems: out}, nil
}

// Where returns the indices of the elements that are not 0 or empty.
func Where(v Value) (Value, error) {
	fs, ok := v.AsFloats()
	if !ok {
		return Value{}, fmt.Errorf("where: expected numbers")
	}
	var idx []interface{}
	for i, f := range fs {
		if f != 0 {
			idx = append(idx, float64(i))
		}
	}
	return Value{Kind: KindNumber, Shape: []int{len(idx)}, Elems: idx}, nil
}

// InvWhere is Where's round-trip inverse: it expands an index array back
// into an indicator array long enough to cover the largest index.
func InvWhere(idx Value) (Value, error) {
	is, ok := idx.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("un where: expected naturals")
	}
	max := -1
	for _, i := range is {
		if i > max {
			max = i
		}
	}
	out := make([]interface{}, max+1)
	for i := range out {
		out[i] = float64(0)
	}
	for _, i := range is {
		out[i] = float64(1)
	}
	return Value{Kind: KindNumber, Shape: []int{len(out)}, Elems: out}, nil
}

// Bits decomposes a nonnegative integer scalar into its bits, LSB first.
func Bits(v Value) (Value, error) {
	fs, ok := v.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("bits: expected naturals")
	}
	if !v.IsScalar() {
		return Value{}, fmt.Errorf("bits: expected a scalar")
	}
	n := fs[0]
	if n < 0 {
		return Value{}, fmt.Errorf("bits: expected a nonnegative integer")
	}
	var bits []interface{}
	if n == 0 {
		bits = append(bits, float64(0))
	}
	for n > 0 {
		bits = append(bits, float64(n&1))
		n >>= 1
	}
	return Value{Kind: KindNumber, Shape: []int{len(bits)}, Elems: bits}, nil
}

// InverseBits recomposes an integer from its LSB-first bit array.
func InverseBits(v Value) (Value, error) {
	bits, ok := v.AsInts()
	if !ok {
		return Value{}, fmt.Errorf("un bits: expected naturals")
	}
	n := 0
	for i, b := range bits {
		if b != 0 {
			n |= 1 << uint(i)
		}
	}
	return Number(float64(n)), nil
}
