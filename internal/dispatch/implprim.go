package dispatch

import (
	"sort"

	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchImplPrimitive runs the inversion/optimization-only operations
// an Under or Invert expansion emits as OpImplPrim. Unlike Primitive,
// these never originate from source text, so there is no frontend-facing
// error message to craft: failures here use the same taxonomy the forward
// operation would have used (ShapeMismatch/TypeMismatch, or OutOfBounds
// for an empty array), and an unknown ImplPrimitive is InternalInvariant.
func dispatchImplPrimitive(rt *vm.Runtime, ip catalogue.ImplPrimitive, n int) error {
	switch ip {
	case catalogue.InvTranspose:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out := v
		for i := 1; i < v.Rank(); i++ {
			var terr error
			out, terr = value.Transpose(out)
			if terr != nil {
				return errorsx.New(errorsx.ShapeMismatch, terr.Error(), rt.Span())
			}
		}
		rt.Push(out)
		return nil
	case catalogue.InvBox:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, ok := value.Unbox(v)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "un box: expected a boxed scalar", rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.InvParse:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.StringValue(v.String()))
		return nil
	case catalogue.InvUtf:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		bytes, ok := v.AsInts()
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "un utf: expected a byte array", rt.Span())
		}
		b := make([]byte, len(bytes))
		for i, x := range bytes {
			b[i] = byte(x)
		}
		elems := make([]interface{}, 0, len(b))
		for _, r := range string(b) {
			elems = append(elems, r)
		}
		rt.Push(value.Value{Kind: value.KindChar, Shape: []int{len(elems)}, Elems: elems})
		return nil
	case catalogue.InverseBits:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.InverseBits(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.InvWhere:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.InvWhere(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.UnTake:
		return unTake(rt)
	case catalogue.UnDrop:
		return unDrop(rt)
	case catalogue.UnReshape:
		return unReshape(rt)
	case catalogue.UnRerank:
		return unRerank(rt)
	case catalogue.UnJoin:
		return unJoin(rt)
	case catalogue.UnCouple:
		return unCouple(rt)
	case catalogue.UnSelect:
		return unSelect(rt)
	case catalogue.UnPick:
		return unPick(rt)
	case catalogue.UnWindows:
		return unWindows(rt)
	case catalogue.UnGroup:
		return unGroup(rt)
	case catalogue.UnPartition:
		return unPartition(rt)
	case catalogue.Last_:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		if v.Rows() == 0 {
			return errorsx.New(errorsx.OutOfBounds, "last: empty array", rt.Span())
		}
		rt.Push(v.Row(v.Rows() - 1))
		return nil
	case catalogue.SortUp:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Select(value.Rise(v), v)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.SortDown:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Select(value.Fall(v), v)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.TransposeN:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out := v
		steps := n
		if steps < 0 {
			steps += v.Rank() * ((-steps)/v.Rank() + 1)
		}
		for i := 0; i < steps; i++ {
			var terr error
			out, terr = value.Transpose(out)
			if terr != nil {
				return errorsx.New(errorsx.ShapeMismatch, terr.Error(), rt.Span())
			}
		}
		rt.Push(out)
		return nil
	case catalogue.Cos_:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.LiftMonadic(v, func(x float64) (float64, error) { return cosViaSinAddEta(x), nil })
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.BuildArray:
		return buildArray(rt, n)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled impl primitive", rt.Span())
	}
}

func buildArray(rt *vm.Runtime, n int) error {
	if n <= 0 {
		rt.Push(value.Value{Kind: value.KindNumber, Shape: []int{0}, Elems: []interface{}{}})
		return nil
	}
	rows := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := rt.PopValue("elem")
		if err != nil {
			return err
		}
		rows[i] = v
	}
	shape := append([]int{n}, rows[0].Shape...)
	var elems []interface{}
	kind := rows[0].Kind
	for _, r := range rows {
		elems = append(elems, r.Elems...)
	}
	rt.Push(value.Value{Kind: kind, Shape: shape, Elems: elems})
	return nil
}

func unTake(rt *vm.Runtime) error {
	orig, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	rs := orig.RowSize()
	k := patch.Rows()
	out := append([]interface{}(nil), orig.Elems...)
	copy(out[:k*rs], patch.Elems)
	rt.Push(value.Value{Kind: orig.Kind, Shape: append([]int(nil), orig.Shape...), Elems: out})
	return nil
}

func unDrop(rt *vm.Runtime) error {
	orig, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	rs := orig.RowSize()
	dropped := orig.Rows() - patch.Rows()
	if dropped < 0 {
		dropped = 0
	}
	out := append([]interface{}(nil), orig.Elems...)
	copy(out[dropped*rs:], patch.Elems)
	rt.Push(value.Value{Kind: orig.Kind, Shape: append([]int(nil), orig.Shape...), Elems: out})
	return nil
}

func unReshape(rt *vm.Runtime) error {
	orig, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	out, rerr := value.Reshape(orig.Shape, patch)
	if rerr != nil {
		return errorsx.New(errorsx.ShapeMismatch, rerr.Error(), rt.Span())
	}
	rt.Push(out)
	return nil
}

func unRerank(rt *vm.Runtime) error {
	orig, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	out, rerr := value.Rerank(orig.Rank(), patch)
	if rerr != nil {
		return errorsx.New(errorsx.ShapeMismatch, rerr.Error(), rt.Span())
	}
	rt.Push(out)
	return nil
}

func unJoin(rt *vm.Runtime) error {
	v, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	if v.Rows() == 0 {
		return errorsx.New(errorsx.OutOfBounds, "un join: empty array", rt.Span())
	}
	head := v.Row(0)
	rs := v.RowSize()
	tail := value.Value{Kind: v.Kind, Shape: append([]int{v.Rows() - 1}, v.RowShape()...), Elems: append([]interface{}(nil), v.Elems[rs:]...)}
	rt.Push(head)
	rt.Push(tail)
	return nil
}

func unCouple(rt *vm.Runtime) error {
	v, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	if v.Rows() != 2 {
		return errorsx.New(errorsx.ShapeMismatch, "un couple: expected exactly two rows", rt.Span())
	}
	rt.Push(v.Row(0))
	rt.Push(v.Row(1))
	return nil
}

func unSelect(rt *vm.Runtime) error {
	idx, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	ints, ok := idx.AsInts()
	if !ok {
		return errorsx.New(errorsx.TypeMismatch, "un select: expected integer indices", rt.Span())
	}
	maxIdx := -1
	for _, i := range ints {
		if i > maxIdx {
			maxIdx = i
		}
	}
	rs := patch.RowSize()
	shape := append([]int{maxIdx + 1}, patch.RowShape()...)
	elems := make([]interface{}, (maxIdx+1)*rs)
	for pos, i := range ints {
		copy(elems[i*rs:(i+1)*rs], patch.Elems[pos*rs:(pos+1)*rs])
	}
	rt.Push(value.Value{Kind: patch.Kind, Shape: shape, Elems: elems})
	return nil
}

func unPick(rt *vm.Runtime) error {
	idx, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	patch, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	ints, ok := idx.AsInts()
	if !ok || len(ints) != 1 {
		return errorsx.New(errorsx.TypeMismatch, "un pick: expected a single integer index", rt.Span())
	}
	n := ints[0] + 1
	rs := patch.RowSize()
	shape := append([]int{n}, patch.Shape...)
	elems := make([]interface{}, n*rs)
	copy(elems[ints[0]*rs:(ints[0]+1)*rs], patch.Elems)
	rt.Push(value.Value{Kind: patch.Kind, Shape: shape, Elems: elems})
	return nil
}

func unWindows(rt *vm.Runtime) error {
	v, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	if v.Rank() < 2 || v.Shape[0] == 0 {
		return errorsx.New(errorsx.ShapeMismatch, "un windows: expected a nonempty windows array", rt.Span())
	}
	count := v.Shape[0]
	k := v.Shape[1]
	rowShape := v.RowShape()[1:]
	rs := 1
	for _, d := range rowShape {
		rs *= d
	}
	winRS := k * rs
	out := append([]interface{}(nil), v.Elems[0:winRS]...)
	for i := 1; i < count; i++ {
		winStart := i * winRS
		out = append(out, v.Elems[winStart+(k-1)*rs:winStart+k*rs]...)
	}
	rt.Push(value.Value{Kind: v.Kind, Shape: append([]int{count + k - 1}, rowShape...), Elems: out})
	return nil
}

// groupOrder reproduces the ascending unique-key order value.Group buckets
// by, so unGroup can find which bucket each row landed in.
func groupOrder(ks []int) []int {
	seen := map[int]bool{}
	var order []int
	for _, k := range ks {
		if k < 0 {
			continue
		}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	sort.Ints(order)
	return order
}

// unGroup walks keys in original row order, pulling each row back out of
// the bucket value.Group put it in: the key selects the bucket, and a
// per-key occurrence count selects the row within it, since a bucket's
// rows are appended in original encounter order.
func unGroup(rt *vm.Runtime) error {
	keys, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	grouped, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	ks, ok := keys.AsInts()
	if !ok {
		return errorsx.New(errorsx.TypeMismatch, "un group: keys must be natural", rt.Span())
	}
	if grouped.Kind != value.KindBox {
		return errorsx.New(errorsx.TypeMismatch, "un group: expected a boxed group array", rt.Span())
	}
	order := groupOrder(ks)
	if len(order) != len(grouped.Elems) {
		return errorsx.New(errorsx.ShapeMismatch, "un group: key count does not match the boxed group array", rt.Span())
	}
	bucketOf := make(map[int]int, len(order))
	for oi, k := range order {
		bucketOf[k] = oi
	}
	within := map[int]int{}
	var rows []interface{}
	var rowShape []int
	var kind value.ElemKind
	for _, k := range ks {
		if k < 0 {
			return errorsx.New(errorsx.ShapeMismatch, "un group: cannot reconstruct a row dropped by a negative key", rt.Span())
		}
		oi := bucketOf[k]
		bucket, ok := grouped.Elems[oi].(*value.Value)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "un group: expected a boxed sub-array", rt.Span())
		}
		i := within[k]
		within[k] = i + 1
		if i >= bucket.Rows() {
			return errorsx.New(errorsx.ShapeMismatch, "un group: bucket exhausted before its keys", rt.Span())
		}
		row := bucket.Row(i)
		if rowShape == nil {
			rowShape, kind = row.Shape, bucket.Kind
		}
		rows = append(rows, row.Elems...)
	}
	rt.Push(value.Value{Kind: kind, Shape: append([]int{len(ks)}, rowShape...), Elems: rows})
	return nil
}

// unPartition replays value.Partition's own run-splitting rule (a new part
// starts whenever the key changes) to find, for each row in key order,
// which part it came from and its position inside that part's run.
func unPartition(rt *vm.Runtime) error {
	keys, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	parts, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	ks, ok := keys.AsInts()
	if !ok {
		return errorsx.New(errorsx.TypeMismatch, "un partition: keys must be natural", rt.Span())
	}
	if parts.Kind != value.KindBox {
		return errorsx.New(errorsx.TypeMismatch, "un partition: expected a boxed partition array", rt.Span())
	}
	partIdx := -1
	posInPart := 0
	var rows []interface{}
	var rowShape []int
	var kind value.ElemKind
	for i, k := range ks {
		if k <= 0 {
			return errorsx.New(errorsx.ShapeMismatch, "un partition: cannot reconstruct a row dropped by a non-positive key", rt.Span())
		}
		if i == 0 || ks[i-1] != k {
			partIdx++
			posInPart = 0
		}
		if partIdx >= len(parts.Elems) {
			return errorsx.New(errorsx.ShapeMismatch, "un partition: key count does not match the boxed partition array", rt.Span())
		}
		part, ok := parts.Elems[partIdx].(*value.Value)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "un partition: expected a boxed sub-array", rt.Span())
		}
		if posInPart >= part.Rows() {
			return errorsx.New(errorsx.ShapeMismatch, "un partition: part exhausted before its keys", rt.Span())
		}
		row := part.Row(posInPart)
		posInPart++
		if rowShape == nil {
			rowShape, kind = row.Shape, part.Kind
		}
		rows = append(rows, row.Elems...)
	}
	if partIdx+1 != len(parts.Elems) {
		return errorsx.New(errorsx.ShapeMismatch, "un partition: boxed partition array has unused parts", rt.Span())
	}
	rt.Push(value.Value{Kind: kind, Shape: append([]int{len(ks)}, rowShape...), Elems: rows})
	return nil
}

func cosViaSinAddEta(x float64) float64 {
	const eta = 1.5707963267948966
	return sinFn(x + eta)
}

func sinFn(x float64) float64 {
	f, _ := monadicFns[catalogue.Sin](x)
	return f
}
