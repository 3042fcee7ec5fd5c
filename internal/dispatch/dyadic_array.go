package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchDyadicArray handles the two-array structural operations.
// Convention: for every variant here, "1" is the operand named first
// in the primitive's doc (shape/count/index/keys), popped from the
// stack top; "2" is the array it acts on, popped next.
func dispatchDyadicArray(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.Match:
		b, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		a, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.Bool(value.Match(a, b)))
		return nil
	case catalogue.NoMatch:
		b, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		a, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.Bool(!value.Match(a, b)))
		return nil
	case catalogue.Join:
		b, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		a, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Join(a, b)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Couple:
		b, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		a, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Couple(a, b)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Pick:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		idx, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Pick(idx, arr)
		if err != nil {
			return errorsx.New(errorsx.OutOfBounds, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Select:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		idx, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Select(idx, arr)
		if err != nil {
			return errorsx.New(errorsx.OutOfBounds, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Take:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		n, err := popInt(rt, "1")
		if err != nil {
			return err
		}
		out, err := value.Take(n, arr)
		if err != nil {
			return errorsx.New(errorsx.OutOfBounds, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Drop:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		n, err := popInt(rt, "1")
		if err != nil {
			return err
		}
		out, err := value.Drop(n, arr)
		if err != nil {
			return errorsx.New(errorsx.OutOfBounds, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Reshape:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		shp, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		shape, ok := shp.AsInts()
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "reshape: shape must be naturals", rt.Span())
		}
		out, err := value.Reshape(shape, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Rerank:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		n, err := popInt(rt, "1")
		if err != nil {
			return err
		}
		out, err := value.Rerank(n, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Rotate:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		n, err := popInt(rt, "1")
		if err != nil {
			return err
		}
		out, err := value.Rotate(n, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Windows:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		k, err := popInt(rt, "1")
		if err != nil {
			return err
		}
		out, err := value.Windows(k, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Replicate:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		counts, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := replicate(counts, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Member:
		haystack, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		needle, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.Member(needle, haystack))
		return nil
	case catalogue.Find:
		haystack, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		pattern, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.Find(pattern, haystack))
		return nil
	case catalogue.IndexOf:
		haystack, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		needle, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.IndexOf(needle, haystack))
		return nil
	case catalogue.Group:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		keys, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Group(keys, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	case catalogue.Partition:
		arr, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		keys, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		out, err := value.Partition(keys, arr)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
		return nil
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled dyadic array primitive "+p.Name(), rt.Span())
	}
}

func popInt(rt *vm.Runtime, name string) (int, error) {
	v, err := rt.PopValue(name)
	if err != nil {
		return 0, err
	}
	ints, ok := v.AsInts()
	if !ok || len(ints) != 1 {
		return 0, errorsx.New(errorsx.TypeMismatch, name+": expected an integer scalar", rt.Span())
	}
	return ints[0], nil
}

// replicate repeats each row of arr by the corresponding count.
func replicate(counts, arr value.Value) (value.Value, error) {
	cs, ok := counts.AsInts()
	if !ok {
		return value.Value{}, errTyped("replicate: counts must be naturals")
	}
	if len(cs) != arr.Rows() {
		return value.Value{}, errTyped("replicate: count length must match row count")
	}
	rs := arr.RowSize()
	var out []interface{}
	total := 0
	for _, c := range cs {
		if c < 0 {
			return value.Value{}, errTyped("replicate: negative count")
		}
		total += c
	}
	for i, c := range cs {
		row := arr.Elems[i*rs : (i+1)*rs]
		for k := 0; k < c; k++ {
			out = append(out, row...)
		}
	}
	return value.Value{Kind: arr.Kind, Shape: append([]int{total}, arr.RowShape()...), Elems: out}, nil
}
