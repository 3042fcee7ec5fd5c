package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// callWithArgs pushes args, calls fn, and pops exactly outputs results
// back off in push order.
func callWithArgs(rt *vm.Runtime, fn *vm.Function, args []vm.StackValue) ([]vm.StackValue, error) {
	base := rt.StackSize()
	for _, a := range args {
		rt.Push(a)
	}
	if err := rt.Call(fn); err != nil {
		return nil, err
	}
	n := fn.Signature.Outputs
	if rt.StackSize() < base+n {
		return nil, errorsx.New(errorsx.InternalInvariant, "function produced fewer outputs than declared", rt.Span())
	}
	out := make([]vm.StackValue, n)
	for i := n - 1; i >= 0; i-- {
		v, err := rt.Pop("modifier result")
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func dispatchIteratingModifier(rt *vm.Runtime, p catalogue.Primitive) error {
	fn, err := rt.PopFunction()
	if err != nil {
		return err
	}
	switch p {
	case catalogue.Each:
		return eachOrRows(rt, fn, true)
	case catalogue.Rows:
		return eachOrRows(rt, fn, false)
	case catalogue.Table:
		return tableOp(rt, fn)
	case catalogue.Distribute:
		return distributeOp(rt, fn)
	case catalogue.Zip:
		return zipOp(rt, fn)
	case catalogue.Repeat:
		return repeatOp(rt, fn)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled iterating modifier "+p.Name(), rt.Span())
	}
}

// eachOrRows applies fn elementwise (perElem=true) or rowwise across
// fn.Signature.Args arrays popped from the stack, all sharing the same
// element/row count.
func eachOrRows(rt *vm.Runtime, fn *vm.Function, perElem bool) error {
	k := fn.Signature.Args
	if k == 0 {
		k = 1
	}
	arrays := make([]value.Value, k)
	for i := k - 1; i >= 0; i-- {
		v, err := rt.PopValue("array")
		if err != nil {
			return err
		}
		arrays[i] = v
	}
	n := arrays[0].Rows()
	if perElem {
		n = len(arrays[0].Elems)
	}
	var results [][]vm.StackValue
	for i := 0; i < n; i++ {
		args := make([]vm.StackValue, k)
		for j, a := range arrays {
			if perElem {
				args[j] = value.Scalar(a.Kind, a.Elems[i])
			} else {
				args[j] = a.Row(i)
			}
		}
		out, err := callWithArgs(rt, fn, args)
		if err != nil {
			return err
		}
		results = append(results, out)
	}
	return pushResultRows(rt, results)
}

// pushResultRows stacks a slice of per-iteration output tuples back into
// one array per output position.
func pushResultRows(rt *vm.Runtime, results [][]vm.StackValue) error {
	if len(results) == 0 {
		rt.Push(value.Value{Kind: value.KindNumber, Shape: []int{0}, Elems: []interface{}{}})
		return nil
	}
	outs := len(results[0])
	for oi := 0; oi < outs; oi++ {
		first, ok := results[0][oi].(value.Value)
		if !ok {
			// Boxed/function results: box them uniformly.
			elems := make([]interface{}, len(results))
			for i, r := range results {
				cp := value.Box(toValue(r[oi]))
				elems[i] = cp.Elems[0]
			}
			rt.Push(value.Value{Kind: value.KindBox, Shape: []int{len(results)}, Elems: elems})
			continue
		}
		shape := append([]int{len(results)}, first.Shape...)
		elems := make([]interface{}, 0, len(results)*first.Count())
		for _, r := range results {
			v := r[oi].(value.Value)
			elems = append(elems, v.Elems...)
		}
		rt.Push(value.Value{Kind: first.Kind, Shape: shape, Elems: elems})
	}
	return nil
}

func toValue(sv vm.StackValue) value.Value {
	if v, ok := sv.(value.Value); ok {
		return v
	}
	return value.Scalar(value.KindFunction, sv)
}

func tableOp(rt *vm.Runtime, fn *vm.Function) error {
	b, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	a, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	var results [][]vm.StackValue
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Rows(); j++ {
			out, err := callWithArgs(rt, fn, []vm.StackValue{a.Row(i), b.Row(j)})
			if err != nil {
				return err
			}
			results = append(results, out)
		}
	}
	return pushResultRows(rt, results)
}

func distributeOp(rt *vm.Runtime, fn *vm.Function) error {
	b, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	fixed, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	var results [][]vm.StackValue
	for i := 0; i < b.Rows(); i++ {
		out, err := callWithArgs(rt, fn, []vm.StackValue{fixed, b.Row(i)})
		if err != nil {
			return err
		}
		results = append(results, out)
	}
	return pushResultRows(rt, results)
}

func zipOp(rt *vm.Runtime, fn *vm.Function) error {
	b, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	a, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	if a.Rows() != b.Rows() {
		return errorsx.New(errorsx.ShapeMismatch, "zip: row count mismatch", rt.Span())
	}
	var results [][]vm.StackValue
	for i := 0; i < a.Rows(); i++ {
		out, err := callWithArgs(rt, fn, []vm.StackValue{a.Row(i), b.Row(i)})
		if err != nil {
			return err
		}
		results = append(results, out)
	}
	return pushResultRows(rt, results)
}

func repeatOp(rt *vm.Runtime, fn *vm.Function) error {
	n, err := popInt(rt, "n")
	if err != nil {
		return err
	}
	k := fn.Signature.Args
	args := make([]vm.StackValue, k)
	for i := k - 1; i >= 0; i-- {
		v, err := rt.Pop("arg")
		if err != nil {
			return err
		}
		args[i] = v
	}
	for i := 0; i < n; i++ {
		out, err := callWithArgs(rt, fn, args)
		if err != nil {
			return err
		}
		args = out
		if len(args) != k {
			break
		}
	}
	for _, a := range args {
		rt.Push(a)
	}
	return nil
}
