package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

func dispatchAggregatingModifier(rt *vm.Runtime, p catalogue.Primitive) error {
	fn, err := rt.PopFunction()
	if err != nil {
		return err
	}
	switch p {
	case catalogue.Reduce:
		return reduceOp(rt, fn)
	case catalogue.Fold:
		return foldOp(rt, fn)
	case catalogue.Scan:
		return scanOp(rt, fn)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled aggregating modifier "+p.Name(), rt.Span())
	}
}

func reduceOp(rt *vm.Runtime, fn *vm.Function) error {
	arr, err := rt.PopValue("array")
	if err != nil {
		return err
	}
	n := arr.Rows()
	if n == 0 {
		return errorsx.New(errorsx.OutOfBounds, "reduce: empty array with no seed", rt.Span())
	}
	acc := arr.Row(0)
	for i := 1; i < n; i++ {
		out, err := callWithArgs(rt, fn, []vm.StackValue{acc, arr.Row(i)})
		if err != nil {
			return err
		}
		if len(out) != 1 {
			return errorsx.New(errorsx.InternalInvariant, "reduce: function must produce exactly one output", rt.Span())
		}
		acc = out[0].(value.Value)
	}
	rt.Push(acc)
	return nil
}

func foldOp(rt *vm.Runtime, fn *vm.Function) error {
	arr, err := rt.PopValue("array")
	if err != nil {
		return err
	}
	seed, err := rt.Pop("seed")
	if err != nil {
		return err
	}
	acc := seed
	for i := 0; i < arr.Rows(); i++ {
		out, err := callWithArgs(rt, fn, []vm.StackValue{acc, arr.Row(i)})
		if err != nil {
			return err
		}
		if len(out) != 1 {
			return errorsx.New(errorsx.InternalInvariant, "fold: function must produce exactly one output", rt.Span())
		}
		acc = out[0]
	}
	rt.Push(acc)
	return nil
}

func scanOp(rt *vm.Runtime, fn *vm.Function) error {
	arr, err := rt.PopValue("array")
	if err != nil {
		return err
	}
	n := arr.Rows()
	if n == 0 {
		rt.Push(value.Value{Kind: arr.Kind, Shape: append([]int{0}, arr.RowShape()...), Elems: []interface{}{}})
		return nil
	}
	acc := arr.Row(0)
	rows := []value.Value{acc}
	for i := 1; i < n; i++ {
		out, err := callWithArgs(rt, fn, []vm.StackValue{acc, arr.Row(i)})
		if err != nil {
			return err
		}
		if len(out) != 1 {
			return errorsx.New(errorsx.InternalInvariant, "scan: function must produce exactly one output", rt.Span())
		}
		acc = out[0].(value.Value)
		rows = append(rows, acc)
	}
	shape := append([]int{len(rows)}, rows[0].Shape...)
	var elems []interface{}
	for _, r := range rows {
		elems = append(elems, r.Elems...)
	}
	rt.Push(value.Value{Kind: rows[0].Kind, Shape: shape, Elems: elems})
	return nil
}
