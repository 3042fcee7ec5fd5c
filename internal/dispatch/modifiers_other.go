package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

func dispatchOtherModifier(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.Try:
		return tryOp(rt)
	case catalogue.Memo:
		return memoOp(rt)
	case catalogue.Comptime:
		return errorsx.New(errorsx.InternalInvariant, "comptime is inline-only and must never reach Dispatch", rt.Span())
	case catalogue.Fill:
		return fillOp(rt)
	case catalogue.Spawn:
		return spawnOp(rt)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled other modifier "+p.Name(), rt.Span())
	}
}

func tryOp(rt *vm.Runtime) error {
	g, err := rt.PopFunction()
	if err != nil {
		return err
	}
	f, err := rt.PopFunction()
	if err != nil {
		return err
	}
	k := f.Signature.Args
	args := make([]vm.StackValue, k)
	for i := k - 1; i >= 0; i-- {
		v, err := rt.Pop("arg")
		if err != nil {
			return err
		}
		args[i] = v
	}
	return rt.TryCall(f, g, args)
}

func memoOp(rt *vm.Runtime) error {
	fn, err := rt.PopFunction()
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
	if out, ok := rt.MemoLookup(fn, args); ok {
		for _, o := range out {
			rt.Push(o)
		}
		return nil
	}
	for _, a := range args {
		rt.Push(a)
	}
	if err := rt.Call(fn); err != nil {
		return err
	}
	n := fn.Signature.Outputs
	out := make([]vm.StackValue, n)
	for i := n - 1; i >= 0; i-- {
		v, err := rt.Pop("result")
		if err != nil {
			return err
		}
		out[i] = v
	}
	rt.MemoStore(fn, args, out)
	for _, o := range out {
		rt.Push(o)
	}
	return nil
}

// fillOp calls fill and pops its top output as the fill value, then calls
// body with that value installed as the fill for its element kind.
func fillOp(rt *vm.Runtime) error {
	fill, err := rt.PopFunction()
	if err != nil {
		return err
	}
	body, err := rt.PopFunction()
	if err != nil {
		return err
	}
	if err := rt.Call(fill); err != nil {
		return err
	}
	fillValue, err := rt.PopValue("fill value")
	if err != nil {
		return err
	}
	k := body.Signature.Args
	args := make([]vm.StackValue, k)
	for i := k - 1; i >= 0; i-- {
		v, err := rt.Pop("arg")
		if err != nil {
			return err
		}
		args[i] = v
	}
	return rt.WithFill(fillValue, func() error {
		for _, a := range args {
			rt.Push(a)
		}
		return rt.Call(body)
	})
}

// spawnOp runs fn in a new task with its own argument count popped from the
// stack, pushing the opaque task id it can later be Wait/Send/Recv'd by.
func spawnOp(rt *vm.Runtime) error {
	fn, err := rt.PopFunction()
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
	id := rt.Spawn(fn, args)
	rt.Push(value.Number(float64(id)))
	return nil
}

func popTaskID(rt *vm.Runtime, name string) (int, error) {
	idv, err := rt.PopValue(name)
	if err != nil {
		return 0, err
	}
	ints, ok := idv.AsInts()
	if !ok || len(ints) != 1 {
		return 0, errorsx.New(errorsx.TypeMismatch, name+": expected a single task id", rt.Span())
	}
	return ints[0], nil
}
