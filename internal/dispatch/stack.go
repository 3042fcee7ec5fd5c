package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchStack implements the pure stack-shuffling variants: they never
// inspect Value content.
func dispatchStack(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.Dup:
		v, err := rt.Pop("1")
		if err != nil {
			return err
		}
		rt.Push(v)
		rt.Push(v)
		return nil
	case catalogue.Over:
		b, err := rt.Pop("2")
		if err != nil {
			return err
		}
		a, err := rt.Pop("1")
		if err != nil {
			return err
		}
		rt.Push(a)
		rt.Push(b)
		rt.Push(a)
		return nil
	case catalogue.Flip:
		b, err := rt.Pop("2")
		if err != nil {
			return err
		}
		a, err := rt.Pop("1")
		if err != nil {
			return err
		}
		rt.Push(b)
		rt.Push(a)
		return nil
	case catalogue.Pop:
		_, err := rt.Pop("1")
		return err
	case catalogue.Identity:
		v, err := rt.Pop("1")
		if err != nil {
			return err
		}
		rt.Push(v)
		return nil
	case catalogue.Save:
		v, err := rt.Pop("1")
		if err != nil {
			return err
		}
		rt.AntiPush(v)
		return nil
	case catalogue.Load:
		v, err := rt.AntiPop()
		if err != nil {
			return err
		}
		rt.Push(v)
		return nil
	case catalogue.Call:
		fn, err := rt.PopFunction()
		if err != nil {
			return err
		}
		return rt.Call(fn)
	case catalogue.Noop:
		return nil
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled stack primitive "+p.Name(), rt.Span())
	}
}
