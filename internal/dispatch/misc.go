package dispatch

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

func dispatchMisc(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.Assert:
		return assertOp(rt)
	case catalogue.Throw:
		return throwOp(rt)
	case catalogue.Break:
		n, err := popInt(rt, "n")
		if err != nil {
			return err
		}
		return errorsx.Break(n, rt.Span())
	case catalogue.Recur:
		return errorsx.New(errorsx.InternalInvariant, "recur must be resolved by the caller's own frame, not dispatched", rt.Span())
	case catalogue.Debug:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Backend().Print(fmt.Sprintf("[debug] %s", v.String()))
		rt.Push(v)
		return nil
	case catalogue.Trace:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(v)
		rt.Dump("trace")
		return nil
	case catalogue.Dump:
		rt.Dump("stack")
		return nil
	case catalogue.Stack:
		rt.Dump("stack")
		return nil
	case catalogue.String:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.StringValue(v.String()))
		return nil
	case catalogue.Type:
		v, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		rt.Push(value.Number(float64(v.Kind)))
		return nil
	case catalogue.Use:
		return useOp(rt)
	case catalogue.Gen:
		return genOp(rt)
	case catalogue.Deal:
		return dealOp(rt)
	case catalogue.Tag:
		rt.Push(value.Number(float64(vm.NextTag())))
		return nil
	case catalogue.Now:
		rt.Push(value.Number(vm.Now()))
		return nil
	case catalogue.Regex:
		return regexOp(rt)
	case catalogue.Wait:
		return waitOp(rt)
	case catalogue.Send:
		return sendOp(rt)
	case catalogue.Recv:
		return recvOp(rt)
	case catalogue.TryRecv:
		return tryRecvOp(rt)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled misc primitive "+p.Name(), rt.Span())
	}
}

func assertOp(rt *vm.Runtime) error {
	msg, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	cond, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	ints, ok := cond.AsInts()
	if ok && len(ints) == 1 && ints[0] != 0 {
		return nil
	}
	return errorsx.Throw(msg, rt.Span(), nil)
}

func throwOp(rt *vm.Runtime) error {
	msg, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	_, err = rt.PopValue("1")
	if err != nil {
		return err
	}
	return errorsx.Throw(msg, rt.Span(), nil)
}

func useOp(rt *vm.Runtime) error {
	module, err := rt.Pop("module")
	if err != nil {
		return err
	}
	_, err = rt.PopValue("name")
	if err != nil {
		return err
	}
	mv, ok := module.(value.Value)
	if !ok || mv.Kind != value.KindBox || len(mv.Elems) == 0 {
		return errorsx.New(errorsx.TypeMismatch, "use: expected a boxed module value", rt.Span())
	}
	fn, ok := mv.Elems[0].(*vm.Function)
	if !ok {
		return errorsx.New(errorsx.TypeMismatch, "use: module export is not a function", rt.Span())
	}
	rt.Push(fn)
	return nil
}

func genOp(rt *vm.Runtime) error {
	seed, err := rt.PopValue("seed")
	if err != nil {
		return err
	}
	s, ok := seed.AsFloats()
	if !ok || len(s) != 1 {
		return errorsx.New(errorsx.TypeMismatch, "gen: expected a numeric seed", rt.Span())
	}
	next := lcgNext(s[0])
	rt.Push(value.Number(next / lcgModulus))
	rt.Push(value.Number(next))
	return nil
}

const lcgModulus = 4294967296.0

func lcgNext(seed float64) float64 {
	const a, c = 1664525.0, 1013904223.0
	x := seed*a + c
	for x < 0 {
		x += lcgModulus
	}
	for x >= lcgModulus {
		x -= lcgModulus
	}
	return x
}

func dealOp(rt *vm.Runtime) error {
	arr, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	seed, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	s, ok := seed.AsFloats()
	if !ok || len(s) != 1 {
		return errorsx.New(errorsx.TypeMismatch, "deal: expected a numeric seed", rt.Span())
	}
	n := arr.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	x := s[0]
	for i := n - 1; i > 0; i-- {
		x = lcgNext(x)
		j := int(x) % (i + 1)
		if j < 0 {
			j += i + 1
		}
		order[i], order[j] = order[j], order[i]
	}
	rs := arr.RowSize()
	out := make([]interface{}, 0, len(arr.Elems))
	for _, idx := range order {
		out = append(out, arr.Elems[idx*rs:(idx+1)*rs]...)
	}
	rt.Push(value.Value{Kind: arr.Kind, Shape: append([]int{n}, arr.RowShape()...), Elems: out})
	return nil
}

func waitOp(rt *vm.Runtime) error {
	id, err := popTaskID(rt, "id")
	if err != nil {
		return err
	}
	outs, err := rt.Wait(id)
	if err != nil {
		return err
	}
	for _, o := range outs {
		rt.Push(o)
	}
	return nil
}

func sendOp(rt *vm.Runtime) error {
	v, err := rt.Pop("value")
	if err != nil {
		return err
	}
	id, err := popTaskID(rt, "id")
	if err != nil {
		return err
	}
	return rt.Send(id, v)
}

func recvOp(rt *vm.Runtime) error {
	id, err := popTaskID(rt, "id")
	if err != nil {
		return err
	}
	v, err := rt.Recv(id)
	if err != nil {
		return err
	}
	rt.Push(v)
	return nil
}

func tryRecvOp(rt *vm.Runtime) error {
	id, err := popTaskID(rt, "id")
	if err != nil {
		return err
	}
	v, err := rt.TryRecv(id)
	if err != nil {
		return err
	}
	rt.Push(v)
	return nil
}

var (
	regexMu    sync.Mutex
	regexCache = map[string]*regexp.Regexp{}
)

func regexOp(rt *vm.Runtime) error {
	haystack, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	pattern, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	if pattern.Kind != value.KindChar || haystack.Kind != value.KindChar {
		return errorsx.New(errorsx.TypeMismatch, "regex: expected strings", rt.Span())
	}
	pat := pattern.String()
	regexMu.Lock()
	re, ok := regexCache[pat]
	if !ok {
		var err error
		re, err = regexp.Compile(pat)
		if err != nil {
			regexMu.Unlock()
			return errorsx.New(errorsx.TypeMismatch, "regex: "+err.Error(), rt.Span())
		}
		regexCache[pat] = re
	}
	regexMu.Unlock()
	matches := re.FindAllString(haystack.String(), -1)
	elems := make([]interface{}, len(matches))
	for i, m := range matches {
		elems[i] = value.Box(value.StringValue(m)).Elems[0]
	}
	rt.Push(value.Value{Kind: value.KindBox, Shape: []int{len(matches)}, Elems: elems})
	return nil
}
