// Package dispatch is the primitive dispatcher: for every
// catalogue variant, the argument-pop/result-push protocol, invariants,
// and failure mode. It implements vm.Dispatcher so internal/vm stays
// free of a direct dependency on this package.
package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/vm"
)

// D is the stateless default Dispatcher. All state it needs lives on the
// *vm.Runtime passed to each call.
type D struct{}

// Default is the dispatcher every host wires into vm.New.
var Default = D{}

// Dispatch runs one primitive against rt.
func (D) Dispatch(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p.Class() {
	case catalogue.ClassStack:
		return dispatchStack(rt, p)
	case catalogue.ClassConstant:
		return dispatchConstant(rt, p)
	case catalogue.ClassMonadicPervasive:
		return dispatchMonadicPervasive(rt, p)
	case catalogue.ClassDyadicPervasive:
		return dispatchDyadicPervasive(rt, p)
	case catalogue.ClassMonadicArray:
		return dispatchMonadicArray(rt, p)
	case catalogue.ClassDyadicArray:
		return dispatchDyadicArray(rt, p)
	case catalogue.ClassIteratingModifier:
		return dispatchIteratingModifier(rt, p)
	case catalogue.ClassAggregatingModifier:
		return dispatchAggregatingModifier(rt, p)
	case catalogue.ClassInversionModifier:
		return dispatchInversionModifier(rt, p)
	case catalogue.ClassOtherModifier:
		return dispatchOtherModifier(rt, p)
	case catalogue.ClassPlanet:
		return dispatchPlanet(rt, p)
	case catalogue.ClassMisc, catalogue.ClassLocal:
		return dispatchMisc(rt, p)
	case catalogue.ClassSys:
		return dispatchSys(rt, p)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled primitive class", rt.Span())
	}
}

// DispatchImpl runs one impl-primitive against rt.
func (D) DispatchImpl(rt *vm.Runtime, ip catalogue.ImplPrimitive, n int) error {
	return dispatchImplPrimitive(rt, ip, n)
}
