package dispatch

import (
	"github.com/sputnick1124/uiua/internal/bytecode"
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchInversionModifier handles the one inversion modifier that ever
// reaches the dispatcher at runtime: Invert. Under, Un, and Comptime are
// inline-only (the runtime traps them in Runtime.step before dispatch
// ever sees them) so reaching this switch for any of them is a caller
// bug, not a user-facing error.
func dispatchInversionModifier(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.Invert:
		fn, err := rt.PopFunction()
		if err != nil {
			return err
		}
		inv, ok := singlePrimitiveInverse(fn)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "invert: function body has no known inverse", rt.Span())
		}
		return Default.Dispatch(rt, inv)
	case catalogue.Under, catalogue.Un, catalogue.Comptime:
		return errorsx.New(errorsx.InternalInvariant, p.Name()+" is inline-only and must never reach Dispatch", rt.Span())
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled inversion modifier "+p.Name(), rt.Span())
	}
}

// singlePrimitiveInverse recognizes the common case of a function body
// that is exactly one primitive call, and resolves that primitive's
// catalogue-declared inverse.
func singlePrimitiveInverse(fn *vm.Function) (catalogue.Primitive, bool) {
	def, ok := fn.Chunk.Func(fn.ID)
	if !ok || len(def.Code) != 1 {
		return 0, false
	}
	instr := def.Code[0]
	if instr.Op != bytecode.OpPrim {
		return 0, false
	}
	return catalogue.Primitive(instr.Arg).Inverse()
}
