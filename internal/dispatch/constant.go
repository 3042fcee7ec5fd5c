package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchConstant pushes the primitive's fixed numeric literal value.
func dispatchConstant(rt *vm.Runtime, p catalogue.Primitive) error {
	c, ok := p.Constant()
	if !ok {
		return errorsx.New(errorsx.InternalInvariant, "not a constant primitive", rt.Span())
	}
	rt.Push(value.Number(c))
	return nil
}
