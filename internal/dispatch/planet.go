package dispatch

import (
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchPlanet exists only for symmetry with the other Class switches.
// Every ClassPlanet primitive (Dip, Gap, Bind, Both, Fork, Cascade,
// Bracket) is inline-only: Runtime.step traps them before a call ever
// reaches the dispatcher. Getting here means the frontend or an
// assembler emitted a bare OpPrim for one of these instead of inlining
// it, which is a bug in that code, not a user-facing failure.
func dispatchPlanet(rt *vm.Runtime, p catalogue.Primitive) error {
	return errorsx.New(errorsx.InternalInvariant, p.Name()+" is inline-only and must never reach Dispatch", rt.Span())
}
