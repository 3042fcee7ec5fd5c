package vm

import (
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
)

// TryCall implements the Try/Recover protocol: snapshot
// stack/anti-stack sizes, call f; on failure, truncate both back to the
// snapshot, push the error's Value (the Throw message when there is one,
// a stringified detail otherwise), then call g with the pre-call
// arguments re-pushed. Successful execution discards the snapshot.
func (rt *Runtime) TryCall(f, g *Function, args []StackValue) error {
	stackSnap, antiSnap := rt.StackSize(), rt.AntiStackSize()
	for _, a := range args {
		rt.Push(a)
	}
	if err := rt.Call(f); err == nil {
		return nil
	} else {
		rt.Truncate(stackSnap)
		rt.AntiTruncate(antiSnap)
		rt.Push(errorValue(err))
		for _, a := range args {
			rt.Push(a)
		}
		return rt.Call(g)
	}
}

// errorValue recovers the Value a failing call should hand back to its
// Try handler: the original thrown Value when the failure is a Throw,
// a plain string rendering of the detail otherwise.
func errorValue(err error) value.Value {
	if ue, ok := err.(*errorsx.Error); ok {
		if v, ok := ue.Message.(value.Value); ok {
			return v
		}
		return value.StringValue(ue.Detail)
	}
	return value.StringValue(err.Error())
}
