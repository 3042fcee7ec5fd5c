package vm

import "github.com/sputnick1124/uiua/internal/value"

// WithFill installs v as the fill for the element kinds it matches for
// the duration of body, restoring the previous fill state on every exit
// path, including a panic or error return.
func (rt *Runtime) WithFill(v value.Value, body func() error) error {
	prevVal, hadPrev := rt.fill[v.Kind], rt.hasFill[v.Kind]
	rt.fill[v.Kind] = v
	rt.hasFill[v.Kind] = true
	defer func() {
		if hadPrev {
			rt.fill[v.Kind] = prevVal
		} else {
			delete(rt.fill, v.Kind)
			delete(rt.hasFill, v.Kind)
		}
	}()
	return body()
}

func cloneFillMap(m map[value.ElemKind]value.Value) map[value.ElemKind]value.Value {
	out := make(map[value.ElemKind]value.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFlagMap(m map[value.ElemKind]bool) map[value.ElemKind]bool {
	out := make(map[value.ElemKind]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Fill returns the installed fill Value for kind, if any.
func (rt *Runtime) Fill(kind value.ElemKind) (value.Value, bool) {
	if !rt.hasFill[kind] {
		return value.Value{}, false
	}
	return rt.fill[kind], true
}
