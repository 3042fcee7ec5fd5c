package vm

import (
	"fmt"

	"github.com/sputnick1124/uiua/internal/bytecode"
	"github.com/sputnick1124/uiua/internal/value"
)

// memoKey renders an argument tuple into a lookup key. Good enough for
// the Value/Function union the stack holds; two Values that Match render
// identically since String() is a structural dump.
func memoKey(args []StackValue) string {
	s := ""
	for _, a := range args {
		switch v := a.(type) {
		case value.Value:
			s += v.String() + "|"
		case *Function:
			s += fmt.Sprintf("fn%d|", v.ID)
		}
	}
	return s
}

// MemoLookup checks the memo table for fn.ID called with args, returning
// the stored outputs on hit.
func (rt *Runtime) MemoLookup(fn *Function, args []StackValue) ([]StackValue, bool) {
	rt.memoMu.Lock()
	defer rt.memoMu.Unlock()
	table, ok := rt.memo[fn.ID]
	if !ok {
		return nil, false
	}
	out, ok := table[memoKey(args)]
	return out, ok
}

func cloneMemo(m map[bytecode.FuncID]map[string][]StackValue) map[bytecode.FuncID]map[string][]StackValue {
	out := make(map[bytecode.FuncID]map[string][]StackValue, len(m))
	for k, v := range m {
		inner := make(map[string][]StackValue, len(v))
		for ik, iv := range v {
			inner[ik] = append([]StackValue(nil), iv...)
		}
		out[k] = inner
	}
	return out
}

// MemoStore records fn.ID called with args producing outputs.
func (rt *Runtime) MemoStore(fn *Function, args []StackValue, outputs []StackValue) {
	rt.memoMu.Lock()
	defer rt.memoMu.Unlock()
	table, ok := rt.memo[fn.ID]
	if !ok {
		table = make(map[string][]StackValue)
		rt.memo[fn.ID] = table
	}
	table[memoKey(args)] = append([]StackValue(nil), outputs...)
}
