// Package vm is the stack machine runtime: the
// evaluator state and the rules by which primitives transform it. It
// never implements a primitive's behavior itself — that's
// internal/dispatch, wired in through the Dispatcher interface so this
// package stays free of a dependency on the dispatch table.
package vm

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/sputnick1124/uiua/internal/backend"
	"github.com/sputnick1124/uiua/internal/bytecode"
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
)

// Function is a callable Value: a reference to a chunk function plus the
// chunk it was compiled against.
type Function struct {
	ID        bytecode.FuncID
	Name      string
	Chunk     *bytecode.Chunk
	Signature bytecode.Signature
}

// StackValue is the union type the stack actually holds: either a
// value.Value or a *Function.
type StackValue = interface{}

// Frame is one call frame: (instruction slice, program counter, declared
// signature, function-id). CallID is a fresh identity minted per
// invocation, distinguishing recursive calls of the same FuncID in a
// reported call stack.
type Frame struct {
	Code   []bytecode.Instruction
	PC     int
	Sig    bytecode.Signature
	FuncID bytecode.FuncID
	Name   string
	CallID string
}

// MainFuncID is the distinguished id of the bottom-most frame.
const MainFuncID bytecode.FuncID = 0

// Config configures Runtime construction. MaxStackSize is the stack's
// initial capacity (pushes past it are not refused); MaxFrames caps the
// call depth; Optimized is carried but not read by the runtime.
type Config struct {
	MaxStackSize int
	MaxFrames    int
	Optimized    bool
}

// DefaultConfig returns the default stack capacity and frame cap.
func DefaultConfig() Config {
	return Config{MaxStackSize: 65536, MaxFrames: 64}
}

// Dispatcher executes one primitive or impl-primitive against a Runtime.
// internal/dispatch implements this; vm only depends on the interface so
// the two packages don't form an import cycle.
type Dispatcher interface {
	Dispatch(rt *Runtime, p catalogue.Primitive) error
	DispatchImpl(rt *Runtime, ip catalogue.ImplPrimitive, n int) error
}

// Runtime is the evaluator state for a single task
type Runtime struct {
	cfg        Config
	dispatcher Dispatcher
	backend    backend.Backend

	stack     []StackValue
	antistack []StackValue
	frames    []Frame

	fill    map[value.ElemKind]value.Value
	hasFill map[value.ElemKind]bool

	memo   map[bytecode.FuncID]map[string][]StackValue
	memoMu sync.Mutex

	world *taskWorld

	rng     *rand.Rand
	rngOnce sync.Once

	tagCounter uint64

	chunk  *bytecode.Chunk
	parent *Runtime
}

// New builds a Runtime ready to execute chunk's Main function.
func New(chunk *bytecode.Chunk, be backend.Backend, d Dispatcher, cfg Config) *Runtime {
	if cfg.MaxStackSize == 0 {
		cfg = DefaultConfig()
	}
	rt := &Runtime{
		cfg:        cfg,
		dispatcher: d,
		backend:    be,
		stack:      make([]StackValue, 0, cfg.MaxStackSize),
		antistack:  make([]StackValue, 0, 256),
		frames:     make([]Frame, 0, cfg.MaxFrames),
		fill:       make(map[value.ElemKind]value.Value),
		hasFill:    make(map[value.ElemKind]bool),
		memo:       make(map[bytecode.FuncID]map[string][]StackValue),
		world:      newTaskWorld(),
		chunk:      chunk,
	}
	main, _ := chunk.Func(chunk.Main)
	rt.frames = append(rt.frames, Frame{Code: main.Code, Sig: main.Signature, FuncID: main.ID, Name: main.Name})
	return rt
}

// Backend exposes the capability bundle for diagnostic primitives.
func (rt *Runtime) Backend() backend.Backend { return rt.backend }

// rngFor lazily seeds the per-runtime PRNG from monotonic time on first
// use.
func (rt *Runtime) rngFor() *rand.Rand {
	rt.rngOnce.Do(func() {
		rt.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	return rt.rng
}

// Float64 draws a uniform [0,1) float from the per-runtime PRNG.
func (rt *Runtime) Float64() float64 { return rt.rngFor().Float64() }

// NextTag returns a monotonically increasing, process-wide natural.
// Backed by a package-level counter rather than the per-runtime one,
// since tasks must not repeat tags their parent already issued.
func NextTag() uint64 { return atomic.AddUint64(&globalTagCounter, 1) - 1 }

var globalTagCounter uint64

// Now returns monotonic wall-clock seconds.
func Now() float64 { return float64(time.Now().UnixNano()) / 1e9 }

// --- Stack ---

// Push appends a value to the stack.
func (rt *Runtime) Push(v StackValue) { rt.stack = append(rt.stack, v) }

// Pop removes and returns the top stack value. name is a 1-based
// positional label used only in the StackUnderflow message.
func (rt *Runtime) Pop(name string) (StackValue, error) {
	if len(rt.stack) == 0 {
		return nil, errorsx.New(errorsx.StackUnderflow, "stack underflow popping "+name, rt.Span())
	}
	v := rt.stack[len(rt.stack)-1]
	rt.stack = rt.stack[:len(rt.stack)-1]
	return v, nil
}

// PopValue pops and type-asserts a value.Value.
func (rt *Runtime) PopValue(name string) (value.Value, error) {
	sv, err := rt.Pop(name)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := sv.(value.Value)
	if !ok {
		return value.Value{}, errorsx.New(errorsx.TypeMismatch, "expected array, got function for "+name, rt.Span())
	}
	return v, nil
}

// PopFunction pops and type-asserts a *Function.
func (rt *Runtime) PopFunction() (*Function, error) {
	sv, err := rt.Pop("function")
	if err != nil {
		return nil, err
	}
	f, ok := sv.(*Function)
	if !ok {
		return nil, errorsx.New(errorsx.TypeMismatch, "expected function", rt.Span())
	}
	return f, nil
}

// StackSize is the current stack depth.
func (rt *Runtime) StackSize() int { return len(rt.stack) }

// Stack returns a copy of the current stack, bottom first.
func (rt *Runtime) Stack() []StackValue {
	return append([]StackValue(nil), rt.stack...)
}

// TakeStack returns a copy of the current stack, bottom first, and
// empties it.
func (rt *Runtime) TakeStack() []StackValue {
	out := rt.Stack()
	rt.stack = rt.stack[:0]
	return out
}

// AntiStackSize is the current anti-stack depth.
func (rt *Runtime) AntiStackSize() int { return len(rt.antistack) }

// Truncate resets the stack to size n, discarding everything above it;
// used by Try to unwind on failure.
func (rt *Runtime) Truncate(n int) { rt.stack = rt.stack[:n] }

// AntiTruncate resets the anti-stack to size n.
func (rt *Runtime) AntiTruncate(n int) { rt.antistack = rt.antistack[:n] }

// AntiPush appends to the anti-stack (Save).
func (rt *Runtime) AntiPush(v StackValue) { rt.antistack = append(rt.antistack, v) }

// AntiPop removes and returns the top anti-stack value (Load).
func (rt *Runtime) AntiPop() (StackValue, error) {
	if len(rt.antistack) == 0 {
		return nil, errorsx.New(errorsx.StackUnderflow, "anti-stack underflow", rt.Span())
	}
	v := rt.antistack[len(rt.antistack)-1]
	rt.antistack = rt.antistack[:len(rt.antistack)-1]
	return v, nil
}

// --- Frame / span / diagnostics ---

// topFrame is the currently executing call frame.
func (rt *Runtime) topFrame() *Frame { return &rt.frames[len(rt.frames)-1] }

// Span is the source span of the instruction currently executing.
func (rt *Runtime) Span() bytecode.Span {
	f := rt.topFrame()
	if f.PC >= 0 && f.PC < len(f.Code) {
		return f.Code[f.PC].Span
	}
	return bytecode.Span{}
}

// Dump renders the entire stack through a bordered backend frame without
// consuming it.
func (rt *Runtime) Dump(title string) {
	rt.backend.PrintStrTrace(borderTitle(title))
	for i := len(rt.stack) - 1; i >= 0; i-- {
		rt.backend.PrintStrTrace(borderLine(renderStackValue(rt.stack[i])))
	}
}

func renderStackValue(sv StackValue) string {
	switch x := sv.(type) {
	case value.Value:
		return x.String()
	case *Function:
		return "fn:" + x.Name
	default:
		return fmt.Sprintf("handle:%s", pretty.Sprint(x))
	}
}

func borderTitle(title string) string { return "┌╴" + title }
func borderLine(s string) string      { return "│ " + s }

// --- Call / execution loop ---

// Call pushes a new frame for fn, drives its instructions to completion,
// then pops the frame.
func (rt *Runtime) Call(fn *Function) error {
	if len(rt.frames) >= rt.cfg.MaxFrames {
		return errorsx.New(errorsx.InternalInvariant, "call stack exceeded max frames", rt.Span())
	}
	def, ok := fn.Chunk.Func(fn.ID)
	if !ok {
		return errorsx.New(errorsx.InternalInvariant, "unknown function id", rt.Span())
	}
	callID := uuid.NewString()
	rt.frames = append(rt.frames, Frame{Code: def.Code, Sig: def.Signature, FuncID: def.ID, Name: def.Name, CallID: callID})
	err := rt.run()
	span := rt.Span()
	rt.frames = rt.frames[:len(rt.frames)-1]
	if err != nil {
		if ue, ok := err.(*errorsx.Error); ok {
			ue.AddFrame(errorsx.Frame{FuncName: def.Name, CallID: callID, Span: span})
		}
	}
	return err
}

// run drives the top frame's instructions until it falls off the end or
// hits OpReturn.
func (rt *Runtime) run() error {
	for {
		f := rt.topFrame()
		if f.PC >= len(f.Code) {
			return nil
		}
		instr := f.Code[f.PC]
		f.PC++
		if err := rt.step(instr); err != nil {
			return err
		}
		if instr.Op == bytecode.OpReturn {
			return nil
		}
	}
}

// Run drives the bottom (Main) frame to completion; the host embedding
// surface calls this once per evaluation.
func (rt *Runtime) Run() error { return rt.run() }

func (rt *Runtime) step(instr bytecode.Instruction) error {
	switch instr.Op {
	case bytecode.OpPrim:
		p := catalogue.Primitive(instr.Arg)
		if isInlineOnly(p) {
			return errorsx.New(errorsx.InternalInvariant, "internal error: "+p.Name()+" was not inlined", instr.Span)
		}
		return rt.dispatcher.Dispatch(rt, p)
	case bytecode.OpImplPrim:
		return rt.dispatcher.DispatchImpl(rt, catalogue.ImplPrimitive(instr.Arg), instr.N)
	case bytecode.OpConstant:
		rt.Push(rt.constantAt(instr.Arg))
		return nil
	case bytecode.OpPushFunc:
		def, ok := rt.currentChunk().Func(bytecode.FuncID(instr.Arg))
		if !ok {
			return errorsx.New(errorsx.InternalInvariant, "unknown function id", instr.Span)
		}
		rt.Push(&Function{ID: def.ID, Name: def.Name, Chunk: rt.currentChunk(), Signature: def.Signature})
		return nil
	case bytecode.OpCall:
		fn, err := rt.PopFunction()
		if err != nil {
			return err
		}
		return rt.Call(fn)
	case bytecode.OpReturn:
		return nil
	default:
		return errorsx.New(errorsx.InternalInvariant, "unknown opcode", instr.Span)
	}
}

// currentChunk is the Chunk backing the whole call stack.
func (rt *Runtime) currentChunk() *bytecode.Chunk { return rt.chunk }

// constantAt fetches a constant from the current chunk's pool and adapts
// it to a StackValue.
func (rt *Runtime) constantAt(idx int) StackValue {
	c := rt.chunk.Constants[idx]
	if v, ok := c.(value.Value); ok {
		return v
	}
	return c
}

// isInlineOnly reports whether p must have been eliminated by the
// compiler before execution reaches the runtime.
func isInlineOnly(p catalogue.Primitive) bool {
	switch p {
	case catalogue.Dip, catalogue.Gap, catalogue.Un, catalogue.Under,
		catalogue.Bind, catalogue.Both, catalogue.Fork, catalogue.Cascade,
		catalogue.Bracket, catalogue.Comptime:
		return true
	}
	return false
}
