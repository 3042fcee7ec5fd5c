// Package uiua is the host embedding surface: compile source text into a
// bytecode chunk, evaluate it on a Runtime, and read its final stack
// back out. Wires internal/frontend, internal/dispatch and
// internal/backend into internal/vm.
package uiua

import (
	"github.com/sputnick1124/uiua/internal/backend"
	"github.com/sputnick1124/uiua/internal/bytecode"
	"github.com/sputnick1124/uiua/internal/dispatch"
	"github.com/sputnick1124/uiua/internal/frontend"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// Program is a compiled chunk, ready to run any number of times.
type Program struct {
	chunk *bytecode.Chunk
}

// Compile assembles src into a Program. src is run through the minimal
// frontend (internal/frontend), not a full uiua compiler: no
// user-defined bindings, no multiline functions, no stack-signature
// inference.
func Compile(src string) (*Program, error) {
	chunk, err := frontend.Assemble(src)
	if err != nil {
		return nil, err
	}
	return &Program{chunk: chunk}, nil
}

// Session is one evaluation of a Program against a backend: the live
// Runtime plus whatever it leaves on the stack.
type Session struct {
	rt *vm.Runtime
}

// Option configures a Session's Runtime before it runs.
type Option func(*vm.Config, *backend.Backend)

// WithConfig overrides the Runtime's stack/frame limits and optimized
// flag.
func WithConfig(cfg vm.Config) Option {
	return func(c *vm.Config, _ *backend.Backend) { *c = cfg }
}

// WithBackend overrides the capability bundle trace/Sys primitives
// reach through; defaults to backend.NewLocalBackend().
func WithBackend(be backend.Backend) Option {
	return func(_ *vm.Config, b *backend.Backend) { *b = be }
}

// New starts a Session for p without running it.
func (p *Program) New(opts ...Option) *Session {
	cfg := vm.DefaultConfig()
	var be backend.Backend = backend.NewLocalBackend()
	for _, opt := range opts {
		opt(&cfg, &be)
	}
	return &Session{rt: vm.New(p.chunk, be, dispatch.Default, cfg)}
}

// Run drives the Program's Main function to completion.
func (s *Session) Run() error { return s.rt.Run() }

// TakeStack returns the final stack, top-first, and empties it.
func (s *Session) TakeStack() []value.Value {
	raw := s.rt.TakeStack()
	return valuesTopFirst(raw)
}

// Stack returns the current stack, top-first, without consuming it.
func (s *Session) Stack() []value.Value {
	raw := s.rt.Stack()
	return valuesTopFirst(raw)
}

func valuesTopFirst(raw []interface{}) []value.Value {
	out := make([]value.Value, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if v, ok := raw[i].(value.Value); ok {
			out = append(out, v)
		}
	}
	return out
}

// RunStr is a convenience wrapping Compile, New and Run in one call: it
// compiles src, evaluates it with the default backend and config, and
// returns the final stack top-first.
func RunStr(src string) ([]value.Value, error) {
	p, err := Compile(src)
	if err != nil {
		return nil, err
	}
	s := p.New()
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s.TakeStack(), nil
}
