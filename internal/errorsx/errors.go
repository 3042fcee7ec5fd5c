// Package errorsx implements the runtime's error taxonomy: a single
// location-carrying error value. Wrap records a Go cause through
// github.com/pkg/errors; the Stack of call frames is filled in by the
// runtime as an error of any kind propagates out of a call.
package errorsx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sputnick1124/uiua/internal/bytecode"
)

// Kind is the closed error taxonomy.
type Kind string

const (
	StackUnderflow    Kind = "StackUnderflow"
	TypeMismatch      Kind = "TypeMismatch"
	ShapeMismatch     Kind = "ShapeMismatch"
	OutOfBounds       Kind = "OutOfBounds"
	ThrowKind         Kind = "Throw"
	BreakKind         Kind = "Break"
	Unresolved        Kind = "Unresolved"
	InternalInvariant Kind = "InternalInvariant"
)

// Messager is the minimal Value surface an error's carried message needs;
// satisfied by value.Value without importing it here and creating a
// cycle.
type Messager interface {
	String() string
}

// Frame is one call-stack entry attached to an error for reporting.
// CallID distinguishes recursive invocations of the same FuncName in a
// printed trace; it carries no meaning beyond identity.
type Frame struct {
	FuncName string
	CallID   string
	Span     bytecode.Span
}

// Error is the runtime's sole error value. Message is a value.Value for
// Throw/Assert; for the other kinds it is nil and Detail
// carries the plain description.
type Error struct {
	Kind    Kind
	Detail  string
	Message Messager
	Span    bytecode.Span
	Inputs  []Messager
	Stack   []Frame
	cause   error
}

// New builds a bare error of kind with a plain detail string.
func New(kind Kind, detail string, span bytecode.Span) *Error {
	return &Error{Kind: kind, Detail: detail, Span: span}
}

// Wrap attaches a Go stdlib failure (e.g. a Sys file op) as the error's
// cause, preserving it through pkg/errors so %+v still prints the
// original trace.
func Wrap(kind Kind, detail string, span bytecode.Span, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Span: span, cause: errors.Wrap(cause, detail)}
}

// Throw builds a user-level Throw/Assert failure carrying a Value message.
func Throw(msg Messager, span bytecode.Span, inputs []Messager) *Error {
	return &Error{Kind: ThrowKind, Message: msg, Span: span, Inputs: inputs}
}

// Break builds the unwind marker Break(n) consumes at n enclosing
// iteration frames.
func Break(n int, span bytecode.Span) *Error {
	return &Error{Kind: BreakKind, Detail: fmt.Sprintf("%d", n), Span: span}
}

// WithStack attaches the call stack captured at throw time.
func (e *Error) WithStack(frames []Frame) *Error {
	e.Stack = frames
	return e
}

// AddFrame appends a single call-stack frame, innermost first.
func (e *Error) AddFrame(f Frame) *Error {
	e.Stack = append(e.Stack, f)
	return e
}

// Cause is the wrapped underlying error, if any.
func (e *Error) Cause() error { return e.cause }

// Unwrap lets errors.Is/As see through to Cause.
func (e *Error) Unwrap() error { return e.cause }

// BreakLevels parses the unwind count out of a Break error's Detail.
func (e *Error) BreakLevels() int {
	var n int
	fmt.Sscanf(e.Detail, "%d", &n)
	return n
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Message != nil {
		sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Message.String()))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Detail))
	}
	if e.Span.File != "" || e.Span.Start != 0 || e.Span.End != 0 {
		sb.WriteString(fmt.Sprintf("  at %s[%d:%d]\n", e.Span.File, e.Span.Start, e.Span.End))
	}
	if len(e.Stack) > 0 {
		sb.WriteString("\nCall Stack:\n")
		for _, f := range e.Stack {
			sb.WriteString(fmt.Sprintf("  at %s#%s (%s[%d:%d])\n", f.FuncName, f.CallID, f.Span.File, f.Span.Start, f.Span.End))
		}
	}
	if e.cause != nil {
		sb.WriteString(fmt.Sprintf("caused by: %v\n", e.cause))
	}
	return sb.String()
}

// IsUserFacing reports whether this kind should be reported to the host
// as a normal failure, as opposed to InternalInvariant which indicates a
// compiler bug.
func (e *Error) IsUserFacing() bool { return e.Kind != InternalInvariant }
