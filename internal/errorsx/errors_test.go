package errorsx

import (
	"errors"
	"strings"
	"testing"

	"github.com/sputnick1124/uiua/internal/bytecode"
)

func TestNewAndError(t *testing.T) {
	e := New(StackUnderflow, "pop on empty stack", bytecode.Span{Start: 1, End: 2, File: "in.ua"})
	msg := e.Error()
	if !strings.Contains(msg, "StackUnderflow") || !strings.Contains(msg, "pop on empty stack") {
		t.Fatalf("Error() = %q, missing kind/detail", msg)
	}
	if !e.IsUserFacing() {
		t.Fatalf("StackUnderflow should be user-facing")
	}
}

func TestInternalInvariantNotUserFacing(t *testing.T) {
	e := New(InternalInvariant, "unreachable dispatch branch", bytecode.Span{})
	if e.IsUserFacing() {
		t.Fatalf("InternalInvariant should not be user-facing")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("permission denied")
	e := Wrap(OutOfBounds, "read failed", bytecode.Span{}, cause)
	if e.Cause() == nil {
		t.Fatalf("Wrap() lost its cause")
	}
	if !strings.Contains(e.Error(), "caused by") {
		t.Fatalf("Error() = %q, want a \"caused by\" section", e.Error())
	}
}

func TestBreakLevels(t *testing.T) {
	e := Break(3, bytecode.Span{})
	if got := e.BreakLevels(); got != 3 {
		t.Fatalf("BreakLevels() = %d, want 3", got)
	}
}

func TestAddFrameDistinguishesRecursiveCalls(t *testing.T) {
	e := New(TypeMismatch, "bad arg", bytecode.Span{})
	e.AddFrame(Frame{FuncName: "f", CallID: "call-1", Span: bytecode.Span{}})
	e.AddFrame(Frame{FuncName: "f", CallID: "call-2", Span: bytecode.Span{}})
	if len(e.Stack) != 2 {
		t.Fatalf("AddFrame() len = %d, want 2", len(e.Stack))
	}
	if e.Stack[0].CallID == e.Stack[1].CallID {
		t.Fatalf("expected distinct CallIDs for recursive frames, got %q twice", e.Stack[0].CallID)
	}
}
