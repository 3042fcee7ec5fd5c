package bytecode

import (
	"testing"

	"github.com/sputnick1124/uiua/internal/catalogue"
)

func TestNewChunkHasEmptyMain(t *testing.T) {
	c := NewChunk()
	main, ok := c.Func(c.Main)
	if !ok {
		t.Fatalf("Func(Main) not found")
	}
	if main.Name != "Main" || len(main.Code) != 0 {
		t.Fatalf("Main = %+v, want empty Main function", main)
	}
}

func TestAddFuncAndEmit(t *testing.T) {
	c := NewChunk()
	fn := c.AddFunc("inner", Signature{Args: 1, Outputs: 1})
	idx := c.AddConstant(42.0)
	c.Emit(fn, Instruction{Op: OpConstant, Arg: idx})
	c.EmitPrim(fn, catalogue.Identity, Span{})

	def, ok := c.Func(fn)
	if !ok {
		t.Fatalf("Func(%d) not found", fn)
	}
	if len(def.Code) != 2 {
		t.Fatalf("Code len = %d, want 2", len(def.Code))
	}
	if def.Code[0].Op != OpConstant || def.Code[0].Arg != idx {
		t.Errorf("Code[0] = %+v, want OpConstant arg %d", def.Code[0], idx)
	}
	if def.Code[1].Op != OpPrim || def.Code[1].Arg != int(catalogue.Identity) {
		t.Errorf("Code[1] = %+v, want OpPrim arg %d", def.Code[1], int(catalogue.Identity))
	}
}

func TestFuncOutOfRange(t *testing.T) {
	c := NewChunk()
	if _, ok := c.Func(FuncID(99)); ok {
		t.Fatalf("Func(99) should fail on a table holding only Main")
	}
}
