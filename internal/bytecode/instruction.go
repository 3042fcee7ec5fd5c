// Package bytecode defines the instruction sequence the runtime consumes:
// an external compiler produces this format, the runtime only ever
// reads it.
package bytecode

import "github.com/sputnick1124/uiua/internal/catalogue"

// Op is the closed set of instruction opcodes, a byte-sized enum.
type Op byte

const (
	// OpPrim runs catalogue.Primitive(Arg).
	OpPrim Op = iota
	// OpImplPrim runs catalogue.ImplPrimitive(Arg), with N as its
	// parameter (TransposeN's count, BuildArray's row count).
	OpImplPrim
	// OpConstant pushes Chunk.Constants[Arg].
	OpConstant
	// OpPushFunc pushes a function literal referencing FuncID(Arg).
	OpPushFunc
	// OpCall invokes the function Value on top of the stack.
	OpCall
	// OpReturn ends the current frame.
	OpReturn
)

// FuncID identifies one entry in a Chunk's function table.
type FuncID int

// Span is a source-location range attached to each instruction, for
// errors and trace labels.
type Span struct {
	Start, End int
	File       string
}

// Instruction is one bytecode op: which opcode, an integer argument whose
// meaning depends on Op, and the source span that produced it.
type Instruction struct {
	Op   Op
	Arg  int
	N    int // secondary parameter, used by OpImplPrim variants that carry one
	Span Span
}

// Signature is a function's declared stack effect.
type Signature struct {
	Args, Outputs int
}

// FuncDef is one entry of a Chunk's function table: the instruction slice
// for FuncID and its declared signature.
type FuncDef struct {
	ID        FuncID
	Name      string
	Code      []Instruction
	Signature Signature
}

// Chunk is the external compiler's complete output: a function table plus
// a shared constant pool.
type Chunk struct {
	Functions []FuncDef
	Constants []interface{}
	Main      FuncID
}

// NewChunk returns an empty Chunk with a single, empty Main function.
func NewChunk() *Chunk {
	c := &Chunk{Main: 0}
	c.Functions = append(c.Functions, FuncDef{ID: 0, Name: "Main"})
	return c
}

// Func looks up a function definition by id.
func (c *Chunk) Func(id FuncID) (*FuncDef, bool) {
	if int(id) < 0 || int(id) >= len(c.Functions) {
		return nil, false
	}
	return &c.Functions[id], true
}

// AddFunc appends a new, empty function to the table and returns its id.
func (c *Chunk) AddFunc(name string, sig Signature) FuncID {
	id := FuncID(len(c.Functions))
	c.Functions = append(c.Functions, FuncDef{ID: id, Name: name, Signature: sig})
	return id
}

// AddConstant interns a constant value, returning its pool index.
func (c *Chunk) AddConstant(v interface{}) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Emit appends an instruction to fn's code.
func (c *Chunk) Emit(fn FuncID, instr Instruction) {
	c.Functions[fn].Code = append(c.Functions[fn].Code, instr)
}

// EmitPrim is a convenience wrapper for the common OpPrim case.
func (c *Chunk) EmitPrim(fn FuncID, p catalogue.Primitive, span Span) {
	c.Emit(fn, Instruction{Op: OpPrim, Arg: int(p), Span: span})
}
