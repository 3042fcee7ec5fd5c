// Package frontend is a deliberately thin assembler: flat tokenizing
// plus name resolution, good enough to drive run_str and the worked
// examples. It does not inline planet notation, does not infer stack
// signatures, and does not support user-defined bindings or multiline
// functions; all of that remains an external compiler's job.
package frontend

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sputnick1124/uiua/internal/bytecode"
	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/resolver"
	"github.com/sputnick1124/uiua/internal/value"
)

// nestedSig is the signature assigned to every parenthesized function
// literal, since the assembler has no stack-signature syntax to read one
// from. 1-in/1-out covers the common case of a single glyph or a short
// glyph pipeline; modifiers that need a different arity (Table, Zip,
// Reduce's seedless form) read the arguments they need regardless of
// what's declared here.
var nestedSig = bytecode.Signature{Args: 1, Outputs: 1}

type asm struct {
	src   []rune
	pos   int
	chunk *bytecode.Chunk
}

// Assemble tokenizes and resolves src into a bytecode.Chunk whose Main
// function is ready for vm.New/Runtime.Run.
func Assemble(src string) (*bytecode.Chunk, error) {
	a := &asm{src: []rune(src), chunk: bytecode.NewChunk()}
	if err := a.parseBody(a.chunk.Main, 0); err != nil {
		return nil, err
	}
	return a.chunk, nil
}

func (a *asm) span(start int) bytecode.Span {
	return bytecode.Span{Start: start, End: a.pos}
}

func (a *asm) peek() (rune, bool) {
	if a.pos >= len(a.src) {
		return 0, false
	}
	return a.src[a.pos], true
}

// parseBody emits instructions for fn until EOF (depth 0) or until the
// next rune is the close bracket matching the caller's open (depth > 0,
// left unconsumed for the caller to check).
func (a *asm) parseBody(fn bytecode.FuncID, depth int) error {
	for {
		c, ok := a.peek()
		if !ok {
			if depth > 0 {
				return fmt.Errorf("unterminated group at end of input")
			}
			return nil
		}
		if c == ')' || c == ']' || c == '}' {
			if depth == 0 {
				return fmt.Errorf("unexpected %q at position %d", c, a.pos)
			}
			return nil
		}
		if unicode.IsSpace(c) {
			a.pos++
			continue
		}
		if c == '#' {
			for a.pos < len(a.src) && a.src[a.pos] != '\n' {
				a.pos++
			}
			continue
		}
		if err := a.parseOneTerm(fn); err != nil {
			return err
		}
	}
}

// parseOneTerm consumes and emits exactly one value-producing term:
// a string, a function literal, an array/box literal, a number run, a
// resolved identifier run, or a single glyph/ASCII primitive token.
// Leading whitespace and comments must already be skipped by the caller.
func (a *asm) parseOneTerm(fn bytecode.FuncID) error {
	c, ok := a.peek()
	if !ok {
		return fmt.Errorf("expected a term at end of input")
	}
	switch {
	case c == '"':
		return a.parseString(fn)
	case c == '(':
		return a.parseFuncLiteral(fn)
	case c == '[':
		return a.parseArrayLiteral(fn, ']', false)
	case c == '{':
		return a.parseArrayLiteral(fn, '}', true)
	case c == '¯' || unicode.IsDigit(c):
		return a.parseNumberRun(fn)
	case unicode.IsLower(c) || unicode.IsUpper(c):
		return a.parseIdentifierRun(fn)
	default:
		return a.parseGlyphToken(fn)
	}
}

func (a *asm) parseFuncLiteral(fn bytecode.FuncID) error {
	start := a.pos
	a.pos++ // consume '('
	id := a.chunk.AddFunc("", nestedSig)
	if err := a.parseBody(id, 1); err != nil {
		return err
	}
	c, ok := a.peek()
	if !ok || c != ')' {
		return fmt.Errorf("expected ')' to close function literal opened at %d", start)
	}
	a.pos++
	a.chunk.Functions[id].Code = append(a.chunk.Functions[id].Code, bytecode.Instruction{Op: bytecode.OpReturn, Span: a.span(start)})
	a.chunk.Emit(fn, bytecode.Instruction{Op: bytecode.OpPushFunc, Arg: int(id), Span: a.span(start)})
	return nil
}

func (a *asm) parseArrayLiteral(fn bytecode.FuncID, close rune, boxed bool) error {
	start := a.pos
	a.pos++ // consume open bracket
	n := 0
	for {
		a.skipSpaceAndComments()
		c, ok := a.peek()
		if !ok {
			return fmt.Errorf("unterminated array literal opened at %d", start)
		}
		if c == close {
			a.pos++
			break
		}
		if err := a.parseOneTerm(fn); err != nil {
			return err
		}
		if boxed {
			if p, ok := catalogue.FromName("box"); ok {
				a.chunk.EmitPrim(fn, p, a.span(start))
			}
		}
		n++
	}
	a.chunk.Emit(fn, bytecode.Instruction{Op: bytecode.OpImplPrim, Arg: int(catalogue.BuildArray), N: n, Span: a.span(start)})
	return nil
}

// skipSpaceAndComments advances past whitespace and #-comments without
// treating them as the end of an array literal term.
func (a *asm) skipSpaceAndComments() {
	for {
		c, ok := a.peek()
		if !ok {
			return
		}
		if unicode.IsSpace(c) {
			a.pos++
			continue
		}
		if c == '#' {
			for a.pos < len(a.src) && a.src[a.pos] != '\n' {
				a.pos++
			}
			continue
		}
		return
	}
}

func (a *asm) parseString(fn bytecode.FuncID) error {
	start := a.pos
	a.pos++ // consume opening quote
	var b strings.Builder
	for {
		c, ok := a.peek()
		if !ok {
			return fmt.Errorf("unterminated string opened at %d", start)
		}
		a.pos++
		if c == '"' {
			break
		}
		if c == '\\' {
			esc, ok := a.peek()
			if !ok {
				return fmt.Errorf("unterminated escape in string at %d", a.pos)
			}
			a.pos++
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(c)
	}
	idx := a.chunk.AddConstant(value.StringValue(b.String()))
	a.chunk.Emit(fn, bytecode.Instruction{Op: bytecode.OpConstant, Arg: idx, Span: a.span(start)})
	return nil
}

func (a *asm) parseNumberRun(fn bytecode.FuncID) error {
	start := a.pos
	n := 0
	for {
		f, err := a.parseOneNumber()
		if err != nil {
			return err
		}
		idx := a.chunk.AddConstant(value.Number(f))
		a.chunk.Emit(fn, bytecode.Instruction{Op: bytecode.OpConstant, Arg: idx, Span: a.span(start)})
		n++
		if c, ok := a.peek(); ok && c == '_' {
			a.pos++
			continue
		}
		break
	}
	if n > 1 {
		a.chunk.Emit(fn, bytecode.Instruction{Op: bytecode.OpImplPrim, Arg: int(catalogue.BuildArray), N: n, Span: a.span(start)})
	}
	return nil
}

func (a *asm) parseOneNumber() (float64, error) {
	start := a.pos
	neg := false
	if c, ok := a.peek(); ok && c == '¯' {
		neg = true
		a.pos++
	}
	digitsStart := a.pos
	for {
		c, ok := a.peek()
		if !ok || !(unicode.IsDigit(c) || c == '.') {
			break
		}
		a.pos++
	}
	if a.pos == digitsStart {
		return 0, fmt.Errorf("expected digits at position %d", start)
	}
	f, err := strconv.ParseFloat(string(a.src[digitsStart:a.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number literal at %d: %w", start, err)
	}
	if neg {
		f = -f
	}
	return f, nil
}

func (a *asm) parseIdentifierRun(fn bytecode.FuncID) error {
	start := a.pos
	for {
		c, ok := a.peek()
		if !ok || !(unicode.IsLower(c) || unicode.IsUpper(c)) {
			break
		}
		a.pos++
	}
	run := string(a.src[start:a.pos])
	if resolved, ok := resolver.FromFormatNameMulti(run); ok {
		for _, r := range resolved {
			a.chunk.EmitPrim(fn, r.Prim, bytecode.Span{Start: start + r.Span.Start, End: start + r.Span.End, File: ""})
		}
		return nil
	}
	if p, ok := resolver.FromFormatName(run); ok {
		a.chunk.EmitPrim(fn, p, a.span(start))
		return nil
	}
	return fmt.Errorf("unresolved identifier %q at position %d", run, start)
}

func (a *asm) parseGlyphToken(fn bytecode.FuncID) error {
	start := a.pos
	c, _ := a.peek()
	if p, ok := catalogue.FromGlyph(c); ok {
		a.pos++
		a.chunk.EmitPrim(fn, p, a.span(start))
		return nil
	}
	if p, ok := catalogue.FromASCII(string(c)); ok {
		a.pos++
		a.chunk.EmitPrim(fn, p, a.span(start))
		return nil
	}
	return fmt.Errorf("unresolved token %q at position %d", c, start)
}
