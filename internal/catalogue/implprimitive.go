package catalogue

import "fmt"

// ImplPrimitive is the second closed primitive enumeration: internal
// operations produced only by inversion or optimization rewrites. Same
// dispatch shape as Primitive, no user-visible name.
type ImplPrimitive int

const (
	InvTranspose ImplPrimitive = iota
	InvBox
	InvParse
	InvUtf
	InverseBits
	InvWhere
	UnTake
	UnDrop
	UnReshape
	UnRerank
	UnGroup
	UnPartition
	UnJoin
	UnCouple
	UnSelect
	UnPick
	UnWindows
	Last_
	SortUp
	SortDown
	TransposeN
	Cos_
	BuildArray

	numImplPrimitives
)

type implMeta struct {
	args, outputs int
	render        func(n int) string
}

var implTable = [numImplPrimitives]implMeta{
	InvTranspose: {1, 1, fixed("Un Transpose")},
	InvBox:       {1, 1, fixed("Un Box")},
	InvParse:     {1, 1, fixed("Un Parse")},
	InvUtf:       {1, 1, fixed("Un Utf")},
	InverseBits:  {1, 1, fixed("Un Bits")},
	InvWhere:     {1, 1, fixed("Un Where")},
	UnTake:       {2, 1, fixed("Un Take")},
	UnDrop:       {2, 1, fixed("Un Drop")},
	UnReshape:    {2, 1, fixed("Un Reshape")},
	UnRerank:     {2, 1, fixed("Un Rerank")},
	UnGroup:      {2, 1, fixed("Un Group")},
	UnPartition:  {2, 1, fixed("Un Partition")},
	UnJoin:       {1, 2, fixed("Un Join")},
	UnCouple:     {1, 2, fixed("Un Couple")},
	UnSelect:     {2, 1, fixed("Un Select")},
	UnPick:       {2, 1, fixed("Un Pick")},
	UnWindows:    {2, 1, fixed("Un Windows")},
	Last_:        {1, 1, fixed("First Reverse")},
	SortUp:       {1, 1, fixed("Select Rise Dup")},
	SortDown:     {1, 1, fixed("Select Fall Dup")},
	Cos_:         {1, 1, fixed("Sin Add Eta")},
	// TransposeN and BuildArray carry a parameter; render is computed per call.
	TransposeN: {1, 1, nil},
	BuildArray: {0, 1, nil},
}

func fixed(s string) func(int) string { return func(int) string { return s } }

// Args/Outputs mirror Primitive's fixed-arity accessors. BuildArray is the
// one variadic entry: it pops its parameter n values, and Args reports 0.
func (ip ImplPrimitive) Args() int    { return implTable[ip].args }
func (ip ImplPrimitive) Outputs() int { return implTable[ip].outputs }

// Render produces the textual composition this impl-primitive morally
// equals, for error messages and docs. n is the parameter
// for the parametrized variants (TransposeN's rotation count, BuildArray's
// row count); it is ignored otherwise.
func (ip ImplPrimitive) Render(n int) string {
	switch ip {
	case TransposeN:
		if n < 0 {
			return fmt.Sprintf("Un(%s)", repeatRender(Transpose.String(), -n))
		}
		return repeatRender(Transpose.String(), n)
	case BuildArray:
		return fmt.Sprintf("BuildArray(%d)", n)
	}
	if f := implTable[ip].render; f != nil {
		return f(n)
	}
	return "?"
}

func repeatRender(tok string, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += tok + " "
	}
	if len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s
}

// String is Render with no parameter, for variants that don't take one.
func (ip ImplPrimitive) String() string { return ip.Render(0) }
