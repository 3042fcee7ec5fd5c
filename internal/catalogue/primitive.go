package catalogue

import (
	"math"
	"sort"
)

// Primitive is a variant from the closed catalogue enumeration.
type Primitive int

const (
	// Stack
	Dup Primitive = iota
	Over
	Flip
	Pop
	Identity
	Save
	Load

	// Constants
	Pi
	Tau
	Eta
	Infinity

	// Monadic pervasive
	Not
	Sign
	Neg
	Abs
	Sqrt
	Sin
	Cos
	Asin
	Acos
	Floor
	Ceil
	Round

	// Dyadic pervasive
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Add
	Sub
	Mul
	Div
	Mod
	Pow
	Log
	Min
	Max
	Atan

	// Monadic array
	Len
	Rank
	Shape
	Range
	First
	Last
	Reverse
	Deshape
	Transpose
	Sort
	Rise
	Fall
	Grade
	Indices
	Classify
	Deduplicate
	Box
	Where
	Bits
	Utf
	Parse
	String
	Type

	// Dyadic array
	Match
	NoMatch
	Join
	Couple
	Pick
	Select
	Take
	Drop
	Reshape
	Rerank
	Rotate
	Windows
	Replicate
	Member
	Find
	IndexOf
	Group
	Partition

	// Iterating modifiers
	Each
	Rows
	Table
	Distribute
	Zip
	Repeat

	// Aggregating modifiers
	Reduce
	Fold
	Scan

	// Inversion / other modifiers
	Invert
	Under
	Un
	Try
	Memo
	Comptime
	Fill
	Spawn

	// Planet notation (compiler-inlined)
	Dip
	Gap
	Bind
	Both
	Fork
	Cascade
	Bracket

	// Misc
	Assert
	Throw
	Break
	Recur
	Debug
	Trace
	Dump
	Stack
	Call
	Noop
	Use
	Gen
	Deal
	Tag
	Now
	Regex
	Wait
	Send
	Recv
	TryRecv

	// Sys
	SysPrint
	SysFReadAll
	SysFWriteAll
	SysFType
	SysTcpListen
	SysTcpAccept
	SysTcpSend
	SysWsListen
	SysWsSend
	SysHttpGet

	numPrimitives
)

// meta holds one primitive's static metadata. The four arity fields and
// modifierArgs are *int rather than a sentinel int: nil means "not
// defined / variadic".
type meta struct {
	name         string
	ascii        string
	glyph        rune
	args         *int
	outputs      *int
	antiargs     *int
	antioutputs  *int
	modifierArgs *int
	class        Class
	deprecated   string
	isDeprecated bool
	experimental bool
	hasConstant  bool
	constant     float64
	doc          string
}

func ip(n int) *int { return &n }

// table is the single closed, static source of truth for every primitive's
// metadata.
var table = [numPrimitives]meta{
	Dup:      {name: "duplicate", glyph: '.', args: ip(1), outputs: ip(2), class: ClassStack, doc: "Duplicate the top value on the stack\nex: .1_2_3"},
	Over:     {name: "over", glyph: ',', args: ip(2), outputs: ip(3), class: ClassStack, doc: "Duplicate the second-to-top value to the top of the stack"},
	Flip:     {name: "flip", glyph: '~', args: ip(2), outputs: ip(2), class: ClassStack, doc: "Swap the top two values on the stack"},
	Pop:      {name: "pop", glyph: ';', args: ip(1), outputs: ip(0), class: ClassStack, doc: "Pop the top value off the stack"},
	Identity: {name: "identity", ascii: "id", glyph: '∘', args: ip(1), outputs: ip(1), class: ClassStack, doc: "Do nothing to a single value"},
	Save:     {name: "save", glyph: '⇟', args: ip(1), outputs: ip(0), antiargs: ip(0), antioutputs: ip(1), class: ClassStack, doc: "Pop the top value off the stack and push it to the antistack"},
	Load:     {name: "load", glyph: '⇞', args: ip(0), outputs: ip(1), antiargs: ip(1), antioutputs: ip(0), class: ClassStack, doc: "Pop the top value off the antistack and push it to the stack"},

	Pi:       {name: "pi", glyph: 'π', args: ip(0), outputs: ip(1), class: ClassConstant, hasConstant: true, constant: math.Pi, doc: "ex: π"},
	Tau:      {name: "tau", glyph: 'τ', args: ip(0), outputs: ip(1), class: ClassConstant, hasConstant: true, constant: 2 * math.Pi},
	Eta:      {name: "eta", glyph: 'η', args: ip(0), outputs: ip(1), class: ClassConstant, hasConstant: true, constant: math.Pi / 2},
	Infinity: {name: "infinity", glyph: '∞', args: ip(0), outputs: ip(1), class: ClassConstant, hasConstant: true, constant: math.Inf(1)},

	Not:   {name: "not", glyph: '¬', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive, doc: "Logical not (equivalent to 1 - x)"},
	Sign:  {name: "sign", glyph: '$', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive, doc: "Numerical sign (1, -1, or 0)"},
	Neg:   {name: "negate", ascii: "`", glyph: '¯', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Abs:   {name: "absolute", glyph: '⌵', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Sqrt:  {name: "sqrt", glyph: '√', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Sin:   {name: "sine", args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Cos:   {name: "cosine", args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Asin:  {name: "asine", args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Acos:  {name: "acosine", args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Floor: {name: "floor", glyph: '⌊', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Ceil:  {name: "ceiling", glyph: '⌈', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},
	Round: {name: "round", glyph: '⁅', args: ip(1), outputs: ip(1), class: ClassMonadicPervasive},

	Eq:   {name: "equals", ascii: "=", args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Ne:   {name: "notequals", ascii: "!=", glyph: '≠', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Lt:   {name: "lessthan", glyph: '<', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Le:   {name: "lessorequal", ascii: "<=", glyph: '≤', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Gt:   {name: "greaterthan", glyph: '>', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Ge:   {name: "greaterorequal", ascii: ">=", glyph: '≥', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Add:  {name: "add", glyph: '+', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive, doc: "ex: +1 2"},
	Sub:  {name: "subtract", glyph: '-', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Mul:  {name: "multiply", ascii: "*", glyph: '×', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Div:  {name: "divide", ascii: "%", glyph: '÷', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Mod:  {name: "modulus", glyph: '◿', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Pow:  {name: "power", glyph: 'ⁿ', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Log:  {name: "log", args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Min:  {name: "minimum", glyph: '↧', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Max:  {name: "maximum", glyph: '↥', args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},
	Atan: {name: "atangent", args: ip(2), outputs: ip(1), class: ClassDyadicPervasive},

	Len:         {name: "length", glyph: '≢', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The number of rows in an array\nex: ≢2_7_0"},
	Rank:        {name: "rank", glyph: '∴', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The number of dimensions in an array\nex: ∴[1_2 3_4 5_6]"},
	Shape:       {name: "shape", glyph: '△', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The dimensions of an array\nex: △[1_2 3_4 5_6]"},
	Range:       {name: "range", glyph: '⇡', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Make an array of [0, x)\nex: ⇡5"},
	First:       {name: "first", glyph: '⊢', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The first row of an array"},
	Last:        {name: "last", args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The last row of an array"},
	Reverse:     {name: "reverse", glyph: '⇌', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Reverse the rows of an array\nex: ⇌1_2_3_9"},
	Deshape:     {name: "deshape", glyph: '♭', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Make an array 1-dimensional"},
	Transpose:   {name: "transpose", ascii: "tra", glyph: '⍉', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Rotate the axes of an array"},
	Sort:        {name: "sort", glyph: '∧', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Sort the rows of an array\nex: ∧6_2_7_0_¯1_5"},
	Rise:        {name: "rise", glyph: '⍏', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The indices that would sort an array ascending"},
	Fall:        {name: "fall", glyph: '⍖', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "The indices that would sort an array descending"},
	Grade:       {name: "grade", glyph: '⍋', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Grade the rows of an array\nex: ⍋6_2_7_0_¯1_5"},
	Indices:     {name: "indices", args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Repeat the index of each array element the element's value times\nex: indices 2_0_4_1"},
	Classify:    {name: "classify", glyph: '⊛', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Assign a unique index to each unique element in an array\nex: ⊛7_7_8_0_1_2_0"},
	Deduplicate: {name: "deduplicate", glyph: '⊝', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Remove duplicate rows from an array"},
	Box:         {name: "box", glyph: '□', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Wrap a value in a box so arrays of different shapes can be put in one array"},
	Where:       {name: "where", glyph: '⊚', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Get the indices of the array elements that are not 0 or empty"},
	Bits:        {name: "bits", glyph: '⋯', args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Decompose a number into a list of bits"},
	Utf:         {name: "utf", args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Encode an array of codepoints as UTF-8 bytes"},
	Parse:       {name: "parsenumber", args: ip(1), outputs: ip(1), class: ClassMonadicArray, doc: "Parse a string as a number"},
	String:      {name: "string", args: ip(1), outputs: ip(1), class: ClassMisc, doc: "Convert a value to a string"},
	Type:        {name: "type", args: ip(1), outputs: ip(1), class: ClassMisc, doc: "The element-kind id of a value, stable within a version"},

	Match:     {name: "match", glyph: '≅', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Check if two arrays' elements match exactly\nex: ≅ 1_2_3 [1 2 3]\nex: ≅ 1_2_3 [1 2]"},
	NoMatch:   {name: "notmatch", glyph: '≇', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Check if two arrays' elements do not match exactly"},
	Join:      {name: "join", glyph: '⊂', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Append two arrays or an array and a scalar\nex: ⊂ 1 [2 3]"},
	Couple:    {name: "couple", glyph: '⊟', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Combine two arrays as rows\nex: ⊟ [1 2 3] [4 5 6]"},
	Pick:      {name: "pick", glyph: '⊡', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Index a single row or element from an array\nex: ⊡ 2 [8 3 9 2 0]"},
	Select:    {name: "select", glyph: '⊏', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Select multiple elements from an array\nex: ⊏ 4_2 [8 3 9 2 0]"},
	Take:      {name: "take", glyph: '↙', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Take the first n rows of an array\nex: ↙ 3 [8 3 9 2 0]"},
	Drop:      {name: "drop", glyph: '↘', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Drop the first n rows of an array\nex: ↘ 3 [8 3 9 2 0]"},
	Reshape:   {name: "reshape", glyph: '↯', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Change the shape of an array\nex: ↯ 2_3 [1 2 3 4 5 6]"},
	Rerank:    {name: "rerank", args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Change the rank of an array while keeping the same elements"},
	Rotate:    {name: "rotate", glyph: '↻', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Rotate the rows of an array by n"},
	Windows:   {name: "windows", glyph: '◫', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "The n-wise windows of an array"},
	Replicate: {name: "replicate", glyph: '‡', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Use an array to replicate the rows of another array"},
	Member:    {name: "member", glyph: '∊', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Check if each row of an array is a member of another array"},
	Find:      {name: "find", glyph: '⌕', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Find the first index of a subarray in an array"},
	IndexOf:   {name: "indexof", glyph: '⊗', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Find the index of each row of one array in another"},
	Group:     {name: "group", glyph: '⊕', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Group rows of an array into buckets by key"},
	Partition: {name: "partition", ascii: "par", glyph: '⊘', args: ip(2), outputs: ip(1), class: ClassDyadicArray, doc: "Group rows of an array into buckets by sequential keys"},

	Each:       {name: "each", glyph: '∵', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Apply a function to each element of an array"},
	Rows:       {name: "rows", glyph: '≡', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Apply a function to each row of an array"},
	Table:      {name: "table", glyph: '⊞', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Apply a function to each combination of rows of two arrays"},
	Distribute: {name: "distribute", glyph: '∹', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Apply a function to a fixed value and each row of an array"},
	Zip:        {name: "zip", glyph: '∺', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Apply a function to corresponding rows of two arrays"},
	Repeat:     {name: "repeat", glyph: '⍥', modifierArgs: ip(1), class: ClassIteratingModifier, doc: "Repeat a function n times"},

	Reduce: {name: "reduce", glyph: '/', modifierArgs: ip(1), class: ClassAggregatingModifier, doc: "Apply a reducing function to an array"},
	Fold:   {name: "fold", glyph: '⌿', modifierArgs: ip(1), class: ClassAggregatingModifier, doc: "Apply a reducing function to an array with an initial value"},
	Scan:   {name: "scan", ascii: `\`, modifierArgs: ip(1), class: ClassAggregatingModifier, doc: "Reduce, but keep intermediate values"},

	Invert:   {name: "invert", glyph: '↶', modifierArgs: ip(1), class: ClassInversionModifier, doc: "Invert the behavior of a function"},
	Under:    {name: "under", glyph: '⍜', modifierArgs: ip(2), class: ClassInversionModifier, doc: "Apply a function under another"},
	Un:       {name: "un", glyph: '°', modifierArgs: ip(1), class: ClassInversionModifier, doc: "Compiler marker: rewrite the wrapped call into its impl-primitive inverse"},
	Try:      {name: "try", ascii: "?", modifierArgs: ip(2), class: ClassOtherModifier, doc: "Call a function and catch errors"},
	Memo:     {name: "memo", modifierArgs: ip(1), class: ClassOtherModifier, doc: "Memoize a function"},
	Comptime: {name: "comptime", modifierArgs: ip(1), class: ClassOtherModifier, doc: "Compiler marker: evaluate the wrapped call at compile time"},
	Fill:     {name: "fill", modifierArgs: ip(2), class: ClassOtherModifier, doc: "Call a function and take its top output as a fill value, then call a function with that fill installed"},
	Spawn:    {name: "spawn", modifierArgs: ip(1), outputs: ip(1), class: ClassOtherModifier, doc: "Run a function in a new task, pushing its task id"},

	Dip:     {name: "dip", glyph: '⊙', modifierArgs: ip(1), class: ClassPlanet, doc: "Temporarily pop the top value, call a function, then push it back"},
	Gap:     {name: "gap", glyph: '⋅', modifierArgs: ip(1), class: ClassPlanet, doc: "Discard the top value, then call a function"},
	Bind:    {name: "bind", modifierArgs: ip(1), class: ClassPlanet, experimental: true, doc: "Partially apply a function"},
	Both:    {name: "both", glyph: '∩', modifierArgs: ip(1), class: ClassPlanet, doc: "Apply a function to both of two sets of arguments"},
	Fork:    {name: "fork", glyph: '⊃', modifierArgs: ip(2), class: ClassPlanet, doc: "Apply two functions to the same arguments"},
	Cascade: {name: "cascade", modifierArgs: ip(2), class: ClassPlanet, isDeprecated: true, deprecated: "use fork instead"},
	Bracket: {name: "bracket", glyph: '⊓', modifierArgs: ip(2), class: ClassPlanet, doc: "Apply two functions to different sets of arguments"},

	Assert: {name: "assert", glyph: '⍤', args: ip(2), outputs: ip(0), class: ClassMisc, doc: "Throw an error if a condition is not met"},
	Throw:  {name: "throw", glyph: '!', args: ip(2), outputs: ip(0), class: ClassMisc, doc: "Throw an error"},
	Break:  {name: "break", glyph: '⎋', args: ip(1), outputs: ip(0), class: ClassMisc, doc: "Break out of n enclosing loops"},
	Recur:  {name: "recur", glyph: '↬', args: ip(1), outputs: ip(0), class: ClassMisc, experimental: true, doc: "Call the current function recursively"},
	Debug:  {name: "debug", glyph: '|', args: ip(1), outputs: ip(1), class: ClassLocal, doc: "Debug-print a value without popping it"},
	Trace:  {name: "trace", args: ip(1), outputs: ip(1), class: ClassLocal, doc: "Trace a value through a bordered frame"},
	Dump:   {name: "dump", modifierArgs: ip(1), class: ClassLocal, doc: "Dump the entire stack through a bordered frame"},
	Stack:  {name: "stack", args: ip(0), outputs: ip(0), class: ClassLocal, doc: "Show the entire stack without consuming it"},
	Call:   {name: "call", ascii: ":", class: ClassStack, doc: "Call a function"},
	Noop:   {name: "noop", ascii: "·", args: ip(0), outputs: ip(0), class: ClassStack, doc: "Do nothing"},
	Use:    {name: "use", args: ip(2), outputs: ip(1), class: ClassMisc, doc: "Import a function from a module value by name"},
	Gen:    {name: "gen", args: ip(1), outputs: ip(2), class: ClassMisc, doc: "Generate a deterministic pseudo-random number and the next seed"},
	Deal:   {name: "deal", args: ip(2), outputs: ip(1), class: ClassMisc, doc: "Shuffle the rows of an array given a seed"},
	Tag:    {name: "tag", args: ip(0), outputs: ip(1), class: ClassMisc, doc: "A monotonically increasing, process-wide natural number"},
	Now:    {name: "now", args: ip(0), outputs: ip(1), class: ClassMisc, doc: "The current monotonic wall-clock time in seconds"},
	Regex:  {name: "regex", args: ip(2), outputs: ip(1), class: ClassMisc, experimental: true, doc: "Match a string against a cached compiled regular expression"},

	Wait:    {name: "wait", args: ip(1), class: ClassMisc, doc: "Block until a task completes, pushing its outputs"},
	Send:    {name: "send", args: ip(2), outputs: ip(0), class: ClassMisc, doc: "Send a value to a task's channel"},
	Recv:    {name: "recv", args: ip(1), outputs: ip(1), class: ClassMisc, doc: "Block until a value is available on a task's channel"},
	TryRecv: {name: "tryrecv", args: ip(1), outputs: ip(1), class: ClassMisc, doc: "Receive a value from a task's channel without blocking; errors if none is ready"},

	SysPrint:     {name: "&p", class: ClassSys, args: ip(1), outputs: ip(0), doc: "Print a value via the backend"},
	SysFReadAll:  {name: "&fra", class: ClassSys, args: ip(1), outputs: ip(1), doc: "Read an entire file as a byte array"},
	SysFWriteAll: {name: "&fwa", class: ClassSys, args: ip(2), outputs: ip(0), doc: "Write a byte array to a file, replacing its contents"},
	SysFType:     {name: "&ftype", class: ClassSys, args: ip(1), outputs: ip(1), doc: "Stat a path; 0 absent, 1 file, 2 directory"},
	SysTcpListen: {name: "&tcpl", class: ClassSys, args: ip(1), outputs: ip(1), doc: "Listen for TCP connections on an address"},
	SysTcpAccept: {name: "&tcpa", class: ClassSys, args: ip(1), outputs: ip(1), doc: "Accept the next TCP connection on a listener"},
	SysTcpSend:   {name: "&tcps", class: ClassSys, args: ip(2), outputs: ip(0), doc: "Send bytes over a TCP connection"},
	SysWsListen:  {name: "&wsl", class: ClassSys, args: ip(1), outputs: ip(1), experimental: true, doc: "Push a WebSocket upgrader; the address is popped but not used, and no listener is opened"},
	SysWsSend:    {name: "&wss", class: ClassSys, args: ip(2), outputs: ip(0), experimental: true, doc: "Send a text message over a WebSocket connection"},
	SysHttpGet:   {name: "&hget", class: ClassSys, args: ip(1), outputs: ip(1), doc: "Perform an HTTP GET and push the response body"},
}

// All returns every primitive in declaration order.
func All() []Primitive {
	out := make([]Primitive, 0, numPrimitives)
	for i := Primitive(0); i < numPrimitives; i++ {
		out = append(out, i)
	}
	return out
}

// NonDeprecated returns every non-deprecated primitive, in declaration order.
func NonDeprecated() []Primitive {
	var out []Primitive
	for _, p := range All() {
		if !p.IsDeprecated() {
			out = append(out, p)
		}
	}
	return out
}

func (p Primitive) m() meta { return table[p] }

// Name is the canonical ASCII name, unique across the enumeration.
func (p Primitive) Name() string { return p.m().name }

// ASCII is the multi-character ASCII shorthand, if any.
func (p Primitive) ASCII() (string, bool) {
	m := p.m()
	return m.ascii, m.ascii != ""
}

// Glyph is the single display character, if any; most glyphs are
// non-ASCII, a few (such as Reduce's '/') are ASCII.
func (p Primitive) Glyph() (rune, bool) {
	m := p.m()
	return m.glyph, m.glyph != 0
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Args is the stack arity popped on success, if statically known.
func (p Primitive) Args() (int, bool) { return deref(p.m().args) }

// Outputs is the stack arity pushed on success, if statically known.
func (p Primitive) Outputs() (int, bool) { return deref(p.m().outputs) }

// AntiArgs is the arity popped from the antistack, if any is defined.
func (p Primitive) AntiArgs() (int, bool) { return deref(p.m().antiargs) }

// AntiOutputs is the arity pushed to the antistack, if any is defined.
func (p Primitive) AntiOutputs() (int, bool) { return deref(p.m().antioutputs) }

// ModifierArgs is the number of function-valued operands a modifier
// consumes before its stack work, if this primitive is a modifier.
func (p Primitive) ModifierArgs() (int, bool) { return deref(p.m().modifierArgs) }

// IsModifier reports whether ModifierArgs is defined.
func (p Primitive) IsModifier() bool { _, ok := p.ModifierArgs(); return ok }

// Class is the primitive's fixed category.
func (p Primitive) Class() Class { return p.m().class }

// IsConstant reports whether this primitive pushes a fixed numeric literal.
func (p Primitive) IsConstant() bool { return p.m().hasConstant }

// Constant returns the fixed numeric literal this primitive pushes.
func (p Primitive) Constant() (float64, bool) { m := p.m(); return m.constant, m.hasConstant }

// IsDeprecated reports whether this primitive carries a deprecation hint.
// Peropen question, the flag defaults to false for any
// variant not explicitly listed with a suggestion.
func (p Primitive) IsDeprecated() bool { return p.m().isDeprecated }

// DeprecationSuggestion is the replacement hint for a deprecated primitive.
func (p Primitive) DeprecationSuggestion() (string, bool) {
	m := p.m()
	return m.deprecated, m.isDeprecated
}

// IsExperimental reports whether this primitive is gated behind an
// experimental flag in a real frontend.
func (p Primitive) IsExperimental() bool { return p.m().experimental }

// Signature is (args, outputs) when both are statically known.
type Signature struct {
	Args, Outputs int
}

// SignatureOf returns the primitive's signature iff both arities are known.
func (p Primitive) SignatureOf() (Signature, bool) {
	a, aok := p.Args()
	o, ook := p.Outputs()
	if !aok || !ook {
		return Signature{}, false
	}
	return Signature{Args: a, Outputs: o}, true
}

// String renders the primitive using the glyph-then-ascii-then-name
// fallback chain.
func (p Primitive) String() string {
	if g, ok := p.Glyph(); ok {
		return string(g)
	}
	if a, ok := p.ASCII(); ok {
		return a
	}
	return p.Name()
}

var inverseTable = map[Primitive]Primitive{
	Flip: Flip, Not: Not, Neg: Neg, Reverse: Reverse, Debug: Debug,
	Save: Load, Load: Save,
	Sin: Asin, Asin: Sin,
	Cos: Acos, Acos: Cos,
}

// Inverse is the partial self-map of primitives that are their own or a
// simply-paired inverse.
func (p Primitive) Inverse() (Primitive, bool) {
	inv, ok := inverseTable[p]
	return inv, ok
}

// byName/byASCII/byGlyph are built once from table and used by the total
// surjections FromName/FromASCII/FromGlyph.
var (
	byName  = map[string]Primitive{}
	byASCII = map[string]Primitive{}
	byGlyph = map[rune]Primitive{}

	// sortedNames backs Names, the sorted listing of every name.
	sortedNames []string
)

func init() {
	for _, p := range All() {
		m := p.m()
		if m.name != "" {
			byName[m.name] = p
		}
		if m.ascii != "" {
			byASCII[m.ascii] = p
		}
		if m.glyph != 0 {
			byGlyph[m.glyph] = p
		}
	}
	for n := range byName {
		sortedNames = append(sortedNames, n)
	}
	sort.Strings(sortedNames)
}

// FromName finds a primitive by its exact canonical text name.
func FromName(name string) (Primitive, bool) {
	p, ok := byName[name]
	return p, ok
}

// FromASCII finds a primitive by its ASCII shorthand token.
func FromASCII(tok string) (Primitive, bool) {
	p, ok := byASCII[tok]
	return p, ok
}

// FromGlyph finds a primitive by its glyph.
func FromGlyph(c rune) (Primitive, bool) {
	p, ok := byGlyph[c]
	return p, ok
}

// Doc returns the raw, unparsed doc text for a primitive (empty if none).
func (p Primitive) Doc() string { return p.m().doc }

// Names exposes the raw name set, sorted, for listings such as the CLI's.
func Names() []string { return sortedNames }
