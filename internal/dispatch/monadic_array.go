package dispatch

import (
	"strconv"
	"strings"

	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

func dispatchMonadicArray(rt *vm.Runtime, p catalogue.Primitive) error {
	v, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	switch p {
	case catalogue.Len:
		rt.Push(value.Number(float64(v.Rows())))
	case catalogue.Rank:
		rt.Push(value.Number(float64(v.Rank())))
	case catalogue.Shape:
		elems := make([]interface{}, len(v.Shape))
		for i, d := range v.Shape {
			elems[i] = float64(d)
		}
		rt.Push(value.Value{Kind: value.KindNumber, Shape: []int{len(v.Shape)}, Elems: elems})
	case catalogue.Range:
		n, ok := v.AsInts()
		if !ok || len(n) != 1 || n[0] < 0 {
			return errorsx.New(errorsx.TypeMismatch, "range: expected a nonnegative integer scalar", rt.Span())
		}
		elems := make([]interface{}, n[0])
		for i := range elems {
			elems[i] = float64(i)
		}
		rt.Push(value.Value{Kind: value.KindNumber, Shape: []int{n[0]}, Elems: elems})
	case catalogue.First:
		if v.Rows() == 0 {
			return errorsx.New(errorsx.OutOfBounds, "first: empty array", rt.Span())
		}
		rt.Push(v.Row(0))
	case catalogue.Last:
		if v.Rows() == 0 {
			return errorsx.New(errorsx.OutOfBounds, "last: empty array", rt.Span())
		}
		rt.Push(v.Row(v.Rows() - 1))
	case catalogue.Reverse:
		rows := v.Rows()
		rs := v.RowSize()
		out := make([]interface{}, len(v.Elems))
		for i := 0; i < rows; i++ {
			copy(out[i*rs:(i+1)*rs], v.Elems[(rows-1-i)*rs:(rows-i)*rs])
		}
		rt.Push(value.Value{Kind: v.Kind, Shape: append([]int(nil), v.Shape...), Elems: out})
	case catalogue.Deshape:
		rt.Push(value.Value{Kind: v.Kind, Shape: []int{v.Count()}, Elems: append([]interface{}(nil), v.Elems...)})
	case catalogue.Transpose:
		out, err := value.Transpose(v)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	case catalogue.Sort:
		out, err := value.Sort(v)
		if err != nil {
			return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	case catalogue.Rise:
		rt.Push(value.Rise(v))
	case catalogue.Fall:
		rt.Push(value.Fall(v))
	case catalogue.Grade:
		rt.Push(value.Grade(v))
	case catalogue.Indices:
		ints, ok := v.AsInts()
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "indices: expected naturals", rt.Span())
		}
		var out []interface{}
		for i, n := range ints {
			for k := 0; k < n; k++ {
				out = append(out, float64(i))
			}
		}
		rt.Push(value.Value{Kind: value.KindNumber, Shape: []int{len(out)}, Elems: out})
	case catalogue.Classify:
		rt.Push(value.Classify(v))
	case catalogue.Deduplicate:
		rt.Push(value.Deduplicate(v))
	case catalogue.Box:
		rt.Push(value.Box(v))
	case catalogue.Where:
		out, err := value.Where(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	case catalogue.Bits:
		out, err := value.Bits(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	case catalogue.Utf:
		out, err := utf8Encode(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	case catalogue.Parse:
		out, err := parseNumber(v)
		if err != nil {
			return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
		}
		rt.Push(out)
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled monadic array primitive "+p.Name(), rt.Span())
	}
	return nil
}

func utf8Encode(v value.Value) (value.Value, error) {
	codes, ok := v.AsInts()
	if !ok {
		return value.Value{}, errNotNatural
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteRune(rune(c))
	}
	bytes := []byte(b.String())
	elems := make([]interface{}, len(bytes))
	for i, bb := range bytes {
		elems[i] = float64(bb)
	}
	return value.Value{Kind: value.KindByte, Shape: []int{len(elems)}, Elems: elems}, nil
}

var errNotNatural = errTyped("utf: expected an array of codepoints")

type errTyped string

func (e errTyped) Error() string { return string(e) }

func parseNumber(v value.Value) (value.Value, error) {
	if v.Kind != value.KindChar {
		return value.Value{}, errTyped("parse: expected a string")
	}
	var b strings.Builder
	for _, e := range v.Elems {
		b.WriteRune(e.(rune))
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(b.String()), 64)
	if err != nil {
		return value.Value{}, errTyped("parse: " + err.Error())
	}
	return value.Number(f), nil
}
