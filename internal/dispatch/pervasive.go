package dispatch

import (
	"fmt"
	"math"

	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

var monadicFns = map[catalogue.Primitive]func(float64) (float64, error){
	catalogue.Not:   func(x float64) (float64, error) { return 1 - x, nil },
	catalogue.Sign:  func(x float64) (float64, error) { return sign(x), nil },
	catalogue.Neg:   func(x float64) (float64, error) { return -x, nil },
	catalogue.Abs:   func(x float64) (float64, error) { return math.Abs(x), nil },
	catalogue.Sqrt:  func(x float64) (float64, error) { return math.Sqrt(x), nil },
	catalogue.Sin:   func(x float64) (float64, error) { return math.Sin(x), nil },
	catalogue.Cos:   func(x float64) (float64, error) { return math.Cos(x), nil },
	catalogue.Asin:  func(x float64) (float64, error) { return math.Asin(x), nil },
	catalogue.Acos:  func(x float64) (float64, error) { return math.Acos(x), nil },
	catalogue.Floor: func(x float64) (float64, error) { return math.Floor(x), nil },
	catalogue.Ceil:  func(x float64) (float64, error) { return math.Ceil(x), nil },
	catalogue.Round: func(x float64) (float64, error) { return math.Round(x), nil },
}

func dispatchMonadicPervasive(rt *vm.Runtime, p catalogue.Primitive) error {
	f, ok := monadicFns[p]
	if !ok {
		return errorsx.New(errorsx.InternalInvariant, "unhandled monadic pervasive "+p.Name(), rt.Span())
	}
	v, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	out, err := value.LiftMonadic(v, f)
	if err != nil {
		return errorsx.New(errorsx.TypeMismatch, err.Error(), rt.Span())
	}
	rt.Push(out)
	return nil
}

var dyadicFns = map[catalogue.Primitive]func(x, y float64) (float64, error){
	catalogue.Eq:  func(x, y float64) (float64, error) { return boolF(x == y), nil },
	catalogue.Ne:  func(x, y float64) (float64, error) { return boolF(x != y), nil },
	catalogue.Lt:  func(x, y float64) (float64, error) { return boolF(x < y), nil },
	catalogue.Le:  func(x, y float64) (float64, error) { return boolF(x <= y), nil },
	catalogue.Gt:  func(x, y float64) (float64, error) { return boolF(x > y), nil },
	catalogue.Ge:  func(x, y float64) (float64, error) { return boolF(x >= y), nil },
	catalogue.Add: func(x, y float64) (float64, error) { return x + y, nil },
	catalogue.Sub: func(x, y float64) (float64, error) { return x - y, nil },
	catalogue.Mul: func(x, y float64) (float64, error) { return x * y, nil },
	catalogue.Div: func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return x / y, nil
	},
	catalogue.Mod:  func(x, y float64) (float64, error) { return math.Mod(math.Mod(x, y)+y, y), nil },
	catalogue.Pow:  func(x, y float64) (float64, error) { return math.Pow(x, y), nil },
	catalogue.Log:  func(x, y float64) (float64, error) { return math.Log(y) / math.Log(x), nil },
	catalogue.Min:  func(x, y float64) (float64, error) { return math.Min(x, y), nil },
	catalogue.Max:  func(x, y float64) (float64, error) { return math.Max(x, y), nil },
	catalogue.Atan: func(x, y float64) (float64, error) { return math.Atan2(y, x), nil },
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// dispatchDyadicPervasive handles the right-to-left "second operand,
// first" convention Uiua primitives use for dyadic args: the function
// signature below is the user-facing order (x y --f-> z where z = f(x,y)
// with x pushed first, y pushed second, matching the original's
// `env.dyadic_pervasive(Value::add)` argument order).
func dispatchDyadicPervasive(rt *vm.Runtime, p catalogue.Primitive) error {
	f, ok := dyadicFns[p]
	if !ok {
		return errorsx.New(errorsx.InternalInvariant, "unhandled dyadic pervasive "+p.Name(), rt.Span())
	}
	b, err := rt.PopValue("2")
	if err != nil {
		return err
	}
	a, err := rt.PopValue("1")
	if err != nil {
		return err
	}
	out, err := value.LiftDyadic(a, b, f)
	if err != nil {
		return errorsx.New(errorsx.ShapeMismatch, err.Error(), rt.Span())
	}
	rt.Push(out)
	return nil
}
