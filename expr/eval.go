package expr

import (
	"github.com/pkg/errors"

	"github.com/njchilds90/hyperreal"
)

var (
	ErrUnboundSymbol   = errors.New("unbound symbol")
	ErrUnknownFunction = errors.New("unknown function")
)

// ============================================================
// Evaluation
// ============================================================

// Eval computes e with every symbol taken from env. T is any Field, so the
// same tree yields a plain value for hyperreal.Scalar and a value with its
// derivative for hyperreal.Number.
//
// Integer exponents are expanded by repeated multiplication, which keeps
// negative bases valid. Other exponents go through exp(y·log x).
func Eval[T hyperreal.Field[T]](e Expr, env map[string]T) (T, error) {
	var zero T
	switch v := e.(type) {
	case *Num:
		return zero.Lift(v.val), nil

	case *Sym:
		x, ok := env[v.name]
		if !ok {
			return zero, errors.Wrapf(ErrUnboundSymbol, "%q", v.name)
		}
		return x, nil

	case *Add:
		sum := zero.Lift(0)
		for _, t := range v.terms {
			x, err := Eval(t, env)
			if err != nil {
				return zero, err
			}
			sum = sum.Add(x)
		}
		return sum, nil

	case *Mul:
		prod := zero.Lift(1)
		for _, f := range v.factors {
			x, err := Eval(f, env)
			if err != nil {
				return zero, err
			}
			prod = prod.Mul(x)
		}
		return prod, nil

	case *Pow:
		base, err := Eval(v.base, env)
		if err != nil {
			return zero, err
		}
		if n, ok := v.exp.(*Num); ok {
			if k, ok := n.integer(); ok {
				return hyperreal.Powi(base, k), nil
			}
			if n.val == 0.5 {
				return hyperreal.Sqrt(base), nil
			}
		}
		exp, err := Eval(v.exp, env)
		if err != nil {
			return zero, err
		}
		return hyperreal.Exp(exp.Mul(hyperreal.Log(base))), nil

	case *Func:
		x, err := Eval(v.arg, env)
		if err != nil {
			return zero, err
		}
		return apply(v.name, x)
	}
	return zero, errors.Errorf("cannot evaluate %T", e)
}

func apply[T hyperreal.Field[T]](name string, x T) (T, error) {
	switch name {
	case "sqrt":
		return hyperreal.Sqrt(x), nil
	case "sin":
		return hyperreal.Sin(x), nil
	case "cos":
		return hyperreal.Cos(x), nil
	case "tan":
		return hyperreal.Tan(x), nil
	case "asin":
		return hyperreal.Asin(x), nil
	case "acos":
		return hyperreal.Acos(x), nil
	case "atan":
		return hyperreal.Atan(x), nil
	case "sinh":
		return hyperreal.Sinh(x), nil
	case "cosh":
		return hyperreal.Cosh(x), nil
	case "tanh":
		return hyperreal.Tanh(x), nil
	case "exp":
		return hyperreal.Exp(x), nil
	case "log", "ln":
		return hyperreal.Log(x), nil
	case "abs":
		return hyperreal.Abs(x), nil
	case "floor":
		return hyperreal.Floor(x), nil
	case "ceil":
		return hyperreal.Ceil(x), nil
	}
	var zero T
	return zero, errors.Wrapf(ErrUnknownFunction, "%q", name)
}

// Compile checks that e depends on no symbol other than name and uses only
// known functions, then returns it as a function of that one variable.
func Compile[T hyperreal.Field[T]](e Expr, name string) (func(T) T, error) {
	for _, s := range FreeSymbols(e) {
		if s != name {
			return nil, errors.Wrapf(ErrUnboundSymbol, "%q", s)
		}
	}
	if err := checkFunctions(e); err != nil {
		return nil, err
	}
	return func(x T) T {
		// Cannot fail: symbols and functions were checked above.
		y, _ := Eval(e, map[string]T{name: x})
		return y
	}, nil
}

func checkFunctions(e Expr) error {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			if err := checkFunctions(t); err != nil {
				return err
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if err := checkFunctions(f); err != nil {
				return err
			}
		}
	case *Pow:
		if err := checkFunctions(v.base); err != nil {
			return err
		}
		return checkFunctions(v.exp)
	case *Func:
		if _, ok := functionNames[v.name]; !ok {
			return errors.Wrapf(ErrUnknownFunction, "%q", v.name)
		}
		return checkFunctions(v.arg)
	}
	return nil
}
