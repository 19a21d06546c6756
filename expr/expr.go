// Package expr holds formula trees that can be evaluated on plain scalars
// or on dual numbers.
//
// Trees come from Parse (infix text) or FromJSON (wire form). Subtraction
// is stored as a sum with a -1 factor, division as a product with a -1
// power, so the node set stays small: Num, Sym, Add, Mul, Pow, Func.
package expr

import (
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	String() string
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num: numeric literal
// ============================================================

type Num struct{ val float64 }

func N(v float64) *Num { return &Num{val: v} }

func (n *Num) Value() float64   { return n.val }
func (n *Num) exprType() string { return "num" }
func (n *Num) String() string   { return strconv.FormatFloat(n.val, 'g', -1, 64) }
func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

// integer reports whether the literal is a whole number small enough for
// repeated multiplication.
func (n *Num) integer() (int, bool) {
	if n.val != float64(int(n.val)) || n.val > 1<<20 || n.val < -(1<<20) {
		return 0, false
	}
	return int(n.val), true
}

// ============================================================
// Sym: named variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Name() string     { return s.name }
func (s *Sym) exprType() string { return "sym" }
func (s *Sym) String() string   { return s.name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

// AddOf returns the sum of terms. A single term is returned as is.
func AddOf(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	return &Add{terms: terms}
}

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

func (a *Add) Terms() []Expr     { return a.terms }
func (a *Add) exprType() string { return "add" }

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) toJSON() map[string]interface{} {
	terms := make([]interface{}, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": terms}
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

// MulOf returns the product of factors. A single factor is returned as is.
func MulOf(factors ...Expr) Expr {
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// NegOf returns -e. Literals are negated in place.
func NegOf(e Expr) Expr {
	if n, ok := e.(*Num); ok {
		return N(-n.val)
	}
	return MulOf(N(-1), e)
}

func (m *Mul) Factors() []Expr   { return m.factors }
func (m *Mul) exprType() string { return "mul" }

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		_, isAdd := f.(*Add)
		if isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) toJSON() map[string]interface{} {
	factors := make([]interface{}, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": factors}
}

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return &Pow{base: base, exp: exp} }

func (p *Pow) Base() Expr       { return p.base }
func (p *Pow) ExpExpr() Expr    { return p.exp }
func (p *Pow) exprType() string { return "pow" }

func (p *Pow) String() string {
	return group(p.base, true) + "^" + group(p.exp, false)
}

// group parenthesises compound operands of ^. Negative literals are
// grouped on the base side, where a leading minus would bind looser than ^.
func group(e Expr, base bool) string {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return "(" + e.String() + ")"
	case *Num:
		if base && v.val < 0 {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

// FuncOf applies the named function. The name is checked when the tree is
// parsed or evaluated, not here.
func FuncOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SqrtOf(arg Expr) Expr { return FuncOf("sqrt", arg) }
func SinOf(arg Expr) Expr  { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr  { return FuncOf("cos", arg) }
func ExpOf(arg Expr) Expr  { return FuncOf("exp", arg) }
func LogOf(arg Expr) Expr  { return FuncOf("log", arg) }

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
func (f *Func) exprType() string { return "func" }
func (f *Func) String() string   { return f.name + "(" + f.arg.String() + ")" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}

// Functions lists the function names Eval understands, sorted.
func Functions() []string {
	names := make([]string, 0, len(functionNames))
	for name := range functionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var functionNames = map[string]struct{}{
	"sqrt": {}, "sin": {}, "cos": {}, "tan": {}, "asin": {}, "acos": {}, "atan": {},
	"sinh": {}, "cosh": {}, "tanh": {}, "exp": {}, "log": {}, "ln": {}, "abs": {},
	"floor": {}, "ceil": {},
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the sorted names of all symbols in e.
func FreeSymbols(e Expr) []string {
	set := map[string]struct{}{}
	collectSymbols(e, set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}
