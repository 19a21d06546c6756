// Package hyperreal provides forward-mode automatic differentiation for Go
// using dual numbers.
//
// Design goals:
//   - Exact first derivatives, no symbolic rewriting, no finite differences
//   - Plain scalars and dual numbers mix freely in one expression
//   - Generic numeric code runs unchanged on float64 or on duals
//   - Pure value semantics: no tape, no graph, no shared state
//
// A dual number carries a real part and an infinitesimal part. Seed the
// independent variable with infinitesimal 1 and every operation carries the
// derivative along:
//
//	x := hyperreal.Var(5)
//	y := hyperreal.Mul(x, hyperreal.Sin(x)) // x·sin x
//	y.Real()                                // 5·sin 5
//	y.Inf()                                 // sin 5 + 5·cos 5
package hyperreal

import (
	"fmt"
	"math"
	"strconv"
	"unsafe"
)

// ============================================================
// Component types
// ============================================================

// Float is the set of types a dual number may use for its components.
type Float interface {
	~float32 | ~float64
}

// ============================================================
// Dual: real + infinitesimal
// ============================================================

// Dual is the hyperreal number re + inf·ε with ε² = 0. The real and
// infinitesimal components are typed independently. The zero value is (0, 0).
type Dual[R, A Float] struct {
	re  R
	inf A
}

// Number is the canonical dual number with float64 components.
type Number = Dual[float64, float64]

// New returns the dual number (re, inf).
func New[R, A Float](re R, inf A) Dual[R, A] { return Dual[R, A]{re: re, inf: inf} }

// ConstOf returns (re, 0). The infinitesimal type cannot be inferred and
// must be given: ConstOf[float64, float32](2).
func ConstOf[R, A Float](re R) Dual[R, A] { return Dual[R, A]{re: re} }

// Var seeds the independent variable: (v, 1).
func Var(v float64) Number { return Number{re: v, inf: 1} }

// Const returns the constant (v, 0).
func Const(v float64) Number { return Number{re: v} }

// Real returns the real part.
func (d Dual[R, A]) Real() R { return d.re }

// Inf returns the infinitesimal part, the derivative carried by d.
func (d Dual[R, A]) Inf() A { return d.inf }

// Parts returns both components, making every Dual an Operand.
func (d Dual[R, A]) Parts() (R, A) { return d.re, d.inf }

// IsConst reports whether the infinitesimal part is zero.
func (d Dual[R, A]) IsConst() bool { return d.inf == 0 }

// Lift returns the constant v with the receiver's component types.
func (d Dual[R, A]) Lift(v float64) Dual[R, A] { return Dual[R, A]{re: R(v)} }

// IsNaN reports whether either component is NaN.
func (d Dual[R, A]) IsNaN() bool {
	return math.IsNaN(float64(d.re)) || math.IsNaN(float64(d.inf))
}

// Equal compares both components exactly.
func (d Dual[R, A]) Equal(o Dual[R, A]) bool { return d.re == o.re && d.inf == o.inf }

// String formats the number as "re + infε".
func (d Dual[R, A]) String() string {
	re := strconv.FormatFloat(float64(d.re), 'g', -1, bitSize(d.re))
	inf := float64(d.inf)
	sign := "+"
	if math.Signbit(inf) && !math.IsNaN(inf) {
		sign = "-"
		inf = -inf
	}
	return fmt.Sprintf("%s %s %sε", re, sign, strconv.FormatFloat(inf, 'g', -1, bitSize(d.inf)))
}

func bitSize[T Float](v T) int {
	if unsafe.Sizeof(v) == 4 {
		return 32
	}
	return 64
}
