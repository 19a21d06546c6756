package hyperreal

import "math"

// ============================================================
// Elementary functions
// ============================================================

// Elementary is the catalogue of functions an operand type evaluates for
// itself. Plain scalars call package math directly. Duals return
// (f(x0), f'(x0)·x1).
type Elementary[T any] interface {
	Sqrt() T
	Sin() T
	Cos() T
	Tan() T
	Asin() T
	Acos() T
	Atan() T
	Sinh() T
	Cosh() T
	Tanh() T
	Exp() T
	Log() T
	Abs() T
	Floor() T
	Ceil() T
}

func Sqrt[T Elementary[T]](x T) T  { return x.Sqrt() }
func Sin[T Elementary[T]](x T) T   { return x.Sin() }
func Cos[T Elementary[T]](x T) T   { return x.Cos() }
func Tan[T Elementary[T]](x T) T   { return x.Tan() }
func Asin[T Elementary[T]](x T) T  { return x.Asin() }
func Acos[T Elementary[T]](x T) T  { return x.Acos() }
func Atan[T Elementary[T]](x T) T  { return x.Atan() }
func Sinh[T Elementary[T]](x T) T  { return x.Sinh() }
func Cosh[T Elementary[T]](x T) T  { return x.Cosh() }
func Tanh[T Elementary[T]](x T) T  { return x.Tanh() }
func Exp[T Elementary[T]](x T) T   { return x.Exp() }
func Log[T Elementary[T]](x T) T   { return x.Log() }
func Abs[T Elementary[T]](x T) T   { return x.Abs() }
func Floor[T Elementary[T]](x T) T { return x.Floor() }
func Ceil[T Elementary[T]](x T) T  { return x.Ceil() }

// ============================================================
// Chain rule
// ============================================================

// chain returns (fx, dfx·d.inf).
func (d Dual[R, A]) chain(fx, dfx float64) Dual[R, A] {
	return Dual[R, A]{re: R(fx), inf: A(dfx) * d.inf}
}

func (d Dual[R, A]) Sqrt() Dual[R, A] {
	s := math.Sqrt(float64(d.re))
	return d.chain(s, 0.5/s)
}

func (d Dual[R, A]) Sin() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Sin(v), math.Cos(v))
}

func (d Dual[R, A]) Cos() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Cos(v), -math.Sin(v))
}

func (d Dual[R, A]) Tan() Dual[R, A] {
	t := math.Tan(float64(d.re))
	return d.chain(t, 1+t*t)
}

func (d Dual[R, A]) Asin() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Asin(v), 1/math.Sqrt(1-v*v))
}

func (d Dual[R, A]) Acos() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Acos(v), -1/math.Sqrt(1-v*v))
}

func (d Dual[R, A]) Atan() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Atan(v), 1/(1+v*v))
}

func (d Dual[R, A]) Sinh() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Sinh(v), math.Cosh(v))
}

func (d Dual[R, A]) Cosh() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Cosh(v), math.Sinh(v))
}

func (d Dual[R, A]) Tanh() Dual[R, A] {
	t := math.Tanh(float64(d.re))
	return d.chain(t, 1-t*t)
}

func (d Dual[R, A]) Exp() Dual[R, A] {
	e := math.Exp(float64(d.re))
	return d.chain(e, e)
}

func (d Dual[R, A]) Log() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Log(v), 1/v)
}

func (d Dual[R, A]) Abs() Dual[R, A] {
	v := float64(d.re)
	return d.chain(math.Abs(v), sign(v))
}

// Floor is treated as locally constant: the infinitesimal is forced to zero.
func (d Dual[R, A]) Floor() Dual[R, A] {
	return Dual[R, A]{re: R(math.Floor(float64(d.re)))}
}

// Ceil is treated as locally constant: the infinitesimal is forced to zero.
func (d Dual[R, A]) Ceil() Dual[R, A] {
	return Dual[R, A]{re: R(math.Ceil(float64(d.re)))}
}

// sign returns -1, 0 or 1. NaN stays NaN.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case v == 0:
		return 0
	}
	return v
}

// ============================================================
// Plain scalars
// ============================================================

func (s Scalar) Sqrt() Scalar  { return Scalar(math.Sqrt(float64(s))) }
func (s Scalar) Sin() Scalar   { return Scalar(math.Sin(float64(s))) }
func (s Scalar) Cos() Scalar   { return Scalar(math.Cos(float64(s))) }
func (s Scalar) Tan() Scalar   { return Scalar(math.Tan(float64(s))) }
func (s Scalar) Asin() Scalar  { return Scalar(math.Asin(float64(s))) }
func (s Scalar) Acos() Scalar  { return Scalar(math.Acos(float64(s))) }
func (s Scalar) Atan() Scalar  { return Scalar(math.Atan(float64(s))) }
func (s Scalar) Sinh() Scalar  { return Scalar(math.Sinh(float64(s))) }
func (s Scalar) Cosh() Scalar  { return Scalar(math.Cosh(float64(s))) }
func (s Scalar) Tanh() Scalar  { return Scalar(math.Tanh(float64(s))) }
func (s Scalar) Exp() Scalar   { return Scalar(math.Exp(float64(s))) }
func (s Scalar) Log() Scalar   { return Scalar(math.Log(float64(s))) }
func (s Scalar) Abs() Scalar   { return Scalar(math.Abs(float64(s))) }
func (s Scalar) Floor() Scalar { return Scalar(math.Floor(float64(s))) }
func (s Scalar) Ceil() Scalar  { return Scalar(math.Ceil(float64(s))) }

func (s Scalar32) Sqrt() Scalar32  { return Scalar32(math.Sqrt(float64(s))) }
func (s Scalar32) Sin() Scalar32   { return Scalar32(math.Sin(float64(s))) }
func (s Scalar32) Cos() Scalar32   { return Scalar32(math.Cos(float64(s))) }
func (s Scalar32) Tan() Scalar32   { return Scalar32(math.Tan(float64(s))) }
func (s Scalar32) Asin() Scalar32  { return Scalar32(math.Asin(float64(s))) }
func (s Scalar32) Acos() Scalar32  { return Scalar32(math.Acos(float64(s))) }
func (s Scalar32) Atan() Scalar32  { return Scalar32(math.Atan(float64(s))) }
func (s Scalar32) Sinh() Scalar32  { return Scalar32(math.Sinh(float64(s))) }
func (s Scalar32) Cosh() Scalar32  { return Scalar32(math.Cosh(float64(s))) }
func (s Scalar32) Tanh() Scalar32  { return Scalar32(math.Tanh(float64(s))) }
func (s Scalar32) Exp() Scalar32   { return Scalar32(math.Exp(float64(s))) }
func (s Scalar32) Log() Scalar32   { return Scalar32(math.Log(float64(s))) }
func (s Scalar32) Abs() Scalar32   { return Scalar32(math.Abs(float64(s))) }
func (s Scalar32) Floor() Scalar32 { return Scalar32(math.Floor(float64(s))) }
func (s Scalar32) Ceil() Scalar32  { return Scalar32(math.Ceil(float64(s))) }
