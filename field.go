package hyperreal

// ============================================================
// Field: generic numeric code
// ============================================================

// Field is the method set a numeric routine needs to run on plain scalars
// and on dual numbers alike. Number and Scalar both satisfy it.
//
//	func f[T hyperreal.Field[T]](x T) T {
//		return x.Mul(x).Mul(hyperreal.Cos(x)).Sub(x.Lift(0.5))
//	}
//
//	f(hyperreal.Scalar(1))  // plain value
//	f(hyperreal.Var(1))     // value and derivative
type Field[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	// Lift returns v as a constant of the receiver's kind.
	Lift(v float64) T
	Elementary[T]
}

var (
	_ Field[Number]   = Number{}
	_ Field[Scalar]   = Scalar(0)
	_ Field[Scalar32] = Scalar32(0)
)

// Powi returns x^n by repeated squaring. Negative n yields 1/x^|n|.
func Powi[T Field[T]](x T, n int) T {
	if n < 0 {
		return x.Lift(1).Div(Powi(x, -n))
	}
	result := x.Lift(1)
	for base := x; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		if n > 1 {
			base = base.Mul(base)
		}
	}
	return result
}

// Derivative evaluates f at x with the seed set to 1 and returns f(x) and
// f'(x).
func Derivative(f func(Number) Number, x float64) (value, slope float64) {
	return f(Var(x)).Parts()
}
