package hyperreal

// ============================================================
// Arithmetic over mixed operands
// ============================================================

// Add returns x + y.
func Add[R, A Float, X Operand[R, A], Y Operand[R, A]](x X, y Y) Dual[R, A] {
	x0, x1 := x.Parts()
	y0, y1 := y.Parts()
	return Dual[R, A]{re: x0 + y0, inf: x1 + y1}
}

// Sub returns x - y.
func Sub[R, A Float, X Operand[R, A], Y Operand[R, A]](x X, y Y) Dual[R, A] {
	x0, x1 := x.Parts()
	y0, y1 := y.Parts()
	return Dual[R, A]{re: x0 - y0, inf: x1 - y1}
}

// Mul returns x · y using the product rule.
func Mul[R, A Float, X Operand[R, A], Y Operand[R, A]](x X, y Y) Dual[R, A] {
	x0, x1 := x.Parts()
	y0, y1 := y.Parts()
	return mul(x0, x1, y0, y1)
}

// Div returns x / y using the quotient rule. Division by a zero real part
// follows IEEE 754.
func Div[R, A Float, X Operand[R, A], Y Operand[R, A]](x X, y Y) Dual[R, A] {
	x0, x1 := x.Parts()
	y0, y1 := y.Parts()
	return div(x0, x1, y0, y1)
}

// Neg returns -x.
func Neg[R, A Float, X Operand[R, A]](x X) Dual[R, A] {
	x0, x1 := x.Parts()
	return Dual[R, A]{re: -x0, inf: -x1}
}

// Pos returns x unchanged, as a dual number.
func Pos[R, A Float, X Operand[R, A]](x X) Dual[R, A] {
	x0, x1 := x.Parts()
	return Dual[R, A]{re: x0, inf: x1}
}

func mul[R, A Float](x0 R, x1 A, y0 R, y1 A) Dual[R, A] {
	return Dual[R, A]{re: x0 * y0, inf: A(x0)*y1 + x1*A(y0)}
}

func div[R, A Float](x0 R, x1 A, y0 R, y1 A) Dual[R, A] {
	return Dual[R, A]{re: x0 / y0, inf: -(A(x0)*y1 - x1*A(y0)) / A(y0*y0)}
}

// ============================================================
// Dual methods
// ============================================================

func (d Dual[R, A]) Add(o Dual[R, A]) Dual[R, A] { return Dual[R, A]{re: d.re + o.re, inf: d.inf + o.inf} }
func (d Dual[R, A]) Sub(o Dual[R, A]) Dual[R, A] { return Dual[R, A]{re: d.re - o.re, inf: d.inf - o.inf} }
func (d Dual[R, A]) Mul(o Dual[R, A]) Dual[R, A] { return mul(d.re, d.inf, o.re, o.inf) }
func (d Dual[R, A]) Div(o Dual[R, A]) Dual[R, A] { return div(d.re, d.inf, o.re, o.inf) }
func (d Dual[R, A]) Neg() Dual[R, A]             { return Dual[R, A]{re: -d.re, inf: -d.inf} }

// Scale multiplies both components by the constant c.
func (d Dual[R, A]) Scale(c R) Dual[R, A] { return Dual[R, A]{re: c * d.re, inf: A(c) * d.inf} }

// ============================================================
// Scalar methods
// ============================================================

func (s Scalar) Add(o Scalar) Scalar { return s + o }
func (s Scalar) Sub(o Scalar) Scalar { return s - o }
func (s Scalar) Mul(o Scalar) Scalar { return s * o }
func (s Scalar) Div(o Scalar) Scalar { return s / o }
func (s Scalar) Neg() Scalar         { return -s }

func (s Scalar32) Add(o Scalar32) Scalar32 { return s + o }
func (s Scalar32) Sub(o Scalar32) Scalar32 { return s - o }
func (s Scalar32) Mul(o Scalar32) Scalar32 { return s * o }
func (s Scalar32) Div(o Scalar32) Scalar32 { return s / o }
func (s Scalar32) Neg() Scalar32           { return -s }
