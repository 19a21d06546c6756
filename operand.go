package hyperreal

// ============================================================
// Operand: part extraction
// ============================================================

// Operand is implemented by every type that may appear on either side of a
// dual-number operation. Parts yields the real and infinitesimal
// components. A plain scalar reports itself and zero.
//
// Any named numeric type becomes an operand by declaring Parts:
//
//	type Meters float64
//
//	func (m Meters) Parts() (float64, float64) { return float64(m), 0 }
//
// Scalar, Scalar32 and Int share one type for both parts. A constant for a
// dual with mixed component types, such as Dual[float64, float32], declares
// Parts with those types, as in the Operand example.
type Operand[R, A Float] interface {
	Parts() (R, A)
}

// Scalar is a float64 constant operand.
type Scalar float64

// Scalar32 is a float32 constant operand.
type Scalar32 float32

// Int is an integer constant operand, promoted to float64.
type Int int

func (s Scalar) Parts() (float64, float64)   { return float64(s), 0 }
func (s Scalar32) Parts() (float32, float32) { return float32(s), 0 }
func (i Int) Parts() (float64, float64)      { return float64(i), 0 }

// Lift returns the constant v as a Scalar.
func (s Scalar) Lift(v float64) Scalar { return Scalar(v) }

// Lift returns the constant v as a Scalar32.
func (s Scalar32) Lift(v float64) Scalar32 { return Scalar32(v) }
