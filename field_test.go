package hyperreal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/hyperreal"
)

// f(x) = x²·cos(x) − 0.5, written once for any Field.
func newtonTarget[T hyperreal.Field[T]](x T) T {
	return x.Mul(x).Mul(hyperreal.Cos(x)).Sub(x.Lift(0.5))
}

func TestField_SameCodeBothPaths(t *testing.T) {
	plain := newtonTarget(hyperreal.Scalar(1.3))
	dual := newtonTarget(hyperreal.Var(1.3))

	assert.InDelta(t, float64(plain), dual.Real(), eps)
	want := 2*1.3*math.Cos(1.3) - 1.3*1.3*math.Sin(1.3)
	assert.InDelta(t, want, dual.Inf(), eps)
}

func TestPowi(t *testing.T) {
	x := hyperreal.Var(3)

	for n := 0; n <= 7; n++ {
		z := hyperreal.Powi(x, n)
		assert.Equal(t, math.Pow(3, float64(n)), z.Real(), "n=%d", n)
		assert.Equal(t, float64(n)*math.Pow(3, float64(n-1)), z.Inf(), "n=%d", n)
	}

	z := hyperreal.Powi(x, -2)
	assert.InDelta(t, 1.0/9.0, z.Real(), eps)
	assert.InDelta(t, -2.0/27.0, z.Inf(), eps)

	assert.Equal(t, hyperreal.Scalar(32), hyperreal.Powi(hyperreal.Scalar(2), 5))
}

func TestDerivative(t *testing.T) {
	v, d := hyperreal.Derivative(func(x hyperreal.Number) hyperreal.Number {
		return hyperreal.Mul(x, hyperreal.Exp(x))
	}, 1)
	assert.InDelta(t, math.E, v, eps)
	assert.InDelta(t, 2*math.E, d, eps)
}

func TestLift(t *testing.T) {
	x := hyperreal.Var(9)
	c := x.Lift(2)
	assert.True(t, c.IsConst())
	assert.Equal(t, 2.0, c.Real())
}
