package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperreal"
	"github.com/njchilds90/hyperreal/numeric"
)

// F(x) = ∫_x^{2x²+x} (y² + x) dy
func parametric[T hyperreal.Field[T]](x T, rule numeric.Rule) T {
	a := x
	b := x.Lift(2).Mul(x).Mul(x).Add(x)
	return numeric.GaussLegendre(func(y T) T { return y.Mul(y).Add(x) }, a, b, rule)
}

func TestGaussLegendre_ParametricIntegral(t *testing.T) {
	res := parametric(hyperreal.Var(1), numeric.Gauss3)
	assert.InDelta(t, 32.0/3.0, res.Real(), 1e-12)
	assert.InDelta(t, 50.0, res.Inf(), 1e-12)

	plain := parametric(hyperreal.Scalar(1), numeric.Gauss3)
	assert.InDelta(t, 32.0/3.0, float64(plain), 1e-12)
}

func TestGaussLegendre_Gauss10(t *testing.T) {
	got := numeric.GaussLegendre(hyperreal.Sin[hyperreal.Scalar], hyperreal.Scalar(0), hyperreal.Scalar(math.Pi), numeric.Gauss10)
	assert.InDelta(t, 2.0, float64(got), 1e-10)
}

func TestGaussLegendre_DerivativeOfUpperBound(t *testing.T) {
	// d/db ∫_0^b exp(y) dy = exp(b)
	b := hyperreal.Var(1.5)
	got := numeric.GaussLegendre(hyperreal.Exp[hyperreal.Number], hyperreal.Const(0), b, numeric.Gauss10)
	assert.InDelta(t, math.Exp(1.5)-1, got.Real(), 1e-10)
	assert.InDelta(t, math.Exp(1.5), got.Inf(), 1e-9)
}

func TestRuleFor(t *testing.T) {
	r, ok := numeric.RuleFor(3)
	require.True(t, ok)
	assert.Len(t, r.Nodes, 3)

	r, ok = numeric.RuleFor(10)
	require.True(t, ok)
	assert.Len(t, r.Weights, 10)

	_, ok = numeric.RuleFor(7)
	assert.False(t, ok)
}
