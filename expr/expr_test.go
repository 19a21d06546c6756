package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperreal/expr"
)

// ============================================================
// Rendering
// ============================================================

func TestNum_String(t *testing.T) {
	assert.Equal(t, "42", expr.N(42).String())
	assert.Equal(t, "0.5", expr.N(0.5).String())
	assert.Equal(t, "-3", expr.N(-3).String())
}

func TestAdd_String(t *testing.T) {
	e := expr.AddOf(expr.S("x"), expr.N(1))
	assert.Equal(t, "x + 1", e.String())
}

func TestAdd_SingleTerm(t *testing.T) {
	x := expr.S("x")
	assert.Same(t, x, expr.AddOf(x))
}

func TestSub_IsAddOfNegation(t *testing.T) {
	e := expr.SubOf(expr.S("a"), expr.S("b"))
	assert.Equal(t, "a + -1*b", e.String())
	assert.Equal(t, "a + -2", expr.SubOf(expr.S("a"), expr.N(2)).String())
}

func TestMul_ParenthesisesSums(t *testing.T) {
	e := expr.MulOf(expr.N(2), expr.AddOf(expr.S("x"), expr.N(1)))
	assert.Equal(t, "2*(x + 1)", e.String())
}

func TestDiv_IsPowMinusOne(t *testing.T) {
	e := expr.DivOf(expr.S("x"), expr.S("y"))
	assert.Equal(t, "x*y^-1", e.String())
}

func TestPow_String(t *testing.T) {
	x := expr.S("x")
	assert.Equal(t, "x^2", expr.PowOf(x, expr.N(2)).String())
	assert.Equal(t, "(x + 1)^2", expr.PowOf(expr.AddOf(x, expr.N(1)), expr.N(2)).String())
	assert.Equal(t, "(-2)^x", expr.PowOf(expr.N(-2), x).String())
	assert.Equal(t, "x^(2*y)", expr.PowOf(x, expr.MulOf(expr.N(2), expr.S("y"))).String())
}

func TestFunc_String(t *testing.T) {
	assert.Equal(t, "sin(x*cos(x))", expr.SinOf(expr.MulOf(expr.S("x"), expr.CosOf(expr.S("x")))).String())
}

// ============================================================
// Free symbols
// ============================================================

func TestFreeSymbols_Sorted(t *testing.T) {
	e := expr.MustParse("z*sin(y) + x^a + x")
	assert.Equal(t, []string{"a", "x", "y", "z"}, expr.FreeSymbols(e))
}

func TestFreeSymbols_Constant(t *testing.T) {
	assert.Empty(t, expr.FreeSymbols(expr.MustParse("2*pi + exp(1)")))
}

func TestFunctions_Catalogue(t *testing.T) {
	names := expr.Functions()
	assert.Len(t, names, 16)
	assert.Contains(t, names, "ln")
	assert.IsIncreasing(t, names)
}

func TestPi(t *testing.T) {
	n, ok := expr.MustParse("pi").(*expr.Num)
	require.True(t, ok)
	assert.Equal(t, math.Pi, n.Value())
}
