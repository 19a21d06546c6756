package hyperreal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/hyperreal"
)

const eps = 1e-12

// ============================================================
// Construction
// ============================================================

func TestVar_Seed(t *testing.T) {
	x := hyperreal.Var(5)
	assert.Equal(t, 5.0, x.Real())
	assert.Equal(t, 1.0, x.Inf())
	assert.False(t, x.IsConst())
}

func TestConst_ZeroInfinitesimal(t *testing.T) {
	c := hyperreal.Const(3)
	re, inf := c.Parts()
	assert.Equal(t, 3.0, re)
	assert.Equal(t, 0.0, inf)
	assert.True(t, c.IsConst())
}

func TestZeroValue(t *testing.T) {
	var z hyperreal.Number
	assert.True(t, z.Equal(hyperreal.New(0.0, 0.0)))
}

func TestNew_IndependentComponentTypes(t *testing.T) {
	d := hyperreal.New(2.0, float32(0.5))
	assert.Equal(t, 2.0, d.Real())
	assert.Equal(t, float32(0.5), d.Inf())

	c := hyperreal.ConstOf[float64, float32](7)
	assert.Equal(t, float32(0), c.Inf())
}

func TestString(t *testing.T) {
	assert.Equal(t, "5 + 1ε", hyperreal.Var(5).String())
	assert.Equal(t, "0.5 - 2ε", hyperreal.New(0.5, -2.0).String())
	assert.Equal(t, "1.5 + 0.25ε", hyperreal.New(float32(1.5), float32(0.25)).String())
}

func TestIsNaN(t *testing.T) {
	assert.False(t, hyperreal.Var(1).IsNaN())
	assert.True(t, hyperreal.New(math.NaN(), 1.0).IsNaN())
	assert.True(t, hyperreal.New(1.0, math.NaN()).IsNaN())
}

// ============================================================
// Part extraction
// ============================================================

type meters float64

func (m meters) Parts() (float64, float64) { return float64(m), 0 }

func TestParts_PlainScalars(t *testing.T) {
	re, inf := hyperreal.Scalar(2.5).Parts()
	assert.Equal(t, 2.5, re)
	assert.Equal(t, 0.0, inf)

	re32, inf32 := hyperreal.Scalar32(1.25).Parts()
	assert.Equal(t, float32(1.25), re32)
	assert.Equal(t, float32(0), inf32)

	rei, infi := hyperreal.Int(-4).Parts()
	assert.Equal(t, -4.0, rei)
	assert.Equal(t, 0.0, infi)
}

func TestParts_RegisteredOperand(t *testing.T) {
	x := hyperreal.Var(2)
	z := hyperreal.Mul(meters(3), x)
	assert.Equal(t, 6.0, z.Real())
	assert.Equal(t, 3.0, z.Inf())
}

func TestPos_PlainBecomesDual(t *testing.T) {
	z := hyperreal.Pos(hyperreal.Scalar(4))
	assert.True(t, z.Equal(hyperreal.Const(4)))

	x := hyperreal.New(5.0, 2.0)
	assert.True(t, hyperreal.Pos(x).Equal(x))
}
