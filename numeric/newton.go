package numeric

import (
	"context"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/njchilds90/hyperreal"
)

const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 100
)

var (
	ErrNoConvergence  = errors.New("newton: no convergence")
	ErrZeroDerivative = errors.New("newton: zero derivative")
	ErrNotFinite      = errors.New("newton: iterate is not finite")
)

// Result is the outcome of a Newton run.
type Result struct {
	Root       float64 `json:"root" yaml:"root"`
	Iterations int     `json:"iterations" yaml:"iterations"`
	Residual   float64 `json:"residual" yaml:"residual"`
}

type options struct {
	tol     float64
	maxIter int
	log     *logrus.Entry
	ctx     context.Context
}

// Option configures Newton and NewtonFunc.
type Option func(*options)

// WithTolerance sets the step size below which the iteration stops.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// WithMaxIterations caps the number of Newton steps.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIter = n
		}
	}
}

// WithLogger traces every iterate at debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// WithContext stops the iteration with ctx's error once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func loadOptions(opts []Option) *options {
	o := &options{tol: DefaultTolerance, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		opt(o)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		o.log = logrus.NewEntry(silent)
	}
	return o
}

// Newton finds a root of f starting at x0. Each step evaluates f once at the
// seeded dual (x, 1) and uses the infinitesimal part as the slope.
func Newton(f func(hyperreal.Number) hyperreal.Number, x0 float64, opts ...Option) (Result, error) {
	return iterate(func(x float64) (float64, float64) {
		return hyperreal.Derivative(f, x)
	}, x0, loadOptions(opts))
}

// NewtonFunc runs the same iteration with a closed-form derivative.
func NewtonFunc(f, df func(float64) float64, x0 float64, opts ...Option) (Result, error) {
	return iterate(func(x float64) (float64, float64) {
		return f(x), df(x)
	}, x0, loadOptions(opts))
}

func iterate(eval func(float64) (float64, float64), x0 float64, o *options) (Result, error) {
	x := x0
	for i := 1; i <= o.maxIter; i++ {
		if err := o.ctx.Err(); err != nil {
			return Result{Root: x, Iterations: i - 1}, errors.Wrapf(err, "newton stopped after %d iterations", i-1)
		}
		fx, dfx := eval(x)
		if dfx == 0 {
			return Result{Root: x, Iterations: i, Residual: fx}, errors.Wrapf(ErrZeroDerivative, "at x=%g", x)
		}
		next := x - fx/dfx
		o.log.WithFields(logrus.Fields{"iter": i, "x": x, "f": fx, "df": dfx}).Debug("newton step")
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return Result{Root: x, Iterations: i, Residual: fx}, errors.Wrapf(ErrNotFinite, "after %d iterations", i)
		}
		if math.Abs(next-x) < o.tol {
			residual, _ := eval(next)
			return Result{Root: next, Iterations: i, Residual: residual}, nil
		}
		x = next
	}
	fx, _ := eval(x)
	return Result{Root: x, Iterations: o.maxIter, Residual: fx},
		errors.Wrapf(ErrNoConvergence, "after %d iterations", o.maxIter)
}
