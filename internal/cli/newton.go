package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperreal/numeric"
)

type newtonOptions struct {
	x0      float64
	tol     float64
	maxIter int
	varName string
}

// NewNewtonCommand creates the newton command.
func NewNewtonCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &newtonOptions{}
	cmd := &cobra.Command{
		Use:   "newton <expr>",
		Short: "Find a root with Newton's method",
		Long: `Find a root of a formula starting at --x0. Each step takes the slope
from a dual-number evaluation, so no derivative has to be written down.
With --verbose every iterate is logged to stderr.

  hyperreal newton 'x^2*cos(x) - 0.5' --x0 -1

Exits with 1 if the iteration does not converge.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewton(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().Float64Var(&opts.x0, "x0", 0, "starting point")
	cmd.Flags().Float64Var(&opts.tol, "tol", numeric.DefaultTolerance, "step size at which to stop")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", numeric.DefaultMaxIterations, "maximum number of iterations")
	cmd.Flags().StringVar(&opts.varName, "var", "x", "variable to solve for")
	_ = cmd.MarkFlagRequired("x0")
	return cmd
}

func runNewton(rootOpts *RootOptions, opts *newtonOptions, text string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd.OutOrStdout())
	if opts.tol <= 0 || opts.maxIter <= 0 {
		return f.fail(ExitCommandError, ErrCodeArgs, errors.New("--tol and --max-iter must be positive"))
	}
	fn, err := compileFormula(f, text, opts.varName)
	if err != nil {
		return err
	}

	res, err := numeric.Newton(fn, opts.x0,
		numeric.WithTolerance(opts.tol),
		numeric.WithMaxIterations(opts.maxIter),
		numeric.WithLogger(rootOpts.Log.WithField("expr", text)),
		numeric.WithContext(cmd.Context()),
	)
	if err != nil {
		rootOpts.Log.WithFields(logrus.Fields{"last": res.Root, "iterations": res.Iterations}).Debug("newton failed")
		return f.fail(ExitFailure, ErrCodeNumerical, err)
	}
	return f.Success(res, fmt.Sprintf("root = %.15g (%d iterations, residual %g)", res.Root, res.Iterations, res.Residual))
}
