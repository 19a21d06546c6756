package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperreal"
	"github.com/njchilds90/hyperreal/mcptool"
	"github.com/njchilds90/hyperreal/numeric"
)

type integrateOptions struct {
	from    float64
	to      float64
	points  int
	varName string
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &integrateOptions{}
	cmd := &cobra.Command{
		Use:   "integrate <expr>",
		Short: "Integrate a formula with Gauss-Legendre quadrature",
		Long: `Integrate a formula from --from to --to. The upper bound is seeded as a
dual number, so the derivative of the integral with respect to it is
reported as well.

  hyperreal integrate 'exp(-x^2)' --from 0 --to 1 --points 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().Float64Var(&opts.from, "from", 0, "lower bound")
	cmd.Flags().Float64Var(&opts.to, "to", 0, "upper bound")
	cmd.Flags().IntVar(&opts.points, "points", 10, "quadrature points (3|10)")
	cmd.Flags().StringVar(&opts.varName, "var", "x", "integration variable")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runIntegrate(rootOpts *RootOptions, opts *integrateOptions, text string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd.OutOrStdout())
	rule, ok := numeric.RuleFor(opts.points)
	if !ok {
		return f.fail(ExitCommandError, ErrCodeArgs, errors.Errorf("--points must be 3 or 10, got %d", opts.points))
	}
	fn, err := compileFormula(f, text, opts.varName)
	if err != nil {
		return err
	}

	v := numeric.GaussLegendre(fn, hyperreal.Const(opts.from), hyperreal.Var(opts.to), rule)
	rootOpts.Log.WithField("points", opts.points).Debugf("integral %v", v)

	res := mcptool.Integral{Value: v.Real(), UpperDerivative: v.Inf(), Points: opts.points}
	return f.Success(res, fmt.Sprintf("integral = %.15g\nd/d(to) = %.15g", res.Value, res.UpperDerivative))
}
