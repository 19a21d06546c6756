package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperreal"
	"github.com/njchilds90/hyperreal/mcptool"
)

type evalOptions struct {
	at      float64
	varName string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate a formula and its derivative at a point",
		Long: `Evaluate a formula at --at with the variable seeded as a dual number.
Prints the value and the exact first derivative.

  hyperreal eval 'x*sin(x)' --at 5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().Float64Var(&opts.at, "at", 0, "point at which to evaluate")
	cmd.Flags().StringVar(&opts.varName, "var", "x", "variable to differentiate with respect to")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func runEval(rootOpts *RootOptions, opts *evalOptions, text string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd.OutOrStdout())
	fn, err := compileFormula(f, text, opts.varName)
	if err != nil {
		return err
	}

	v := fn(hyperreal.Var(opts.at))
	rootOpts.Log.WithFields(logrus.Fields{"expr": text, "at": opts.at, "dual": v.String()}).Debug("evaluated")

	res := mcptool.Evaluation{Value: v.Real(), Derivative: v.Inf()}
	return f.Success(res, fmt.Sprintf("f(%g) = %g\nf'(%g) = %g", opts.at, res.Value, opts.at, res.Derivative))
}
