package cli

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/hyperreal/expr"
)

// ParseResult is the output of the parse command.
type ParseResult struct {
	Expr        map[string]interface{} `json:"expr" yaml:"expr"`
	String      string                 `json:"string" yaml:"string"`
	FreeSymbols []string               `json:"free_symbols" yaml:"free_symbols"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expr>",
		Short: "Print the JSON tree of a formula",
		Long: `Parse a formula and print the JSON tree accepted by the tool server.
Subtraction becomes a sum with a -1 factor and division a -1 power.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout())
			e, err := expr.Parse(args[0])
			if err != nil {
				return f.fail(ExitCommandError, ErrCodeParse, err)
			}
			text, err := expr.ToJSON(e)
			if err != nil {
				return f.fail(ExitCommandError, ErrCodeParse, err)
			}
			return f.Success(ParseResult{
				Expr:        expr.ToMap(e),
				String:      e.String(),
				FreeSymbols: expr.FreeSymbols(e),
			}, text)
		},
	}
}
