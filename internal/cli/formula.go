package cli

import (
	"github.com/njchilds90/hyperreal"
	"github.com/njchilds90/hyperreal/expr"
)

// compileFormula parses text as a function of name. Failures are reported
// on f and returned as command errors.
func compileFormula(f *OutputFormatter, text, name string) (func(hyperreal.Number) hyperreal.Number, error) {
	e, err := expr.Parse(text)
	if err != nil {
		return nil, f.fail(ExitCommandError, ErrCodeParse, err)
	}
	fn, err := expr.Compile[hyperreal.Number](e, name)
	if err != nil {
		return nil, f.fail(ExitCommandError, ErrCodeEval, err)
	}
	return fn, nil
}
