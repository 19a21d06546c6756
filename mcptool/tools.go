// Package mcptool exposes differentiation, root finding and quadrature as
// JSON tools, for the HTTP server and for MCP clients.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/njchilds90/hyperreal"
	"github.com/njchilds90/hyperreal/expr"
	"github.com/njchilds90/hyperreal/numeric"
)

// ============================================================
// Tool Protocol
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Evaluation is the result of the evaluate tool.
type Evaluation struct {
	Value      float64 `json:"value" yaml:"value"`
	Derivative float64 `json:"derivative" yaml:"derivative"`
}

// Integral is the result of the integrate tool. UpperDerivative is the
// derivative of the computed integral with respect to b, close to f(b).
type Integral struct {
	Value           float64 `json:"value" yaml:"value"`
	UpperDerivative float64 `json:"d_upper" yaml:"d_upper"`
	Points          int     `json:"points" yaml:"points"`
}

// MaxIterationsLimit bounds the max_iter param of the newton tool.
const MaxIterationsLimit = 10000

// MarshalJSON writes NaN and ±Inf as strings, see numeric.JSONFloat.
func (e Evaluation) MarshalJSON() ([]byte, error) {
	return json.Marshal(evaluationJSON{Value: numeric.JSONFloat(e.Value), Derivative: numeric.JSONFloat(e.Derivative)})
}

func (e *Evaluation) UnmarshalJSON(b []byte) error {
	var v evaluationJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = Evaluation{Value: float64(v.Value), Derivative: float64(v.Derivative)}
	return nil
}

type evaluationJSON struct {
	Value      numeric.JSONFloat `json:"value"`
	Derivative numeric.JSONFloat `json:"derivative"`
}

func (i Integral) MarshalJSON() ([]byte, error) {
	return json.Marshal(integralJSON{
		Value:           numeric.JSONFloat(i.Value),
		UpperDerivative: numeric.JSONFloat(i.UpperDerivative),
		Points:          i.Points,
	})
}

func (i *Integral) UnmarshalJSON(b []byte) error {
	var v integralJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*i = Integral{Value: float64(v.Value), UpperDerivative: float64(v.UpperDerivative), Points: v.Points}
	return nil
}

type integralJSON struct {
	Value           numeric.JSONFloat `json:"value"`
	UpperDerivative numeric.JSONFloat `json:"d_upper"`
	Points          int               `json:"points"`
}

var toolNames = map[string]struct{}{
	"parse": {}, "evaluate": {}, "newton": {}, "integrate": {}, "tool_spec": {},
}

// Known reports whether HandleToolCall serves the named tool.
func Known(name string) bool {
	_, ok := toolNames[name]
	return ok
}

func errResponse(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallContext(context.Background(), req)
}

// HandleToolCallContext is HandleToolCall with a context that bounds
// iterative tools.
func HandleToolCallContext(ctx context.Context, req ToolRequest) ToolResponse {
	getExpr := func() (expr.Expr, error) {
		if v, ok := req.Params["expr"]; ok {
			m, ok := v.(map[string]interface{})
			if !ok {
				return nil, errors.New("invalid type for param expr")
			}
			return expr.FromJSON(m)
		}
		if v, ok := req.Params["text"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("param text must be a string")
			}
			return expr.Parse(s)
		}
		return nil, errors.New("missing param: expr or text")
	}
	getString := func(key, def string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", errors.Errorf("param %s must be a non-empty string", key)
		}
		return s, nil
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, errors.Errorf("missing param: %s", key)
		}
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case json.Number:
			return n.Float64()
		}
		return 0, errors.Errorf("param %s must be a number", key)
	}
	getCount := func(key string, def, max int) (int, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		n, err := getNumber(key)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, errors.Errorf("param %s must be an integer, got %g", key, n)
		}
		if n < 1 || n > float64(max) {
			return 0, errors.Errorf("param %s must be between 1 and %d, got %g", key, max, n)
		}
		return int(n), nil
	}
	getOptionalNumber := func(key string, def float64) (float64, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getNumber(key)
	}
	// unary reads the expression as a function of var.
	unary := func() (func(hyperreal.Number) hyperreal.Number, error) {
		e, err := getExpr()
		if err != nil {
			return nil, err
		}
		name, err := getString("var", "x")
		if err != nil {
			return nil, err
		}
		return expr.Compile[hyperreal.Number](e, name)
	}

	switch req.Tool {
	case "parse":
		e, err := getExpr()
		if err != nil {
			return errResponse(err)
		}
		return ToolResponse{Result: expr.ToMap(e), String: e.String()}

	case "evaluate":
		f, err := unary()
		if err != nil {
			return errResponse(err)
		}
		at, err := getNumber("at")
		if err != nil {
			return errResponse(err)
		}
		v := f(hyperreal.Var(at))
		return ToolResponse{
			Result: Evaluation{Value: v.Real(), Derivative: v.Inf()},
			String: v.String(),
		}

	case "newton":
		f, err := unary()
		if err != nil {
			return errResponse(err)
		}
		x0, err := getNumber("x0")
		if err != nil {
			return errResponse(err)
		}
		tol, err := getOptionalNumber("tol", numeric.DefaultTolerance)
		if err != nil {
			return errResponse(err)
		}
		if math.IsNaN(tol) || tol <= 0 {
			return errResponse(errors.Errorf("param tol must be positive, got %g", tol))
		}
		maxIter, err := getCount("max_iter", numeric.DefaultMaxIterations, MaxIterationsLimit)
		if err != nil {
			return errResponse(err)
		}
		res, err := numeric.Newton(f, x0,
			numeric.WithTolerance(tol),
			numeric.WithMaxIterations(maxIter),
			numeric.WithContext(ctx),
		)
		if err != nil {
			return errResponse(err)
		}
		return ToolResponse{Result: res, String: fmt.Sprintf("%g", res.Root)}

	case "integrate":
		f, err := unary()
		if err != nil {
			return errResponse(err)
		}
		a, err := getNumber("a")
		if err != nil {
			return errResponse(err)
		}
		b, err := getNumber("b")
		if err != nil {
			return errResponse(err)
		}
		points, err := getOptionalNumber("points", 10)
		if err != nil {
			return errResponse(err)
		}
		rule, ok := numeric.RuleFor(int(points))
		if !ok || float64(int(points)) != points {
			return errResponse(errors.Errorf("param points must be 3 or 10, got %g", points))
		}
		v := numeric.GaussLegendre(f, hyperreal.Const(a), hyperreal.Var(b), rule)
		return ToolResponse{
			Result: Integral{Value: v.Real(), UpperDerivative: v.Inf(), Points: len(rule.Nodes)},
			String: fmt.Sprintf("%g", v.Real()),
		}

	case "tool_spec":
		return ToolResponse{String: ToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// Tool Schema
// ============================================================

var exprProps = map[string]string{"expr": "object", "text": "string", "var": "string"}

func with(props map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(props)+len(extra))
	for k, v := range props {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ToolSpec returns the JSON schema of every tool. Each expression tool takes
// either expr (JSON tree) or text (infix), and var (default x).
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("parse", "Parse an infix formula into its JSON tree", []string{}, map[string]string{"expr": "object", "text": "string"}),
		ts("evaluate", "Value and derivative at a point. Requires at (number)", []string{"at"}, with(exprProps, map[string]string{"at": "number"})),
		ts("newton", "Newton root finding from x0. Optional: tol, max_iter", []string{"x0"}, with(exprProps, map[string]string{"x0": "number", "tol": "number", "max_iter": "integer"})),
		ts("integrate", "Gauss-Legendre ∫_a^b. Optional: points (3 or 10, default 10)", []string{"a", "b"}, with(exprProps, map[string]string{"a": "number", "b": "number", "points": "integer"})),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
