package mcptool

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ============================================================
// MCP registration
// ============================================================

func textArg() mcp.ToolOption {
	return mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Formula in infix notation, e.g. x^2*cos(x) - 0.5"),
	)
}

func varArg() mcp.ToolOption {
	return mcp.WithString("var",
		mcp.Description("Variable to differentiate with respect to (default: x)"),
	)
}

// Tools returns the MCP definitions of the tools served by Register.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("parse",
			mcp.WithDescription("Parse an infix formula and return its JSON tree"),
			textArg(),
		),
		mcp.NewTool("evaluate",
			mcp.WithDescription("Evaluate a formula and its exact derivative at a point"),
			textArg(),
			varArg(),
			mcp.WithNumber("at",
				mcp.Required(),
				mcp.Description("Point at which to evaluate"),
			),
		),
		mcp.NewTool("newton",
			mcp.WithDescription("Find a root of a formula with Newton's method"),
			textArg(),
			varArg(),
			mcp.WithNumber("x0",
				mcp.Required(),
				mcp.Description("Starting point"),
			),
			mcp.WithNumber("tol",
				mcp.Description("Step size at which to stop (default: 1e-10)"),
			),
			mcp.WithNumber("max_iter",
				mcp.Description("Maximum number of iterations, 1 to 10000 (default: 100)"),
			),
		),
		mcp.NewTool("integrate",
			mcp.WithDescription("Integrate a formula over [a, b] with Gauss-Legendre quadrature"),
			textArg(),
			varArg(),
			mcp.WithNumber("a", mcp.Required(), mcp.Description("Lower bound")),
			mcp.WithNumber("b", mcp.Required(), mcp.Description("Upper bound")),
			mcp.WithNumber("points",
				mcp.Description("Number of quadrature points, 3 or 10 (default: 10)"),
			),
		),
	}
}

// Register adds every tool to s. Each call goes through HandleToolCall and
// returns its response as JSON text.
func Register(s *server.MCPServer) {
	for _, tool := range Tools() {
		s.AddTool(tool, handler(tool.Name))
	}
}

func handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			return mcp.NewToolResultError("request cancelled"), nil
		}
		resp := HandleToolCallContext(ctx, ToolRequest{Tool: name, Params: request.GetArguments()})
		if resp.Error != "" {
			return mcp.NewToolResultError(resp.Error), nil
		}
		b, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}
