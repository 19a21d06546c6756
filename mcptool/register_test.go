package mcptool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := handler(name)(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestTools_Definitions(t *testing.T) {
	var names []string
	for _, tool := range Tools() {
		names = append(names, tool.Name)
		assert.Contains(t, tool.InputSchema.Required, "text", tool.Name)
	}
	assert.Equal(t, []string{"parse", "evaluate", "newton", "integrate"}, names)
}

func TestHandler_Evaluate(t *testing.T) {
	res := callTool(t, context.Background(), "evaluate", map[string]any{"text": "x*sin(x)", "at": 0.0})
	assert.False(t, res.IsError)

	var resp struct {
		Result Evaluation `json:"result"`
		String string     `json:"string"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, Evaluation{Value: 0, Derivative: 0}, resp.Result)
}

func TestHandler_NonFiniteResult(t *testing.T) {
	res := callTool(t, context.Background(), "evaluate", map[string]any{"text": "log(x)", "at": -1.0})
	require.False(t, res.IsError, resultText(t, res))

	var resp struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, "NaN", resp.Result["value"])
	assert.Equal(t, -1.0, resp.Result["derivative"])
}

func TestHandler_OversizedIterations(t *testing.T) {
	res := callTool(t, context.Background(), "newton", map[string]any{"text": "x^2 + 1", "x0": 0.5, "max_iter": 1e15})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "max_iter must be between 1 and 10000")
}

func TestHandler_ToolError(t *testing.T) {
	res := callTool(t, context.Background(), "newton", map[string]any{"text": "x^2 + 1", "x0": 0.0})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "zero derivative")
}

func TestHandler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := callTool(t, ctx, "parse", map[string]any{"text": "x"})
	assert.True(t, res.IsError)
	assert.Equal(t, "request cancelled", resultText(t, res))
}

func TestRegister(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(false))
	Register(s)

	msg := s.HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"evaluate","arguments":{"text":"2*x*x","at":5}}}`,
	))
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(b), `\"derivative\":20`)
}
