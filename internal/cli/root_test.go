package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/hyperreal/mcptool"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hyperreal", cmd.Use)
	assert.Contains(t, cmd.Long, "exact first derivative")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, cmdName := range []string{"eval", "newton", "integrate", "parse", "serve"} {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	code, _, stderr := run(t, "eval", "x", "--at", "1", "--format", "xml")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `invalid format "xml"`)
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := run(t, "simplify", "x")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "unknown command")
}

// ============================================================
// eval
// ============================================================

func TestEval_Text(t *testing.T) {
	code, stdout, _ := run(t, "eval", "2*x*x", "--at", "5")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "f(5) = 50\nf'(5) = 20\n", stdout)
}

func TestEval_JSON(t *testing.T) {
	code, stdout, _ := run(t, "eval", "cos(x*sin(x))", "--at", "5", "--format", "json")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string             `json:"status"`
		Data   mcptool.Evaluation `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.InDelta(t, -0.4578343032148585, resp.Data.Derivative, 1e-10)
}

func TestEval_YAML(t *testing.T) {
	code, stdout, _ := run(t, "eval", "t/(1 + t)", "--var", "t", "--at", "5", "--format", "yaml")
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string             `yaml:"status"`
		Data   mcptool.Evaluation `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.InDelta(t, 5.0/6.0, resp.Data.Value, 1e-15)
	assert.InDelta(t, 1.0/36.0, resp.Data.Derivative, 1e-15)
}

func TestEval_NonFiniteJSON(t *testing.T) {
	tests := []struct {
		formula string
		at      string
		want    string
	}{
		{"sqrt(x)", "0", `{"value":0,"derivative":"+Inf"}`},
		{"log(x)", "-1", `{"value":"NaN","derivative":-1}`},
	}
	for _, tc := range tests {
		t.Run(tc.formula, func(t *testing.T) {
			code, stdout, stderr := run(t, "eval", tc.formula, "--at", tc.at, "--format", "json")
			require.Equal(t, ExitSuccess, code, stderr)

			var resp struct {
				Status string          `json:"status"`
				Data   json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.JSONEq(t, tc.want, string(resp.Data))
		})
	}
}

func TestEval_NonFiniteYAML(t *testing.T) {
	code, stdout, _ := run(t, "eval", "log(x)", "--at", "-1", "--format", "yaml")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "value: .nan")
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"parse error", []string{"eval", "x +", "--at", "1"}, ExitCommandError, "Error [E001]", ""},
		{"unbound symbol", []string{"eval", "x + y", "--at", "1"}, ExitCommandError, "Error [E002]", ""},
		{"missing at", []string{"eval", "x"}, ExitCommandError, "", "required flag"},
		{"no formula", []string{"eval", "--at", "1"}, ExitCommandError, "", "accepts 1 arg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Contains(t, stdout, tc.stdout)
			assert.Contains(t, stderr, tc.stderr)
		})
	}
}

func TestEval_ErrorJSON(t *testing.T) {
	code, stdout, stderr := run(t, "eval", "sin(", "--at", "1", "--format", "json")
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stderr)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "offset 4")
}
