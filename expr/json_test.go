package expr_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/hyperreal/expr"
)

func TestJSON_RoundTrip(t *testing.T) {
	for _, src := range []string{"x", "2.5", "x*sin(x)", "x/(1 + x)", "(x + 1)^y", "-abs(x)"} {
		t.Run(src, func(t *testing.T) {
			e := expr.MustParse(src)
			s, err := expr.ToJSON(e)
			require.NoError(t, err)
			back, err := expr.ParseJSON([]byte(s))
			require.NoError(t, err)
			assert.Equal(t, e.String(), back.String())
		})
	}
}

func TestJSON_Shape(t *testing.T) {
	s, err := expr.ToJSON(expr.PowOf(expr.S("x"), expr.N(2)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"num","value":"2"}}`, s)
}

func TestFromJSON_NumAsNumber(t *testing.T) {
	e, err := expr.FromJSON(map[string]interface{}{"type": "num", "value": 1.5})
	require.NoError(t, err)
	assert.Equal(t, "1.5", e.String())
}

func TestToMap_Embeds(t *testing.T) {
	m := expr.ToMap(expr.SinOf(expr.S("x")))
	assert.Equal(t, "func", m["type"])
	assert.Equal(t, "sin", m["name"])
	b, err := json.Marshal(map[string]interface{}{"expr": m})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"arg":{"name":"x","type":"sym"}`)
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"missing type", `{}`, "missing 'type'"},
		{"bad type", `{"type":3}`, "non-empty string"},
		{"unknown type", `{"type":"matrix"}`, `unknown expression type "matrix"`},
		{"bad num", `{"type":"num","value":"abc"}`, "invalid value"},
		{"missing num", `{"type":"num"}`, "missing 'value'"},
		{"missing name", `{"type":"sym"}`, `sym: missing "name"`},
		{"empty terms", `{"type":"add","terms":[]}`, "must not be empty"},
		{"terms not array", `{"type":"mul","factors":{}}`, "must be an array"},
		{"nested", `{"type":"add","terms":[{"type":"sym","name":"x"},{"type":"oops"}]}`, "add.terms[1]"},
		{"pow base", `{"type":"pow","exp":{"type":"num","value":"2"}}`, `pow: missing "base"`},
		{"unknown func", `{"type":"func","name":"gamma","arg":{"type":"sym","name":"x"}}`, `unknown function "gamma"`},
		{"not json", `{`, "decode expression"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expr.ParseJSON([]byte(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestFromJSON_Nil(t *testing.T) {
	_, err := expr.FromJSON(nil)
	assert.Error(t, err)
}
