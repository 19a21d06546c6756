package numeric

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// JSONFloat is a float64 whose JSON form carries NaN and ±Inf as the strings
// "NaN", "+Inf" and "-Inf". Finite values stay plain JSON numbers.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

func (f *JSONFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = JSONFloat(math.NaN())
		case "+Inf", "Inf":
			*f = JSONFloat(math.Inf(1))
		case "-Inf":
			*f = JSONFloat(math.Inf(-1))
		default:
			return errors.Errorf("invalid non-finite number %q", s)
		}
		return nil
	}
	var x float64
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	*f = JSONFloat(x)
	return nil
}

type resultJSON struct {
	Root       JSONFloat `json:"root"`
	Iterations int       `json:"iterations"`
	Residual   JSONFloat `json:"residual"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{Root: JSONFloat(r.Root), Iterations: r.Iterations, Residual: JSONFloat(r.Residual)})
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var v resultJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Result{Root: float64(v.Root), Iterations: v.Iterations, Residual: float64(v.Residual)}
	return nil
}
