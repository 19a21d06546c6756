package expr

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================
// JSON wire form
// ============================================================

// ToJSON encodes e as its JSON tree.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToMap returns the JSON tree of e as nested maps, ready to embed in a
// larger document.
func ToMap(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes a JSON tree from text.
func ParseJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode expression")
	}
	return FromJSON(m)
}

// FromJSON builds an expression from its decoded JSON tree. A num value may
// be a string or a JSON number.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, errors.New("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, errors.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		return e, errors.WithMessagef(err, "%s.%s", typ, field)
	}

	subObjArray := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, errors.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, errors.Errorf("%s: %q must be an array", typ, field)
		}
		if len(raw) == 0 {
			return nil, errors.Errorf("%s: %q must not be empty", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, errors.WithMessagef(err, "%s.%s[%d]", typ, field, i)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", errors.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", errors.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		switch v := data["value"].(type) {
		case float64:
			return N(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Errorf("num: invalid value %q", v)
			}
			return N(f), nil
		case nil:
			return nil, errors.New("num: missing 'value'")
		default:
			return nil, errors.New("num: 'value' must be a string or number")
		}

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "add":
		terms, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		exp, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if _, ok := functionNames[name]; !ok {
			return nil, errors.Errorf("func: unknown function %q", name)
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return FuncOf(name, arg), nil
	}
	return nil, errors.Errorf("unknown expression type %q", typ)
}
