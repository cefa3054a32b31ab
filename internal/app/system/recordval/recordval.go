// Package recordval checks raw decoded records against a schema.Schema and
// coerces them into typed Values.
//
// Validation is fail-fast: fields are checked in schema order and the first
// violation is returned on its own.
package recordval

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dalemusser/vocaguia/internal/app/system/inputval"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
)

// Validate checks raw against s. raw is normally a map[string]any from
// encoding/json (with UseNumber) or yaml.v3.
func Validate(raw any, s schema.Schema) (Values, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Values{}, &InvalidTypeError{Expected: "object"}
	}

	out := Values{m: make(map[string]any, len(s.Fields))}
	for _, f := range s.Fields {
		v, present := obj[f.Name]
		val, set, err := check(f, v, present)
		if err != nil {
			return Values{}, err
		}
		if set {
			out.m[f.Name] = val
		}
	}
	return out, nil
}

// absent handles a missing value: an error when required, otherwise skipped.
func absent(f schema.Field) (any, bool, error) {
	if f.Required {
		return nil, false, &MissingFieldError{Field: f.Name}
	}
	return nil, false, nil
}

func invalid(f schema.Field) (any, bool, error) {
	return nil, false, &InvalidTypeError{Field: f.Name, Expected: f.Type.String()}
}

func check(f schema.Field, v any, present bool) (any, bool, error) {
	if !present || v == nil {
		if present && f.Nullable {
			return nil, true, nil
		}
		return absent(f)
	}

	switch f.Type {
	case schema.String:
		s, ok := v.(string)
		if !ok {
			return invalid(f)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return absent(f)
		}
		if f.Format == "email" && !inputval.IsValidEmail(s) {
			return nil, false, &InvalidTypeError{Field: f.Name, Expected: "email address"}
		}
		return s, true, nil

	case schema.Enum:
		s, ok := v.(string)
		if !ok {
			return invalid(f)
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return absent(f)
		}
		for _, a := range f.Enum {
			if a == s {
				return s, true, nil
			}
		}
		return nil, false, &InvalidEnumError{Field: f.Name, Value: s, Allowed: f.Enum}

	case schema.Number:
		if isBlank(v) {
			return absent(f)
		}
		n, ok := toFloat(v)
		if !ok {
			return invalid(f)
		}
		if f.Min != nil && n < *f.Min {
			return nil, false, &InvalidTypeError{
				Field:    f.Name,
				Expected: "number >= " + strconv.FormatFloat(*f.Min, 'f', -1, 64),
			}
		}
		return n, true, nil

	case schema.Int:
		if isBlank(v) {
			return absent(f)
		}
		n, ok := toFloat(v)
		// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
		if !ok || n != math.Trunc(n) || n >= math.MaxInt || n < math.MinInt {
			if f.Informational {
				return nil, false, nil
			}
			return invalid(f)
		}
		return int(n), true, nil

	case schema.Bool:
		switch b := v.(type) {
		case bool:
			return b, true, nil
		case string:
			if strings.TrimSpace(b) == "" {
				return absent(f)
			}
			pb, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return invalid(f)
			}
			return pb, true, nil
		}
		return invalid(f)

	case schema.StringList:
		list, ok := v.([]any)
		if !ok {
			return invalid(f)
		}
		out := make([]string, 0, len(list))
		for i, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, false, &InvalidTypeError{Field: f.Name + "[" + strconv.Itoa(i) + "]", Expected: "string"}
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return absent(f)
		}
		return out, true, nil

	case schema.ObjectList:
		list, ok := v.([]any)
		if !ok {
			return invalid(f)
		}
		if len(list) == 0 {
			return absent(f)
		}
		out := make([]Values, len(list))
		for i, e := range list {
			ev, err := Validate(e, *f.Elem)
			if err != nil {
				return nil, false, &MalformedNestedError{Field: f.Name, Index: i, Err: err}
			}
			out[i] = ev
		}
		return out, true, nil

	case schema.Opaque:
		list, ok := v.([]any)
		if !ok {
			return invalid(f)
		}
		if len(list) == 0 {
			return absent(f)
		}
		return plainList(list), true, nil
	}

	return invalid(f)
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toFloat coerces JSON/YAML numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint64:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// plainList copies an opaque list, turning json.Number into int64 or
// float64 so the document store receives real numbers.
func plainList(list []any) []any {
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = plainValue(e)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		return plainList(t)
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	}
	return v
}
