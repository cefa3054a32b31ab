package recordval

import (
	"fmt"
	"strings"
)

// MissingFieldError: a required field is absent, null, blank or an empty list.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return "MissingField: " + e.Field }

// InvalidEnumError: the normalized value is not one of Allowed.
type InvalidEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("InvalidEnum: %s %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// InvalidTypeError: the value cannot be coerced to the field's type, or
// breaks a bound or format on it. An empty Field means the record itself.
type InvalidTypeError struct {
	Field    string
	Expected string
}

func (e *InvalidTypeError) Error() string {
	field := e.Field
	if field == "" {
		field = "record"
	}
	return fmt.Sprintf("InvalidType: %s (expected %s)", field, e.Expected)
}

// MalformedNestedError: element Index of list Field failed its own schema.
type MalformedNestedError struct {
	Field string
	Index int
	Err   error
}

// Path renders the element position, e.g. "ubicacion[2]".
func (e *MalformedNestedError) Path() string {
	return fmt.Sprintf("%s[%d]", e.Field, e.Index)
}

func (e *MalformedNestedError) Error() string {
	return "MalformedNested: " + e.Path() + ": " + e.Err.Error()
}

func (e *MalformedNestedError) Unwrap() error { return e.Err }
