package recordval

// Values holds the coerced fields of one validated record. Strings are
// trimmed, enums lower-cased, numbers float64, integer fields int, string
// lists []string, object lists []Values and opaque lists []any.
//
// A field is present only if the input carried a usable value for it.
type Values struct {
	m map[string]any
}

// Has reports whether name was present and non-empty.
func (v Values) Has(name string) bool {
	_, ok := v.m[name]
	return ok
}

func (v Values) String(name string) string {
	s, _ := v.m[name].(string)
	return s
}

func (v Values) Strings(name string) []string {
	s, _ := v.m[name].([]string)
	return s
}

// Float returns the number and whether it is set. A nullable field sent as
// null is present (Has) but not set.
func (v Values) Float(name string) (float64, bool) {
	f, ok := v.m[name].(float64)
	return f, ok
}

func (v Values) Int(name string) int {
	i, _ := v.m[name].(int)
	return i
}

func (v Values) Bool(name string) (bool, bool) {
	b, ok := v.m[name].(bool)
	return b, ok
}

func (v Values) List(name string) []Values {
	l, _ := v.m[name].([]Values)
	return l
}

func (v Values) Raw(name string) []any {
	l, _ := v.m[name].([]any)
	return l
}
