// Package normalize holds the small string normalizers shared by stores,
// handlers and the record builders.
package normalize

import "strings"

// Email trims and lower-cases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and keeps its case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Key is the trimmed, lower-cased form used to compare natural keys and
// dedupe candidates.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Area normalizes a main_area value for comparison against the enum.
func Area(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query-string filter value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// OrDefault returns s trimmed, or def when s is blank.
func OrDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
