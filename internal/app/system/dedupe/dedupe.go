// Package dedupe collapses candidate lists to unique entries.
package dedupe

import "github.com/dalemusser/vocaguia/internal/app/system/normalize"

// Dedupe keeps the first item for each distinct key(item), compared trimmed
// and lower-cased, and preserves the order of the items it keeps. Items whose
// key is blank share the single key "".
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := normalize.Key(key(it))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Strings is Dedupe over plain strings.
func Strings(items []string) []string {
	return Dedupe(items, func(s string) string { return s })
}
