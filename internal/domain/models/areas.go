// internal/domain/models/areas.go
package models

import "strings"

// MainAreas are the knowledge areas a Carrera or User can belong to.
var MainAreas = []string{"sociales", "ciencias", "salud", "humanidades"}

// SchoolTypes are the allowed values for Escuela.Type.
var SchoolTypes = []string{"publica", "privada"}

// IsMainArea reports whether s (trimmed, case-insensitive) is a known area.
func IsMainArea(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range MainAreas {
		if a == s {
			return true
		}
	}
	return false
}
