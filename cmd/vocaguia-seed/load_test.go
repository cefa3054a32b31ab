package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "carreras.json", `[{"nombre":"Medicina","area":"salud"},{"nombre":"Derecho","area":"sociales"}]`)
	items, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "formularios.yaml", `
- nombre: Test A
  subarea: Biologia
  resultados: 7.5
- nombre: Test B
  subarea: Quimica
`)
	items, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first, ok := items[0].(map[string]any)
	if !ok || first["nombre"] != "Test A" {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
}

func TestLoadFile_NotArray(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"json object", "x.json", `{"nombre":"Medicina"}`},
		{"yaml mapping", "x.yml", "nombre: Medicina\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFile(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, bulk.ErrNotArray) {
				t.Fatalf("expected ErrNotArray, got %v", err)
			}
		})
	}
}

func TestDedupeItems(t *testing.T) {
	items := []any{
		map[string]any{"nombre": "Medicina"},
		map[string]any{"area": "salud"},
		map[string]any{"nombre": " medicina "},
		map[string]any{"area": "ciencias"},
		map[string]any{"nombre": "Derecho"},
	}
	got := dedupeItems(items, "nombre")
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d: %#v", len(got), got)
	}
	if got[1].(map[string]any)["area"] != "salud" || got[2].(map[string]any)["area"] != "ciencias" {
		t.Errorf("records without the key should keep their place: %#v", got)
	}
	if got[3].(map[string]any)["nombre"] != "Derecho" {
		t.Errorf("expected Derecho last, got %#v", got[3])
	}
}

func TestDiscardSinks_CoverEveryKind(t *testing.T) {
	m := discardSinks()
	for _, k := range schema.Kinds() {
		if _, ok := m[k]; !ok {
			t.Errorf("no sink for %s", k)
		}
	}
}
