package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/dedupe"
	"gopkg.in/yaml.v3"
)

// loadFile reads an array of records. .yaml and .yml files go through
// yaml.v3; anything else is decoded as JSON.
func loadFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	}
	items, err := bulk.DecodeBatch(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, bulk.ErrNotArray
	}
	return items, nil
}

// dedupeItems keeps the first record for each value of field, in file
// order. Records without the field are all kept.
func dedupeItems(items []any, field string) []any {
	type entry struct {
		i int
		v any
	}
	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{i, it}
	}
	kept := dedupe.Dedupe(entries, func(e entry) string {
		if k := fieldValue(e.v, field); k != "" {
			return k
		}
		return "\x00" + strconv.Itoa(e.i)
	})
	out := make([]any, len(kept))
	for i, e := range kept {
		out[i] = e.v
	}
	return out
}

func fieldValue(it any, field string) string {
	obj, ok := it.(map[string]any)
	if !ok {
		return ""
	}
	switch v := obj[field].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}
