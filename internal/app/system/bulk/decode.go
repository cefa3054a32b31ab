package bulk

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DecodeBatch reads a JSON array of raw records from r. Numbers are kept as
// json.Number so the validator decides how to coerce them. A body cut off by
// http.MaxBytesReader returns the *http.MaxBytesError unchanged.
func DecodeBatch(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotArray
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, ErrMalformedJSON
	}
	if dec.More() {
		return nil, ErrMalformedJSON
	}
	items, ok := v.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	return items, nil
}
