package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotObject is returned by Decode when the input is valid JSON but not an object.
var ErrNotObject = errors.New("document is not a JSON object")

// Decode strictly parses data as a single JSON object, keeping numbers as
// json.Number. Trailing data after the object is an error.
func Decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode document: unexpected data after top-level value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// decodeJSON strictly parses s as a single JSON value of any type.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

// DecodeObject attempts a strict JSON-object parse of s.
func DecodeObject(s string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	obj, err := Decode([]byte(trimmed))
	if err != nil {
		return nil, false
	}
	return obj, true
}
