package jws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Header is a JOSE header that keeps its parameters in insertion order, so a
// header decoded from a token encodes back to the same member order.
type Header struct {
	keys   []string
	values map[string]any
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{values: make(map[string]any)}
}

// Set adds or replaces a parameter. Replacing keeps the original position.
func (h *Header) Set(key string, value any) {
	if h.values == nil {
		h.values = make(map[string]any)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Get returns the value of a parameter and whether it is present.
func (h *Header) Get(key string) (any, bool) {
	if h == nil {
		return nil, false
	}
	v, ok := h.values[key]
	return v, ok
}

// Keys returns the parameter names in order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.keys...)
}

// Len returns the number of parameters.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// Alg returns the "alg" parameter when it is present and a string.
func (h *Header) Alg() (string, bool) {
	v, ok := h.Get("alg")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// algorithm applies the engine's rules for the alg parameter: absent or empty
// is ErrMissingAlgorithm, any other non-string is ErrUnrecognizedAlgorithm.
func (h *Header) algorithm() (string, error) {
	v, ok := h.Get("alg")
	if !ok || v == nil || v == "" {
		return "", ErrMissingAlgorithm
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: alg is %T", errUnrecognized, v)
	}
	return s, nil
}

func (h *Header) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range h.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(h.values[k])
		if err != nil {
			return nil, fmt.Errorf("header %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a single JSON object. Numbers are kept as json.Number so
// they re-encode unchanged; duplicate parameter names are rejected.
func (h *Header) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("header is not a JSON object")
	}

	out := NewHeader()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if _, dup := out.values[key]; dup {
			return fmt.Errorf("duplicate header parameter %q", key)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after header object")
	}

	*h = *out
	return nil
}
