// Copyright (c) 2025 BVK Chaitanya

// Package envelope normalizes the two response shapes used by the remote
// API. Some endpoints wrap their payload in a `{"data": ...}` object and
// some return the payload directly.
//
// Unwrap is applied once to every response body and to every event-stream
// element before the typed model is decoded. Collections nested under a named
// field are declared per endpoint with the List type.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const dataKey = "data"

// Unwrap returns the value under the "data" key when the input is a JSON
// object with that key. Any other input is returned unchanged. The inner
// value is not validated.
func Unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return raw
	}
	if v, ok := fields[dataKey]; ok {
		return v
	}
	return raw
}

// Decode unwraps the envelope and decodes the payload into a new T.
func Decode[T any](raw json.RawMessage) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(Unwrap(raw), v); err != nil {
		return nil, fmt.Errorf("could not decode %T payload: %w", v, err)
	}
	return v, nil
}

// List is a collection field that the server sends either as a JSON array
// or as a single object. A single object decodes into a one element list;
// null or a missing field decodes into an empty list.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*l = nil
		return nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return err
	}
	*l = List[T]{item}
	return nil
}
