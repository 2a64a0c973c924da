// Package jsonx centralizes JSON encoding for the module so a future
// drop-in accelerated codec only has to change one place. Currently backed
// by the standard library.
package jsonx

import stdjson "encoding/json"

// Marshal encodes v into JSON.
func Marshal(v any) ([]byte, error) {
	return stdjson.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v any) error {
	return stdjson.Unmarshal(data, v)
}
