package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a partial update. It separates three states:
// absent (Set false), explicitly cleared (Set and Null) and a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a supplied value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an explicitly cleared field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON marks the field as supplied. It is only called when the key
// is present in the payload, which is what makes absence observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Or returns the value when supplied and not null, else def.
func (o Optional[T]) Or(def T) T {
	if o.Set && !o.Null {
		return o.Value
	}
	return def
}
