package dto

import (
	"bytes"
	"encoding/json"
)

// Field is an optional JSON member. Set records whether the key was present
// in the body at all; Valid whether it carried a non-null value.
//
//	{}             -> Set=false
//	{"k": null}    -> Set=true, Valid=false
//	{"k": "v"}     -> Set=true, Valid=true, Value="v"
type Field[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// Some returns a present, non-null field.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true, Valid: true}
}

// Null returns a field that is present but explicitly null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value, f.Valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns a pointer to the value, or nil when the field is absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
