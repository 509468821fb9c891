// Package opt provides presence-aware optional values for partial updates.
package opt

import "encoding/json"

// Field distinguishes an absent JSON member from one that is present,
// and a present null from a present value.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Null returns a field explicitly cleared.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// HasValue reports whether the field is present and not null.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// IsNull reports whether the field is present as an explicit null.
func (f Field[T]) IsNull() bool {
	return f.Set && f.Null
}

// Ptr returns nil for a null field and a pointer to a copy of the value otherwise.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
