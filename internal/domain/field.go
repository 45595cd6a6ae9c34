package domain

// Field is one optional member of a patch. The zero value means "leave unchanged".
// A present field with Null set (or an empty string value) clears the column.
type Field[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// Set returns a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Present: true}
}

// Clear returns a present field that clears the stored value.
func Clear[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// FromPtr returns Set(*p) for a non-nil pointer and an absent field otherwise.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Field[T]{}
	}
	return Set(*p)
}

// Get returns the value and whether the field carries a non-null value.
func (f Field[T]) Get() (T, bool) {
	if !f.Present || f.Null {
		var zero T
		return zero, false
	}
	return f.Value, true
}
