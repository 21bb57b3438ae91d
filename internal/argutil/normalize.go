// Package argutil coerces flexible scalar-or-list arguments into validated
// homogeneous slices.
package argutil

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned when a value, or an element of a list, does not
// have the expected type.
var ErrTypeMismatch = errors.New("unexpected value type")

// Normalize accepts a scalar of type T, a []T, or a []any whose elements are
// all of type T, and returns a fresh slice of T. A scalar is wrapped into a
// single-element slice. Any other shape fails with ErrTypeMismatch.
func Normalize[T any](value any) ([]T, error) {
	if v, ok := value.(T); ok {
		return []T{v}, nil
	}
	if vs, ok := value.([]T); ok {
		return append([]T(nil), vs...), nil
	}
	if vs, ok := value.([]any); ok {
		out := make([]T, 0, len(vs))
		for _, e := range vs {
			v, ok := e.(T)
			if !ok {
				return nil, fmt.Errorf("list element %v (%T): %w", e, e, ErrTypeMismatch)
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("value %v (%T): %w", value, value, ErrTypeMismatch)
}
