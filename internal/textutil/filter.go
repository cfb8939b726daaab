// Package textutil holds small string and slice helpers used from notebooks
// and the datacat CLI.
package textutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"datakit/pkg/contracts/domain"
)

// ErrNotIterable is returned by FlattenAny when an element is not a slice or array
var ErrNotIterable = errors.New("element is not iterable")

// FilterStrings returns the items containing pattern, ignoring case.
// Input order is preserved and duplicates are kept.
func FilterStrings(pattern string, items []string) []string {
	needle := strings.ToUpper(pattern)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToUpper(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// SearchColumns returns the frame's column names containing pattern, ignoring case
func SearchColumns(pattern string, f *domain.Frame) []string {
	if f == nil {
		return []string{}
	}
	return FilterStrings(pattern, f.Columns)
}

// Flatten concatenates the inner slices in order
func Flatten[T any](lists [][]T) []T {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]T, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// FlattenAny flattens a slice whose elements are themselves slices or arrays
// of any type. It fails on the first element that is not iterable.
func FlattenAny(v any) ([]any, error) {
	outer := reflect.ValueOf(v)
	if outer.Kind() != reflect.Slice && outer.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T", ErrNotIterable, v)
	}

	var out []any
	for i := 0; i < outer.Len(); i++ {
		inner := outer.Index(i)
		if inner.Kind() == reflect.Interface {
			inner = inner.Elem()
		}
		if inner.Kind() != reflect.Slice && inner.Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: element %d is %s", ErrNotIterable, i, inner.Kind())
		}
		for j := 0; j < inner.Len(); j++ {
			out = append(out, inner.Index(j).Interface())
		}
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}
