// Package search implements the generic client-side substring filter used by
// list pages.
//
// The set of searchable keys is sampled from the first element of the
// collection only. That mirrors how the lists behave in production and is a
// documented fragility: if element 0 carries fewer fields than later
// elements, the extra fields are silently unsearchable.
package search

import (
	"fmt"
	"reflect"
	"strings"
)

// Index is a search handle over one collection. It samples the searchable
// keys once at construction; Filter can then run per keystroke.
type Index[T any] struct {
	items []T
	keys  []string
}

// New builds an Index over items. Keys come from element 0: exported struct
// fields (pointers dereferenced) or map keys. An empty collection has no
// searchable keys and filters to itself.
func New[T any](items []T) *Index[T] {
	ix := &Index[T]{items: items}
	if len(items) > 0 {
		ix.keys = sampleKeys(items[0])
	}
	return ix
}

// Filter returns the elements with at least one sampled key whose stringified
// value contains query, case-insensitively. The empty query matches
// everything. Source order is preserved; the result is a fresh slice.
func (ix *Index[T]) Filter(query string) []T {
	norm := strings.ToLower(strings.TrimSpace(query))
	if norm == "" {
		return append([]T(nil), ix.items...)
	}

	out := make([]T, 0, len(ix.items))
	for _, item := range ix.items {
		if ix.matches(item, norm) {
			out = append(out, item)
		}
	}
	return out
}

func (ix *Index[T]) matches(item T, norm string) bool {
	for _, key := range ix.keys {
		value, ok := valueForKey(item, key)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprintf("%v", value)), norm) {
			return true
		}
	}
	return false
}

func sampleKeys(sample any) []string {
	rv := reflect.ValueOf(sample)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		rt := rv.Type()
		keys := make([]string, 0, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			if rt.Field(i).IsExported() {
				keys = append(keys, rt.Field(i).Name)
			}
		}
		return keys

	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, fmt.Sprintf("%v", iter.Key().Interface()))
		}
		return keys

	default:
		// Scalars search their own value; the key name is symbolic.
		return []string{""}
	}
}

func valueForKey(item any, key string) (any, bool) {
	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		field := rv.FieldByName(key)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true

	case reflect.Map:
		for iter := rv.MapRange(); iter.Next(); {
			if fmt.Sprintf("%v", iter.Key().Interface()) == key {
				return iter.Value().Interface(), true
			}
		}
		return nil, false

	default:
		return item, true
	}
}
