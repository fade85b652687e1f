package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeySerializer builds a cache key from a resource name + the parameters the
// loader depends on. It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(resource string, params ...any) string
}

// structuralKeySerializer implements KeySerializer by encoding every parameter
// structurally: pointers are dereferenced, slices and maps are walked, structs
// contribute their exported fields. The resource segment is normalized to
// snake_case so differently cased spellings of one resource share a key.
type structuralKeySerializer struct{}

// NewStructuralKeySerializer creates the default key serializer.
func NewStructuralKeySerializer() KeySerializer {
	return &structuralKeySerializer{}
}

// SerializeKey builds a cache key from the resource name and params.
func (s *structuralKeySerializer) SerializeKey(resource string, params ...any) string {
	if len(params) == 0 {
		return toSnake(resource)
	}

	parts := make([]string, 0, len(params)+1)
	parts = append(parts, toSnake(resource))
	for _, p := range params {
		parts = append(parts, s.encode(p))
	}

	return strings.Join(parts, KeySeparator)
}

func (s *structuralKeySerializer) encode(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := rv.Type()

	switch rt.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.encode(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.encodeSequence("slice", rv)

	case reflect.Array:
		return s.encodeSequence("array", rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.encodeMap(rv)

	case reflect.Struct:
		return s.encodeStruct(rv, rt)

	case reflect.Func, reflect.Chan:
		// Stable across runs, unlike pointer formatting. Two distinct
		// values of one type collide, so keys must not rely on these.
		return rt.Kind().String() + ":" + rt.String()

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprintf("%v", v)

	default:
		return s.jsonFallback(v, rt)
	}
}

func (s *structuralKeySerializer) encodeSequence(label string, rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)
	for i := 0; i < length; i++ {
		parts[i] = s.encode(rv.Index(i).Interface())
	}
	return fmt.Sprintf("%s[%d]:{%s}", label, length, strings.Join(parts, ","))
}

// encodeMap emits key-value pairs sorted by encoded key for determinism.
func (s *structuralKeySerializer) encodeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, s.encode(iter.Key().Interface())+"="+s.encode(iter.Value().Interface()))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

func (s *structuralKeySerializer) encodeStruct(rv reflect.Value, rt reflect.Type) string {
	parts := make([]string, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		parts = append(parts, field.Name+":"+s.encode(rv.Field(i).Interface()))
	}
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

func (s *structuralKeySerializer) jsonFallback(v any, rt reflect.Type) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "fallback:" + rt.String()
	}
	return "json:" + string(data)
}
