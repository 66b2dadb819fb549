package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator delimits the segments of a cache key. Cache entries are
// addressed by (endpoint name, serialized arguments).
const KeySeparator = "::"

// defaultKeySerializer builds deterministic keys from endpoint arguments
// using reflection. Endpoint arguments are plain data (ids, filter structs,
// pagination params), so the serializer only has to handle value types; it
// falls back to JSON for anything exotic rather than failing the query.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from the endpoint name and its arguments.
// Identical calls always produce identical keys; distinct argument
// combinations produce distinct keys.
func (s *defaultKeySerializer) SerializeKey(endpoint string, args ...any) string {
	if len(args) == 0 {
		return endpoint
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, endpoint)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.serializeList("slice", rv)

	case reflect.Array:
		return s.serializeList("array", rv)

	case reflect.Map:
		if rv.IsNil() {
			return "map:nil"
		}
		return s.serializeMap(rv)

	case reflect.Struct:
		return s.serializeStruct(rv)

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)

	default:
		return s.jsonFallback(v)
	}
}

func (s *defaultKeySerializer) serializeList(kind string, rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}
	return fmt.Sprintf("%s[%d]:{%s}", kind, len(parts), strings.Join(parts, ","))
}

// serializeMap sorts entries by serialized key so iteration order never leaks
// into the cache key.
func (s *defaultKeySerializer) serializeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, fmt.Sprintf("%s=%s",
			s.serializeValue(iter.Key().Interface()),
			s.serializeValue(iter.Value().Interface())))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
}

func (s *defaultKeySerializer) serializeStruct(rv reflect.Value) string {
	rt := rv.Type()
	parts := make([]string, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", field.Name, s.serializeValue(rv.Field(i).Interface())))
	}
	return fmt.Sprintf("struct:{%s}", strings.Join(parts, ","))
}

// jsonFallback prioritizes stability over perfection: when marshaling fails
// the key degrades to type information instead of panicking mid-query.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
