package flatten

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a node of a JSON-like value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
	// KindOpaque covers Go values outside the JSON model. They are treated
	// as scalars and emitted verbatim.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "opaque"
	}
}

// IsScalar reports whether k is a leaf kind.
func (k Kind) IsScalar() bool {
	return k != KindMapping && k != KindSequence
}

// KindOf classifies value. Typed Go containers are classified by shape: a
// map with string keys is a mapping and a slice or array is a sequence,
// except byte slices and byte arrays, which stay opaque scalars.
func KindOf(value any) Kind {
	switch value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	case string, time.Time:
		return KindString
	case map[string]any:
		return KindMapping
	case []any, []map[string]any:
		return KindSequence
	}
	return reflectKind(reflect.ValueOf(value))
}

func reflectKind(v reflect.Value) Kind {
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			return KindMapping
		}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return KindSequence
		}
	}
	return KindOpaque
}

// mappingEntries returns the entries of a KindMapping value. Typed maps are
// read into a fresh map[string]any.
func mappingEntries(value any) map[string]any {
	if typed, ok := value.(map[string]any); ok {
		return typed
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil
	}
	entries := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries[iter.Key().String()] = iter.Value().Interface()
	}
	return entries
}

// sequenceItems returns the elements of a KindSequence value.
func sequenceItems(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = item
		}
		return items
	}
	v := reflect.ValueOf(value)
	if reflectKind(v) != KindSequence {
		return nil
	}
	items := make([]any, v.Len())
	for i := range items {
		items[i] = v.Index(i).Interface()
	}
	return items
}

// scalarValue is the form a scalar takes in a flat record.
func scalarValue(value any) any {
	if at, ok := value.(time.Time); ok {
		return at.Format(time.RFC3339Nano)
	}
	return value
}

// ScalarString renders a scalar the way ListPolicyJoin does: nil becomes the
// empty string, numbers use their shortest form and times use RFC 3339.
// Floats switch to exponent notation below 1e-6 and from 1e21, matching
// encoding/json.
func ScalarString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return formatFloat(typed, 64)
	case float32:
		return formatFloat(float64(typed), 32)
	case json.Number:
		return typed.String()
	case time.Time:
		return typed.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(typed)
	}
}

func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) && !math.IsInf(f, 0) {
		format = 'e'
	}
	out := strconv.FormatFloat(f, format, -1, bits)
	if format == 'e' {
		// 1e-07 becomes 1e-7
		if n := len(out); n >= 4 && out[n-4] == 'e' && out[n-3] == '-' && out[n-2] == '0' {
			out = out[:n-2] + out[n-1:]
		}
	}
	return out
}

func joinScalars(items []any) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = ScalarString(item)
	}
	return strings.Join(parts, ",")
}

func allScalars(items []any) bool {
	for _, item := range items {
		if !KindOf(item).IsScalar() {
			return false
		}
	}
	return true
}
