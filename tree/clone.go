package tree

import (
	"encoding/json"
	"reflect"
)

// Clone returns a deep copy of value. Mappings and sequences are copied
// recursively so the result shares no mutable substructure with the input;
// scalars are returned as-is.
func Clone(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string]any:
		if typed == nil {
			return typed
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = Clone(item)
		}
		return out
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Clone(item)
		}
		return out
	case []map[string]any:
		if typed == nil {
			return typed
		}
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			if item == nil {
				continue
			}
			out[i] = Clone(item).(map[string]any)
		}
		return out
	case string, bool, float64, float32, int, int64, int32, json.Number:
		return typed
	}

	cloned := cloneValue(reflect.ValueOf(value))
	if !cloned.IsValid() {
		return nil
	}
	return cloned.Interface()
}

// cloneValue copies containers reached through reflection, which covers
// typed maps and slices (map[string]string, []int, ...) that callers may
// embed in a tree. Structs are copied by value and treated as opaque.
func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := reflect.ValueOf(Clone(v.Elem().Interface()))
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneElem(iter.Value(), v.Type().Elem()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return clone
	default:
		return v
	}
}

// cloneElem clones an element and converts it back to the container's
// element type, which matters when the element type is an interface.
func cloneElem(v reflect.Value, elemType reflect.Type) reflect.Value {
	if elemType.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(elemType)
		}
		cloned := reflect.ValueOf(Clone(v.Interface()))
		if !cloned.IsValid() {
			return reflect.Zero(elemType)
		}
		return cloned
	}
	return cloneValue(v)
}
