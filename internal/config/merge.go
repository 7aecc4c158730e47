package config

import "reflect"

// MergeLayers folds layers ordered from strongest to weakest. Nil pointers,
// slices and maps in a stronger layer are filled from weaker ones; set
// values win. The result shares no memory with its inputs.
func MergeLayers[T any](layers ...T) T {
	var zero T
	if len(layers) == 0 {
		return zero
	}

	merged := copyValue(reflect.ValueOf(layers[len(layers)-1]))
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeValue(reflect.ValueOf(layers[i]), merged)
	}
	if !merged.IsValid() {
		return zero
	}
	return merged.Interface().(T)
}

func mergeValue(strong, weak reflect.Value) reflect.Value {
	if !strong.IsValid() {
		return copyValue(weak)
	}

	switch strong.Kind() {
	case reflect.Pointer:
		if strong.IsNil() {
			return copyValue(weak)
		}
		var weakElem reflect.Value
		if weak.IsValid() && !weak.IsNil() {
			weakElem = weak.Elem()
		}
		out := reflect.New(strong.Type().Elem())
		out.Elem().Set(mergeValue(strong.Elem(), weakElem))
		return out
	case reflect.Struct:
		out := reflect.New(strong.Type()).Elem()
		for i := 0; i < strong.NumField(); i++ {
			field := out.Field(i)
			if !field.CanSet() {
				continue
			}
			var weakField reflect.Value
			if weak.IsValid() && weak.Type() == strong.Type() {
				weakField = weak.Field(i)
			}
			field.Set(mergeValue(strong.Field(i), weakField))
		}
		return out
	case reflect.Map:
		if strong.IsNil() {
			return copyValue(weak)
		}
		out := reflect.MakeMapWithSize(strong.Type(), strong.Len())
		if weak.IsValid() && !weak.IsNil() {
			iter := weak.MapRange()
			for iter.Next() {
				out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
			}
		}
		iter := strong.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		// Slices replace rather than append.
		if strong.IsNil() {
			return copyValue(weak)
		}
		return copyValue(strong)
	default:
		return copyValue(strong)
	}
}

func copyValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(copyValue(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			if field := out.Field(i); field.CanSet() {
				field.Set(copyValue(v.Field(i)))
			}
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(copyValue(v.Index(i)))
		}
		return out
	default:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		return out
	}
}
