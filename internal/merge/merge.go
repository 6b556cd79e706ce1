// Package merge implements the value rules shared by presets and generated
// files: deep cloning of JSON-like values and a recursive object merge.
//
// The merge rule is deliberately small:
//   - object into object merges key by key, recursively
//   - anything else replaces the destination (scalars and arrays alike)
//
// Arrays are never concatenated. A generator that wants to append reads the
// current value, builds the new slice and writes it back.
package merge

import "reflect"

// Clone returns a deep copy of a JSON-like value. Maps and slices are copied;
// scalars are returned as-is.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMap(val)
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, s := range val {
			out[k] = s
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case isStringMap(rv):
		return cloneReflectMap(rv)
	case rv.Kind() == reflect.Slice && !rv.IsNil():
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Clone(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

// CloneMap deep-copies an object. A nil map clones to nil.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// Deep merges src into dst and returns dst. A nil dst is allocated.
// Values taken from src are cloned so later changes to src never leak in.
func Deep(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		srcObj, srcIsObj := asObject(sv)
		dstObj, dstIsObj := asObject(dst[k])
		if srcIsObj && dstIsObj {
			dst[k] = Deep(dstObj, srcObj)
			continue
		}
		dst[k] = Clone(sv)
	}
	return dst
}

// asObject normalizes any map keyed by strings, named map types such as
// plugin options included. Only a plain map[string]any is returned as-is.
func asObject(v any) (map[string]any, bool) {
	if val, ok := v.(map[string]any); ok {
		return val, true
	}
	rv := reflect.ValueOf(v)
	if !isStringMap(rv) {
		return nil, false
	}
	return cloneReflectMap(rv), true
}

func isStringMap(rv reflect.Value) bool {
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// cloneReflectMap deep-copies a string-keyed map of any type into a
// map[string]any. A nil map clones to nil.
func cloneReflectMap(rv reflect.Value) map[string]any {
	if rv.IsNil() {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = Clone(iter.Value().Interface())
	}
	return out
}
