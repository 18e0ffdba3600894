package query

import (
	"encoding/json"
	"strings"
)

// Lookup returns the value at a dotted path through nested maps, or nil when
// any segment is missing. Lists are not traversed; see Resolve.
func Lookup(doc Document, path string) any {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// Resolve returns every value reachable at a dotted path, fanning out over
// lists the way document stores do: "currencies.code" yields the code of each
// currency, and a list found at the end of the path contributes both itself
// and its elements. found is false when no branch reaches the last segment.
func Resolve(doc Document, path string) (values []any, found bool) {
	resolve(doc, strings.Split(path, "."), &values, &found)
	return values, found
}

func resolve(cur any, parts []string, out *[]any, found *bool) {
	if len(parts) == 0 {
		*found = true
		if list, ok := AsList(cur); ok {
			*out = append(*out, list...)
		}
		*out = append(*out, cur)
		return
	}
	switch v := cur.(type) {
	case map[string]any:
		next, ok := v[parts[0]]
		if !ok {
			return
		}
		resolve(next, parts[1:], out, found)
	default:
		if list, ok := AsList(cur); ok {
			for _, el := range list {
				if _, isMap := el.(map[string]any); isMap {
					resolve(el, parts, out, found)
				}
			}
		}
	}
}

// AsList converts the list shapes that appear in decoded documents into
// []any.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// ToFloat converts the numeric representations produced by JSON and BSON
// decoders to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
