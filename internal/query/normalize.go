package query

// IdentifierFunc reports whether v is a store-native identifier and, if so,
// returns its canonical string form.
type IdentifierFunc func(v any) (string, bool)

// Normalize returns a copy of doc in which every store-native identifier, at
// any depth and inside lists, is replaced by its string form. A nil document
// stays nil. Normalizing an already normalized document changes nothing.
func Normalize(doc Document, native IdentifierFunc) Document {
	if doc == nil {
		return nil
	}
	return normalizeMap(doc, native)
}

// NormalizeAll applies Normalize to each record.
func NormalizeAll(docs []Document, native IdentifierFunc) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = Normalize(d, native)
	}
	return out
}

func normalizeMap(m map[string]any, native IdentifierFunc) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v, native)
	}
	return out
}

func normalizeValue(v any, native IdentifierFunc) any {
	if v == nil {
		return nil
	}
	if native != nil {
		if s, ok := native(v); ok {
			return s
		}
	}
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t, native)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalizeValue(el, native)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalizeMap(el, native)
		}
		return out
	default:
		return v
	}
}
