package inproc

import (
	"strings"

	"countries-inquiry-service/internal/query"
)

// Project copies the projected paths of doc into a new document. The
// identifier is always kept. An unrestricted projection returns doc itself.
func Project(doc query.Document, p query.Projection) query.Document {
	if p.IsAll() {
		return doc
	}
	out := make(query.Document)
	if id, ok := doc[query.FieldID]; ok {
		out[query.FieldID] = id
	}
	// Paths drops children of listed parents, so nested maps written below
	// are always fresh and never alias doc.
	for _, f := range p.Paths() {
		projectPath(out, doc, strings.Split(f, "."))
	}
	return out
}

func projectPath(dst, src map[string]any, parts []string) {
	key := parts[0]
	v, ok := src[key]
	if !ok {
		return
	}
	if len(parts) == 1 {
		dst[key] = v
		return
	}

	switch t := v.(type) {
	case map[string]any:
		sub, ok := dst[key].(map[string]any)
		if !ok {
			sub = make(map[string]any)
		}
		projectPath(sub, t, parts[1:])
		if len(sub) > 0 {
			dst[key] = sub
		}
	default:
		list, isList := query.AsList(v)
		if !isList {
			return
		}
		existing, _ := dst[key].([]any)
		var elems []any
		for _, el := range list {
			m, isMap := el.(map[string]any)
			if !isMap {
				continue
			}
			var sub map[string]any
			if j := len(elems); j < len(existing) {
				sub, _ = existing[j].(map[string]any)
			}
			if sub == nil {
				sub = make(map[string]any)
			}
			projectPath(sub, m, parts[1:])
			elems = append(elems, sub)
		}
		if len(elems) > 0 {
			dst[key] = elems
		}
	}
}
