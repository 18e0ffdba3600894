package inproc

import (
	"sort"
	"strings"

	"countries-inquiry-service/internal/query"
)

// Apply runs one scan over docs: filter, sort, skip/limit, then projection.
// docs is not modified; projected records are fresh maps.
func (m Matcher) Apply(docs []query.Document, opts query.FindOptions) []query.Document {
	matched := make([]query.Document, 0, len(docs))
	for _, d := range docs {
		if m.Match(opts.Filter, d) {
			matched = append(matched, d)
		}
	}

	if opts.Sort != nil {
		SortDocuments(matched, *opts.Sort)
	}

	matched = paginate(matched, opts.Skip, opts.Limit)

	out := make([]query.Document, len(matched))
	for i, d := range matched {
		out[i] = Project(d, opts.Projection)
	}
	return out
}

// Count returns how many docs satisfy p.
func (m Matcher) Count(docs []query.Document, p query.Predicate) int64 {
	var n int64
	for _, d := range docs {
		if m.Match(p, d) {
			n++
		}
	}
	return n
}

func paginate(docs []query.Document, skip, limit int64) []query.Document {
	if skip > 0 {
		if skip >= int64(len(docs)) {
			return docs[:0]
		}
		docs = docs[skip:]
	}
	if limit > 0 && limit < int64(len(docs)) {
		docs = docs[:limit]
	}
	return docs
}

// SortDocuments stably sorts docs on one field. Missing values sort first in
// ascending order, as they do in MongoDB.
func SortDocuments(docs []query.Document, field query.SortField) {
	sort.SliceStable(docs, func(i, j int) bool {
		c := compare(query.Lookup(docs[i], field.Path), query.Lookup(docs[j], field.Path))
		if field.Descending {
			return c > 0
		}
		return c < 0
	})
}

// kind orders values of different types: null, numbers, strings, bools.
func kind(v any) int {
	if v == nil {
		return 0
	}
	if _, ok := query.ToFloat(v); ok {
		return 1
	}
	switch v.(type) {
	case string:
		return 2
	case bool:
		return 4
	default:
		return 3
	}
}

func compare(a, b any) int {
	ka, kb := kind(a), kind(b)
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch ka {
	case 1:
		fa, _ := query.ToFloat(a)
		fb, _ := query.ToFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 4:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Distinct returns each scalar value found at path once, in first-seen order.
// Lists contribute their elements; nulls are skipped.
func Distinct(docs []query.Document, path string) []any {
	seen := make(map[any]struct{})
	var out []any
	for _, d := range docs {
		values, _ := query.Resolve(d, path)
		for _, v := range values {
			if k := kind(v); k == 0 || k == 3 {
				continue
			}
			key := v
			if f, ok := query.ToFloat(v); ok {
				key = f
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
