// Package inproc evaluates query predicates, projections and sorts against
// decoded documents in process. Stores that cannot push a query down to the
// server (Redis, memory) run every scan through Apply.
package inproc

import (
	"strings"

	"countries-inquiry-service/internal/query"
)

// IDMatcher reports whether the stored identifier v has the string form id.
type IDMatcher func(v any, id string) bool

// Matcher evaluates predicates. IDs decides IDEquals; nil compares the
// identifier's string form.
type Matcher struct {
	IDs IDMatcher
}

// Match reports whether doc satisfies p. A nil predicate matches.
func (m Matcher) Match(p query.Predicate, doc query.Document) bool {
	switch p := p.(type) {
	case nil:
		return true
	case query.And:
		for _, child := range p {
			if !m.Match(child, doc) {
				return false
			}
		}
		return true
	case query.Or:
		for _, child := range p {
			if m.Match(child, doc) {
				return true
			}
		}
		return false
	case query.Equals:
		values, _ := query.Resolve(doc, p.Path)
		for _, v := range values {
			if equal(v, p.Value) {
				return true
			}
		}
		return false
	case query.OneOf:
		values, _ := query.Resolve(doc, p.Path)
		for _, v := range values {
			for _, want := range p.Values {
				if equal(v, want) {
					return true
				}
			}
		}
		return false
	case query.Range:
		values, _ := query.Resolve(doc, p.Path)
		for _, v := range values {
			if f, ok := query.ToFloat(v); ok && inRange(f, p) {
				return true
			}
		}
		return false
	case query.Contains:
		values, _ := query.Resolve(doc, p.Path)
		needle := strings.ToLower(p.Substring)
		for _, v := range values {
			if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	case query.Exists:
		_, found := query.Resolve(doc, p.Path)
		return found
	case query.IDEquals:
		v, ok := doc[query.FieldID]
		if !ok {
			return false
		}
		if m.IDs != nil {
			return m.IDs(v, p.ID)
		}
		s, ok := v.(string)
		return ok && s == p.ID
	default:
		return false
	}
}

func inRange(f float64, r query.Range) bool {
	if r.Lower != nil {
		if r.Lower.Exclusive && f <= r.Lower.Value {
			return false
		}
		if !r.Lower.Exclusive && f < r.Lower.Value {
			return false
		}
	}
	if r.Upper != nil {
		if r.Upper.Exclusive && f >= r.Upper.Value {
			return false
		}
		if !r.Upper.Exclusive && f > r.Upper.Value {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aNum := query.ToFloat(a)
	fb, bNum := query.ToFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return false
	}
}
