// Package query holds the store-independent part of the country query engine:
// predicates, projections, sort specifications, sampling and identifier
// normalization. Store adapters compile these values into their native form.
package query

// Document is a raw record as returned by a store adapter.
type Document = map[string]any

// Predicate is a filter condition over a Document. The concrete types below
// form a closed set; adapters switch over them when compiling.
type Predicate interface {
	predicate()
}

// Equals matches when the value at Path equals Value. When the path resolves
// to a list, any element may match.
type Equals struct {
	Path  string
	Value any
}

// OneOf matches when the value at Path equals any of Values.
type OneOf struct {
	Path   string
	Values []any
}

// Bound is one side of a Range.
type Bound struct {
	Value     float64
	Exclusive bool
}

// Range matches numeric values at Path between Lower and Upper. A nil bound is
// unconstrained.
type Range struct {
	Path  string
	Lower *Bound
	Upper *Bound
}

// Contains is a case-insensitive substring match on the string at Path.
type Contains struct {
	Path      string
	Substring string
}

// Exists matches when Path is present in the document.
type Exists struct {
	Path string
}

// IDEquals matches the record whose store identifier has the given string
// form. Adapters parse ID into their native identifier type.
type IDEquals struct {
	ID string
}

// And matches when all children match. An empty And matches everything.
type And []Predicate

// Or matches when any child matches. An empty Or matches nothing.
type Or []Predicate

func (Equals) predicate()   {}
func (OneOf) predicate()    {}
func (Range) predicate()    {}
func (Contains) predicate() {}
func (Exists) predicate()   {}
func (IDEquals) predicate() {}
func (And) predicate()      {}
func (Or) predicate()       {}

// All is the predicate matching every record.
func All() Predicate {
	return And{}
}

// Conjoin joins predicates with And, skipping nils. A single remaining
// predicate is returned as is.
func Conjoin(preds ...Predicate) Predicate {
	out := make(And, 0, len(preds))
	for _, p := range preds {
		if p == nil {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// IsMatchAll reports whether p is structurally the empty conjunction.
func IsMatchAll(p Predicate) bool {
	if p == nil {
		return true
	}
	and, ok := p.(And)
	return ok && len(and) == 0
}

// FindOptions is everything a store needs to answer one scan.
type FindOptions struct {
	Filter     Predicate
	Projection Projection
	Sort       *SortField
	Skip       int64
	// Limit of zero means unbounded.
	Limit int64
}
