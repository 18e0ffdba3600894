package query

import (
	"sort"
	"strings"
)

// DensityKey is the sort key computed as population / areaKm2.
const DensityKey = "density"

// SortField is a native sort on one stored field.
type SortField struct {
	Path       string
	Descending bool
}

// Sort is a resolved sort specification: either nothing, a native sort the
// store executes, or the derived density sort executed in process.
type Sort struct {
	Native  *SortField
	Density bool
	Desc    bool
}

// ParseSort resolves a sort key such as "population", "-population" or
// "-density". A leading '-' selects descending order.
func ParseSort(key string) Sort {
	key = strings.TrimSpace(key)
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimLeft(key, "-")
	switch field {
	case "":
		return Sort{}
	case DensityKey:
		return Sort{Density: true, Desc: desc}
	default:
		return Sort{Native: &SortField{Path: field, Descending: desc}, Desc: desc}
	}
}

// IsDerived reports whether s must be executed client side.
func (s Sort) IsDerived() bool {
	return s.Density
}

// Density returns population / areaKm2 for doc. ok is false when either value
// is missing or not numeric, or when the area is not strictly positive.
func Density(doc Document) (float64, bool) {
	area, ok := ToFloat(Lookup(doc, FieldArea))
	if !ok || area <= 0 {
		return 0, false
	}
	pop, ok := ToFloat(Lookup(doc, FieldPopulation))
	if !ok {
		return 0, false
	}
	return pop / area, true
}

// SortByDensity drops records without a defined density and stably orders the
// rest by density. Records with equal density keep their input order in both
// directions.
func SortByDensity(docs []Document, desc bool) []Document {
	type ranked struct {
		doc     Document
		density float64
	}
	eligible := make([]ranked, 0, len(docs))
	for _, d := range docs {
		if v, ok := Density(d); ok {
			eligible = append(eligible, ranked{doc: d, density: v})
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if desc {
			return eligible[i].density > eligible[j].density
		}
		return eligible[i].density < eligible[j].density
	})
	out := make([]Document, len(eligible))
	for i, r := range eligible {
		out[i] = r.doc
	}
	return out
}
