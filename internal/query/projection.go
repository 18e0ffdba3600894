package query

import "strings"

// Projection is a field-inclusion mask. The zero value means no projection:
// every stored field is returned. Whether the identifier is returned when it
// is not listed is up to the store adapter.
type Projection struct {
	fields []string
}

// ParseFields turns a comma-separated field list into a Projection. Entries
// are trimmed, empty entries and duplicates dropped. Names are not checked
// against the schema.
func ParseFields(fields string) Projection {
	if strings.TrimSpace(fields) == "" {
		return Projection{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return Projection{fields: out}
}

// Include builds a Projection from explicit paths.
func Include(paths ...string) Projection {
	return ParseFields(strings.Join(paths, ","))
}

// IsAll reports whether p places no restriction on returned fields.
func (p Projection) IsAll() bool {
	return len(p.fields) == 0
}

// Fields returns the included paths in request order.
func (p Projection) Fields() []string {
	out := make([]string, len(p.fields))
	copy(out, p.fields)
	return out
}

// Paths returns the included paths minus those already covered by a listed
// parent ("name.common" is dropped when "name" is listed).
func (p Projection) Paths() []string {
	out := make([]string, 0, len(p.fields))
	for _, f := range p.fields {
		covered := false
		for _, g := range p.fields {
			if strings.HasPrefix(f, g+".") {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether path is listed, either directly or through a parent
// path ("name" covers "name.common").
func (p Projection) Has(path string) bool {
	if p.IsAll() {
		return true
	}
	for _, f := range p.fields {
		if f == path || strings.HasPrefix(path, f+".") {
			return true
		}
	}
	return false
}

// With returns a projection that additionally includes paths. An unrestricted
// projection stays unrestricted.
func (p Projection) With(paths ...string) Projection {
	if p.IsAll() {
		return p
	}
	return Include(append(p.Fields(), paths...)...)
}
