package model

import "strings"

type Name struct {
	Common   string   `json:"common"`
	Official string   `json:"official,omitempty"`
	Native   []string `json:"native,omitempty"` // native-language common names
}

// Country is the import shape of one record. Stored documents use the same
// field names.
type Country struct {
	ID               string            `json:"_id,omitempty"`
	Name             Name              `json:"name"`
	Alpha2Code       string            `json:"alpha2Code"`
	Alpha3Code       string            `json:"alpha3Code"`
	NumericCode      string            `json:"numericCode,omitempty"`
	CIOC             string            `json:"cioc,omitempty"`
	Capital          []string          `json:"capital,omitempty"`
	Region           string            `json:"region"`
	Subregion        string            `json:"subregion,omitempty"`
	AreaKm2          *float64          `json:"areaKm2"`
	Landlocked       bool              `json:"landlocked"`
	Population       int64             `json:"population"`
	Borders          []string          `json:"borders,omitempty"`
	Currencies       []Currency        `json:"currencies,omitempty"`
	Languages        []Language        `json:"languages,omitempty"`
	Translations     map[string]string `json:"translations,omitempty"`
	Demonym          string            `json:"demonym,omitempty"`
	UNMember         bool              `json:"unMember"`
	Independent      bool              `json:"independent"`
	InterestingFacts map[string]string `json:"interestingFacts,omitempty"`
}

// Normalize upper-cases the code namespaces and currency codes and lower-cases
// language codes, the forms the query filters compare against.
func (c *Country) Normalize() {
	c.Alpha2Code = strings.ToUpper(strings.TrimSpace(c.Alpha2Code))
	c.Alpha3Code = strings.ToUpper(strings.TrimSpace(c.Alpha3Code))
	c.CIOC = strings.ToUpper(strings.TrimSpace(c.CIOC))
	c.NumericCode = strings.TrimSpace(c.NumericCode)
	for i, b := range c.Borders {
		c.Borders[i] = strings.ToUpper(strings.TrimSpace(b))
	}
	for i := range c.Currencies {
		c.Currencies[i].Code = strings.ToUpper(strings.TrimSpace(c.Currencies[i].Code))
	}
	for i := range c.Languages {
		c.Languages[i].ISO639_1 = strings.ToLower(strings.TrimSpace(c.Languages[i].ISO639_1))
	}
}

// Document converts c into the stored document form. Lists become []any and
// nested structures map[string]any so every store sees the same shapes.
func (c Country) Document() map[string]any {
	doc := map[string]any{
		"name":        nameDoc(c.Name),
		"alpha2Code":  c.Alpha2Code,
		"alpha3Code":  c.Alpha3Code,
		"region":      c.Region,
		"landlocked":  c.Landlocked,
		"population":  c.Population,
		"unMember":    c.UNMember,
		"independent": c.Independent,
		"borders":     stringList(c.Borders),
		"capital":     stringList(c.Capital),
	}
	if c.ID != "" {
		doc["_id"] = c.ID
	}
	if c.AreaKm2 != nil {
		doc["areaKm2"] = *c.AreaKm2
	} else {
		doc["areaKm2"] = nil
	}
	if c.NumericCode != "" {
		doc["numericCode"] = c.NumericCode
	}
	if c.CIOC != "" {
		doc["cioc"] = c.CIOC
	}
	if c.Subregion != "" {
		doc["subregion"] = c.Subregion
	}
	if c.Demonym != "" {
		doc["demonym"] = c.Demonym
	}

	currencies := make([]any, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		currencies = append(currencies, map[string]any{
			"code":   cur.Code,
			"name":   cur.Name,
			"symbol": cur.Symbol,
		})
	}
	doc["currencies"] = currencies

	languages := make([]any, 0, len(c.Languages))
	for _, l := range c.Languages {
		languages = append(languages, map[string]any{
			"iso639_1": l.ISO639_1,
			"name":     l.Name,
		})
	}
	doc["languages"] = languages

	if len(c.Translations) > 0 {
		doc["translations"] = stringMap(c.Translations)
	}
	if len(c.InterestingFacts) > 0 {
		doc["interestingFacts"] = stringMap(c.InterestingFacts)
	}
	return doc
}

func nameDoc(n Name) map[string]any {
	out := map[string]any{"common": n.Common}
	if n.Official != "" {
		out["official"] = n.Official
	}
	if len(n.Native) > 0 {
		out["native"] = stringList(n.Native)
	}
	return out
}

func stringList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
