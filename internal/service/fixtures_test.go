package service

import (
	"countries-inquiry-service/internal/model"
	"countries-inquiry-service/internal/query"
)

func area(v float64) *float64 { return &v }

func fixtureCountries() []model.Country {
	return []model.Country{
		{
			Name:         model.Name{Common: "Germany", Official: "Federal Republic of Germany", Native: []string{"Deutschland"}},
			Alpha2Code:   "DE",
			Alpha3Code:   "DEU",
			NumericCode:  "276",
			CIOC:         "GER",
			Capital:      []string{"Berlin"},
			Region:       "Europe",
			Subregion:    "Western Europe",
			AreaKm2:      area(357114),
			Population:   83240525,
			Borders:      []string{"AUT", "CHE", "FRA", "POL"},
			Currencies:   []model.Currency{{Code: "EUR", Name: "Euro", Symbol: "€"}},
			Languages:    []model.Language{{ISO639_1: "de", Name: "German"}},
			Translations: map[string]string{"fr": "Allemagne"},
			Demonym:      "German",
			UNMember:     true,
			Independent:  true,
		},
		{
			Name:        model.Name{Common: "France", Official: "French Republic"},
			Alpha2Code:  "FR",
			Alpha3Code:  "FRA",
			NumericCode: "250",
			CIOC:        "FRA",
			Capital:     []string{"Paris"},
			Region:      "Europe",
			Subregion:   "Western Europe",
			AreaKm2:     area(551695),
			Population:  67391582,
			Borders:     []string{"CHE", "DEU"},
			Currencies:  []model.Currency{{Code: "EUR", Name: "Euro"}},
			Languages:   []model.Language{{ISO639_1: "fr", Name: "French"}},
			Demonym:     "French",
			UNMember:    true,
			Independent: true,
		},
		{
			Name:        model.Name{Common: "Austria", Native: []string{"Österreich"}},
			Alpha2Code:  "AT",
			Alpha3Code:  "AUT",
			NumericCode: "040",
			CIOC:        "AUT",
			Capital:     []string{"Vienna"},
			Region:      "Europe",
			Subregion:   "Central Europe",
			AreaKm2:     area(83871),
			Landlocked:  true,
			Population:  8917205,
			Borders:     []string{"CHE", "DEU"},
			Currencies:  []model.Currency{{Code: "EUR", Name: "Euro"}},
			Languages:   []model.Language{{ISO639_1: "de", Name: "German"}},
			Demonym:     "Austrian",
			Independent: true,
		},
		{
			Name:        model.Name{Common: "Switzerland", Native: []string{"Schweiz", "Suisse"}},
			Alpha2Code:  "CH",
			Alpha3Code:  "CHE",
			NumericCode: "756",
			CIOC:        "SUI",
			Capital:     []string{"Bern"},
			Region:      "Europe",
			Subregion:   "Western Europe",
			AreaKm2:     area(41284),
			Landlocked:  true,
			Population:  8654622,
			Borders:     []string{"AUT", "DEU", "FRA"},
			Currencies:  []model.Currency{{Code: "CHF", Name: "Swiss franc"}},
			Languages:   []model.Language{{ISO639_1: "de", Name: "German"}, {ISO639_1: "fr", Name: "French"}},
			Demonym:     "Swiss",
			UNMember:    true,
			Independent: true,
		},
		{
			Name:        model.Name{Common: "Mongolia"},
			Alpha2Code:  "MN",
			Alpha3Code:  "MNG",
			NumericCode: "496",
			CIOC:        "MGL",
			Capital:     []string{"Ulan Bator"},
			Region:      "Asia",
			Subregion:   "Eastern Asia",
			AreaKm2:     area(1564110),
			Landlocked:  true,
			Population:  3278290,
			Borders:     []string{"CHN", "RUS"},
			Currencies:  []model.Currency{{Code: "MNT", Name: "Mongolian tögrög"}},
			Languages:   []model.Language{{ISO639_1: "mn", Name: "Mongolian"}},
			Demonym:     "Mongolian",
			UNMember:    true,
			Independent: true,
		},
		{
			Name:        model.Name{Common: "Kosovo"},
			Alpha2Code:  "XK",
			Alpha3Code:  "UNK",
			Capital:     []string{"Pristina"},
			Region:      "Europe",
			Subregion:   "Southeast Europe",
			Population:  1775378,
			Borders:     []string{"ALB", "MKD", "MNE", "SRB"},
			Currencies:  []model.Currency{{Code: "EUR", Name: "Euro"}},
			Languages:   []model.Language{{ISO639_1: "sq", Name: "Albanian"}},
			Demonym:     "Kosovar",
			Independent: true,
		},
	}
}

func fixtureDocuments() []query.Document {
	countries := fixtureCountries()
	docs := make([]query.Document, len(countries))
	for i, c := range countries {
		docs[i] = c.Document()
	}
	return docs
}

func alpha3Codes(docs []query.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		code, _ := d[query.FieldAlpha3].(string)
		out = append(out, code)
	}
	return out
}
