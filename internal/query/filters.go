package query

import "strings"

// Stored field paths.
const (
	FieldID           = "_id"
	FieldCommonName   = "name.common"
	FieldNativeName   = "name.native"
	FieldAlpha2       = "alpha2Code"
	FieldAlpha3       = "alpha3Code"
	FieldNumeric      = "numericCode"
	FieldCIOC         = "cioc"
	FieldCapital      = "capital"
	FieldRegion       = "region"
	FieldSubregion    = "subregion"
	FieldArea         = "areaKm2"
	FieldLandlocked   = "landlocked"
	FieldPopulation   = "population"
	FieldBorders      = "borders"
	FieldCurrencyCode = "currencies.code"
	FieldLanguageCode = "languages.iso639_1"
	FieldTranslations = "translations"
	FieldDemonym      = "demonym"
	FieldUNMember     = "unMember"
	FieldIndependent  = "independent"
)

// MembershipFilter selects on the two status flags. Nil flags are omitted.
func MembershipFilter(unMember, independent *bool) Predicate {
	var preds []Predicate
	if unMember != nil {
		preds = append(preds, Equals{Path: FieldUNMember, Value: *unMember})
	}
	if independent != nil {
		preds = append(preds, Equals{Path: FieldIndependent, Value: *independent})
	}
	return Conjoin(preds...)
}

func RegionFilter(region string) Predicate {
	return Equals{Path: FieldRegion, Value: region}
}

func SubregionFilter(subregion string) Predicate {
	return Equals{Path: FieldSubregion, Value: subregion}
}

func LandlockedFilter() Predicate {
	return Equals{Path: FieldLandlocked, Value: true}
}

// BordersFilter matches countries whose borders list holds the alpha-3 code.
func BordersFilter(alpha3 string) Predicate {
	return Equals{Path: FieldBorders, Value: strings.ToUpper(alpha3)}
}

func CurrencyFilter(code string) Predicate {
	return Equals{Path: FieldCurrencyCode, Value: strings.ToUpper(code)}
}

func LanguageFilter(iso639_1 string) Predicate {
	return Equals{Path: FieldLanguageCode, Value: strings.ToLower(iso639_1)}
}

// CodeLookup matches a record when any of its four code namespaces equals
// code. Alphabetic codes compare upper-cased, the numeric code verbatim.
func CodeLookup(code string) Predicate {
	upper := strings.ToUpper(code)
	return Or{
		Equals{Path: FieldAlpha2, Value: upper},
		Equals{Path: FieldAlpha3, Value: upper},
		Equals{Path: FieldNumeric, Value: code},
		Equals{Path: FieldCIOC, Value: upper},
	}
}

// NameSearch matches the common or native name, exactly or as a
// case-insensitive substring.
func NameSearch(q string, exact bool) Predicate {
	if exact {
		return Or{
			Equals{Path: FieldCommonName, Value: q},
			Equals{Path: FieldNativeName, Value: q},
		}
	}
	return Or{
		Contains{Path: FieldCommonName, Substring: q},
		Contains{Path: FieldNativeName, Substring: q},
	}
}

// TranslationFilter matches records carrying a translation under key.
func TranslationFilter(key string) Predicate {
	return Exists{Path: FieldTranslations + "." + key}
}

func DemonymFilter(name string) Predicate {
	return Contains{Path: FieldDemonym, Substring: name}
}

func CapitalFilter(capital string) Predicate {
	return Contains{Path: FieldCapital, Substring: capital}
}

// CompareFilter matches the alpha-3 codes in codes. Result order is left to
// the store.
func CompareFilter(codes []string) Predicate {
	values := make([]any, 0, len(codes))
	for _, c := range codes {
		values = append(values, strings.ToUpper(strings.TrimSpace(c)))
	}
	return OneOf{Path: FieldAlpha3, Values: values}
}

// RangeFilter builds an inclusive range on path from optional bounds and
// scopes it to region when region is non-empty. Missing bounds are not
// applied; lower > upper is passed through and simply matches nothing.
func RangeFilter(path string, lower, upper *float64, region string) Predicate {
	var preds []Predicate
	if lower != nil || upper != nil {
		r := Range{Path: path}
		if lower != nil {
			r.Lower = &Bound{Value: *lower}
		}
		if upper != nil {
			r.Upper = &Bound{Value: *upper}
		}
		preds = append(preds, r)
	}
	if region != "" {
		preds = append(preds, RegionFilter(region))
	}
	return Conjoin(preds...)
}

// PositiveArea matches records whose area is strictly greater than zero.
func PositiveArea() Predicate {
	return Range{Path: FieldArea, Lower: &Bound{Value: 0, Exclusive: true}}
}
