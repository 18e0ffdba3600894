package model

type Language struct {
	ISO639_1 string `json:"iso639_1"` // e.g., "de", "tr"
	Name     string `json:"name"`     // e.g., "German", "Turkish"
}

type Currency struct {
	Code   string `json:"code"` // ISO 4217, e.g., "EUR"
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}
