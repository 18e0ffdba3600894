package model

// ListResponse is the envelope for record listings.
type ListResponse struct {
	Data  []map[string]any `json:"data"`
	Count int              `json:"count"`
}

// FacetsResponse lists the distinct values behind the discovery endpoints.
type FacetsResponse struct {
	Regions    []string `json:"regions"`
	Subregions []string `json:"subregions"`
	Languages  []string `json:"languages"`
	Currencies []string `json:"currencies"`
}

type ImportStatus struct {
	Status  string `json:"status"`
	Records int64  `json:"records"`
}
