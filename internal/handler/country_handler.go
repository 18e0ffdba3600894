package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"countries-inquiry-service/internal/model"
	"countries-inquiry-service/internal/query"
	"countries-inquiry-service/internal/service"
)

type CountryHandler struct {
	countryQuery service.CountryQuery
}

func NewCountryHandler(countryQuery service.CountryQuery) *CountryHandler {
	return &CountryHandler{
		countryQuery: countryQuery,
	}
}

func respondList(c *fiber.Ctx, docs []query.Document, err error) error {
	if err != nil {
		return internalError(c, err)
	}
	if docs == nil {
		docs = []query.Document{}
	}
	return c.JSON(model.ListResponse{
		Data:  docs,
		Count: len(docs),
	})
}

func respondOne(c *fiber.Ctx, doc query.Document, err error) error {
	if err != nil {
		return internalError(c, err)
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "country not found",
		})
	}
	return c.JSON(fiber.Map{
		"data": doc,
	})
}

func respondValues(c *fiber.Ctx, values []string, err error) error {
	if err != nil {
		return internalError(c, err)
	}
	if values == nil {
		values = []string{}
	}
	return c.JSON(fiber.Map{
		"data": values,
	})
}

// listBy is the shape shared by single-parameter listings.
func (h *CountryHandler) listBy(param string, find func(c *fiber.Ctx, value string, opts service.ListOptions) ([]query.Document, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Params(param)
		if value == "" {
			return badRequest(c, errors.New(param+" is required"))
		}
		opts, err := listOptions(c)
		if err != nil {
			return badRequest(c, err)
		}
		docs, err := find(c, value, opts)
		return respondList(c, docs, err)
	}
}

// All lists every country, optionally filtered by membership flags.
func (h *CountryHandler) All(c *fiber.Ctx) error {
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	unMember, err := optionalBool(c, "unMember")
	if err != nil {
		return badRequest(c, err)
	}
	independent, err := optionalBool(c, "independent")
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.All(c.Context(), unMember, independent, opts)
	return respondList(c, docs, err)
}

func (h *CountryHandler) ByID(c *fiber.Ctx) error {
	doc, err := h.countryQuery.ByID(c.Context(), c.Params("id"), c.Query("fields"))
	return respondOne(c, doc, err)
}

// ByCode accepts an alpha-2, alpha-3, numeric or IOC code.
func (h *CountryHandler) ByCode(c *fiber.Ctx) error {
	doc, err := h.countryQuery.ByCode(c.Context(), c.Params("code"), c.Query("fields"))
	return respondOne(c, doc, err)
}

// Search handles substring name search; exact=true switches to exact match.
func (h *CountryHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return badRequest(c, errors.New("q is required"))
	}
	exact, err := optionalBool(c, "exact")
	if err != nil {
		return badRequest(c, err)
	}
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.Search(c.Context(), q, exact != nil && *exact, opts)
	return respondList(c, docs, err)
}

func (h *CountryHandler) ByName() fiber.Handler {
	return h.listBy("name", func(c *fiber.Ctx, name string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.Search(c.Context(), name, true, opts)
	})
}

func (h *CountryHandler) ByCapital() fiber.Handler {
	return h.listBy("capital", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByCapital(c.Context(), v, opts)
	})
}

func (h *CountryHandler) ByRegion() fiber.Handler {
	return h.listBy("region", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByRegion(c.Context(), v, opts)
	})
}

func (h *CountryHandler) BySubregion() fiber.Handler {
	return h.listBy("subregion", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.BySubregion(c.Context(), v, opts)
	})
}

func (h *CountryHandler) Bordering() fiber.Handler {
	return h.listBy("code", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.Bordering(c.Context(), v, opts)
	})
}

func (h *CountryHandler) ByCurrency() fiber.Handler {
	return h.listBy("currency", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByCurrency(c.Context(), v, opts)
	})
}

func (h *CountryHandler) ByLanguage() fiber.Handler {
	return h.listBy("language", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByLanguage(c.Context(), v, opts)
	})
}

func (h *CountryHandler) ByTranslation() fiber.Handler {
	return h.listBy("translation", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByTranslation(c.Context(), v, opts)
	})
}

func (h *CountryHandler) ByDemonym() fiber.Handler {
	return h.listBy("name", func(c *fiber.Ctx, v string, opts service.ListOptions) ([]query.Document, error) {
		return h.countryQuery.ByDemonym(c.Context(), v, opts)
	})
}

func (h *CountryHandler) Landlocked(c *fiber.Ctx) error {
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.Landlocked(c.Context(), opts)
	return respondList(c, docs, err)
}

func (h *CountryHandler) ByArea(c *fiber.Ctx) error {
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	lower, err := optionalFloat(c, "min")
	if err != nil {
		return badRequest(c, err)
	}
	upper, err := optionalFloat(c, "max")
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.ByArea(c.Context(), service.AreaRange{
		Min:    lower,
		Max:    upper,
		Region: c.Query("region"),
	}, opts)
	return respondList(c, docs, err)
}

func (h *CountryHandler) ByPopulation(c *fiber.Ctx) error {
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	lower, err := optionalInt(c, "min")
	if err != nil {
		return badRequest(c, err)
	}
	upper, err := optionalInt(c, "max")
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.ByPopulation(c.Context(), service.PopulationRange{
		Min:    lower,
		Max:    upper,
		Region: c.Query("region"),
	}, opts)
	return respondList(c, docs, err)
}

// Density returns every country with a known area ordered by population
// density. The listing is complete; limit and skip are not applied.
func (h *CountryHandler) Density(c *fiber.Ctx) error {
	var desc bool
	switch c.Query("sort", "asc") {
	case "asc":
	case "desc":
		desc = true
	default:
		return badRequest(c, errors.New("sort must be asc or desc"))
	}
	docs, err := h.countryQuery.DensitySorted(c.Context(), desc, c.Query("fields"))
	return respondList(c, docs, err)
}

func (h *CountryHandler) Random(c *fiber.Ctx) error {
	count, err := intQuery(c, "count", defaultRandom)
	if err != nil {
		return badRequest(c, err)
	}
	if count < 1 || count > maxRandom {
		return badRequest(c, errors.New("count must be between 1 and 100"))
	}
	docs, err := h.countryQuery.Random(c.Context(), count, c.Query("fields"))
	return respondList(c, docs, err)
}

func (h *CountryHandler) Compare(c *fiber.Ctx) error {
	codes := splitCodes(c.Query("codes"))
	if len(codes) == 0 {
		return badRequest(c, errors.New("codes is required"))
	}
	opts, err := listOptions(c)
	if err != nil {
		return badRequest(c, err)
	}
	docs, err := h.countryQuery.Compare(c.Context(), codes, opts)
	return respondList(c, docs, err)
}

func (h *CountryHandler) Regions(c *fiber.Ctx) error {
	values, err := h.countryQuery.Regions(c.Context())
	return respondValues(c, values, err)
}

func (h *CountryHandler) Subregions(c *fiber.Ctx) error {
	values, err := h.countryQuery.Subregions(c.Context())
	return respondValues(c, values, err)
}

func (h *CountryHandler) Languages(c *fiber.Ctx) error {
	values, err := h.countryQuery.Languages(c.Context())
	return respondValues(c, values, err)
}

func (h *CountryHandler) Currencies(c *fiber.Ctx) error {
	values, err := h.countryQuery.Currencies(c.Context())
	return respondValues(c, values, err)
}

func (h *CountryHandler) Facets(c *fiber.Ctx) error {
	facets, err := h.countryQuery.Facets(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": facets,
	})
}
