package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"countries-inquiry-service/internal/logger"
	"countries-inquiry-service/internal/metrics"
	"countries-inquiry-service/internal/model"
	"countries-inquiry-service/internal/query"
)

// RecordStore is the document store the query engine reads from.
type RecordStore interface {
	Find(ctx context.Context, opts query.FindOptions) ([]query.Document, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Distinct(ctx context.Context, path string) ([]any, error)
	NativeID(v any) (string, bool)
}

// ListOptions carries the already validated field selection, sort key and
// page of a listing. Limit zero means unbounded.
type ListOptions struct {
	Fields string
	Sort   string
	Skip   int64
	Limit  int64
}

type AreaRange struct {
	Min    *float64
	Max    *float64
	Region string
}

type PopulationRange struct {
	Min    *int64
	Max    *int64
	Region string
}

// CountryQuery answers every read the API exposes. Single-record lookups
// return a nil document when nothing matches. Store failures are returned
// wrapped; no method fails because of the shape of its input.
type CountryQuery interface {
	All(ctx context.Context, unMember, independent *bool, opts ListOptions) ([]query.Document, error)
	ByID(ctx context.Context, id, fields string) (query.Document, error)
	ByCode(ctx context.Context, code, fields string) (query.Document, error)
	Search(ctx context.Context, q string, exact bool, opts ListOptions) ([]query.Document, error)
	ByCapital(ctx context.Context, capital string, opts ListOptions) ([]query.Document, error)
	ByRegion(ctx context.Context, region string, opts ListOptions) ([]query.Document, error)
	BySubregion(ctx context.Context, subregion string, opts ListOptions) ([]query.Document, error)
	Bordering(ctx context.Context, code string, opts ListOptions) ([]query.Document, error)
	Landlocked(ctx context.Context, opts ListOptions) ([]query.Document, error)
	ByCurrency(ctx context.Context, currency string, opts ListOptions) ([]query.Document, error)
	ByLanguage(ctx context.Context, language string, opts ListOptions) ([]query.Document, error)
	ByTranslation(ctx context.Context, key string, opts ListOptions) ([]query.Document, error)
	ByDemonym(ctx context.Context, demonym string, opts ListOptions) ([]query.Document, error)
	ByArea(ctx context.Context, r AreaRange, opts ListOptions) ([]query.Document, error)
	ByPopulation(ctx context.Context, r PopulationRange, opts ListOptions) ([]query.Document, error)
	DensitySorted(ctx context.Context, desc bool, fields string) ([]query.Document, error)
	Random(ctx context.Context, count int, fields string) ([]query.Document, error)
	Compare(ctx context.Context, codes []string, opts ListOptions) ([]query.Document, error)
	Regions(ctx context.Context) ([]string, error)
	Subregions(ctx context.Context) ([]string, error)
	Languages(ctx context.Context) ([]string, error)
	Currencies(ctx context.Context) ([]string, error)
	Facets(ctx context.Context) (model.FacetsResponse, error)
}

type countryQuery struct {
	store   RecordStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	intN    func(int) int
}

type Option func(q *countryQuery)

func WithLogger(l *slog.Logger) Option {
	return func(q *countryQuery) {
		q.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(q *countryQuery) {
		q.metrics = m
	}
}

// WithRandom replaces the source of sampling positions. intN must return a
// uniform integer in [0, n) and be safe for concurrent use.
func WithRandom(intN func(int) int) Option {
	return func(q *countryQuery) {
		q.intN = intN
	}
}

func NewCountryQuery(store RecordStore, opts ...Option) CountryQuery {
	q := &countryQuery{
		store:  store,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *countryQuery) observe(operation string, started time.Time, err *error) {
	q.metrics.ObserveQuery(operation, started, *err)
	if *err != nil {
		q.logger.Error("country query failed", "operation", operation, "error", *err)
		return
	}
	q.logger.Debug("country query", "operation", operation, "duration", time.Since(started))
}

func (q *countryQuery) normalize(docs []query.Document) []query.Document {
	return query.NormalizeAll(docs, q.store.NativeID)
}

// list runs a filter-style listing. A derived sort key switches to the
// unpaginated density mode.
func (q *countryQuery) list(ctx context.Context, filter query.Predicate, opts ListOptions) ([]query.Document, error) {
	projection := query.ParseFields(opts.Fields)
	sort := query.ParseSort(opts.Sort)
	if sort.IsDerived() {
		return q.densitySorted(ctx, filter, sort.Desc, projection)
	}

	docs, err := q.store.Find(ctx, query.FindOptions{
		Filter:     filter,
		Projection: projection,
		Sort:       sort.Native,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	return q.normalize(docs), nil
}

func (q *countryQuery) one(ctx context.Context, filter query.Predicate, fields string) (query.Document, error) {
	docs, err := q.store.Find(ctx, query.FindOptions{
		Filter:     filter,
		Projection: query.ParseFields(fields),
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query country: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return query.Normalize(docs[0], q.store.NativeID), nil
}

// densitySorted fetches every record of filter with a positive area in one
// scan and orders it by population density. The result is never paginated.
// Population and area are fetched even when not requested and stripped again
// before returning.
func (q *countryQuery) densitySorted(ctx context.Context, filter query.Predicate, desc bool, projection query.Projection) ([]query.Document, error) {
	docs, err := q.store.Find(ctx, query.FindOptions{
		Filter:     query.Conjoin(filter, query.PositiveArea()),
		Projection: projection.With(query.FieldPopulation, query.FieldArea),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query countries for density: %w", err)
	}

	sorted := query.SortByDensity(q.normalize(docs), desc)
	for _, d := range sorted {
		if !projection.Has(query.FieldPopulation) {
			delete(d, query.FieldPopulation)
		}
		if !projection.Has(query.FieldArea) {
			delete(d, query.FieldArea)
		}
	}
	return sorted, nil
}

func (q *countryQuery) All(ctx context.Context, unMember, independent *bool, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("all", time.Now(), &err)
	return q.list(ctx, query.MembershipFilter(unMember, independent), opts)
}

func (q *countryQuery) ByID(ctx context.Context, id, fields string) (doc query.Document, err error) {
	defer q.observe("id", time.Now(), &err)
	return q.one(ctx, query.IDEquals{ID: id}, fields)
}

func (q *countryQuery) ByCode(ctx context.Context, code, fields string) (doc query.Document, err error) {
	defer q.observe("code", time.Now(), &err)
	return q.one(ctx, query.CodeLookup(code), fields)
}

func (q *countryQuery) Search(ctx context.Context, text string, exact bool, opts ListOptions) (docs []query.Document, err error) {
	operation := "search"
	if exact {
		operation = "name"
	}
	defer q.observe(operation, time.Now(), &err)
	return q.list(ctx, query.NameSearch(text, exact), opts)
}

func (q *countryQuery) ByCapital(ctx context.Context, capital string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("capital", time.Now(), &err)
	return q.list(ctx, query.CapitalFilter(capital), opts)
}

func (q *countryQuery) ByRegion(ctx context.Context, region string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("region", time.Now(), &err)
	return q.list(ctx, query.RegionFilter(region), opts)
}

func (q *countryQuery) BySubregion(ctx context.Context, subregion string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("subregion", time.Now(), &err)
	return q.list(ctx, query.SubregionFilter(subregion), opts)
}

// Bordering resolves code through any of the four code namespaces first, so
// "de", "DEU" and "276" all list Germany's neighbours. Unknown codes fall
// back to the upper-cased input.
func (q *countryQuery) Bordering(ctx context.Context, code string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("bordering", time.Now(), &err)

	target := strings.ToUpper(code)
	hits, err := q.store.Find(ctx, query.FindOptions{
		Filter:     query.CodeLookup(code),
		Projection: query.Include(query.FieldAlpha3),
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve country code: %w", err)
	}
	if len(hits) > 0 {
		if alpha3, ok := hits[0][query.FieldAlpha3].(string); ok && alpha3 != "" {
			target = alpha3
		}
	}
	return q.list(ctx, query.BordersFilter(target), opts)
}

func (q *countryQuery) Landlocked(ctx context.Context, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("landlocked", time.Now(), &err)
	return q.list(ctx, query.LandlockedFilter(), opts)
}

func (q *countryQuery) ByCurrency(ctx context.Context, currency string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("currency", time.Now(), &err)
	return q.list(ctx, query.CurrencyFilter(currency), opts)
}

func (q *countryQuery) ByLanguage(ctx context.Context, language string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("language", time.Now(), &err)
	return q.list(ctx, query.LanguageFilter(language), opts)
}

func (q *countryQuery) ByTranslation(ctx context.Context, key string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("translation", time.Now(), &err)
	return q.list(ctx, query.TranslationFilter(key), opts)
}

func (q *countryQuery) ByDemonym(ctx context.Context, demonym string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("demonym", time.Now(), &err)
	return q.list(ctx, query.DemonymFilter(demonym), opts)
}

func (q *countryQuery) ByArea(ctx context.Context, r AreaRange, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("area", time.Now(), &err)
	return q.list(ctx, query.RangeFilter(query.FieldArea, r.Min, r.Max, r.Region), opts)
}

func (q *countryQuery) ByPopulation(ctx context.Context, r PopulationRange, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("population", time.Now(), &err)
	return q.list(ctx, query.RangeFilter(query.FieldPopulation, toFloat(r.Min), toFloat(r.Max), r.Region), opts)
}

func (q *countryQuery) DensitySorted(ctx context.Context, desc bool, fields string) (docs []query.Document, err error) {
	defer q.observe("density", time.Now(), &err)
	return q.densitySorted(ctx, query.All(), desc, query.ParseFields(fields))
}

// Random samples from a single scan of the collection, so the population the
// positions are drawn from is exactly the set that was fetched.
func (q *countryQuery) Random(ctx context.Context, count int, fields string) (docs []query.Document, err error) {
	defer q.observe("random", time.Now(), &err)

	all, err := q.store.Find(ctx, query.FindOptions{
		Filter:     query.All(),
		Projection: query.ParseFields(fields),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query countries for sampling: %w", err)
	}
	return q.normalize(query.Sample(all, count, q.intN)), nil
}

func (q *countryQuery) Compare(ctx context.Context, codes []string, opts ListOptions) (docs []query.Document, err error) {
	defer q.observe("compare", time.Now(), &err)
	return q.list(ctx, query.CompareFilter(codes), opts)
}

func (q *countryQuery) distinct(ctx context.Context, path string) ([]string, error) {
	values, err := q.store.Distinct(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch distinct %s: %w", path, err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case nil:
		case string:
			out = append(out, t)
		default:
			if s, ok := q.store.NativeID(v); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(v))
		}
	}
	return out, nil
}

func (q *countryQuery) Regions(ctx context.Context) (values []string, err error) {
	defer q.observe("meta_regions", time.Now(), &err)
	return q.distinct(ctx, query.FieldRegion)
}

func (q *countryQuery) Subregions(ctx context.Context) (values []string, err error) {
	defer q.observe("meta_subregions", time.Now(), &err)
	return q.distinct(ctx, query.FieldSubregion)
}

func (q *countryQuery) Languages(ctx context.Context) (values []string, err error) {
	defer q.observe("meta_languages", time.Now(), &err)
	return q.distinct(ctx, query.FieldLanguageCode)
}

func (q *countryQuery) Currencies(ctx context.Context) (values []string, err error) {
	defer q.observe("meta_currencies", time.Now(), &err)
	return q.distinct(ctx, query.FieldCurrencyCode)
}

// Facets fetches the four metadata listings concurrently.
func (q *countryQuery) Facets(ctx context.Context) (resp model.FacetsResponse, err error) {
	defer q.observe("meta_facets", time.Now(), &err)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Regions, err = q.distinct(gctx, query.FieldRegion)
		return err
	})
	g.Go(func() (err error) {
		resp.Subregions, err = q.distinct(gctx, query.FieldSubregion)
		return err
	})
	g.Go(func() (err error) {
		resp.Languages, err = q.distinct(gctx, query.FieldLanguageCode)
		return err
	})
	g.Go(func() (err error) {
		resp.Currencies, err = q.distinct(gctx, query.FieldCurrencyCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.FacetsResponse{}, err
	}
	return resp, nil
}

func toFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
