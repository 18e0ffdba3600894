// Package storetest holds the behaviour every record store must share. Store
// packages run Suite against their own implementation.
package storetest

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"countries-inquiry-service/internal/query"
)

// Store is the full read/write surface of a record store.
type Store interface {
	Find(ctx context.Context, opts query.FindOptions) ([]query.Document, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Distinct(ctx context.Context, path string) ([]any, error)
	NativeID(v any) (string, bool)
	ReplaceAll(ctx context.Context, docs []query.Document) error
	Clear(ctx context.Context) error
}

// Documents is the collection every test starts from.
func Documents() []query.Document {
	return []query.Document{
		{
			"name":        map[string]any{"common": "Germany", "native": []any{"Deutschland"}},
			"alpha2Code":  "DE",
			"alpha3Code":  "DEU",
			"numericCode": "276",
			"region":      "Europe",
			"areaKm2":     357114.0,
			"population":  int64(83240525),
			"borders":     []any{"AUT", "FRA"},
			"currencies":  []any{map[string]any{"code": "EUR", "name": "Euro"}},
			"translations": map[string]any{
				"fr": "Allemagne",
			},
			"landlocked": false,
		},
		{
			"name":        map[string]any{"common": "Mongolia"},
			"alpha2Code":  "MN",
			"alpha3Code":  "MNG",
			"numericCode": "496",
			"region":      "Asia",
			"areaKm2":     1564110.0,
			"population":  int64(3278290),
			"borders":     []any{"CHN", "RUS"},
			"currencies":  []any{map[string]any{"code": "MNT"}},
			"landlocked":  true,
		},
		{
			"name":        map[string]any{"common": "Austria"},
			"alpha2Code":  "AT",
			"alpha3Code":  "AUT",
			"numericCode": "040",
			"region":      "Europe",
			"areaKm2":     nil,
			"population":  int64(8917205),
			"borders":     []any{"DEU"},
			"currencies":  []any{map[string]any{"code": "EUR"}},
			"landlocked":  true,
		},
	}
}

// Suite checks a Store against Documents. Set Store before running it.
type Suite struct {
	suite.Suite
	Store Store
}

func (s *Suite) SetupTest() {
	s.Require().NoError(s.Store.ReplaceAll(context.Background(), Documents()))
}

func (s *Suite) codes(docs []query.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		code, ok := d[query.FieldAlpha3].(string)
		s.Require().True(ok, "record without alpha3Code: %v", d)
		out = append(out, code)
	}
	return out
}

func (s *Suite) find(p query.Predicate) []string {
	docs, err := s.Store.Find(context.Background(), query.FindOptions{Filter: p})
	s.Require().NoError(err)
	return s.codes(docs)
}

func (s *Suite) TestFilters() {
	lower, upper := 5000000.0, 100000000.0

	s.Run("equals", func() {
		s.ElementsMatch([]string{"DEU", "AUT"}, s.find(query.RegionFilter("Europe")))
	})
	s.Run("equals inside a list of maps", func() {
		s.ElementsMatch([]string{"DEU", "AUT"}, s.find(query.CurrencyFilter("EUR")))
	})
	s.Run("equals on a list element", func() {
		s.ElementsMatch([]string{"MNG"}, s.find(query.BordersFilter("RUS")))
	})
	s.Run("code lookup", func() {
		s.ElementsMatch([]string{"AUT"}, s.find(query.CodeLookup("040")))
		s.ElementsMatch([]string{"DEU"}, s.find(query.CodeLookup("de")))
	})
	s.Run("substring on native names", func() {
		s.ElementsMatch([]string{"DEU"}, s.find(query.NameSearch("DEUTSCH", false)))
	})
	s.Run("exact name", func() {
		s.ElementsMatch([]string{"AUT"}, s.find(query.NameSearch("Austria", true)))
		s.Empty(s.find(query.NameSearch("austria", true)))
	})
	s.Run("exists", func() {
		s.ElementsMatch([]string{"DEU"}, s.find(query.TranslationFilter("fr")))
	})
	s.Run("range with region", func() {
		s.ElementsMatch([]string{"DEU", "AUT"}, s.find(query.RangeFilter(query.FieldPopulation, &lower, &upper, "Europe")))
	})
	s.Run("positive area skips null area", func() {
		s.ElementsMatch([]string{"DEU", "MNG"}, s.find(query.PositiveArea()))
	})
	s.Run("one of", func() {
		s.ElementsMatch([]string{"MNG", "AUT"}, s.find(query.CompareFilter([]string{"aut", "mng", "xxx"})))
	})
	s.Run("empty disjunction", func() {
		s.Empty(s.find(query.Or{}))
	})
	s.Run("match all", func() {
		s.Len(s.find(query.All()), 3)
	})
}

func (s *Suite) TestSortAndPage() {
	ctx := context.Background()
	byPopulation := &query.SortField{Path: query.FieldPopulation, Descending: true}

	docs, err := s.Store.Find(ctx, query.FindOptions{Sort: byPopulation, Limit: 2})
	s.Require().NoError(err)
	s.Equal([]string{"DEU", "AUT"}, s.codes(docs))

	docs, err = s.Store.Find(ctx, query.FindOptions{Sort: byPopulation, Skip: 1, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]string{"AUT"}, s.codes(docs))

	docs, err = s.Store.Find(ctx, query.FindOptions{Sort: &query.SortField{Path: query.FieldAlpha3}, Skip: 5})
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *Suite) TestProjection() {
	docs, err := s.Store.Find(context.Background(), query.FindOptions{
		Filter:     query.CodeLookup("DEU"),
		Projection: query.ParseFields("name.common,alpha3Code"),
	})
	s.Require().NoError(err)
	s.Require().Len(docs, 1)

	doc := docs[0]
	s.Len(doc, 3)
	s.Contains(doc, query.FieldID)
	s.Equal("DEU", doc[query.FieldAlpha3])
	s.Equal(map[string]any{"common": "Germany"}, doc["name"])
}

func (s *Suite) TestIdentifiers() {
	ctx := context.Background()
	docs, err := s.Store.Find(ctx, query.FindOptions{Projection: query.Include(query.FieldAlpha3)})
	s.Require().NoError(err)
	s.Require().Len(docs, 3)

	for _, d := range docs {
		id, ok := s.Store.NativeID(d[query.FieldID])
		s.Require().True(ok, "identifier %v is not native", d[query.FieldID])

		hits, err := s.Store.Find(ctx, query.FindOptions{Filter: query.IDEquals{ID: id}})
		s.Require().NoError(err)
		s.Require().Len(hits, 1)
		s.Equal(d[query.FieldAlpha3], hits[0][query.FieldAlpha3])
	}

	s.Empty(s.find(query.IDEquals{ID: "missing"}))
}

func (s *Suite) TestCountAndDistinct() {
	ctx := context.Background()

	n, err := s.Store.Count(ctx, query.All())
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	n, err = s.Store.Count(ctx, query.RegionFilter("Europe"))
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	regions, err := s.Store.Distinct(ctx, query.FieldRegion)
	s.Require().NoError(err)
	s.ElementsMatch([]any{"Europe", "Asia"}, regions)

	currencies, err := s.Store.Distinct(ctx, query.FieldCurrencyCode)
	s.Require().NoError(err)
	s.ElementsMatch([]any{"EUR", "MNT"}, currencies)
}

func (s *Suite) TestReplaceAndClear() {
	ctx := context.Background()

	s.Require().NoError(s.Store.ReplaceAll(ctx, Documents()[:1]))
	n, err := s.Store.Count(ctx, query.All())
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	s.Require().NoError(s.Store.Clear(ctx))
	n, err = s.Store.Count(ctx, query.All())
	s.Require().NoError(err)
	s.Zero(n)
	s.Empty(s.find(query.All()))
}

func tagged(tag string, n int) []query.Document {
	docs := make([]query.Document, n)
	for i := range docs {
		docs[i] = query.Document{
			query.FieldAlpha3: fmt.Sprintf("%s%04d", tag, i),
			"tag":             tag,
		}
	}
	return docs
}

func (s *Suite) TestConcurrentReplaceAll() {
	ctx := context.Background()
	const size = 2500

	for round := 0; round < 5; round++ {
		var g errgroup.Group
		for _, tag := range []string{"A", "B"} {
			docs := tagged(tag, size)
			g.Go(func() error { return s.Store.ReplaceAll(ctx, docs) })
		}
		s.Require().NoError(g.Wait())

		docs, err := s.Store.Find(ctx, query.FindOptions{Projection: query.Include(query.FieldAlpha3, "tag")})
		s.Require().NoError(err)
		s.Require().Len(docs, size, "round %d", round)

		tags := make(map[any]int)
		codes := make(map[any]struct{}, len(docs))
		for _, d := range docs {
			tags[d["tag"]]++
			codes[d[query.FieldAlpha3]] = struct{}{}
		}
		s.Len(tags, 1, "round %d mixed two imports: %v", round, tags)
		s.Len(codes, size, "round %d repeated alpha3 codes", round)
	}
}
