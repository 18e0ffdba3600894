package service

//go:generate mockgen -source=data_importer.go -destination=mocks/loader_mocks.go -package=mocks RecordLoader

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"countries-inquiry-service/internal/metrics"
	"countries-inquiry-service/internal/query"
	"countries-inquiry-service/internal/service/mocks"
	"countries-inquiry-service/internal/store/memory"
)

const importPayload = `[
  {
    "name": {"common": "Germany", "native": ["Deutschland"]},
    "alpha2Code": "de",
    "alpha3Code": "deu",
    "numericCode": "276",
    "region": "Europe",
    "areaKm2": 357114,
    "population": 83240525,
    "borders": ["aut", "fra"],
    "currencies": [{"code": "eur", "name": "Euro"}],
    "languages": [{"iso639_1": "DE", "name": "German"}]
  },
  {
    "name": {"common": "Antarctica"},
    "alpha2Code": "AQ",
    "alpha3Code": "ATA",
    "region": "Antarctic",
    "areaKm2": null,
    "population": 1000
  }
]`

type DataImporterSuite struct {
	suite.Suite
	store    *memory.Store
	metrics  *metrics.Metrics
	importer DataImporter
}

func TestDataImporterSuite(t *testing.T) {
	suite.Run(t, new(DataImporterSuite))
}

func (s *DataImporterSuite) SetupTest() {
	s.store = memory.New()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.importer = NewDataImporter(s.store, WithImporterMetrics(s.metrics))
}

func (s *DataImporterSuite) TestImportFromReader() {
	ctx := context.Background()

	n, err := s.importer.ImportFromReader(ctx, strings.NewReader(importPayload))
	s.Require().NoError(err)
	s.Equal(2, n)

	s.Run("codes are normalized", func() {
		q := NewCountryQuery(s.store)
		doc, err := q.ByCode(ctx, "DEU", "alpha2Code,borders,currencies.code,languages.iso639_1")
		s.Require().NoError(err)
		s.Require().NotNil(doc)
		s.Equal("DE", doc["alpha2Code"])
		s.Equal([]any{"AUT", "FRA"}, doc["borders"])
		s.Equal([]any{map[string]any{"code": "EUR"}}, doc["currencies"])
		s.Equal([]any{map[string]any{"iso639_1": "de"}}, doc["languages"])
	})

	s.Run("missing area is stored as null", func() {
		docs, err := s.store.Find(ctx, query.FindOptions{Filter: query.RegionFilter("Antarctic")})
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.Contains(docs[0], query.FieldArea)
		s.Nil(docs[0][query.FieldArea])
	})

	s.Run("status reports the stored count", func() {
		status, err := s.importer.GetImportStatus(ctx)
		s.Require().NoError(err)
		s.Equal("ready", status.Status)
		s.Equal(int64(2), status.Records)
	})

	s.Run("metrics", func() {
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Imports.WithLabelValues("completed")))
		s.Equal(2.0, testutil.ToFloat64(s.metrics.Records))
	})

	s.Run("a second import replaces the collection", func() {
		n, err := s.importer.ImportFromReader(ctx, strings.NewReader(`[{"alpha3Code": "FRA", "name": {"common": "France"}}]`))
		s.Require().NoError(err)
		s.Equal(1, n)

		count, err := s.store.Count(ctx, query.All())
		s.Require().NoError(err)
		s.Equal(int64(1), count)
	})
}

func (s *DataImporterSuite) TestRejectsInvalidPayloads() {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"malformed json", `[{"alpha3Code": `, "failed to decode"},
		{"not an array", `{"alpha3Code": "DEU"}`, "failed to decode"},
		{"missing alpha3", `[{"name": {"common": "Nowhere"}}]`, "record 0 has no alpha3Code"},
		{"duplicate alpha3", `[{"alpha3Code": "deu"}, {"alpha3Code": "DEU"}]`, "repeated at records 0 and 1"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.importer.ImportFromReader(ctx, strings.NewReader(tt.payload))
			s.Require().Error(err)
			s.ErrorIs(err, ErrInvalidImport)
			s.Contains(err.Error(), tt.want)
		})
	}

	count, err := s.store.Count(ctx, query.All())
	s.Require().NoError(err)
	s.Zero(count, "rejected payloads write nothing")
	s.Equal(4.0, testutil.ToFloat64(s.metrics.Imports.WithLabelValues("failed")))
}

func (s *DataImporterSuite) TestClearDatabase() {
	ctx := context.Background()
	_, err := s.importer.ImportFromReader(ctx, strings.NewReader(importPayload))
	s.Require().NoError(err)

	s.Require().NoError(s.importer.ClearDatabase(ctx))

	status, err := s.importer.GetImportStatus(ctx)
	s.Require().NoError(err)
	s.Zero(status.Records)
	s.Zero(testutil.ToFloat64(s.metrics.Records))
}

// gatedLoader records how many writes overlap. When release is set, writes
// block on it after signalling entered.
type gatedLoader struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}

	active atomic.Int32
	peak   atomic.Int32
}

func (l *gatedLoader) enter() {
	n := l.active.Add(1)
	for {
		p := l.peak.Load()
		if n <= p || l.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if l.entered != nil {
		l.entered <- struct{}{}
	}
	if l.release != nil {
		<-l.release
	} else {
		time.Sleep(5 * time.Millisecond)
	}
}

func (l *gatedLoader) ReplaceAll(ctx context.Context, docs []query.Document) error {
	l.enter()
	defer l.active.Add(-1)
	return l.Store.ReplaceAll(ctx, docs)
}

func (l *gatedLoader) Clear(ctx context.Context) error {
	l.enter()
	defer l.active.Add(-1)
	return l.Store.Clear(ctx)
}

func (s *DataImporterSuite) TestConcurrentWritesAreSerialized() {
	ctx := context.Background()
	loader := &gatedLoader{Store: memory.New()}
	importer := NewDataImporter(loader)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			if i%4 == 3 {
				return importer.ClearDatabase(ctx)
			}
			_, err := importer.ImportFromReader(ctx, strings.NewReader(importPayload))
			return err
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(int32(1), loader.peak.Load(), "writes overlapped")

	_, err := importer.ImportFromReader(ctx, strings.NewReader(importPayload))
	s.Require().NoError(err)

	docs, err := loader.Find(ctx, query.FindOptions{})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"DEU", "ATA"}, alpha3Codes(docs))

	status, err := importer.GetImportStatus(ctx)
	s.Require().NoError(err)
	s.Equal("ready", status.Status)
}

func (s *DataImporterSuite) TestStatusStaysImportingUntilLastImportEnds() {
	ctx := context.Background()
	loader := &gatedLoader{
		Store:   memory.New(),
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	importer := NewDataImporter(loader)

	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := importer.ImportFromReader(ctx, strings.NewReader(importPayload))
			return err
		})
	}

	<-loader.entered
	status, err := importer.GetImportStatus(ctx)
	s.Require().NoError(err)
	s.Equal("importing", status.Status)

	loader.release <- struct{}{}
	<-loader.entered
	status, err = importer.GetImportStatus(ctx)
	s.Require().NoError(err)
	s.Equal("importing", status.Status, "second import is still running")

	loader.release <- struct{}{}
	s.Require().NoError(g.Wait())

	status, err = importer.GetImportStatus(ctx)
	s.Require().NoError(err)
	s.Equal("ready", status.Status)
	s.Equal(int64(2), status.Records)
}

type DataImporterLoaderErrorSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	loader   *mocks.MockRecordLoader
	importer DataImporter
}

func TestDataImporterLoaderErrorSuite(t *testing.T) {
	suite.Run(t, new(DataImporterLoaderErrorSuite))
}

func (s *DataImporterLoaderErrorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.loader = mocks.NewMockRecordLoader(s.ctrl)
	s.importer = NewDataImporter(s.loader)
}

func (s *DataImporterLoaderErrorSuite) TestReplaceAllFailure() {
	s.loader.EXPECT().ReplaceAll(gomock.Any(), gomock.Len(2)).Return(errStoreDown)

	_, err := s.importer.ImportFromReader(context.Background(), strings.NewReader(importPayload))
	s.ErrorIs(err, errStoreDown)
	s.NotErrorIs(err, ErrInvalidImport)
}

func (s *DataImporterLoaderErrorSuite) TestStatusAndClearFailures() {
	s.loader.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), errStoreDown)
	s.loader.EXPECT().Clear(gomock.Any()).Return(errStoreDown)

	_, err := s.importer.GetImportStatus(context.Background())
	s.ErrorIs(err, errStoreDown)

	err = s.importer.ClearDatabase(context.Background())
	s.ErrorIs(err, errStoreDown)
	s.Contains(err.Error(), "failed to clear countries")
}
