package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"countries-inquiry-service/internal/logger"
	"countries-inquiry-service/internal/metrics"
	"countries-inquiry-service/internal/model"
	"countries-inquiry-service/internal/query"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidImport marks import payloads rejected before anything is written.
var ErrInvalidImport = errors.New("invalid import payload")

// RecordLoader is the write side of a store, used only by imports.
type RecordLoader interface {
	ReplaceAll(ctx context.Context, docs []query.Document) error
	Clear(ctx context.Context) error
	Count(ctx context.Context, p query.Predicate) (int64, error)
}

type DataImporter interface {
	ImportFromReader(ctx context.Context, reader io.Reader) (int, error)
	GetImportStatus(ctx context.Context) (model.ImportStatus, error)
	ClearDatabase(ctx context.Context) error
}

type dataImporter struct {
	loader  RecordLoader
	logger  *slog.Logger
	metrics *metrics.Metrics

	// writeMu serializes ReplaceAll and Clear against the loader.
	writeMu sync.Mutex

	mu     sync.Mutex
	active int
}

type ImporterOption func(d *dataImporter)

func WithImporterLogger(l *slog.Logger) ImporterOption {
	return func(d *dataImporter) {
		d.logger = l
	}
}

func WithImporterMetrics(m *metrics.Metrics) ImporterOption {
	return func(d *dataImporter) {
		d.metrics = m
	}
}

func NewDataImporter(loader RecordLoader, opts ...ImporterOption) DataImporter {
	d := &dataImporter{
		loader: loader,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *dataImporter) track(delta int) {
	d.mu.Lock()
	d.active += delta
	d.mu.Unlock()
}

func (d *dataImporter) status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active > 0 {
		return "importing"
	}
	return "ready"
}

// ImportFromReader decodes a JSON array of countries and replaces the stored
// collection with it. Every record needs a unique alpha-3 code; codes are
// normalized to the case the query filters expect. It returns the number of
// records written. Imports and clears run one at a time.
func (d *dataImporter) ImportFromReader(ctx context.Context, reader io.Reader) (n int, err error) {
	d.track(1)
	defer func() {
		d.track(-1)
		d.metrics.ObserveImport(int64(n), err)
	}()

	var countries []model.Country
	if err := json.NewDecoder(reader).Decode(&countries); err != nil {
		return 0, fmt.Errorf("%w: failed to decode countries: %v", ErrInvalidImport, err)
	}

	seen := make(map[string]int, len(countries))
	docs := make([]query.Document, 0, len(countries))
	for i := range countries {
		c := &countries[i]
		c.Normalize()
		if c.Alpha3Code == "" {
			return 0, fmt.Errorf("%w: record %d has no alpha3Code", ErrInvalidImport, i)
		}
		if prev, dup := seen[c.Alpha3Code]; dup {
			return 0, fmt.Errorf("%w: alpha3Code %s repeated at records %d and %d", ErrInvalidImport, c.Alpha3Code, prev, i)
		}
		seen[c.Alpha3Code] = i
		docs = append(docs, c.Document())
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if err := d.loader.ReplaceAll(ctx, docs); err != nil {
		return 0, fmt.Errorf("failed to store countries: %w", err)
	}

	d.logger.Info("import completed", "records", len(docs))
	return len(docs), nil
}

func (d *dataImporter) GetImportStatus(ctx context.Context) (model.ImportStatus, error) {
	status := d.status()

	count, err := d.loader.Count(ctx, query.All())
	if err != nil {
		return model.ImportStatus{}, fmt.Errorf("failed to count countries: %w", err)
	}
	return model.ImportStatus{Status: status, Records: count}, nil
}

func (d *dataImporter) ClearDatabase(ctx context.Context) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if err := d.loader.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear countries: %w", err)
	}
	d.metrics.SetRecords(0)
	return nil
}
