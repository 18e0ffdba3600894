package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"countries-inquiry-service/internal/config"
	"countries-inquiry-service/internal/handler"
	"countries-inquiry-service/internal/logger"
	"countries-inquiry-service/internal/metrics"
	"countries-inquiry-service/internal/service"
	"countries-inquiry-service/internal/store/memory"
	"countries-inquiry-service/internal/store/mongo"
	"countries-inquiry-service/internal/store/redis"
)

// backend is what every store implementation offers the service.
type backend interface {
	service.RecordStore
	service.RecordLoader
	handler.Pinger
	Close(ctx context.Context) error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	m := metrics.New(prometheus.DefaultRegisterer)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := openStore(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	log.Info("store ready", "backend", cfg.StoreBackend)

	// Initialize services
	dataImporter := service.NewDataImporter(store,
		service.WithImporterLogger(log),
		service.WithImporterMetrics(m),
	)
	countryQuery := service.NewCountryQuery(store,
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	if cfg.SeedFile != "" {
		if err := seed(context.Background(), dataImporter, cfg.SeedFile); err != nil {
			log.Error("failed to seed store", "file", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
	}

	app := handler.NewApp(os.Stdout)
	handler.SetupRoutes(app, handler.Routes{
		Countries: handler.NewCountryHandler(countryQuery),
		Import:    handler.NewImportHandler(dataImporter),
		Health:    handler.NewHealthHandler(store),
		Gatherer:  prometheus.DefaultGatherer,
	})

	// Graceful shutdown channel
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server started", "port", cfg.ServerPort)

	<-shutdownChan
	log.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		log.Error("failed to close store", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		return redis.Connect(ctx, &goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisKeyPrefix)
	case config.BackendMongo:
		return mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func seed(ctx context.Context, importer service.DataImporter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	_, err = importer.ImportFromReader(ctx, f)
	return err
}
