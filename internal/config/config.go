package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	ServerPort string

	StoreBackend string

	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// SeedFile, when set, is imported into the store on start-up.
	SeedFile string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendRedis)),
		RedisAddress:    getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "countries"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "countries_db"),
		MongoCollection: getEnv("MONGO_COLLECTION", "countries"),
		SeedFile:        os.Getenv("SEED_FILE"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q", db)
		}
		cfg.RedisDB = n
	}

	switch cfg.StoreBackend {
	case BackendRedis, BackendMongo, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
