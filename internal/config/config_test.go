package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE_BACKEND", "REDIS_ADDRESS", "REDIS_DB", "REDIS_KEY_PREFIX", "MONGO_DATABASE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "countries", cfg.RedisKeyPrefix)
	assert.Equal(t, "countries_db", cfg.MongoDatabase)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "postgres")
		_, err := Load()
		assert.ErrorContains(t, err, "STORE_BACKEND")
	})

	t.Run("negative redis db", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "memory")
		t.Setenv("REDIS_DB", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "REDIS_DB")
	})
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("STORE_BACKEND", "memory")

		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COUNTRIES_GREETING=\"unterminated\n"), 0o600))
		chdir(t, dir)
		t.Setenv("STORE_BACKEND", "memory")

		_, err := Load()
		assert.ErrorContains(t, err, ".env")
	})
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
