package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func noDotenv(t *testing.T) {
	orig := dotenvFiles
	dotenvFiles = []string{filepath.Join(t.TempDir(), "missing.env")}
	t.Cleanup(func() { dotenvFiles = orig })
}

func TestLoadDefaults(t *testing.T) {
	noDotenv(t)
	for _, k := range []string{"MONGODB_URI", "PORT", "NODE_ENV", "STORE_DRIVER", "LOG_LEVEL", "REDIS_ADDR", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.IsDevelopment())
	require.False(t, cfg.Redis.Enabled())
	require.Equal(t, 100, cfg.Redis.RateLimit)
	require.Equal(t, time.Minute, cfg.Redis.Window)
}

func TestLoadFromEnv(t *testing.T) {
	noDotenv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/app")
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017/app", cfg.MongoURI)
	require.Equal(t, ":8080", cfg.Addr())
	require.True(t, cfg.IsDevelopment())
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, 30*time.Second, cfg.Redis.Window)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4000\nNODE_ENV=development\n"), 0o600))
	orig := dotenvFiles
	dotenvFiles = []string{path}
	t.Cleanup(func() { dotenvFiles = orig })
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("NODE_ENV", "production")
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.Port)
	require.Equal(t, "production", cfg.Env)
}

func TestLoadErrors(t *testing.T) {
	noDotenv(t)

	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := Load()
		require.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		t.Setenv("PORT", "abc")
		_, err := Load()
		require.Error(t, err)
	})
}
