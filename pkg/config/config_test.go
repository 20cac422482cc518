package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.Catalog.FallbackWorkers)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "inventario-api", cfg.JWT.Issuer)
}

func TestLoad_DriverVacioExplicito(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestLoad_EnteroMalFormado(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "80a")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CATALOG_FALLBACK_WORKERS", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 8, cfg.Catalog.FallbackWorkers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int32(20), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestValidate(t *testing.T) {
	base := Config{
		Storage: StorageConfig{Driver: StoragePostgres},
		Catalog: CatalogConfig{FallbackWorkers: 1},
		DB:      DBConfig{MaxConns: 4, MinConns: 1},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Storage.Driver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Catalog.FallbackWorkers = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.DB.MinConns = 5
	assert.Error(t, bad.Validate())

	bad = base
	bad.App.Env = "production"
	assert.Error(t, bad.Validate())
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "inventario", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/inventario?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
