package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 8080
  timeout:
    read: 5s
    write: 10s
    idle: 60s
    readHeader: 2s
storage:
  driver: memory
grpc:
  port: "50051"
shutdown:
  timeout: 5s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_LoadMemoryDriver(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := configloader.LoadFiles[*Config]("product", path, "")

	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path, "metrics path defaults")
	assert.NotContains(t, cfg.String(), "--- Database ---")
}

func TestConfig_PostgresRequiresDatabase(t *testing.T) {
	path := writeConfig(t, validYAML)
	t.Setenv("PRODUCT_STORAGE_DRIVER", "postgres")

	_, err := configloader.LoadFiles[*Config]("product", path, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is not configured")
}

func TestConfig_EnvOverridesAndMasksURL(t *testing.T) {
	path := writeConfig(t, validYAML)
	t.Setenv("PRODUCT_STORAGE_DRIVER", "postgres")
	t.Setenv("PRODUCT_DATABASE_URL", "postgres://user:secret@db:5432/products")
	t.Setenv("PRODUCT_DATABASE_TIMEOUT", "3s")

	cfg, err := configloader.LoadFiles[*Config]("product", path, "")

	require.NoError(t, err)
	assert.True(t, cfg.Storage.UsesPostgres())
	assert.NotContains(t, cfg.String(), "secret")
	assert.Contains(t, cfg.String(), "****@db:5432/products")
}

func TestConfig_ShutdownIsValidated(t *testing.T) {
	path := writeConfig(t, validYAML)
	t.Setenv("PRODUCT_SHUTDOWN_TIMEOUT", "0s")

	_, err := configloader.LoadFiles[*Config]("product", path, "")

	require.Error(t, err)
}
