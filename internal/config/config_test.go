package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, "local.yaml", `
env: dev
storage_path: storage/students.db
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "storage/students.db", cfg.StoragePath)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "localhost:8082", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadReadsEveryField(t *testing.T) {
	path := writeFile(t, "prod.yaml", `
env: prod
debug: true
storage_path: /var/lib/students.db
storage_driver: gorm
http_server:
  address: 0.0.0.0:80
  read_timeout: 3s
  write_timeout: 4s
  idle_timeout: 30s
  shutdown_timeout: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.True(t, cfg.Debug)
	assert.Equal(t, DriverGORM, cfg.StorageDriver)
	assert.Equal(t, "0.0.0.0:80", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 4*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.IdleTimeout)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "local.yaml", `
env: dev
storage_path: a.db
http_server:
  address: localhost:8082
`)
	t.Setenv("STORAGE_PATH", "b.db")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "b.db", cfg.StoragePath)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
}

func TestLoadMissingRequiredField(t *testing.T) {
	path := writeFile(t, "broken.yaml", `
env: dev
http_server:
  address: localhost:8082
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadUnknownDriver(t *testing.T) {
	path := writeFile(t, "local.yaml", `
env: dev
storage_path: a.db
storage_driver: postgres
http_server:
  address: localhost:8082
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")), "missing file is fine")

	const key = "STUDENTS_WEB_DOTENV_TEST"
	path := writeFile(t, ".env", key+"=from-dotenv\n")
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}
