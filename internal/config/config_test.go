package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestDefaults(t *testing.T) {
	is := is.New(t)
	isolate(t)

	cfg, err := load(viper.New())
	is.NoErr(err)
	is.Equal(cfg.Storage.Backend, "file")
	is.Equal(cfg.Storage.Key, "mapLayers")
	is.Equal(cfg.Map.CenterLat, -15.77972)
	is.Equal(cfg.Map.CenterLng, -47.92972)
	is.Equal(cfg.Map.Span, 20.0)
	is.Equal(cfg.Metrics.Addr, "")
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	isolate(t)
	t.Setenv("GEOSKETCH_STORAGE_BACKEND", "sqlite")
	t.Setenv("GEOSKETCH_STORAGE_SQLITE_DSN", ":memory:")
	t.Setenv("GEOSKETCH_LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	is.NoErr(err)
	is.Equal(cfg.Storage.Backend, "sqlite")
	is.Equal(cfg.Storage.SQLiteDSN, ":memory:")
	is.Equal(cfg.Log.Level, "debug")
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	home := isolate(t)

	dir := filepath.Join(home, ".config", "geosketch")
	is.NoErr(os.MkdirAll(dir, 0o755))
	is.NoErr(os.WriteFile(filepath.Join(dir, "geosketch.yaml"), []byte("storage:\n  backend: memory\n  key: other\nmap:\n  span: 2.5\n"), 0o644))

	cfg, err := load(viper.New())
	is.NoErr(err)
	is.Equal(cfg.Storage.Backend, "memory")
	is.Equal(cfg.Storage.Key, "other")
	is.Equal(cfg.Map.Span, 2.5)
}

func TestInvalidEnvFailsLoad(t *testing.T) {
	is := is.New(t)
	isolate(t)
	t.Setenv("GEOSKETCH_STORAGE_BACKEND", "etcd")

	_, err := load(viper.New())
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "storage.backend"))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	is := is.New(t)

	cfg := Config{
		Storage: StorageConfig{Backend: "postgres"},
		Map:     MapConfig{CenterLat: 120, Span: 0},
	}
	err := cfg.Validate()
	is.True(err != nil)
	for _, want := range []string{"storage.key", "storage.postgres_dsn", "map.center_lat", "map.span"} {
		is.True(strings.Contains(err.Error(), want))
	}
}
