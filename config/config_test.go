package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "flow.config.json", `{
		"http": {"host": "0.0.0.0", "port": 9000},
		"storage": {"driver": "sqlite", "dsn": "ledger.db"},
		"export": {"default_extension": ".ts"}
	}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, ".ts", cfg.Export.DefaultExtension)
	// untouched sections keep defaults
	assert.Equal(t, "memory", cfg.Event.Driver)
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "flow.toml", `
[http]
port = 7070

[blob]
driver = "filesystem"
directory = "out"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, "localhost", cfg.HTTP.Host)
	assert.Equal(t, "filesystem", cfg.Blob.Driver)
	assert.Equal(t, "out", cfg.Blob.Directory)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeFile(t, "bad.json", `{"http":`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FLOW_HTTP_PORT", "9191")
	t.Setenv("FLOW_DEBUG", "1")
	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, 9191, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestHTTPAddr_DefaultPort(t *testing.T) {
	assert.Equal(t, ":8080", HTTPConfig{}.Addr())
}
