package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParse_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9000
  read_timeout: 3
database:
  driver: sqlite
  path: /tmp/blog.db
log:
  level: debug
  format: text
`)

	conf, err := parse(koanf.New("."), path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", conf.Server.Addr())
	assert.Equal(t, 3*time.Second, conf.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, conf.Server.WriteTimeout)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.Equal(t, "/tmp/blog.db", conf.Database.Path)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "text", conf.Log.Format)
	assert.Equal(t, "blog", conf.Telemetry.ServiceName)
	assert.Equal(t, 1.0, conf.Telemetry.SampleRatio)
}

func TestParse_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  host: from-file
  max_open_conns: 5
`)
	t.Setenv("BLOG_DATABASE_HOST", "from-env")
	t.Setenv("BLOG_DATABASE_MAX_OPEN_CONNS", "42")

	conf, err := parse(koanf.New("."), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.Database.Host)
	assert.Equal(t, 42, conf.Database.MaxOpenConns)
}

func TestParse_EnvTimeoutInSeconds(t *testing.T) {
	t.Setenv("BLOG_SERVER_READ_TIMEOUT", "7")

	conf, err := parse(koanf.New("."), "")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, conf.Server.ReadTimeout)
}

// Load 只生效一次，后续调用保留第一次的结果
func TestLoad_Once(t *testing.T) {
	first := writeConfig(t, "server:\n  port: 9100\n")
	second := writeConfig(t, "server:\n  port: 9200\n")

	require.NoError(t, Load(first))
	require.NotNil(t, Conf)
	assert.Equal(t, 9100, Conf.Server.Port)

	require.NoError(t, Load(second))
	assert.Equal(t, 9100, Conf.Server.Port)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := parse(koanf.New("."), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BLOG_SERVER_PORT":             "server.port",
		"BLOG_DATABASE_MAX_OPEN_CONNS": "database.max_open_conns",
		"BLOG_TELEMETRY_SAMPLE_RATIO":  "telemetry.sample_ratio",
		"BLOG_DEBUG":                   "debug",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
