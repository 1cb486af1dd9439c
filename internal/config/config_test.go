package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_OK(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  host: 127.0.0.1
  port: 3306
  user: root
  password: root
  dbname: bench_test
  charset: utf8mb4
gpt_engineer:
  default_system_version: https://run.example.test
  request_timeout_sec: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "bench_test", cfg.Database.DBName)
	assert.Equal(t, "https://run.example.test", cfg.GPTEngineer.DefaultSystemVersion)
	assert.Equal(t, 10, cfg.GPTEngineer.RequestTimeoutSec)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_ValidationFails(t *testing.T) {
	// 缺 server.port 和 database.user
	path := writeConfig(t, `
server:
  port: 0
database:
  host: 127.0.0.1
  port: 3306
  dbname: bench_test
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_BadYaml(t *testing.T) {
	path := writeConfig(t, "server: [not: closed")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
