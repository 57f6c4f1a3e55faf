package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolate points the XDG lookups at an empty directory so a developer's
// own config file doesn't leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("WORDQUIZ_CONFIG", "")
	return dir
}

const validYAML = `
server:
  base_url: "https://vocab.example.com"
  timeout: "5s"

auth:
  username: "mina"
  password: "secret"

session:
  auto_advance: "1500ms"
  category: "travel"

audio:
  mute: true
  command: "mpv --really-quiet {file}"

journal:
  disabled: true

log:
  level: "debug"
  format: "json"

practice:
  coach: "llm"
`

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, time.Second, cfg.Session.AutoAdvance)
	assert.False(t, cfg.Audio.Mute)
	assert.Empty(t, cfg.Auth.Username)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, CoachServer, cfg.Practice.Coach)
}

func TestLoad_ValidYAML(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://vocab.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "mina", cfg.Auth.Username)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.AutoAdvance)
	assert.Equal(t, "travel", cfg.Session.Category)
	assert.True(t, cfg.Audio.Mute)
	assert.Equal(t, "mpv --really-quiet {file}", cfg.Audio.Command)
	assert.True(t, cfg.Journal.Disabled)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, CoachLLM, cfg.Practice.Coach)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("WORDQUIZ_SERVER_URL", "http://127.0.0.1:8000")
	t.Setenv("WORDQUIZ_AUTO_ADVANCE", "-1s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Server.BaseURL)
	assert.Equal(t, -time.Second, cfg.Session.AutoAdvance)
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	isolate(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("WORDQUIZ_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mina", cfg.Auth.Username)
}

func TestLoad_DefaultPathUsedWhenPresent(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wordquiz"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordquiz", "config.yaml"), []byte(validYAML), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://vocab.example.com", cfg.Server.BaseURL)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad url", "server:\n  base_url: \"not a url\"\n", "server.base_url"},
		{"unknown coach", "practice:\n  coach: \"oracle\"\n", "practice.coach"},
		{"unknown level", "log:\n  level: \"loud\"\n", "log.level"},
		{"user without password", "auth:\n  username: \"mina\"\n", "auth.password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeYAML(t, t.TempDir(), tt.yaml)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogPath(t *testing.T) {
	assert.Equal(t, "/tmp/x.log", mustLogPath(t, LogConfig{Path: "/tmp/x.log"}))

	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "wordquiz", "wordquiz.log"), mustLogPath(t, LogConfig{}))
}

func mustLogPath(t *testing.T, c LogConfig) string {
	t.Helper()
	p, err := c.LogPath()
	require.NoError(t, err)
	return p
}
