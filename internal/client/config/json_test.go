package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = append([]string{"cmd"}, args...)
}

func TestParseJson_OverlaysFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base":        "https://api.example.com",
		"origin":          "https://kambaz.vercel.app",
		"todos_api":       "https://todos.example.com/lab5/todos",
		"request_timeout": "7s",
		"session_db":      "/tmp/s.db",
		"log_backend":     "zap",
	})
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIBase)
	assert.Equal(t, "https://kambaz.vercel.app", cfg.Origin)
	assert.Equal(t, "https://todos.example.com/lab5/todos", cfg.TodosAPI)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/s.db", cfg.SessionDB)
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "info", cfg.LogLevel, "absent keys keep defaults")
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	want := *cfg
	parseJson(cfg)

	assert.Equal(t, want, *cfg)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	withArgs(t, "--config="+filepath.Join(t.TempDir(), "nope.json"))

	require.Panics(t, func() { parseJson(&Config{}) })
}

func TestParseJson_BadJSONPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	withArgs(t, "-config", path)

	require.Panics(t, func() { parseJson(&Config{}) })
}
