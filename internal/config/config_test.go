package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8384, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout.Duration())
	assert.Equal(t, 20, cfg.Diagnosis.MaxErrorLines)
	assert.Equal(t, 10, cfg.Diagnosis.MaxSampleLines)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "negative temperature",
			mutate:  func(c *Config) { c.LLM.Temperature = -1 },
			wantErr: "invalid llm temperature",
		},
		{
			name:    "missing model",
			mutate:  func(c *Config) { c.LLM.Model = "" },
			wantErr: "llm model is required",
		},
		{
			name: "sample cap exceeds line cap",
			mutate: func(c *Config) {
				c.Diagnosis.MaxErrorLines = 5
				c.Diagnosis.MaxSampleLines = 10
			},
			wantErr: "cannot exceed max error lines",
		},
		{
			name:    "bad logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  http_port: 9999
llm:
  model: test-model
  temperature: 0.1
diagnosis:
  max_error_lines: 40
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, 40, cfg.Diagnosis.MaxErrorLines)
	// Unset values get defaults.
	assert.Equal(t, 10, cfg.Diagnosis.MaxSampleLines)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
}

func TestLoadWithFileEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: 9999\n"), 0o600))

	t.Setenv("CLUSTERPILOT_SERVER_HTTP_PORT", "7777")
	t.Setenv("CLUSTERPILOT_LLM_MODEL", "env-model")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "env-model", cfg.LLM.Model)
}

func TestLoadWithFileMissingFile(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "server.http_port", transformEnvKey("CLUSTERPILOT_SERVER_HTTP_PORT"))
	assert.Equal(t, "llm.base_url", transformEnvKey("CLUSTERPILOT_LLM_BASE_URL"))
	assert.Equal(t, "diagnosis.max_error_lines", transformEnvKey("CLUSTERPILOT_DIAGNOSIS_MAX_ERROR_LINES"))
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("super-sensitive")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "super-sensitive", s.Value())
	assert.True(t, s.IsSet())

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-sensitive")
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("45s")))
	assert.Equal(t, 45*time.Second, d.Duration())

	require.Error(t, d.UnmarshalText([]byte("-1s")))
}
