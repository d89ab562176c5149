// Package config provides configuration loading for clusterpilot.
//
// Configuration is loaded from a YAML file, then overridden by environment
// variables, then backfilled with defaults. See LoadWithFile for precedence
// rules and the environment variable mapping.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete clusterpilot configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	LLM           LLMConfig           `koanf:"llm"`
	Diagnosis     DiagnosisConfig     `koanf:"diagnosis"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"http_port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LLMConfig holds generation collaborator configuration.
//
// The planner and diagnosis engine talk to any OpenAI-compatible
// chat-completions endpoint (OpenAI, vLLM, Ollama, LiteLLM proxies).
type LLMConfig struct {
	BaseURL     string   `koanf:"base_url"`
	Model       string   `koanf:"model"`
	APIKey      Secret   `koanf:"api_key"`
	Temperature float64  `koanf:"temperature"`
	MaxTokens   int      `koanf:"max_tokens"`
	Timeout     Duration `koanf:"timeout"`
}

// DiagnosisConfig holds log diagnosis engine configuration.
//
// MaxErrorLines bounds how many error-like lines are kept for
// classification; MaxSampleLines bounds how many raw lines are embedded
// in the generation prompt. Both bound prompt size, not counting:
// error/warning totals are always computed over the full input.
type DiagnosisConfig struct {
	MaxErrorLines  int `koanf:"max_error_lines"`
	MaxSampleLines int `koanf:"max_sample_lines"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ObservabilityConfig holds OpenTelemetry configuration.
type ObservabilityConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
	Endpoint    string `koanf:"endpoint"`
	Insecure    bool   `koanf:"insecure"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8384,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			MaxTokens:   2000,
			Timeout:     Duration(30 * time.Second),
		},
		Diagnosis: DiagnosisConfig{
			MaxErrorLines:  20,
			MaxSampleLines: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Observability: ObservabilityConfig{
			Enabled:     false,
			ServiceName: "clusterpilot",
			Endpoint:    "localhost:4317",
			Insecure:    true,
		},
	}
}

// applyDefaults fills zero values with defaults after unmarshaling.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = def.LLM.BaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = def.LLM.Temperature
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = def.LLM.Timeout
	}

	if cfg.Diagnosis.MaxErrorLines == 0 {
		cfg.Diagnosis.MaxErrorLines = def.Diagnosis.MaxErrorLines
	}
	if cfg.Diagnosis.MaxSampleLines == 0 {
		cfg.Diagnosis.MaxSampleLines = def.Diagnosis.MaxSampleLines
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = def.Observability.ServiceName
	}
	if cfg.Observability.Endpoint == "" {
		cfg.Observability.Endpoint = def.Observability.Endpoint
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if c.LLM.BaseURL == "" {
		return errors.New("llm base URL is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("invalid llm temperature: %v (must be 0-2)", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("invalid llm max tokens: %d", c.LLM.MaxTokens)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm timeout must be positive")
	}

	if c.Diagnosis.MaxErrorLines < 1 {
		return fmt.Errorf("invalid diagnosis max error lines: %d", c.Diagnosis.MaxErrorLines)
	}
	if c.Diagnosis.MaxSampleLines < 1 {
		return fmt.Errorf("invalid diagnosis max sample lines: %d", c.Diagnosis.MaxSampleLines)
	}
	if c.Diagnosis.MaxSampleLines > c.Diagnosis.MaxErrorLines {
		return fmt.Errorf("diagnosis max sample lines (%d) cannot exceed max error lines (%d)",
			c.Diagnosis.MaxSampleLines, c.Diagnosis.MaxErrorLines)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q (must be json or console)", c.Logging.Format)
	}

	if c.Observability.Enabled && c.Observability.Endpoint == "" {
		return errors.New("observability endpoint required when enabled")
	}

	return nil
}
