// Package llm provides the generation collaborator client.
//
// The client wraps langchaingo's OpenAI-compatible chat API so the planner
// and diagnosis engine can talk to OpenAI, vLLM, Ollama, or any proxy that
// speaks the same protocol. Every call runs under a bounded timeout, and a
// timeout surfaces the same as any other upstream failure: callers only
// ever branch on ErrUnavailable.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// ErrUnavailable indicates the generation endpoint could not be reached or
// did not answer within the configured timeout.
var ErrUnavailable = errors.New("generation endpoint unavailable")

// Generator is the interface consumed by the planner and diagnosis engine.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds generation client configuration.
type Config struct {
	// BaseURL is the OpenAI-compatible endpoint base URL.
	BaseURL string

	// Model is the model identifier passed to the endpoint.
	Model string

	// APIKey authenticates against the endpoint. Optional for local
	// servers; langchaingo requires a token, so a placeholder is used.
	APIKey string

	// Temperature is the sampling temperature (default: 0.3).
	Temperature float64

	// MaxTokens bounds the response size (default: 2000).
	MaxTokens int

	// Timeout bounds each call (default: 30s).
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   2000,
		Timeout:     30 * time.Second,
	}
}

// Client implements Generator against an OpenAI-compatible endpoint.
type Client struct {
	llm    llms.Model
	config Config
	logger *zap.Logger
}

// NewClient creates a generation client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "placeholder"
	}

	model, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	return &Client{
		llm:    model,
		config: cfg,
		logger: logger,
	}, nil
}

// Generate sends a single prompt and returns the raw response text.
//
// Transport failures, timeouts, and empty responses all map to
// ErrUnavailable; the response text is otherwise returned verbatim and the
// caller owns decoding it.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	out, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(c.config.Temperature),
		llms.WithMaxTokens(c.config.MaxTokens),
	)
	if err != nil {
		c.logger.Warn("generation call failed",
			zap.String("model", c.config.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if out == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	c.logger.Debug("generation call complete",
		zap.String("model", c.config.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(out)),
	)

	return out, nil
}
