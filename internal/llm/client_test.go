package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{Model: "m"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL")

	_, err = NewClient(Config{BaseURL: "http://localhost:11434/v1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.3, c.config.Temperature)
	assert.Equal(t, 2000, c.config.MaxTokens)
	assert.Equal(t, 30*time.Second, c.config.Timeout)
	assert.NotNil(t, c.logger)
}
