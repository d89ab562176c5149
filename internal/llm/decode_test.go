package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	payload := `{"tool":"get_pods"}`

	tests := []struct {
		name string
		in   string
	}{
		{"unfenced", payload},
		{"bare fence", "```\n" + payload + "\n```"},
		{"json fence", "```json\n" + payload + "\n```"},
		{"uppercase fence", "```JSON\n" + payload + "\n```"},
		{"surrounding whitespace", "\n\n  ```json\n" + payload + "\n```  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, payload, StripFences(tt.in))
		})
	}
}

func TestStripFencesIdempotent(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"
	once := StripFences(in)
	assert.Equal(t, once, StripFences(once))
}
