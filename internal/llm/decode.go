package llm

import "strings"

// fence markers models commonly wrap JSON output in, longest first so the
// language-tagged variants win over the bare fence.
var fenceOpeners = []string{"```json", "```JSON", "```"}

// StripFences removes an optional fenced-code wrapper from model output
// and trims surrounding whitespace. Unfenced input passes through
// unchanged, so the function is idempotent.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, opener := range fenceOpeners {
		if !strings.HasPrefix(s, opener) {
			continue
		}
		s = strings.TrimPrefix(s, opener)
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		return strings.TrimSpace(s)
	}
	return s
}
