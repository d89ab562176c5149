package planner

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

// buildPrompt renders the full tool catalog plus the operator request into
// a constrained prompt. The model is told to emit exactly one JSON object
// and nothing else; the response still goes through full decoding and
// validation because models drift.
func buildPrompt(registry *tools.Registry, input string) string {
	var sb strings.Builder

	sb.WriteString("You are a Kubernetes operations planner. ")
	sb.WriteString("Map the operator request to exactly one of the tools below.\n\n")
	sb.WriteString("Available tools:\n\n")

	for _, d := range registry.List() {
		fmt.Fprintf(&sb, "## %s\n%s\n", d.Name, d.Description)

		args, err := registry.DescribeArguments(d.Name)
		if err == nil {
			sb.WriteString("Arguments:\n")
			sb.WriteString(args)
			sb.WriteString("\n")
		}
		if len(d.Examples) > 0 {
			fmt.Fprintf(&sb, "Example requests: %s\n", strings.Join(d.Examples, "; "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Respond with a single JSON object and no other text:\n")
	sb.WriteString(`{
  "tool": "<tool name>",
  "arguments": {<arguments for the tool>},
  "presentation_hint": "table" | "detail" | "logs" | "text",
  "needs_explanation": true | false,
  "confidence": "high" | "medium" | "low"
}` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Use only tools and argument names listed above.\n")
	sb.WriteString("- Set confidence to low when the request is ambiguous.\n")
	sb.WriteString("- Set needs_explanation to true when the operator asked a question rather than issuing a command.\n\n")

	fmt.Fprintf(&sb, "Operator request: %s\n", input)

	return sb.String()
}
