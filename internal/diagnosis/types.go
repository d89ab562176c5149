package diagnosis

// Severity levels, ordered strongest first by Rank.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// rankOf treats unknown severities as weakest so model drift cannot
// promote a suggestion above well-formed ones.
func rankOf(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}

// FixSuggestion is one remediation recommendation, produced either by the
// generation collaborator or by the deterministic fallback templates.
type FixSuggestion struct {
	Title               string   `json:"title"`
	Category            string   `json:"category"`
	Severity            string   `json:"severity"`
	Description         string   `json:"description"`
	RemediationSteps    []string `json:"remediation_steps"`
	Commands            []string `json:"commands,omitempty"`
	DocumentationLink   string   `json:"documentation_link,omitempty"`
	RelatedErrorSamples []string `json:"related_error_samples,omitempty"`
}

// Result is the aggregate outcome of one diagnosis call.
type Result struct {
	// HasErrors is false only when no line matched the error heuristic.
	HasErrors bool `json:"has_errors"`

	// ErrorCount and WarningCount are computed over the entire input,
	// not just the capped subset handed to categorization.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`

	// Suggestions are ordered strongest severity first.
	Suggestions []FixSuggestion `json:"suggestions"`

	// Summary is a one-line digest of the diagnosis.
	Summary string `json:"summary"`

	// CriticalIssues lists "CATEGORY: N error(s)" for every category with
	// declared critical severity and at least one matched line.
	CriticalIssues []string `json:"critical_issues"`
}
