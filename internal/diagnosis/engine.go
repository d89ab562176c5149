// Package diagnosis turns raw log text into categorized failure reports
// with remediation guidance.
//
// The engine never fails outward. The generation collaborator is optional
// and advisory: any failure on that path, from transport errors to
// undecodable output, degrades to deterministic template suggestions while
// counts and categorization stay exact.
package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clusterpilot/internal/llm"
)

const instrumentationName = "github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"

// errorMarkers is the broad "looks like an error" heuristic. It
// deliberately over-matches; classification decides what a line means.
var errorMarkers = []string{
	"error", "exception", "fail", "fatal", "panic",
	"crash", "backoff", "back-off", "oomkilled",
}

// bracketed error-code markers such as [E1001] or [ERR-42].
var errorCodeRE = regexp.MustCompile(`\[[a-z]{1,6}[-_]?[0-9]{2,5}\]`)

// Config configures the diagnosis engine.
type Config struct {
	// MaxErrorLines caps how many error lines are kept for
	// categorization and prompting (default: 20).
	MaxErrorLines int

	// MaxSampleLines caps how many raw lines are embedded in the
	// generation prompt (default: 10).
	MaxSampleLines int
}

// DefaultEngineConfig returns sensible defaults.
func DefaultEngineConfig() *Config {
	return &Config{
		MaxErrorLines:  20,
		MaxSampleLines: 10,
	}
}

// Service diagnoses log output. Both methods always return a usable
// result and have no error return.
type Service interface {
	// Diagnose splits one log blob into lines and diagnoses them.
	Diagnose(ctx context.Context, logs string, resource string) *Result

	// DiagnoseLines diagnoses pre-split log lines.
	DiagnoseLines(ctx context.Context, lines []string, resource string) *Result
}

type service struct {
	config    *Config
	catalog   []Pattern
	generator llm.Generator
	logger    *zap.Logger

	tracer      trace.Tracer
	meter       metric.Meter
	diagCounter metric.Int64Counter
}

// NewService creates a diagnosis engine. A nil generator is permitted and
// puts the engine in degraded mode where every diagnosis uses the
// deterministic fallback templates.
func NewService(cfg *Config, generator llm.Generator, logger *zap.Logger) (Service, error) {
	if cfg == nil {
		cfg = DefaultEngineConfig()
	}
	if cfg.MaxErrorLines <= 0 {
		cfg.MaxErrorLines = 20
	}
	if cfg.MaxSampleLines <= 0 {
		cfg.MaxSampleLines = 10
	}
	if cfg.MaxSampleLines > cfg.MaxErrorLines {
		return nil, fmt.Errorf("sample cap %d exceeds error line cap %d", cfg.MaxSampleLines, cfg.MaxErrorLines)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		config:    cfg,
		catalog:   Catalog(),
		generator: generator,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		meter:     otel.Meter(instrumentationName),
	}

	s.initMetrics()

	return s, nil
}

func (s *service) initMetrics() {
	var err error

	s.diagCounter, err = s.meter.Int64Counter(
		"clusterpilot.diagnosis.diagnoses_total",
		metric.WithDescription("Total number of log diagnoses"),
		metric.WithUnit("{diagnosis}"),
	)
	if err != nil {
		s.logger.Warn("failed to create diagnosis counter", zap.Error(err))
	}
}

func (s *service) Diagnose(ctx context.Context, logs string, resource string) *Result {
	return s.DiagnoseLines(ctx, strings.Split(logs, "\n"), resource)
}

func (s *service) DiagnoseLines(ctx context.Context, lines []string, resource string) *Result {
	ctx, span := s.tracer.Start(ctx, "diagnosis.diagnose")
	defer span.End()
	span.SetAttributes(
		attribute.Int("input_lines", len(lines)),
		attribute.String("resource", resource),
	)

	// Totals are computed over the entire input; the cap below only
	// bounds what is categorized and prompted.
	var errorCount, warningCount int
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isErrorLine(trimmed) {
			errorCount++
			if len(kept) < s.config.MaxErrorLines {
				kept = append(kept, trimmed)
			}
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), "warn") {
			warningCount++
		}
	}

	if errorCount == 0 {
		// Deterministic zero-cost path: no outbound call.
		span.SetAttributes(attribute.String("outcome", "clean"))
		s.count(ctx, "clean")
		return &Result{
			HasErrors:      false,
			WarningCount:   warningCount,
			Suggestions:    []FixSuggestion{},
			Summary:        "No errors detected in logs.",
			CriticalIssues: []string{},
		}
	}

	counts := make(map[string]int, len(s.catalog))
	for _, line := range kept {
		category, _ := classify(s.catalog, line)
		counts[category]++
	}

	criticalIssues := make([]string, 0, 2)
	for _, p := range s.catalog {
		if p.Severity == SeverityCritical && counts[p.Category] > 0 {
			criticalIssues = append(criticalIssues,
				fmt.Sprintf("%s: %d error(s)", strings.ToUpper(p.Category), counts[p.Category]))
		}
	}

	suggestions, source := s.suggest(ctx, kept, counts, resource)
	sort.SliceStable(suggestions, func(i, j int) bool {
		return rankOf(suggestions[i].Severity) < rankOf(suggestions[j].Severity)
	})

	span.SetAttributes(
		attribute.String("outcome", source),
		attribute.Int("error_count", errorCount),
		attribute.Int("categories", len(counts)),
	)
	s.count(ctx, source)

	s.logger.Info("diagnosis complete",
		zap.String("resource", resource),
		zap.String("suggestion_source", source),
		zap.Int("error_count", errorCount),
		zap.Int("warning_count", warningCount),
		zap.Int("suggestions", len(suggestions)),
	)

	return &Result{
		HasErrors:      true,
		ErrorCount:     errorCount,
		WarningCount:   warningCount,
		Suggestions:    suggestions,
		Summary:        summarize(errorCount, warningCount, s.catalog, counts),
		CriticalIssues: criticalIssues,
	}
}

// suggest tries the generation collaborator and degrades to templates on
// any failure. The returned source tag is for observability only.
func (s *service) suggest(ctx context.Context, kept []string, counts map[string]int, resource string) ([]FixSuggestion, string) {
	if s.generator == nil {
		return Fallback(kept, resource), "fallback_offline"
	}

	raw, err := s.generator.Generate(ctx, s.buildPrompt(kept, counts, resource))
	if err != nil {
		s.logger.Warn("generation failed, using fallback suggestions", zap.Error(err))
		return Fallback(kept, resource), "fallback_upstream"
	}

	suggestions, err := decodeSuggestions(raw)
	if err != nil {
		s.logger.Warn("undecodable suggestion payload, using fallback suggestions",
			zap.Error(err),
			zap.Int("payload_bytes", len(raw)),
		)
		return Fallback(kept, resource), "fallback_decode"
	}

	return suggestions, "generated"
}

func (s *service) buildPrompt(kept []string, counts map[string]int, resource string) string {
	var sb strings.Builder

	sb.WriteString("You are a Kubernetes reliability engineer. ")
	sb.WriteString("Diagnose the following log errors and suggest fixes.\n\n")

	if resource != "" {
		fmt.Fprintf(&sb, "Workload: %s\n", resource)
	}

	sb.WriteString("Error categories detected:\n")
	for _, p := range s.catalog {
		if counts[p.Category] > 0 {
			fmt.Fprintf(&sb, "- %s: %d line(s)\n", p.Category, counts[p.Category])
		}
	}
	if counts[CategoryGeneral] > 0 {
		fmt.Fprintf(&sb, "- %s: %d line(s)\n", CategoryGeneral, counts[CategoryGeneral])
	}

	sample := kept
	if len(sample) > s.config.MaxSampleLines {
		sample = sample[:s.config.MaxSampleLines]
	}
	sb.WriteString("\nRepresentative error lines:\n")
	for _, line := range sample {
		fmt.Fprintf(&sb, "%s\n", line)
	}

	sb.WriteString("\nRespond with a single JSON object and no other text:\n")
	sb.WriteString(`{"suggestions": [{"title": "...", "category": "...", "severity": "critical|high|medium|low", "description": "...", "remediation_steps": ["..."], "commands": ["..."], "documentation_link": "..."}]}` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Return 1 to 3 suggestions, strongest severity first.\n")
	fmt.Fprintf(&sb, "- category must be one of: %s.\n", strings.Join(Categories(), ", "))
	sb.WriteString("- remediation_steps are concrete and ordered; commands are optional.\n")

	return sb.String()
}

// decodeSuggestions parses collaborator output into suggestions,
// normalizing drift in severity and category. Any structural problem is
// an error so the caller can fall back.
func decodeSuggestions(raw string) ([]FixSuggestion, error) {
	cleaned := llm.StripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty payload")
	}

	var payload struct {
		Suggestions []FixSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	if len(payload.Suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions in payload")
	}

	vocabulary := make(map[string]bool)
	for _, c := range Categories() {
		vocabulary[c] = true
	}

	out := make([]FixSuggestion, 0, len(payload.Suggestions))
	for _, sg := range payload.Suggestions {
		if strings.TrimSpace(sg.Title) == "" {
			continue
		}
		sg.Severity = strings.ToLower(sg.Severity)
		if _, ok := severityRank[sg.Severity]; !ok {
			sg.Severity = SeverityMedium
		}
		if !vocabulary[sg.Category] {
			sg.Category = CategoryGeneral
		}
		out = append(out, sg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable suggestions in payload")
	}
	return out, nil
}

func isErrorLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, m := range errorMarkers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return errorCodeRE.MatchString(lowered)
}

// summarize builds the one-line digest. The dominant category is the
// most-matched one, resolved in catalog order so ties are deterministic.
func summarize(errorCount, warningCount int, catalog []Pattern, counts map[string]int) string {
	dominant := CategoryGeneral
	best := counts[CategoryGeneral]
	for _, p := range catalog {
		if counts[p.Category] > best {
			dominant = p.Category
			best = counts[p.Category]
		}
	}
	return fmt.Sprintf("Found %d error(s) and %d warning(s); dominant category: %s.",
		errorCount, warningCount, dominant)
}

func (s *service) count(ctx context.Context, outcome string) {
	if s.diagCounter == nil {
		return
	}
	s.diagCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
