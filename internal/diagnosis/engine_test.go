package diagnosis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newEngine(t *testing.T, gen *fakeGenerator) Service {
	t.Helper()
	var svc Service
	var err error
	if gen == nil {
		svc, err = NewService(nil, nil, nil)
	} else {
		svc, err = NewService(nil, gen, nil)
	}
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsInvertedCaps(t *testing.T) {
	_, err := NewService(&Config{MaxErrorLines: 5, MaxSampleLines: 10}, nil, nil)
	require.Error(t, err)
}

func TestDiagnoseCleanLogsShortCircuits(t *testing.T) {
	gen := &fakeGenerator{response: "should never be called"}
	svc := newEngine(t, gen)

	r := svc.Diagnose(context.Background(), "INFO started\nINFO listening on :8080\nWARN slow request", "web")

	assert.False(t, r.HasErrors)
	assert.Equal(t, 0, r.ErrorCount)
	assert.Equal(t, 1, r.WarningCount)
	assert.Empty(t, r.Suggestions)
	assert.Empty(t, r.CriticalIssues)
	assert.Equal(t, 0, gen.calls, "clean logs must not trigger an outbound call")
}

func TestDiagnoseCrashLoopOffline(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	svc := newEngine(t, gen)

	r := svc.DiagnoseLines(context.Background(),
		[]string{"INFO ok", "CrashLoopBackOff: container restarted"}, "payment-api")

	assert.True(t, r.HasErrors)
	assert.Equal(t, 1, r.ErrorCount)
	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, "container startup", r.Suggestions[0].Category)
	assert.Equal(t, SeverityCritical, r.Suggestions[0].Severity)
	assert.Contains(t, r.Suggestions[0].Commands[0], "payment-api")
	assert.Equal(t, []string{"CONTAINER STARTUP: 1 error(s)"}, r.CriticalIssues)
}

func TestDiagnoseNilGeneratorUsesFallback(t *testing.T) {
	svc := newEngine(t, nil)

	r := svc.Diagnose(context.Background(), "ERROR OOMKilled while processing batch", "worker")

	assert.True(t, r.HasErrors)
	require.NotEmpty(t, r.Suggestions)
	assert.Equal(t, "memory", r.Suggestions[0].Category)
}

func TestDiagnoseGeneratedSuggestions(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + `{"suggestions": [
		{"title": "Fix DB pool exhaustion", "category": "database", "severity": "high",
		 "description": "Connection pool is exhausted.",
		 "remediation_steps": ["Raise pool size", "Add connection timeouts"]},
		{"title": "Restart stuck workers", "category": "container startup", "severity": "critical",
		 "description": "Workers are crash looping.",
		 "remediation_steps": ["Roll back the last deploy"]}
	]}` + "\n```"}
	svc := newEngine(t, gen)

	r := svc.Diagnose(context.Background(),
		"ERROR DatabaseConnectionError: pool exhausted\nCrashLoopBackOff: worker restarted", "worker")

	require.Len(t, r.Suggestions, 2)
	// Ordered strongest severity first regardless of payload order.
	assert.Equal(t, SeverityCritical, r.Suggestions[0].Severity)
	assert.Equal(t, SeverityHigh, r.Suggestions[1].Severity)
	assert.Equal(t, 1, gen.calls)
}

func TestDiagnoseUndecodablePayloadFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "The pod looks unhealthy, try restarting it."},
		{"empty suggestions", `{"suggestions": []}`},
		{"missing array", `{"advice": "restart"}`},
		{"blank titles only", `{"suggestions": [{"title": "  "}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tt.response}
			svc := newEngine(t, gen)

			r := svc.Diagnose(context.Background(), "CrashLoopBackOff: restarted", "api")

			assert.True(t, r.HasErrors)
			require.NotEmpty(t, r.Suggestions)
			assert.Equal(t, "container startup", r.Suggestions[0].Category)
		})
	}
}

func TestDiagnoseNormalizesDriftedSuggestions(t *testing.T) {
	gen := &fakeGenerator{response: `{"suggestions": [
		{"title": "Something", "category": "made-up-bucket", "severity": "CATASTROPHIC",
		 "description": "d", "remediation_steps": ["s"]}
	]}`}
	svc := newEngine(t, gen)

	r := svc.Diagnose(context.Background(), "ERROR boom", "api")

	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, CategoryGeneral, r.Suggestions[0].Category)
	assert.Equal(t, SeverityMedium, r.Suggestions[0].Severity)
}

func TestDiagnoseCountsOverFullInput(t *testing.T) {
	// More error lines than the cap: categorization is bounded but the
	// totals are not.
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "ERROR request failed")
	}
	lines = append(lines, "WARN retrying", "WARN retrying")

	svc := newEngine(t, nil)
	r := svc.DiagnoseLines(context.Background(), lines, "api")

	assert.Equal(t, 30, r.ErrorCount)
	assert.Equal(t, 2, r.WarningCount)
}

func TestDiagnoseCriticalIssuesOnlyMatchedCriticalCategories(t *testing.T) {
	svc := newEngine(t, nil)

	r := svc.Diagnose(context.Background(),
		"ERROR connection refused to redis\nERROR OOMKilled", "cache-worker")

	// network is high severity and must not appear; memory is critical.
	require.Len(t, r.CriticalIssues, 1)
	assert.Equal(t, "MEMORY: 1 error(s)", r.CriticalIssues[0])
}

func TestDiagnoseBracketedErrorCode(t *testing.T) {
	svc := newEngine(t, nil)

	r := svc.Diagnose(context.Background(), "[E1042] request rejected upstream", "gateway")

	assert.True(t, r.HasErrors)
	assert.Equal(t, 1, r.ErrorCount)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	catalog := Catalog()

	// Line carries both crash-loop and network markers; the catalog
	// declares container startup first.
	category, severity := classify(catalog, "CrashLoopBackOff after connection refused")
	assert.Equal(t, "container startup", category)
	assert.Equal(t, SeverityCritical, severity)

	category, severity = classify(catalog, "something unrecognized exploded")
	assert.Equal(t, CategoryGeneral, category)
	assert.Equal(t, SeverityMedium, severity)
}

func TestCategoryCountsSumToClassifiedLines(t *testing.T) {
	lines := []string{
		"CrashLoopBackOff: restarted",
		"ERROR DatabaseConnectionError",
		"ERROR permission denied for token",
		"ERROR mysterious failure",
	}
	catalog := Catalog()

	counts := map[string]int{}
	for _, l := range lines {
		c, _ := classify(catalog, l)
		counts[c]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(lines), total)
}

func TestFallbackIsAdditive(t *testing.T) {
	out := Fallback([]string{
		"CrashLoopBackOff: restarted",
		"ERROR OOMKilled",
	}, "payment-api")

	require.Len(t, out, 2)
	categories := []string{out[0].Category, out[1].Category}
	assert.Contains(t, categories, "container startup")
	assert.Contains(t, categories, "memory")
	for _, sg := range out {
		assert.True(t, strings.Contains(strings.Join(sg.Commands, " "), "payment-api"))
	}
}

func TestFallbackGenericSuggestion(t *testing.T) {
	out := Fallback([]string{"ERROR mysterious failure"}, "api")

	require.Len(t, out, 1)
	assert.Equal(t, CategoryGeneral, out[0].Category)
}
