package diagnosis

import "strings"

// CategoryGeneral absorbs error lines no catalog pattern claims.
const CategoryGeneral = "general"

// Pattern classifies a log line into a category with a declared severity.
// Matching is case-insensitive substring presence.
type Pattern struct {
	Category string
	Severity string
	markers  []string
}

// Matches reports whether the line carries any of the pattern's markers.
// Callers pass the already-lowercased line to avoid re-folding per pattern.
func (p Pattern) Matches(lowered string) bool {
	for _, m := range p.markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// Catalog returns the classification patterns in evaluation order.
// Order is load-bearing: the first matching pattern claims the line, so
// specific cluster failure modes precede the broad infrastructure buckets.
func Catalog() []Pattern {
	return []Pattern{
		{Category: "container startup", Severity: SeverityCritical, markers: []string{
			"crashloopbackoff", "back-off restarting", "crash loop",
		}},
		{Category: "memory", Severity: SeverityCritical, markers: []string{
			"oomkilled", "out of memory", "memory limit exceeded", "cannot allocate memory",
		}},
		{Category: "image pull", Severity: SeverityCritical, markers: []string{
			"imagepullbackoff", "errimagepull", "pull access denied", "manifest unknown",
		}},
		{Category: "scheduling", Severity: SeverityHigh, markers: []string{
			"failedscheduling", "insufficient cpu", "insufficient memory", "unschedulable",
		}},
		{Category: "storage", Severity: SeverityHigh, markers: []string{
			"failedmount", "no space left on device", "disk pressure", "volume mount failed",
		}},
		{Category: "database", Severity: SeverityHigh, markers: []string{
			"databaseconnectionerror", "database connection", "sqlstate", "deadlock detected",
		}},
		{Category: "cache", Severity: SeverityHigh, markers: []string{
			"redisconnectionerror", "redis connection", "cache miss storm", "memcached",
		}},
		{Category: "authentication", Severity: SeverityHigh, markers: []string{
			"authenticationerror", "permissiondenied", "permission denied",
			"unauthorized", "forbidden", "invalid token",
		}},
		{Category: "network", Severity: SeverityHigh, markers: []string{
			"connection refused", "connection reset", "timeoutexception",
			"i/o timeout", "no route to host", "dns resolution failed",
		}},
		{Category: "probes", Severity: SeverityMedium, markers: []string{
			"liveness probe failed", "readiness probe failed", "startup probe failed",
		}},
		{Category: "configuration", Severity: SeverityMedium, markers: []string{
			"configmap", "secret not found", "missing environment variable",
			"invalid configuration",
		}},
	}
}

// Categories returns the category vocabulary in catalog order, with the
// implicit general bucket appended. Used to constrain generation prompts.
func Categories() []string {
	catalog := Catalog()
	out := make([]string, 0, len(catalog)+1)
	for _, p := range catalog {
		out = append(out, p.Category)
	}
	return append(out, CategoryGeneral)
}

// classify returns the first matching pattern's category and severity, in
// catalog order, or the general bucket when nothing claims the line.
func classify(catalog []Pattern, line string) (category, severity string) {
	lowered := strings.ToLower(line)
	for _, p := range catalog {
		if p.Matches(lowered) {
			return p.Category, p.Severity
		}
	}
	return CategoryGeneral, SeverityMedium
}
