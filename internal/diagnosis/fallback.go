package diagnosis

import (
	"fmt"
	"strings"
)

// fallbackRule pairs high-signal markers with a hand-authored suggestion.
// Unlike catalog classification, fallback rules are additive: every rule
// whose marker appears anywhere in the input fires.
type fallbackRule struct {
	markers []string
	build   func(resource string) FixSuggestion
}

func fallbackRules() []fallbackRule {
	return []fallbackRule{
		{
			markers: []string{"crashloopbackoff", "back-off restarting", "crash loop"},
			build: func(resource string) FixSuggestion {
				return FixSuggestion{
					Title:       "Container restart loop",
					Category:    "container startup",
					Severity:    SeverityCritical,
					Description: fmt.Sprintf("%s is stuck restarting. The container exits shortly after start, usually from a failing entrypoint, a missing dependency, or a failing health check.", resource),
					RemediationSteps: []string{
						"Inspect the logs of the previous container instance for the exit reason",
						"Check recent events on the pod for probe failures or exit codes",
						"Verify required config and secrets are mounted and readable",
						"Roll back the most recent image or config change if the loop started after a deploy",
					},
					Commands: []string{
						fmt.Sprintf("kubectl logs %s --previous", resource),
						fmt.Sprintf("kubectl describe pod %s", resource),
					},
					DocumentationLink: "https://kubernetes.io/docs/tasks/debug/debug-application/debug-pods/",
				}
			},
		},
		{
			markers: []string{"oomkilled", "out of memory", "memory limit exceeded"},
			build: func(resource string) FixSuggestion {
				return FixSuggestion{
					Title:       "Out of memory kill",
					Category:    "memory",
					Severity:    SeverityCritical,
					Description: fmt.Sprintf("%s exceeded its memory limit and was killed. Either the limit is too low or the workload is leaking memory.", resource),
					RemediationSteps: []string{
						"Compare actual memory usage against the container's limit",
						"Raise the memory limit if the working set legitimately grew",
						"Profile the application for leaks if usage climbs without bound",
					},
					Commands: []string{
						fmt.Sprintf("kubectl top pod %s", resource),
						fmt.Sprintf("kubectl describe pod %s", resource),
					},
				}
			},
		},
		{
			markers: []string{"imagepullbackoff", "errimagepull", "pull access denied"},
			build: func(resource string) FixSuggestion {
				return FixSuggestion{
					Title:       "Image pull failure",
					Category:    "image pull",
					Severity:    SeverityCritical,
					Description: fmt.Sprintf("%s cannot pull its container image. The tag may not exist or the registry credentials are missing or expired.", resource),
					RemediationSteps: []string{
						"Verify the image name and tag exist in the registry",
						"Check the imagePullSecrets referenced by the pod",
						"Confirm the node can reach the registry",
					},
					Commands: []string{
						fmt.Sprintf("kubectl describe pod %s", resource),
					},
				}
			},
		},
		{
			markers: []string{"connection refused", "connection reset", "i/o timeout", "timeoutexception", "no route to host"},
			build: func(resource string) FixSuggestion {
				return FixSuggestion{
					Title:       "Downstream connectivity failure",
					Category:    "network",
					Severity:    SeverityHigh,
					Description: fmt.Sprintf("%s cannot reach a dependency. The target service may be down, misaddressed, or blocked by a network policy.", resource),
					RemediationSteps: []string{
						"Confirm the dependency service is running and has endpoints",
						"Check the hostname and port in the failing connection string",
						"Review network policies between the two namespaces",
					},
					Commands: []string{
						"kubectl get endpoints",
						fmt.Sprintf("kubectl logs %s", resource),
					},
				}
			},
		},
		{
			markers: []string{"permission denied", "permissiondenied", "unauthorized", "forbidden", "authenticationerror"},
			build: func(resource string) FixSuggestion {
				return FixSuggestion{
					Title:       "Authorization failure",
					Category:    "authentication",
					Severity:    SeverityHigh,
					Description: fmt.Sprintf("%s is being denied access to a resource or API. Credentials may be missing, expired, or lacking a required role.", resource),
					RemediationSteps: []string{
						"Identify which credential or service account the failing call uses",
						"Verify the referenced secret exists and is current",
						"Check role bindings grant the operation being attempted",
					},
				}
			},
		},
	}
}

// Fallback produces deterministic suggestions from error lines without any
// outbound call. Every rule whose marker appears fires; when none fire a
// single general suggestion is returned so a degraded diagnosis is never
// empty. The function cannot fail.
func Fallback(errorLines []string, resource string) []FixSuggestion {
	if resource == "" {
		resource = "the workload"
	}

	joined := strings.ToLower(strings.Join(errorLines, "\n"))

	var out []FixSuggestion
	for _, rule := range fallbackRules() {
		for _, m := range rule.markers {
			if strings.Contains(joined, m) {
				out = append(out, rule.build(resource))
				break
			}
		}
	}

	if len(out) == 0 {
		out = append(out, FixSuggestion{
			Title:       "Unclassified errors in logs",
			Category:    CategoryGeneral,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("Errors were detected for %s but did not match a known failure signature. Review the raw lines for the underlying cause.", resource),
			RemediationSteps: []string{
				"Read the surrounding log context for each error line",
				"Check recent events and restarts on the workload",
			},
			Commands: []string{
				fmt.Sprintf("kubectl logs %s", resource),
			},
		})
	}

	return out
}
