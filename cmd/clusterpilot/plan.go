package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/clusterpilot/internal/http"
)

var planNamespace string

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Plan one tool invocation from a natural-language request",
	Long: `Plan converts a free-text request into a single validated tool
invocation and prints it as JSON. Nothing is executed.

Examples:
  # Plan a pod listing
  clusterpilot plan "show all pods in namespace billing"

  # Plan with a default namespace
  clusterpilot plan --namespace prod "restart the payment-api deployment"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planNamespace, "namespace", "n", "", "default namespace for the planned operation")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	registry, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	decision, err := registry.Planner().Plan(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if planNamespace != "" {
		http.ApplyNamespace(registry.Tools(), decision, planNamespace)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(decision)
}
