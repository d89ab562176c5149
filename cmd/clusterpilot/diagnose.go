package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"
	"github.com/fyrsmithlabs/clusterpilot/internal/llm"
)

var (
	diagnoseResource string
	diagnoseOffline  bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [file]",
	Short: "Diagnose log output from a file or stdin",
	Long: `Diagnose reads log text, extracts and categorizes error lines, and
prints a structured diagnosis with remediation suggestions as JSON.

Examples:
  # Diagnose a log file
  clusterpilot diagnose --resource payment-api pod.log

  # Diagnose from stdin
  kubectl logs payment-api | clusterpilot diagnose --resource payment-api -

  # Skip the AI path entirely and use template suggestions
  clusterpilot diagnose --offline pod.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseResource, "resource", "", "name of the workload the logs belong to")
	diagnoseCmd.Flags().BoolVar(&diagnoseOffline, "offline", false, "use deterministic template suggestions without calling the model")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
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

	logs, err := readLogs(args)
	if err != nil {
		return err
	}

	var generator llm.Generator
	if !diagnoseOffline {
		client, err := llm.NewClient(llm.Config{
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey.Value(),
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout.Duration(),
		}, logger)
		if err != nil {
			return fmt.Errorf("creating generation client: %w", err)
		}
		generator = client
	}

	engine, err := diagnosis.NewService(&diagnosis.Config{
		MaxErrorLines:  cfg.Diagnosis.MaxErrorLines,
		MaxSampleLines: cfg.Diagnosis.MaxSampleLines,
	}, generator, logger)
	if err != nil {
		return fmt.Errorf("creating diagnosis engine: %w", err)
	}

	result := engine.Diagnose(cmd.Context(), logs, diagnoseResource)

	logger.Debug("diagnosis finished",
		zap.Bool("has_errors", result.HasErrors),
		zap.Int("error_count", result.ErrorCount),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// readLogs reads from the named file, or stdin for "-" or no argument.
func readLogs(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
