// Package main implements the clusterpilot binary: an AI operations
// copilot that plans cluster commands from natural language and diagnoses
// log output.
//
// Usage:
//
//	# Start the HTTP API
//	clusterpilot serve
//
//	# One-shot planning from the terminal
//	clusterpilot plan "show all pods in namespace billing"
//
//	# Diagnose a log file without a running server
//	clusterpilot diagnose --resource payment-api pod.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/clusterpilot/internal/config"
	"github.com/fyrsmithlabs/clusterpilot/internal/logging"

	"go.uber.org/zap"
)

var (
	// configPath is the optional YAML config file path.
	configPath string
	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clusterpilot",
	Short: "AI operations copilot for Kubernetes clusters",
	Long: `clusterpilot translates natural-language operator requests into
schema-validated tool invocations and diagnoses raw log output into
categorized failure reports with remediation guidance.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(toolsCmd)
}

// loadConfig loads configuration from file, environment, and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}
