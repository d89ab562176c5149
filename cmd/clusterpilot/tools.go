package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

var toolsVerbose bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the operations clusterpilot can plan",
	Long: `Tools prints the built-in operation catalog: every tool name the
planner may choose, with its argument contract.

Examples:
  # Short listing
  clusterpilot tools

  # Include argument contracts and example phrasings
  clusterpilot tools --verbose`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().BoolVarP(&toolsVerbose, "verbose", "v", false, "show argument contracts and examples")
}

func runTools(_ *cobra.Command, _ []string) error {
	registry, err := tools.NewRegistry(tools.Builtin())
	if err != nil {
		return err
	}

	if !toolsVerbose {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tRESULT\tDESCRIPTION")
		for _, d := range registry.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Result, d.Description)
		}
		return w.Flush()
	}

	for _, d := range registry.List() {
		fmt.Printf("%s\n  %s\n", d.Name, d.Description)

		args, err := registry.DescribeArguments(d.Name)
		if err == nil && args != "(no arguments)" {
			fmt.Println("  Arguments:")
			fmt.Printf("    %s\n", indentLines(args))
		}
		for _, ex := range d.Examples {
			fmt.Printf("  Example: %s\n", ex)
		}
		fmt.Println()
	}
	return nil
}

func indentLines(s string) string {
	return strings.Join(strings.Split(s, "\n"), "\n    ")
}
