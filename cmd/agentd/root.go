package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "agentd",
	Short: "AI customer support agent service",
	Long: `Agentd is the backend service for the AI customer support agent.

It exposes a REST API for ticket intake and provides:
  - Prometheus instrumentation for the full ticket lifecycle
  - LLM token and cost accounting per provider and model
  - Queue depth and connection pool gauges on cron schedules
  - Structured JSON logging with PII redaction`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
