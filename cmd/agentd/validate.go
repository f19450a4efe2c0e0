package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"helpdesk-hq/agentd/pkg/cli"
	"helpdesk-hq/agentd/pkg/config"
)

var validateFlags struct {
	format string
	show   bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file, applying defaults and environment
variable overrides the same way the run command does.

Examples:
  # Validate the default config file
  agentd validate

  # Validate a specific file and show the effective settings
  agentd validate --config /etc/agentd/config.yaml --show --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format (text, json)")
	validateCmd.Flags().BoolVar(&validateFlags.show, "show", false, "print the effective configuration summary")
}

// configSummary is the effective-configuration view printed by --show.
// Secrets (API keys, connection URLs) are reduced to counts and presence.
type configSummary struct {
	Name          string             `json:"name"`
	Environment   string             `json:"environment"`
	ListenAddress string             `json:"listen_address"`
	Providers     int                `json:"providers"`
	DatabaseSet   bool               `json:"database_configured"`
	RedisSet      bool               `json:"redis_configured"`
	MetricsPath   string             `json:"metrics_path"`
	LogLevel      string             `json:"log_level"`
	Budgets       map[string]float64 `json:"budgets"`
}

func (s configSummary) String() string {
	return fmt.Sprintf("%s (%s) listen=%s providers=%d metrics=%s log=%s",
		s.Name, s.Environment, s.ListenAddress, s.Providers, s.MetricsPath, s.LogLevel)
}

func summarize(cfg *config.Config) configSummary {
	return configSummary{
		Name:          cfg.App.Name,
		Environment:   cfg.App.Environment,
		ListenAddress: cfg.Server.ListenAddress,
		Providers:     len(cfg.Providers),
		DatabaseSet:   cfg.Database.URL != "",
		RedisSet:      cfg.Redis.URL != "",
		MetricsPath:   cfg.Telemetry.Metrics.Path,
		LogLevel:      cfg.Telemetry.Logging.Level,
		Budgets:       cfg.Costs.Budgets,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	fmt.Println("✓ Configuration valid")

	if validateFlags.show {
		formatter := cli.NewFormatter(cli.OutputFormat(validateFlags.format))
		return formatter.FormatTo(os.Stdout, summarize(cfg))
	}

	return nil
}
