package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"helpdesk-hq/agentd/pkg/cli"
	"helpdesk-hq/agentd/pkg/config"
	"helpdesk-hq/agentd/pkg/storage"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Initialize the support database schema",
	Long: `Create the support database schema: tables, indexes, views, triggers,
and the knowledge-base seed articles.

Every statement is idempotent, so re-running against an initialized
database is safe.

Examples:
  # Initialize using the configured database URL
  agentd initdb --config /etc/agentd/config.yaml`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if cfg.Database.URL == "" {
		return cli.NewConfigError("database.url", "no database URL configured")
	}

	ctx := cli.SetupSignalHandler()

	pool, err := storage.New(ctx, &cfg.Database)
	if err != nil {
		return cli.NewCommandError("initdb", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return cli.NewCommandError("initdb", err)
	}

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(int64(storage.SchemaStatementCount()))

	err = pool.Initialize(ctx, func(done, total int) {
		progress.Update(int64(done))
	})
	if err != nil {
		progress.Error(err)
		return cli.NewCommandError("initdb", err)
	}
	progress.Finish()

	fmt.Println("✓ Database schema initialized")
	return nil
}
