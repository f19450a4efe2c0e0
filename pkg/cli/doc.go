/*
Package cli provides command-line interface utilities for the agentd
command: output formatters, progress reporting, typed command errors,
and signal handling.

Output Formatting:

Command results can be rendered as plain text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

Long-running operations (such as schema initialization) report progress
through a ProgressReporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(total)
	for i := range total {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
