/*
Package cli provides command-line interface utilities for the beacon
command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results, such as cleanup summaries:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
