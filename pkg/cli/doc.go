/*
Package cli provides helpers shared by the keygate subcommands.

Output Formatting:

Commands that print a result accept --output text|json:

	format, err := cli.ParseOutputFormat(flag)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)

Errors and Exit Codes:

CommandError wraps a failed command; ExitCode maps it to the process exit
status. A denied credential from `keygate check` exits with ExitDenied so
scripts can tell it apart from a broken configuration.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	cli.NotifyReload(ctx, func() { _ = store.Reload(config.TriggerSignal) })
*/
package cli
