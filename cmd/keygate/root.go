package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "keygate",
	Short: "Keygate - credential verification for the grok2api access tiers",
	Long: `Keygate verifies bearer credentials for the three grok2api access tiers:

  - admin:  management API, guarded by app.api_key
  - login:  web login, guarded by app.app_key
  - public: public-facing API, guarded by app.public_key and app.public_enabled

It runs as a forward-auth service next to a reverse proxy and re-reads its
configuration on file change, on a schedule, or on SIGHUP.

When --config is empty only defaults and KEYGATE_* environment variables apply.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the status the error maps to.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
