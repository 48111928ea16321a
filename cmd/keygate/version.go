package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/telemetry/health"
)

var (
	// Version is the semantic version, set via ldflags during build.
	Version = "dev"

	// GitCommit is the git commit hash, set via ldflags during build.
	GitCommit = "unknown"

	// BuildDate is the build timestamp, set via ldflags during build.
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, git commit, build date, and Go version of keygate.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Keygate v%s\n", Version)
		fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Built: %s\n", BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func versionInfo() health.VersionInfo {
	return health.NewVersionInfo(Version, GitCommit, BuildDate)
}
