package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/cli"
	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"
)

var validateFlags struct {
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and show tier states",
	Long: `Load and validate the configuration, then report how each tier
treats requests under it: protected, open, or disabled.

Credential values are never printed.

Examples:
  keygate validate --config /etc/keygate/config.yaml
  keygate validate --output json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format: text, json")
}

// ValidateResult summarizes a valid configuration.
type ValidateResult struct {
	Path     string            `json:"path"`
	Tiers    map[string]string `json:"tiers"`
	Warnings []string          `json:"warnings,omitempty"`
}

func (r ValidateResult) String() string {
	var sb strings.Builder
	path := r.Path
	if path == "" {
		path = "(defaults and environment)"
	}
	fmt.Fprintf(&sb, "Configuration valid: %s\n", path)
	for _, tier := range auth.Tiers() {
		fmt.Fprintf(&sb, "  %-7s %s\n", tier, r.Tiers[string(tier)])
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.output)
	if err != nil {
		return err
	}

	snap, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	result := ValidateResult{
		Path:     snap.Path,
		Tiers:    make(map[string]string, len(auth.Tiers())),
		Warnings: credentialWarnings(snap),
	}
	for _, tier := range auth.Tiers() {
		result.Tiers[string(tier)] = string(auth.StateOf(snap, tier))
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
}

// credentialWarnings flags configurations that work but are likely unintended.
func credentialWarnings(src auth.Source) []string {
	defaults := auth.DefaultSettings()
	var warnings []string

	if strings.TrimSpace(src.GetString(auth.SettingLoginKey, defaults.LoginKey)) == defaults.LoginKey {
		warnings = append(warnings, "app.app_key uses the built-in default; set a private login key")
	}
	if auth.StateOf(src, auth.TierAdmin) == auth.StateOpen {
		warnings = append(warnings, "app.api_key is empty; the admin tier is open to everyone")
	}
	if auth.StateOf(src, auth.TierPublic) == auth.StateOpen {
		warnings = append(warnings, "app.public_enabled is set without app.public_key; the public tier is open")
	}
	return warnings
}
