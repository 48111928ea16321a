package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/cli"
	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"
)

var checkFlags struct {
	tier   string
	token  string
	stdin  bool
	output string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a token against the configured credentials",
	Long: `Evaluate a token for one tier exactly as the running service would.

Without --token or --stdin the request is treated as carrying no
credential. The command exits 0 when the request would be let through,
2 when it would be rejected, and 1 on any other error.

Examples:
  keygate check --tier admin --token "$ADMIN_KEY"
  keygate check --tier public --token public-3f2a...
  keygate check --tier public
  printf '%s' "$KEY" | keygate check --tier login --stdin --output json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.tier, "tier", "t", "", "tier to check: admin, login, public")
	checkCmd.Flags().StringVar(&checkFlags.token, "token", "", "bearer token to present")
	checkCmd.Flags().BoolVar(&checkFlags.stdin, "stdin", false, "read the token from standard input")
	checkCmd.Flags().StringVarP(&checkFlags.output, "output", "o", "text", "output format: text, json")
	_ = checkCmd.MarkFlagRequired("tier")
	checkCmd.MarkFlagsMutuallyExclusive("token", "stdin")
}

// CheckResult is the outcome of a check.
type CheckResult struct {
	Tier          string `json:"tier"`
	State         string `json:"state"`
	Allowed       bool   `json:"allowed"`
	Authenticated bool   `json:"authenticated"`
	Match         string `json:"match,omitempty"`
	Error         string `json:"error,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

func (r CheckResult) String() string {
	if !r.Allowed {
		return fmt.Sprintf("%s: denied (%s): %s", r.Tier, r.Error, r.Detail)
	}
	if !r.Authenticated {
		return fmt.Sprintf("%s: allowed (tier is %s)", r.Tier, r.State)
	}
	return fmt.Sprintf("%s: allowed (%s match)", r.Tier, r.Match)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(checkFlags.output)
	if err != nil {
		return err
	}

	tier, err := auth.ParseTier(checkFlags.tier)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	cred, err := checkCredential(cmd)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	snap, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	result := evaluate(auth.NewVerifier(snap), snap, tier, cred)
	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if !result.Allowed {
		return cli.NewDeniedError("check", errors.New(result.Detail))
	}
	return nil
}

func checkCredential(cmd *cobra.Command) (auth.Credential, error) {
	switch {
	case checkFlags.stdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return auth.NoCredential, err
		}
		return auth.Bearer(strings.TrimRight(string(data), "\r\n")), nil
	case cmd.Flags().Changed("token"):
		return auth.Bearer(checkFlags.token), nil
	default:
		return auth.NoCredential, nil
	}
}

func evaluate(v *auth.Verifier, src auth.Source, tier auth.Tier, cred auth.Credential) CheckResult {
	result := CheckResult{
		Tier:  string(tier),
		State: string(auth.StateOf(src, tier)),
	}

	decision, err := v.Verify(tier, cred)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			result.Error = authErr.Kind.String()
			result.Detail = authErr.Detail()
		} else {
			result.Error = "error"
			result.Detail = err.Error()
		}
		return result
	}

	result.Allowed = true
	result.Authenticated = decision.Authenticated
	if decision.Authenticated {
		result.Match = decision.Match.String()
	}
	return result
}
