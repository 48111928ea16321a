package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/cli"
	"grok2api/keygate/pkg/security/auth"
)

var hashFlags struct {
	stdin  bool
	output string
}

var hashCmd = &cobra.Command{
	Use:   "hash [secret]",
	Short: "Print the hashed public token for a public key",
	Long: `Print the token a browser client derives from a public key.

Clients may present either the raw public key or this hashed form. Use
--stdin to keep the secret out of shell history.

Examples:
  keygate hash my-public-key
  printf 'my-public-key' | keygate hash --stdin
  keygate hash --output json my-public-key`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)

	hashCmd.Flags().BoolVar(&hashFlags.stdin, "stdin", false, "read the secret from standard input")
	hashCmd.Flags().StringVarP(&hashFlags.output, "output", "o", "text", "output format: text, json")
}

// HashResult is the JSON form of the hash command output.
type HashResult struct {
	Token string `json:"token"`
}

func (r HashResult) String() string {
	return r.Token
}

func runHash(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(hashFlags.output)
	if err != nil {
		return err
	}

	var secret string
	switch {
	case hashFlags.stdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("hash", err)
		}
		secret = string(data)
	case len(args) == 1:
		secret = args[0]
	default:
		return cli.NewCommandError("hash", errors.New("a secret argument or --stdin is required"))
	}

	if strings.TrimSpace(secret) == "" {
		return cli.NewCommandError("hash", errors.New("secret must not be empty"))
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), HashResult{Token: auth.PublicToken(secret)})
}
