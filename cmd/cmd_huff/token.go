package cmd_huff

import (
	"errors"
	"fmt"
	"time"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/servs/s_huff/huff_rest"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
	tokenSecret  string
)

// TokenCmd issues a bearer token for the REST API.
var TokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := tokenSecret
		if secret == "" {
			secret = cmd_app.Config().JWTSecret
		}
		if secret == "" {
			return errors.New("no jwt secret: set jwt_secret in config or pass --secret")
		}

		tok, err := huff_rest.IssueToken([]byte(secret), tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	TokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "cli", "token subject")
	TokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "token lifetime")
	TokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "signing secret (default from config)")
}
