// Command admintoken は管理API用のJWTを発行します。
//
//	JWT_SECRET=... admintoken --subject ops@example.com --ttl 24h
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	jwtmw "umkm_backend/internal/platform/jwt"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "admintoken:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "admintoken",
		Short: "Mint an admin JWT for the /v1/admin endpoints",
		Long: `Mint a signed admin token for the /v1/admin endpoints.

The signing secret is read from JWT_SECRET (a .env file in the working
directory is honored). The token is printed to stdout.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}
			gen, err := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), ttl)
			if err != nil {
				return fmt.Errorf("%s: %w", jwtmw.EnvKeyJWTSecret, err)
			}
			token, err := gen.GenerateToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "operator identity stored in the sub claim (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
