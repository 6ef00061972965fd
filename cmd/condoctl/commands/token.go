package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	jwttoken "github.com/pewpola/dao-condominium/internal/jwt_token"
	id "github.com/pewpola/dao-condominium/pkg/domain"
)

type tokenOptions struct {
	identity   string
	signingKey string
	issuer     string
	audience   string
	ttl        time.Duration
}

func newTokenCommand() *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a caller token for an identity",
		Long: `Mint an HS256 bearer token whose subject is the given identity.

The signing key defaults to $CONDO_JWT_SIGNING_KEY and must match the gateway's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.identity, "identity", "", "caller identity (required)")
	cmd.Flags().StringVar(&opts.signingKey, "signing-key", os.Getenv("CONDO_JWT_SIGNING_KEY"), "HS256 signing key")
	cmd.Flags().StringVar(&opts.issuer, "issuer", "dao-condominium", "token issuer")
	cmd.Flags().StringVar(&opts.audience, "audience", "condominium-gateway", "token audience")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("identity")
	return cmd
}

func runToken(cmd *cobra.Command, opts *tokenOptions) error {
	if opts.signingKey == "" {
		return fmt.Errorf("a signing key is required (--signing-key or CONDO_JWT_SIGNING_KEY)")
	}
	if opts.ttl <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}
	identity, err := id.ParseIdentity(opts.identity)
	if err != nil {
		return fmt.Errorf("invalid identity: %w", err)
	}
	svc := jwttoken.NewJWTService(opts.signingKey, opts.issuer, opts.audience)
	token, err := svc.IssueCallerToken(identity, opts.ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
