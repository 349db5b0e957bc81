package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/config"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/auth"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		roles   []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		Example: `  cabinet token --subject dr-sall --role doctor
  cabinet token --subject accueil --role receptionist --ttl 8h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.AuthSigningKey == "" {
				return fmt.Errorf("AUTH_SIGNING_KEY is required to issue tokens")
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			for _, r := range roles {
				if !auth.KnownRole(r) {
					return fmt.Errorf("unknown role %q", r)
				}
			}

			token, err := auth.IssueToken([]byte(cfg.AuthSigningKey), cfg.AuthIssuer, subject, roles, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "User id carried by the token")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleReceptionist}, "Granted role (repeatable)")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	return cmd
}
