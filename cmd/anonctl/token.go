package main

import (
	"anon-chat/auth"
	"anon-chat/infrastructure/api"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd(cfg Config) *cobra.Command {
	var (
		operator string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token signed with ADMIN_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := issueToken(cfg, operator, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "ops", "Operator name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func issueToken(cfg Config, operator string, ttl time.Duration) (string, error) {
	if cfg.AdminSecret == "" {
		return "", fmt.Errorf("ADMIN_SECRET is not set")
	}
	return auth.NewSigner(cfg.AdminSecret).GenerateToken(operator, []string{api.AdminRole}, ttl)
}
