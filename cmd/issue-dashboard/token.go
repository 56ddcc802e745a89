package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vilaca/issue-dashboard/internal/config"
	"github.com/vilaca/issue-dashboard/internal/mockapi"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the development backend",
	Long: `Mint a signed bearer token accepted by 'issue-dashboard mock-api'.
Only tokens with the admin role may use the admin endpoints.

Examples:
  issue-dashboard token --subject alice
  issue-dashboard token --subject bob --role user --ttl 10m`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		subject, _ := cmd.Flags().GetString("subject")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := mockapi.NewAuth(cfg.MockAPISecret).GenerateToken(subject, role, ttl)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "", "token subject (required)")
	tokenCmd.Flags().String("role", mockapi.RoleAdmin, "role claim: admin or user")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}
