package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/api"
	"github.com/vilaca/issue-dashboard/internal/api/backend"
	"github.com/vilaca/issue-dashboard/internal/config"
	"github.com/vilaca/issue-dashboard/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "issue-dashboard",
	Short: "Admin dashboard for reported civic issues",
	Long: `Issue Dashboard shows administrators every reported issue with totals,
per-status and per-category charts, and lets them change an issue's status
or delete it. It runs as a web dashboard or in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mockAPICmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadRuntime loads configuration and builds the logger every command shares.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newIssueClient is the composition root for the backend client.
func newIssueClient(cfg *config.Config) api.IssueClient {
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout(),
	}
	return backend.NewClient(api.ClientConfig{
		BaseURL:               cfg.APIBaseURL,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
	}, httpClient)
}

// credentialFrom picks the --token flag over the configured API token.
func credentialFrom(cmd *cobra.Command, cfg *config.Config) (string, error) {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = cfg.APIToken
	}
	if token == "" {
		return "", fmt.Errorf("no credential: pass --token or set API_TOKEN")
	}
	return token, nil
}
