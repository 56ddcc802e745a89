package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/mockapi"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Run the in-memory development backend",
	Long: `Run an in-memory backend seeded with sample issues. It serves the admin
issue endpoints under /api and requires an admin bearer token; mint one
with 'issue-dashboard token'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		server := mockapi.NewServer(
			mockapi.NewStore(mockapi.SeedIssues()),
			mockapi.NewAuth(cfg.MockAPISecret),
			logger,
		)

		addr := fmt.Sprintf(":%d", cfg.MockAPIPort)
		srv := &http.Server{
			Addr:         addr,
			Handler:      server.Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		logger.Info("starting mock backend", zap.String("url", "http://localhost"+addr+"/api"))
		return listenAndServe(srv, logger)
	},
}
