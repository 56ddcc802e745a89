package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/dashboard"
	"github.com/vilaca/issue-dashboard/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		sessions, err := dashboard.NewSessionManager(cfg.SessionKey, cfg.SecureCookies, logger)
		if err != nil {
			return fmt.Errorf("failed to create session manager: %w", err)
		}

		client := newIssueClient(cfg)
		mounts := service.NewMountStore(cfg.SessionTTL(), logger)
		mounts.Start()
		defer mounts.Stop()

		handler := dashboard.NewHandler(dashboard.HandlerConfig{
			Renderer: dashboard.NewHTMLRenderer(),
			Logger:   logger,
			Sessions: sessions,
			Mounts:   mounts,
			Pipeline: service.NewLoadPipeline(service.LoadPipelineConfig{
				Client:        client,
				Logger:        logger,
				HomeRoute:     cfg.HomeRoute,
				RedirectDelay: cfg.RedirectDelay(),
			}),
			Issues:         service.NewIssueService(client, logger),
			RequestTimeout: cfg.RequestTimeout(),
		})

		addr := fmt.Sprintf(":%d", cfg.Port)
		srv := &http.Server{
			Addr:         addr,
			Handler:      handler.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		logger.Info("starting issue dashboard",
			zap.String("url", "http://localhost"+addr),
			zap.String("backend", cfg.APIBaseURL))

		return listenAndServe(srv, logger)
	},
}

// listenAndServe runs srv until SIGINT or SIGTERM, then shuts it down gracefully.
func listenAndServe(srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-done:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
