package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/config"
	"github.com/vilaca/issue-dashboard/internal/logging"
	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
	"github.com/vilaca/issue-dashboard/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive terminal dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logFile, _ := cmd.Flags().GetString("log-file")
		logger, err := terminalLogger(cfg, logFile)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		credential, err := credentialFrom(cmd, cfg)
		if err != nil {
			return err
		}

		client := newIssueClient(cfg)
		ctrl := state.New()
		defer ctrl.Close()

		model := tui.NewModel(tui.Config{
			Controller: ctrl,
			Pipeline: service.NewLoadPipeline(service.LoadPipelineConfig{
				Client:        client,
				Logger:        logger,
				HomeRoute:     cfg.HomeRoute,
				RedirectDelay: cfg.RedirectDelay(),
			}),
			Issues:         service.NewIssueService(client, logger),
			Credential:     credential,
			RequestTimeout: cfg.RequestTimeout(),
		})

		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("failed to run terminal dashboard: %w", err)
		}

		if m, ok := final.(tui.Model); ok && m.NavigatedTo() != "" {
			if msg := ctrl.ErrorMessage(); msg != "" {
				fmt.Println(msg)
			}
			fmt.Printf("Returned to %s\n", m.NavigatedTo())
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().String("token", "", "bearer credential (default $API_TOKEN)")
	watchCmd.Flags().String("log-file", "", "write logs to this file (default: no logs)")
}

// terminalLogger keeps logs off the screen the dashboard is drawn on.
func terminalLogger(cfg *config.Config, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	logger, err := logging.NewToFile(cfg.LogLevel, cfg.Dev, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
