package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vilaca/issue-dashboard/internal/service"
	"github.com/vilaca/issue-dashboard/internal/state"
	"github.com/vilaca/issue-dashboard/internal/stats"
	"github.com/vilaca/issue-dashboard/internal/tui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Load the issues once and print the dashboard summary",
	Long: `Load every issue once, then print the totals and the per-status and
per-category charts. Exits non-zero when the load fails.

Examples:
  issue-dashboard summary --token $TOKEN
  issue-dashboard summary --json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().String("token", "", "bearer credential (default $API_TOKEN)")
	summaryCmd.Flags().Bool("json", false, "print JSON instead of text")
}

type summaryOutput struct {
	Phase        state.Phase `json:"phase"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	stats.Summary
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	credential, err := credentialFrom(cmd, cfg)
	if err != nil {
		return err
	}

	pipeline := service.NewLoadPipeline(service.LoadPipelineConfig{
		Client: newIssueClient(cfg),
		Logger: logger,
	})

	ctrl := state.New()
	defer ctrl.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()
	pipeline.Run(ctx, ctrl, credential, nil)

	snap := ctrl.Snapshot()
	summary := stats.Summarize(snap.Issues)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaryOutput{Phase: snap.Phase, ErrorMessage: snap.ErrorMessage, Summary: summary}); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
	} else if snap.Phase == state.PhaseReady {
		fmt.Println(tui.RenderSummary(summary))
	}

	if snap.Phase != state.PhaseReady {
		return errors.New(snap.ErrorMessage)
	}
	return nil
}
