// cmd/pipeline/ingest.go
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github-events-pipeline/internal/github"
	"github-events-pipeline/internal/ingest"
	"github-events-pipeline/internal/monitoring"
)

var ingestLimit int

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion: fetch a page of events, upsert it and record the run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		limit := cfg.IngestLimit
		if cmd.Flags().Changed("limit") {
			limit = ingestLimit
		}
		return runIngest(ctx, limit)
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "maximum number of events to fetch (overrides INGEST_LIMIT)")
}

func runIngest(ctx context.Context, limit int) error {
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	client, err := github.NewClient(github.Options{
		Token:     cfg.GithubToken,
		UserAgent: cfg.GithubUserAgent,
		BaseURL:   cfg.FeedBaseURL,
		Timeout:   cfg.FeedTimeout,
	}, logger)
	if err != nil {
		return err
	}

	metrics := monitoring.NewRecorder()
	pipeline, err := ingest.NewPipeline(pool, client, logger, metrics, limit)
	if err != nil {
		return err
	}

	summary, runErr := pipeline.Run(ctx)

	if err := metrics.Push(cfg.PushgatewayURL); err != nil {
		logger.Warn("Failed to push run metrics", "error", err)
	}
	if runErr != nil {
		return runErr
	}
	logger.Info("Ingestion complete",
		"run_id", summary.RunID,
		"rows_fetched", summary.RowsFetched,
		"rows_inserted", summary.RowsInserted,
	)
	return nil
}
