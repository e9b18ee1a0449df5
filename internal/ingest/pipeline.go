// internal/ingest/pipeline.go
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github-events-pipeline/internal/database"
	custom_errors "github-events-pipeline/internal/errors"
	"github-events-pipeline/internal/model"
	"github-events-pipeline/internal/monitoring"
)

const (
	// Recording a failed run is tried once more after a rollback.
	finishAttempts = 2
	finishDelay    = 100 * time.Millisecond
)

// EventSource is the feed a pipeline polls.
type EventSource interface {
	FetchEvents(ctx context.Context, pageLimit int) ([]json.RawMessage, model.RateLimit, error)
}

// TxBeginner starts database transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pipeline runs one bounded fetch-and-persist cycle per call to Run.
type Pipeline struct {
	db        TxBeginner
	source    EventSource
	logger    *slog.Logger
	metrics   *monitoring.Recorder
	pageLimit int

	newRunID func() uuid.UUID
	queries  func(pgx.Tx) database.Querier
	now      func() time.Time
}

// NewPipeline creates a Pipeline. metrics may be nil; a nil logger falls back to slog.Default().
func NewPipeline(db TxBeginner, source EventSource, logger *slog.Logger, metrics *monitoring.Recorder, pageLimit int) (*Pipeline, error) {
	if pageLimit <= 0 {
		return nil, &custom_errors.ErrInvalidPageLimit{Limit: pageLimit}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		db:        db,
		source:    source,
		logger:    logger,
		metrics:   metrics,
		pageLimit: pageLimit,
		newRunID:  uuid.New,
		queries:   func(tx pgx.Tx) database.Querier { return database.New(tx) },
		now:       time.Now,
	}, nil
}

// Run executes one ingestion run and records it in pipeline_runs.
//
// The STARTED row is committed on its own before the feed is contacted. The
// upserts and the SUCCESS update share a second transaction, so either all of
// a page lands together with its SUCCESS row or nothing does. On any failure
// the run is closed as FAILED in a fresh transaction and the original error
// is returned.
func (p *Pipeline) Run(ctx context.Context) (model.RunSummary, error) {
	runID := p.newRunID()
	summary := model.RunSummary{RunID: runID.String(), Status: model.RunStatusStarted}
	logger := p.logger.With("run_id", summary.RunID)

	if err := p.recordStart(ctx, runID); err != nil {
		logger.Error("Failed to record run start", "error", err)
		summary.Status = model.RunStatusFailed
		p.metrics.ObserveRun(summary, p.now())
		return summary, err
	}
	logger.Info("Run started", "limit", p.pageLimit)

	raw, rate, err := p.source.FetchEvents(ctx, p.pageLimit)
	summary.RateLimit = rate
	if err != nil {
		logger.Error("Failed to fetch events", "error", err, "kind", custom_errors.KindOf(err))
		return p.fail(ctx, logger, runID, summary, err)
	}
	summary.RowsFetched = len(raw)
	logger.Info("Fetched events", "count", summary.RowsFetched)
	logRateLimit(logger, rate)

	// From here on the run completes (commit or rollback) even if ctx is cancelled.
	persistCtx := context.WithoutCancel(ctx)

	events := p.normalizeAll(logger, raw)
	summary.Skipped = summary.RowsFetched - len(events)

	inserted, err := p.persist(persistCtx, runID, summary.RowsFetched, events)
	if err != nil {
		logger.Error("Failed to persist events, transaction rolled back", "error", err, "kind", custom_errors.KindOf(err))
		return p.fail(persistCtx, logger, runID, summary, err)
	}

	summary.Status = model.RunStatusSuccess
	summary.RowsInserted = inserted
	logger.Info("Run finished",
		"status", summary.Status,
		"rows_fetched", summary.RowsFetched,
		"rows_inserted", summary.RowsInserted,
		"rows_skipped", summary.Skipped,
	)
	p.metrics.ObserveRun(summary, p.now())
	return summary, nil
}

func (p *Pipeline) recordStart(ctx context.Context, runID uuid.UUID) error {
	err := p.inTx(ctx, func(q database.Querier) error {
		return startRun(ctx, q, runID)
	})
	if err == nil {
		return nil
	}
	var trackErr *custom_errors.RunTrackingError
	if errors.As(err, &trackErr) {
		return err
	}
	return &custom_errors.RunTrackingError{Op: "start run", RunID: runID.String(), Err: err}
}

func (p *Pipeline) normalizeAll(logger *slog.Logger, raw []json.RawMessage) []model.NormalizedEvent {
	events := make([]model.NormalizedEvent, 0, len(raw))
	for i, doc := range raw {
		e, skip := Normalize(doc)
		if skip != nil {
			logger.Debug("Skipping event", "index", i, "event_id", skip.EventID, "reason", skip.Reason)
			p.metrics.ObserveSkip(skip.Reason)
			continue
		}
		events = append(events, e)
	}
	return events
}

// persist upserts events and marks the run SUCCESS in a single transaction.
func (p *Pipeline) persist(ctx context.Context, runID uuid.UUID, rowsFetched int, events []model.NormalizedEvent) (int, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return 0, &custom_errors.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	q := p.queries(tx)
	inserted, err := upsertBatch(ctx, q, events)
	if err != nil {
		return 0, err
	}
	if err := finishRun(ctx, q, runID, model.RunStatusSuccess, rowsFetched, inserted, nil); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, &custom_errors.PersistenceError{Op: "commit", Err: err}
	}
	return inserted, nil
}

// fail closes the run as FAILED and hands cause back to the caller. Rows
// inserted by a rolled-back transaction never count.
func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, runID uuid.UUID, summary model.RunSummary, cause error) (model.RunSummary, error) {
	ctx = context.WithoutCancel(ctx)
	summary.Status = model.RunStatusFailed
	summary.RowsInserted = 0
	msg := cause.Error()

	err := retry.Do(
		func() error {
			return p.inTx(ctx, func(q database.Querier) error {
				return finishRun(ctx, q, runID, model.RunStatusFailed, summary.RowsFetched, 0, &msg)
			})
		},
		retry.Attempts(finishAttempts),
		retry.Delay(finishDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, custom_errors.ErrRunNotStarted)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Recording run failure failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		logger.Error("Could not record run failure", "error", err)
	} else {
		logger.Info("Run finished",
			"status", summary.Status,
			"rows_fetched", summary.RowsFetched,
			"rows_inserted", summary.RowsInserted,
		)
	}

	p.metrics.ObserveRun(summary, p.now())
	return summary, cause
}

// inTx runs fn in its own transaction and commits when fn succeeds.
func (p *Pipeline) inTx(ctx context.Context, fn func(q database.Querier) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	if err := fn(p.queries(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func logRateLimit(logger *slog.Logger, rate model.RateLimit) {
	if !rate.Known {
		logger.Debug("Feed did not report rate limit")
		return
	}
	attrs := []any{"remaining", rate.Remaining, "limit", rate.Limit}
	if !rate.Reset.IsZero() {
		attrs = append(attrs, "resets_at", rate.Reset.UTC().Format(time.RFC3339))
	}
	logger.Info("Feed rate limit", attrs...)
}
