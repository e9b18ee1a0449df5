// internal/ingest/tracker.go
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github-events-pipeline/internal/database"
	custom_errors "github-events-pipeline/internal/errors"
	"github-events-pipeline/internal/model"
)

// startRun inserts the STARTED row for runID. The caller commits it before
// fetching so in-flight runs are visible.
func startRun(ctx context.Context, q database.Querier, runID uuid.UUID) error {
	if err := q.InsertRunStart(ctx, toUUID(runID)); err != nil {
		return &custom_errors.RunTrackingError{Op: "start run", RunID: runID.String(), Err: err}
	}
	return nil
}

// finishRun closes runID with a terminal status. Only a run still in STARTED
// state is updated; anything else is reported as custom_errors.ErrRunNotStarted.
func finishRun(ctx context.Context, q database.Querier, runID uuid.UUID, status model.RunStatus, rowsFetched, rowsInserted int, errMsg *string) error {
	if !status.Terminal() {
		return &custom_errors.RunTrackingError{Op: "finish run", RunID: runID.String(), Err: fmt.Errorf("status %q is not terminal", status)}
	}

	n, err := q.FinishRun(ctx, database.FinishRunParams{
		RunID:        toUUID(runID),
		Status:       string(status),
		RowsFetched:  int32(rowsFetched),
		RowsInserted: int32(rowsInserted),
		ErrorMessage: toText(errMsg),
	})
	if err != nil {
		return &custom_errors.RunTrackingError{Op: "finish run", RunID: runID.String(), Err: err}
	}
	if n != 1 {
		return &custom_errors.RunTrackingError{Op: "finish run", RunID: runID.String(), Err: custom_errors.ErrRunNotStarted}
	}
	return nil
}
