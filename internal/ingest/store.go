// internal/ingest/store.go
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github-events-pipeline/internal/database"
	custom_errors "github-events-pipeline/internal/errors"
	"github-events-pipeline/internal/model"
)

// upsertBatch writes each event's raw row and then its clean row, in input
// order, through q. Existing rows are replaced wholesale. A repeated event id
// is simply written again, so the later occurrence wins.
func upsertBatch(ctx context.Context, q database.Querier, events []model.NormalizedEvent) (int, error) {
	written := 0
	for _, e := range events {
		if err := q.UpsertRawEvent(ctx, rawEventParams(e.Raw)); err != nil {
			return written, &custom_errors.PersistenceError{Op: "upsert raw event", EventID: e.Raw.EventID, Err: err}
		}
		if err := q.UpsertCleanEvent(ctx, cleanEventParams(e.Clean)); err != nil {
			return written, &custom_errors.PersistenceError{Op: "upsert clean event", EventID: e.Clean.EventID, Err: err}
		}
		written++
	}
	return written, nil
}

func rawEventParams(e model.RawEvent) database.UpsertRawEventParams {
	return database.UpsertRawEventParams{
		EventID:    e.EventID,
		RawPayload: e.RawPayload,
		CreatedAt:  toTimestamptz(e.CreatedAt),
	}
}

// cleanEventParams always derives both buckets from CreatedAt so they can
// never drift from it or from each other.
func cleanEventParams(e model.CleanEvent) database.UpsertCleanEventParams {
	return database.UpsertCleanEventParams{
		EventID:    e.EventID,
		EventType:  e.EventType,
		ActorID:    toInt8(e.ActorID),
		ActorLogin: toText(e.ActorLogin),
		RepoID:     toInt8(e.RepoID),
		RepoName:   toText(e.RepoName),
		CreatedAt:  toTimestamptz(e.CreatedAt),
		HourBucket: toTimestamptz(HourBucket(e.CreatedAt)),
		DayBucket:  pgtype.Date{Time: DayBucket(e.CreatedAt), Valid: true},
	}
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func toInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func toText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func toUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
