// internal/model/models.go
package model

import (
	"encoding/json"
	"time"
)

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusStarted RunStatus = "STARTED"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
)

// Terminal reports whether the status closes a run.
func (s RunStatus) Terminal() bool {
	return s == RunStatusSuccess || s == RunStatusFailed
}

// RawEvent is an archived feed document keyed by its event id.
type RawEvent struct {
	EventID    string
	RawPayload json.RawMessage
	CreatedAt  time.Time
}

// CleanEvent is the normalized form of a feed event.
// HourBucket and DayBucket are always derived from CreatedAt.
type CleanEvent struct {
	EventID    string
	EventType  string
	ActorID    *int64
	ActorLogin *string
	RepoID     *int64
	RepoName   *string
	CreatedAt  time.Time
	HourBucket time.Time
	DayBucket  time.Time
}

// NormalizedEvent pairs a clean record with the raw document it came from.
type NormalizedEvent struct {
	Raw   RawEvent
	Clean CleanEvent
}

// SkipReason explains why a fetched record was not persisted.
type SkipReason string

const (
	SkipMissingID        SkipReason = "missing_id"
	SkipMissingCreatedAt SkipReason = "missing_created_at"
	SkipInvalidCreatedAt SkipReason = "invalid_created_at"
	SkipMalformed        SkipReason = "malformed_record"
)

// Skip describes a record excluded by normalization.
type Skip struct {
	EventID string
	Reason  SkipReason
}

// PipelineRun is the audit record of one ingestion attempt.
type PipelineRun struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       RunStatus
	RowsFetched  int
	RowsInserted int
	ErrorMessage *string
}

// RateLimit holds the feed's rate-limit headers. Known is false when the feed
// did not send them.
type RateLimit struct {
	Known     bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// RunSummary is what a finished pipeline run reports to its caller.
type RunSummary struct {
	RunID        string
	Status       RunStatus
	RowsFetched  int
	RowsInserted int
	Skipped      int
	RateLimit    RateLimit
}
