// internal/ingest/fakes_test.go
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github-events-pipeline/internal/database"
	"github-events-pipeline/internal/model"
)

var errInjected = errors.New("injected failure")

type memState struct {
	raw   map[string]database.RawEvent
	clean map[string]database.EventsClean
	runs  map[[16]byte]database.PipelineRun
}

func (s memState) clone() memState {
	return memState{
		raw:   maps.Clone(s.raw),
		clean: maps.Clone(s.clean),
		runs:  maps.Clone(s.runs),
	}
}

// memStore is a transactional in-memory stand-in for the Postgres schema.
// Each transaction works on a snapshot that replaces the committed state on
// Commit and is discarded on Rollback.
type memStore struct {
	mu        sync.Mutex
	committed memState
	clock     time.Time

	// Failure injection.
	failCleanUpsertOn string // event id whose clean upsert fails
	failRunStart      bool
	finishFailures    int     // number of upcoming FinishRun calls that fail
	commitErrs        []error // popped per Commit call; nil entries succeed

	begins    int
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		committed: memState{
			raw:   map[string]database.RawEvent{},
			clean: map[string]database.EventsClean{},
			runs:  map[[16]byte]database.PipelineRun{},
		},
		clock: time.Date(2026, 2, 17, 15, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begins++
	s.clock = s.clock.Add(time.Second)
	return &memTx{store: s, state: s.committed.clone(), now: s.clock}, nil
}

func (s *memStore) queries(tx pgx.Tx) database.Querier {
	return tx.(*memTx)
}

func (s *memStore) runs() []database.PipelineRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]database.PipelineRun, 0, len(s.committed.runs))
	for _, r := range s.committed.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Time.Before(out[j].StartedAt.Time) })
	return out
}

func (s *memStore) run(id string) (database.PipelineRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, r := range s.committed.runs {
		if uuid.UUID(k).String() == id {
			return r, true
		}
	}
	return database.PipelineRun{}, false
}

func (s *memStore) clean(id string) (database.EventsClean, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.committed.clean[id]
	return e, ok
}

func (s *memStore) raw(id string) (database.RawEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.committed.raw[id]
	return e, ok
}

func (s *memStore) counts() (raw, clean int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.committed.raw), len(s.committed.clean)
}

// memTx embeds pgx.Tx only to satisfy the interface; the pipeline uses
// Commit and Rollback plus the Querier methods below.
type memTx struct {
	pgx.Tx
	store *memStore
	state memState
	now   time.Time
	done  bool
}

var _ database.Querier = (*memTx)(nil)

func (tx *memTx) Commit(ctx context.Context) error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		if err != nil {
			s.rollbacks++
			return err
		}
	}
	s.commits++
	s.committed = tx.state
	return nil
}

func (tx *memTx) Rollback(ctx context.Context) error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	s.rollbacks++
	return nil
}

func (tx *memTx) UpsertRawEvent(ctx context.Context, arg database.UpsertRawEventParams) error {
	if !json.Valid(arg.RawPayload) {
		return errors.New("invalid input syntax for type json")
	}
	tx.state.raw[arg.EventID] = database.RawEvent{
		EventID:    arg.EventID,
		RawPayload: arg.RawPayload,
		CreatedAt:  arg.CreatedAt,
	}
	return nil
}

func (tx *memTx) UpsertCleanEvent(ctx context.Context, arg database.UpsertCleanEventParams) error {
	if tx.store.failCleanUpsertOn == arg.EventID {
		return errInjected
	}
	if _, ok := tx.state.raw[arg.EventID]; !ok {
		return fmt.Errorf("foreign key violation: raw event %s missing", arg.EventID)
	}
	tx.state.clean[arg.EventID] = database.EventsClean(arg)
	return nil
}

func (tx *memTx) InsertRunStart(ctx context.Context, runID pgtype.UUID) error {
	if tx.store.failRunStart {
		return errInjected
	}
	if _, ok := tx.state.runs[runID.Bytes]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	tx.state.runs[runID.Bytes] = database.PipelineRun{
		RunID:     runID,
		StartedAt: pgtype.Timestamptz{Time: tx.now, Valid: true},
		Status:    string(model.RunStatusStarted),
	}
	return nil
}

func (tx *memTx) FinishRun(ctx context.Context, arg database.FinishRunParams) (int64, error) {
	tx.store.mu.Lock()
	fail := tx.store.finishFailures > 0
	if fail {
		tx.store.finishFailures--
	}
	tx.store.mu.Unlock()
	if fail {
		return 0, errInjected
	}

	r, ok := tx.state.runs[arg.RunID.Bytes]
	if !ok || r.Status != string(model.RunStatusStarted) {
		return 0, nil
	}
	r.FinishedAt = pgtype.Timestamptz{Time: tx.now, Valid: true}
	r.Status = arg.Status
	r.RowsFetched = arg.RowsFetched
	r.RowsInserted = arg.RowsInserted
	r.ErrorMessage = arg.ErrorMessage
	tx.state.runs[arg.RunID.Bytes] = r
	return 1, nil
}

func (tx *memTx) GetCleanEvent(ctx context.Context, eventID string) (database.EventsClean, error) {
	e, ok := tx.state.clean[eventID]
	if !ok {
		return database.EventsClean{}, pgx.ErrNoRows
	}
	return e, nil
}

func (tx *memTx) GetRawEvent(ctx context.Context, eventID string) (database.RawEvent, error) {
	e, ok := tx.state.raw[eventID]
	if !ok {
		return database.RawEvent{}, pgx.ErrNoRows
	}
	return e, nil
}

func (tx *memTx) GetPipelineRun(ctx context.Context, runID pgtype.UUID) (database.PipelineRun, error) {
	r, ok := tx.state.runs[runID.Bytes]
	if !ok {
		return database.PipelineRun{}, pgx.ErrNoRows
	}
	return r, nil
}

func (tx *memTx) CountCleanEvents(ctx context.Context) (int64, error) {
	return int64(len(tx.state.clean)), nil
}

func (tx *memTx) CountRawEvents(ctx context.Context) (int64, error) {
	return int64(len(tx.state.raw)), nil
}

func (tx *memTx) ListPipelineRuns(ctx context.Context, limit int32) ([]database.PipelineRun, error) {
	return nil, nil
}

func (tx *memTx) ListEventTypeDistribution(ctx context.Context, limit int32) ([]database.ListEventTypeDistributionRow, error) {
	return nil, nil
}

func (tx *memTx) ListEventsPerHour(ctx context.Context, limit int32) ([]database.ListEventsPerHourRow, error) {
	return nil, nil
}

func (tx *memTx) ListHourlyAnomalies(ctx context.Context, limit int32) ([]database.ListHourlyAnomaliesRow, error) {
	return nil, nil
}

func (tx *memTx) ListTopActors(ctx context.Context, limit int32) ([]database.ListTopActorsRow, error) {
	return nil, nil
}

func (tx *memTx) ListTopRepos(ctx context.Context, limit int32) ([]database.ListTopReposRow, error) {
	return nil, nil
}

// fakeSource is a canned EventSource.
type fakeSource struct {
	events []json.RawMessage
	rate   model.RateLimit
	err    error
	calls  int
	onCall func()
}

func (f *fakeSource) FetchEvents(ctx context.Context, pageLimit int) ([]json.RawMessage, model.RateLimit, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return nil, f.rate, f.err
	}
	events := f.events
	if len(events) > pageLimit {
		events = events[:pageLimit]
	}
	return events, f.rate, nil
}

func docs(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}
