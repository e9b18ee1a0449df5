// internal/ingest/mock_querier_test.go
package ingest

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"

	"github-events-pipeline/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

var _ database.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CountCleanEvents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) CountRawEvents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) FinishRun(ctx context.Context, arg database.FinishRunParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetCleanEvent(ctx context.Context, eventID string) (database.EventsClean, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(database.EventsClean), args.Error(1)
}
func (m *MockQuerier) GetPipelineRun(ctx context.Context, runID pgtype.UUID) (database.PipelineRun, error) {
	args := m.Called(ctx, runID)
	return args.Get(0).(database.PipelineRun), args.Error(1)
}
func (m *MockQuerier) GetRawEvent(ctx context.Context, eventID string) (database.RawEvent, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(database.RawEvent), args.Error(1)
}
func (m *MockQuerier) InsertRunStart(ctx context.Context, runID pgtype.UUID) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}
func (m *MockQuerier) ListEventTypeDistribution(ctx context.Context, limit int32) ([]database.ListEventTypeDistributionRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ListEventTypeDistributionRow), args.Error(1)
}
func (m *MockQuerier) ListEventsPerHour(ctx context.Context, limit int32) ([]database.ListEventsPerHourRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ListEventsPerHourRow), args.Error(1)
}
func (m *MockQuerier) ListHourlyAnomalies(ctx context.Context, limit int32) ([]database.ListHourlyAnomaliesRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ListHourlyAnomaliesRow), args.Error(1)
}
func (m *MockQuerier) ListPipelineRuns(ctx context.Context, limit int32) ([]database.PipelineRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.PipelineRun), args.Error(1)
}
func (m *MockQuerier) ListTopActors(ctx context.Context, limit int32) ([]database.ListTopActorsRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ListTopActorsRow), args.Error(1)
}
func (m *MockQuerier) ListTopRepos(ctx context.Context, limit int32) ([]database.ListTopReposRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ListTopReposRow), args.Error(1)
}
func (m *MockQuerier) UpsertCleanEvent(ctx context.Context, arg database.UpsertCleanEventParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
func (m *MockQuerier) UpsertRawEvent(ctx context.Context, arg database.UpsertRawEventParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
