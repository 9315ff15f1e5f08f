package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// Only the counting methods are called; the embedded interfaces stay nil.

type docCounts struct {
	repository.DocumentRepository
	byStatus map[entity.ProcessingStatus]int
	err      error
}

func (d docCounts) CountByStatus(context.Context) (map[entity.ProcessingStatus]int, error) {
	return d.byStatus, d.err
}

type libraryCounts struct {
	repository.LibraryRepository
	byStatus map[entity.LibraryStatus]int
}

func (l libraryCounts) CountByStatus(context.Context) (map[entity.LibraryStatus]int, error) {
	return l.byStatus, nil
}

type schemeCount struct {
	repository.SchemeRepository
	n int
}

func (s schemeCount) Count(context.Context) (int, error) { return s.n, nil }

type lessonCount struct {
	repository.LessonPlanRepository
	n int
}

func (l lessonCount) Count(context.Context) (int, error) { return l.n, nil }

type queryLogCounts struct {
	repository.QueryLogRepository
	since time.Time
	n     int
}

func (q *queryLogCounts) CountSince(_ context.Context, since time.Time) (int, error) {
	q.since = since
	return q.n, nil
}

func TestGetStats(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	queries := &queryLogCounts{n: 17}
	uc := NewDashboardUseCase(
		docCounts{byStatus: map[entity.ProcessingStatus]int{
			entity.ProcessingCompleted: 12,
			entity.ProcessingFailed:    2,
			entity.ProcessingPending:   1,
		}},
		schemeCount{n: 5},
		lessonCount{n: 9},
		libraryCounts{byStatus: map[entity.LibraryStatus]int{entity.LibraryApproved: 4, entity.LibraryPending: 3}},
		queries,
	)
	uc.now = func() time.Time { return now }

	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	// Case 1: every status appears, zero when absent
	assert.Equal(t, map[string]int{"PENDING": 1, "PROCESSING": 0, "COMPLETED": 12, "FAILED": 2}, out.Documents)
	assert.Equal(t, 15, out.TotalDocuments)
	assert.Equal(t, 4, out.Library[string(entity.LibraryApproved)])
	assert.Equal(t, 3, out.Library[string(entity.LibraryPending)])
	assert.Equal(t, 0, out.Library[string(entity.LibraryDeclined)])
	assert.Len(t, out.Library, 3)

	assert.Equal(t, 5, out.Schemes)
	assert.Equal(t, 9, out.LessonPlans)

	// Case 2: AI queries counted over the last seven days
	assert.Equal(t, 17, out.AIQueriesLast7d)
	assert.Equal(t, now.Add(-7*24*time.Hour), queries.since)
	assert.Equal(t, now, out.GeneratedAt)
}

func TestGetStats_RepositoryError(t *testing.T) {
	uc := NewDashboardUseCase(
		docCounts{err: errors.New("relation documents does not exist")},
		schemeCount{}, lessonCount{}, libraryCounts{}, &queryLogCounts{},
	)

	_, err := uc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: documents")
}
