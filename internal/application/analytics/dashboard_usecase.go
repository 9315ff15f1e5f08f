// Package analytics builds the read-only counters shown on the dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// queryWindow period covered by the AI query counter.
const queryWindow = 7 * 24 * time.Hour

// DashboardUseCase aggregates counters from the repositories.
type DashboardUseCase struct {
	docs      repository.DocumentRepository
	schemes   repository.SchemeRepository
	lessons   repository.LessonPlanRepository
	library   repository.LibraryRepository
	queryLogs repository.QueryLogRepository
	now       func() time.Time
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	docs repository.DocumentRepository,
	schemes repository.SchemeRepository,
	lessons repository.LessonPlanRepository,
	library repository.LibraryRepository,
	queryLogs repository.QueryLogRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		docs: docs, schemes: schemes, lessons: lessons, library: library, queryLogs: queryLogs,
		now: time.Now,
	}
}

// GetStats runs the five counting queries in parallel and assembles the DTO.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now()

	type countResult struct {
		n   int
		err error
	}
	type docsResult struct {
		byStatus map[entity.ProcessingStatus]int
		err      error
	}
	type libraryResult struct {
		byStatus map[entity.LibraryStatus]int
		err      error
	}

	docsCh := make(chan docsResult, 1)
	libCh := make(chan libraryResult, 1)
	schemesCh := make(chan countResult, 1)
	lessonsCh := make(chan countResult, 1)
	queriesCh := make(chan countResult, 1)

	go func() {
		m, err := uc.docs.CountByStatus(ctx)
		docsCh <- docsResult{m, err}
	}()
	go func() {
		m, err := uc.library.CountByStatus(ctx)
		libCh <- libraryResult{m, err}
	}()
	go func() {
		n, err := uc.schemes.Count(ctx)
		schemesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.lessons.Count(ctx)
		lessonsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.queryLogs.CountSince(ctx, now.Add(-queryWindow))
		queriesCh <- countResult{n, err}
	}()

	docs, lib := <-docsCh, <-libCh
	schemes, lessons, queries := <-schemesCh, <-lessonsCh, <-queriesCh

	if docs.err != nil {
		return nil, fmt.Errorf("dashboard: documents: %w", docs.err)
	}
	if lib.err != nil {
		return nil, fmt.Errorf("dashboard: library: %w", lib.err)
	}
	if schemes.err != nil {
		return nil, fmt.Errorf("dashboard: schemes: %w", schemes.err)
	}
	if lessons.err != nil {
		return nil, fmt.Errorf("dashboard: lesson plans: %w", lessons.err)
	}
	if queries.err != nil {
		return nil, fmt.Errorf("dashboard: query logs: %w", queries.err)
	}

	out := &dto.DashboardStatsDTO{
		Documents:       map[string]int{},
		Library:         map[string]int{},
		Schemes:         schemes.n,
		LessonPlans:     lessons.n,
		AIQueriesLast7d: queries.n,
		GeneratedAt:     now,
	}
	for _, s := range []entity.ProcessingStatus{
		entity.ProcessingPending, entity.ProcessingProcessing, entity.ProcessingCompleted, entity.ProcessingFailed,
	} {
		out.Documents[string(s)] = docs.byStatus[s]
		out.TotalDocuments += docs.byStatus[s]
	}
	for _, s := range []entity.LibraryStatus{entity.LibraryPending, entity.LibraryApproved, entity.LibraryDeclined} {
		out.Library[string(s)] = lib.byStatus[s]
	}
	return out, nil
}
