package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

type memLessons struct {
	items   map[string]*entity.LessonPlan
	lookups int
}

func newMemLessons() *memLessons { return &memLessons{items: map[string]*entity.LessonPlan{}} }

func (m *memLessons) Create(_ context.Context, p *entity.LessonPlan) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memLessons) GetByID(_ context.Context, id string) (*entity.LessonPlan, error) {
	m.lookups++
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memLessons) Update(_ context.Context, p *entity.LessonPlan) error {
	if _, ok := m.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memLessons) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memLessons) List(_ context.Context, f repository.PlanFilter) ([]*entity.LessonPlan, int, error) {
	var out []*entity.LessonPlan
	for _, p := range m.items {
		if f.OwnerID != "" && p.CreatedBy != f.OwnerID {
			continue
		}
		if f.Subject != "" && p.Subject != f.Subject {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memLessons) Count(context.Context) (int, error) { return len(m.items), nil }

func sampleLesson() dto.LessonPlanRequest {
	return dto.LessonPlanRequest{
		Title: " Halves and quarters ", Subject: "Mathematics", Grade: "Grade 3",
		Strand: "Numbers", SubStrand: "Fractions", Duration: "35 minutes",
		SpecificObjectives: []string{"Identify halves"},
		Activities:         []dto.LessonActivityDTO{{Step: "Introduction", Description: "Fold paper in two"}},
	}
}

func TestLessonPlan_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newMemLessons()
	audit := &recordingAuditor{}
	uc := usecase.NewLessonPlanUseCase(repo, audit)

	created, err := uc.Create(ctx, teacher, sampleLesson())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Halves and quarters", created.Title)
	assert.Equal(t, teacher.UserID, created.CreatedBy)

	got, err := uc.Get(ctx, teacher, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", got.SubStrand)

	in := sampleLesson()
	in.Title = "Halves, quarters and thirds"
	updated, err := uc.Update(ctx, teacher, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, teacher.UserID, updated.CreatedBy)
	assert.Equal(t, "Halves, quarters and thirds", repo.items[created.ID].Title)

	require.NoError(t, uc.Delete(ctx, teacher, created.ID))
	assert.Empty(t, repo.items)
	_, err = uc.Get(ctx, teacher, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, audit.entries, 3)
	assert.Equal(t, entity.AuditCreate, audit.entries[0].Action)
	assert.Equal(t, entity.AuditUpdate, audit.entries[1].Action)
	assert.Equal(t, entity.AuditDelete, audit.entries[2].Action)
}

func TestLessonPlan_Validation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewLessonPlanUseCase(newMemLessons(), &recordingAuditor{})

	cases := map[string]func(*dto.LessonPlanRequest){
		"no title":           func(r *dto.LessonPlanRequest) { r.Title = "  " },
		"no subject":         func(r *dto.LessonPlanRequest) { r.Subject = "" },
		"no grade":           func(r *dto.LessonPlanRequest) { r.Grade = "" },
		"malformed schemeId": func(r *dto.LessonPlanRequest) { r.SchemeID = "scheme-7" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleLesson()
			mutate(&in)
			_, err := uc.Create(ctx, teacher, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLessonPlan_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := newMemLessons()
	uc := usecase.NewLessonPlanUseCase(repo, &recordingAuditor{})

	mine, err := uc.Create(ctx, teacher, sampleLesson())
	require.NoError(t, err)
	_, err = uc.Create(ctx, other, sampleLesson())
	require.NoError(t, err)

	t.Run("other teachers see a missing plan", func(t *testing.T) {
		_, err := uc.Get(ctx, other, mine.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = uc.Update(ctx, other, mine.ID, sampleLesson())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, uc.Delete(ctx, other, mine.ID), domain.ErrNotFound)
		assert.Contains(t, repo.items, mine.ID)
	})

	t.Run("lists are per owner, admins see all", func(t *testing.T) {
		list, err := uc.List(ctx, teacher, dto.PlanListQuery{})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, mine.ID, list.Items[0].ID)

		all, err := uc.List(ctx, admin, dto.PlanListQuery{})
		require.NoError(t, err)
		assert.Len(t, all.Items, 2)
		assert.Equal(t, 2, all.Page.Total)
	})

	t.Run("admin reads any plan", func(t *testing.T) {
		got, err := uc.Get(ctx, admin, mine.ID)
		require.NoError(t, err)
		assert.Equal(t, teacher.UserID, got.CreatedBy)
	})

	t.Run("malformed id skips the store", func(t *testing.T) {
		before := repo.lookups
		_, err := uc.Get(ctx, admin, "lesson-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, before, repo.lookups)
	})
}
