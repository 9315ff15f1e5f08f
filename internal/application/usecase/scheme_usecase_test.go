package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

func sampleScheme() dto.SchemeRequest {
	return dto.SchemeRequest{
		Title: "Grade 3 Mathematics Term 1", Subject: "Mathematics", Grade: "Grade 3", Term: "Term 1",
		Strand: "Numbers",
		WeeklyPlans: []dto.WeeklyPlanDTO{
			{Week: 7, Topic: "Counting", SpecificObjectives: []string{"Count to 100", " "}},
			{Week: 9, Topic: "Place value", SpecificObjectives: []string{"Identify tens"}},
		},
	}
}

func TestScheme_CreateRenumbersWeeks(t *testing.T) {
	uc := usecase.NewSchemeUseCase(newMemSchemes(), &recordingAuditor{})

	out, err := uc.Create(context.Background(), teacher, sampleScheme())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 2, out.Weeks)
	assert.Equal(t, 1, out.WeeklyPlans[0].Week)
	assert.Equal(t, 2, out.WeeklyPlans[1].Week)
	assert.Equal(t, []string{"Count to 100"}, out.WeeklyPlans[0].SpecificObjectives)
	assert.Equal(t, teacher.UserID, out.CreatedBy)
}

func TestScheme_OwnerScoping(t *testing.T) {
	uc := usecase.NewSchemeUseCase(newMemSchemes(), &recordingAuditor{})
	ctx := context.Background()

	created, err := uc.Create(ctx, teacher, sampleScheme())
	require.NoError(t, err)

	_, err = uc.Get(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, admin, created.ID)
	assert.NoError(t, err)

	err = uc.Delete(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, other, dto.PlanListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestScheme_Validation(t *testing.T) {
	uc := usecase.NewSchemeUseCase(newMemSchemes(), &recordingAuditor{})

	req := sampleScheme()
	req.WeeklyPlans[1].Topic = "  "
	_, err := uc.Create(context.Background(), teacher, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = sampleScheme()
	req.Subject = ""
	_, err = uc.Create(context.Background(), teacher, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScheme_UpdateKeepsOwner(t *testing.T) {
	uc := usecase.NewSchemeUseCase(newMemSchemes(), &recordingAuditor{})
	ctx := context.Background()
	created, err := uc.Create(ctx, teacher, sampleScheme())
	require.NoError(t, err)

	req := sampleScheme()
	req.Title = "Revised"
	req.WeeklyPlans = req.WeeklyPlans[:1]
	out, err := uc.Update(ctx, teacher, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, created.ID, out.ID)
	assert.Equal(t, "Revised", out.Title)
	assert.Equal(t, 1, out.Weeks)
	assert.Equal(t, teacher.UserID, out.CreatedBy)
}
