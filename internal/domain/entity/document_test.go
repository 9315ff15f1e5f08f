package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to entity.ProcessingStatus
		want     bool
	}{
		{entity.ProcessingPending, entity.ProcessingProcessing, true},
		{entity.ProcessingProcessing, entity.ProcessingCompleted, true},
		{entity.ProcessingProcessing, entity.ProcessingFailed, true},
		{entity.ProcessingPending, entity.ProcessingCompleted, false},
		{entity.ProcessingPending, entity.ProcessingFailed, false},
		{entity.ProcessingCompleted, entity.ProcessingProcessing, false},
		{entity.ProcessingFailed, entity.ProcessingPending, false},
		{entity.ProcessingFailed, entity.ProcessingProcessing, false},
		{entity.ProcessingCompleted, entity.ProcessingFailed, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, entity.CanTransition(tc.from, tc.to))
		})
	}
}

func TestProcessingStatus_IsTerminal(t *testing.T) {
	assert.True(t, entity.ProcessingCompleted.IsTerminal())
	assert.True(t, entity.ProcessingFailed.IsTerminal())
	assert.False(t, entity.ProcessingPending.IsTerminal())
	assert.False(t, entity.ProcessingProcessing.IsTerminal())
}

func TestLibraryFile_CanReview(t *testing.T) {
	f := &entity.LibraryFile{Status: entity.LibraryPending}
	assert.True(t, f.CanReview())

	f.Status = entity.LibraryApproved
	assert.False(t, f.CanReview())

	f.Status = entity.LibraryDeclined
	assert.False(t, f.CanReview())
}

func TestSchemeOfWork_SyncWeeks(t *testing.T) {
	s := &entity.SchemeOfWork{
		Weeks:       5,
		WeeklyPlans: []entity.WeeklyPlan{{Week: 4, Topic: "a"}, {Week: 9, Topic: "b"}},
	}
	s.SyncWeeks()

	assert.Equal(t, 2, s.Weeks)
	assert.Equal(t, 1, s.WeeklyPlans[0].Week)
	assert.Equal(t, 2, s.WeeklyPlans[1].Week)
}

func TestRoles(t *testing.T) {
	assert.True(t, entity.IsAdminRole(entity.RoleAdmin))
	assert.True(t, entity.IsAdminRole(entity.RoleSuperAdmin))
	assert.False(t, entity.IsAdminRole(entity.RoleTeacher))
	assert.False(t, entity.ValidRole("bodeguero"))
}
