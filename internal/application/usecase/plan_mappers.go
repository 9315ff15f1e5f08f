package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// SchemeFromRequest builds an unsaved scheme from a request body.
// Weeks follows the number of weekly plans.
func SchemeFromRequest(in dto.SchemeRequest) *entity.SchemeOfWork {
	s := &entity.SchemeOfWork{
		Title:             strings.TrimSpace(in.Title),
		Subject:           strings.TrimSpace(in.Subject),
		Grade:             strings.TrimSpace(in.Grade),
		Term:              strings.TrimSpace(in.Term),
		Strand:            strings.TrimSpace(in.Strand),
		SubStrand:         strings.TrimSpace(in.SubStrand),
		Duration:          strings.TrimSpace(in.Duration),
		GeneralObjectives: nonNil(in.GeneralObjectives),
		TemplateID:        in.TemplateID,
		AIGenerated:       in.AIGenerated,
		WeeklyPlans:       make([]entity.WeeklyPlan, 0, len(in.WeeklyPlans)),
	}
	for _, w := range in.WeeklyPlans {
		s.WeeklyPlans = append(s.WeeklyPlans, weeklyPlanFromDTO(w))
	}
	s.SyncWeeks()
	return s
}

// ToSchemeResponse maps a scheme to its public shape. Zero timestamps are omitted.
func ToSchemeResponse(s *entity.SchemeOfWork) *dto.SchemeResponse {
	out := &dto.SchemeResponse{
		ID:                s.ID,
		Title:             s.Title,
		Subject:           s.Subject,
		Grade:             s.Grade,
		Term:              s.Term,
		Strand:            s.Strand,
		SubStrand:         s.SubStrand,
		Duration:          s.Duration,
		Weeks:             s.Weeks,
		GeneralObjectives: nonNil(s.GeneralObjectives),
		WeeklyPlans:       make([]dto.WeeklyPlanDTO, 0, len(s.WeeklyPlans)),
		TemplateID:        s.TemplateID,
		AIGenerated:       s.AIGenerated,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         timePtr(s.CreatedAt),
		UpdatedAt:         timePtr(s.UpdatedAt),
	}
	for _, w := range s.WeeklyPlans {
		out.WeeklyPlans = append(out.WeeklyPlans, dto.WeeklyPlanDTO{
			Week:                w.Week,
			Topic:               w.Topic,
			SpecificObjectives:  nonNil(w.SpecificObjectives),
			KeyInquiryQuestions: nonNil(w.KeyInquiryQuestions),
			LearningExperiences: nonNil(w.LearningExperiences),
			CoreCompetencies:    nonNil(w.CoreCompetencies),
			Values:              nonNil(w.Values),
			Resources:           nonNil(w.Resources),
			AssessmentMethods:   nonNil(w.AssessmentMethods),
		})
	}
	return out
}

func weeklyPlanFromDTO(w dto.WeeklyPlanDTO) entity.WeeklyPlan {
	return entity.WeeklyPlan{
		Week:                w.Week,
		Topic:               strings.TrimSpace(w.Topic),
		SpecificObjectives:  nonNil(w.SpecificObjectives),
		KeyInquiryQuestions: nonNil(w.KeyInquiryQuestions),
		LearningExperiences: nonNil(w.LearningExperiences),
		CoreCompetencies:    nonNil(w.CoreCompetencies),
		Values:              nonNil(w.Values),
		Resources:           nonNil(w.Resources),
		AssessmentMethods:   nonNil(w.AssessmentMethods),
	}
}

// LessonPlanFromRequest builds an unsaved lesson plan from a request body.
func LessonPlanFromRequest(in dto.LessonPlanRequest) *entity.LessonPlan {
	p := &entity.LessonPlan{
		Title:               strings.TrimSpace(in.Title),
		Subject:             strings.TrimSpace(in.Subject),
		Grade:               strings.TrimSpace(in.Grade),
		Strand:              strings.TrimSpace(in.Strand),
		SubStrand:           strings.TrimSpace(in.SubStrand),
		Duration:            strings.TrimSpace(in.Duration),
		LessonDate:          in.LessonDate,
		SpecificObjectives:  nonNil(in.SpecificObjectives),
		KeyInquiryQuestions: nonNil(in.KeyInquiryQuestions),
		CoreCompetencies:    nonNil(in.CoreCompetencies),
		Values:              nonNil(in.Values),
		Resources:           nonNil(in.Resources),
		Assessment:          nonNil(in.Assessment),
		Reflection:          in.Reflection,
		SchemeID:            in.SchemeID,
		AIGenerated:         in.AIGenerated,
		Activities:          make([]entity.LessonPlanActivity, 0, len(in.Activities)),
	}
	for _, a := range in.Activities {
		p.Activities = append(p.Activities, entity.LessonPlanActivity{Step: a.Step, Duration: a.Duration, Description: a.Description})
	}
	return p
}

// ToLessonPlanResponse maps a lesson plan to its public shape.
func ToLessonPlanResponse(p *entity.LessonPlan) *dto.LessonPlanResponse {
	out := &dto.LessonPlanResponse{
		ID:                  p.ID,
		Title:               p.Title,
		Subject:             p.Subject,
		Grade:               p.Grade,
		Strand:              p.Strand,
		SubStrand:           p.SubStrand,
		Duration:            p.Duration,
		LessonDate:          p.LessonDate,
		SpecificObjectives:  nonNil(p.SpecificObjectives),
		KeyInquiryQuestions: nonNil(p.KeyInquiryQuestions),
		CoreCompetencies:    nonNil(p.CoreCompetencies),
		Values:              nonNil(p.Values),
		Resources:           nonNil(p.Resources),
		Assessment:          nonNil(p.Assessment),
		Reflection:          p.Reflection,
		SchemeID:            p.SchemeID,
		AIGenerated:         p.AIGenerated,
		CreatedBy:           p.CreatedBy,
		CreatedAt:           timePtr(p.CreatedAt),
		UpdatedAt:           timePtr(p.UpdatedAt),
		Activities:          make([]dto.LessonActivityDTO, 0, len(p.Activities)),
	}
	for _, a := range p.Activities {
		out.Activities = append(out.Activities, dto.LessonActivityDTO{Step: a.Step, Duration: a.Duration, Description: a.Description})
	}
	return out
}

func nonNil(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
