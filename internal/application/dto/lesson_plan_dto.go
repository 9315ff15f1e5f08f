package dto

import "time"

// LessonActivityDTO one step of the lesson flow.
type LessonActivityDTO struct {
	Step        string `json:"step"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// LessonPlanRequest body for creating or replacing a lesson plan.
type LessonPlanRequest struct {
	Title               string              `json:"title"`
	Subject             string              `json:"subject"`
	Grade               string              `json:"grade"`
	Strand              string              `json:"strand"`
	SubStrand           string              `json:"subStrand"`
	Duration            string              `json:"duration"`
	LessonDate          *time.Time          `json:"lessonDate,omitempty"`
	SpecificObjectives  []string            `json:"specificObjectives"`
	KeyInquiryQuestions []string            `json:"keyInquiryQuestions"`
	CoreCompetencies    []string            `json:"coreCompetencies"`
	Values              []string            `json:"values"`
	Resources           []string            `json:"resources"`
	Activities          []LessonActivityDTO `json:"activities"`
	Assessment          []string            `json:"assessment"`
	Reflection          string              `json:"reflection"`
	SchemeID            string              `json:"schemeId,omitempty"`
	AIGenerated         bool                `json:"aiGenerated"`
}

// LessonPlanResponse a lesson plan.
type LessonPlanResponse struct {
	ID                  string              `json:"id,omitempty"`
	Title               string              `json:"title"`
	Subject             string              `json:"subject"`
	Grade               string              `json:"grade"`
	Strand              string              `json:"strand"`
	SubStrand           string              `json:"subStrand"`
	Duration            string              `json:"duration"`
	LessonDate          *time.Time          `json:"lessonDate,omitempty"`
	SpecificObjectives  []string            `json:"specificObjectives"`
	KeyInquiryQuestions []string            `json:"keyInquiryQuestions"`
	CoreCompetencies    []string            `json:"coreCompetencies"`
	Values              []string            `json:"values"`
	Resources           []string            `json:"resources"`
	Activities          []LessonActivityDTO `json:"activities"`
	Assessment          []string            `json:"assessment"`
	Reflection          string              `json:"reflection"`
	SchemeID            string              `json:"schemeId,omitempty"`
	AIGenerated         bool                `json:"aiGenerated"`
	CreatedBy           string              `json:"createdBy,omitempty"`
	CreatedAt           *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time          `json:"updatedAt,omitempty"`
}

// LessonPlanListResponse paged lesson plans.
type LessonPlanListResponse struct {
	Items []LessonPlanResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
