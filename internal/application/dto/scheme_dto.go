package dto

import "time"

// The planning payloads use camelCase keys, the shape the planning editor exchanges.

// WeeklyPlanDTO one week of a scheme of work.
type WeeklyPlanDTO struct {
	Week                int      `json:"week"`
	Topic               string   `json:"topic"`
	SpecificObjectives  []string `json:"specificObjectives"`
	KeyInquiryQuestions []string `json:"keyInquiryQuestions"`
	LearningExperiences []string `json:"learningExperiences"`
	CoreCompetencies    []string `json:"coreCompetencies"`
	Values              []string `json:"values"`
	Resources           []string `json:"resources"`
	AssessmentMethods   []string `json:"assessmentMethods"`
}

// SchemeRequest body for creating or replacing a scheme of work.
type SchemeRequest struct {
	Title             string          `json:"title"`
	Subject           string          `json:"subject"`
	Grade             string          `json:"grade"`
	Term              string          `json:"term"`
	Strand            string          `json:"strand"`
	SubStrand         string          `json:"subStrand"`
	Duration          string          `json:"duration"`
	GeneralObjectives []string        `json:"generalObjectives"`
	WeeklyPlans       []WeeklyPlanDTO `json:"weeklyPlans"`
	TemplateID        string          `json:"templateId,omitempty"`
	AIGenerated       bool            `json:"aiGenerated"`
}

// SchemeResponse a scheme of work.
type SchemeResponse struct {
	ID                string          `json:"id,omitempty"`
	Title             string          `json:"title"`
	Subject           string          `json:"subject"`
	Grade             string          `json:"grade"`
	Term              string          `json:"term"`
	Strand            string          `json:"strand"`
	SubStrand         string          `json:"subStrand"`
	Duration          string          `json:"duration"`
	Weeks             int             `json:"weeks"`
	GeneralObjectives []string        `json:"generalObjectives"`
	WeeklyPlans       []WeeklyPlanDTO `json:"weeklyPlans"`
	TemplateID        string          `json:"templateId,omitempty"`
	AIGenerated       bool            `json:"aiGenerated"`
	CreatedBy         string          `json:"createdBy,omitempty"`
	CreatedAt         *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
}

// SchemeListResponse paged schemes.
type SchemeListResponse struct {
	Items []SchemeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// PlanListQuery filters shared by scheme and lesson plan listings.
type PlanListQuery struct {
	Subject string `query:"subject"`
	Grade   string `query:"grade"`
	Term    string `query:"term"`
	PageRequest
}
