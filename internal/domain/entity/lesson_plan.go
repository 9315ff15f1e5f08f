package entity

import "time"

// LessonPlanActivity one step of the lesson flow.
type LessonPlanActivity struct {
	Step        string `json:"step"` // introduction, development, conclusion...
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// LessonPlan a single lesson derived from a scheme week or written by hand.
type LessonPlan struct {
	ID                  string
	Title               string
	Subject             string
	Grade               string
	Strand              string
	SubStrand           string
	Duration            string
	LessonDate          *time.Time
	SpecificObjectives  []string
	KeyInquiryQuestions []string
	CoreCompetencies    []string
	Values              []string
	Resources           []string
	Activities          []LessonPlanActivity
	Assessment          []string
	Reflection          string
	SchemeID            string
	AIGenerated         bool
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
