package entity

import "time"

// WeeklyPlan one week of a scheme of work. All list fields are plain strings.
type WeeklyPlan struct {
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

// SchemeOfWork a term-long teaching plan split into weekly plans.
type SchemeOfWork struct {
	ID                string
	Title             string
	Subject           string
	Grade             string
	Term              string
	Strand            string
	SubStrand         string
	Duration          string
	Weeks             int
	GeneralObjectives []string
	WeeklyPlans       []WeeklyPlan
	TemplateID        string
	AIGenerated       bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SyncWeeks keeps Weeks equal to the number of weekly plans and renumbers them 1..n.
func (s *SchemeOfWork) SyncWeeks() {
	for i := range s.WeeklyPlans {
		s.WeeklyPlans[i].Week = i + 1
	}
	s.Weeks = len(s.WeeklyPlans)
}
