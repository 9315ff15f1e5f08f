package entity

import "time"

// Subject a CBC learning area with its Kiswahili name.
type Subject struct {
	ID              int
	Name            string
	NameSwahili     string
	Code            string
	EducationLevels []string // education level codes the subject is taught at
	Description     string
}

// EducationLevel a CBC stage and the grades it spans. Inactive levels are hidden
// from the catalog but kept for the documents filed under them.
type EducationLevel struct {
	ID          int
	Name        string
	NameSwahili string
	Code        string
	GradeFrom   int
	GradeTo     int
	Description string
	Active      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
