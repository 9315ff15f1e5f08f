package entity

import "time"

// Template kinds.
const (
	TemplateTypeScheme     = "scheme"
	TemplateTypeLessonPlan = "lesson_plan"
)

// Template a sample document whose text guides generation.
type Template struct {
	ID            string
	Name          string
	Description   string
	TemplateType  string
	FileName      string
	FilePath      string
	FileSize      int64
	MimeType      string
	ExtractedText string
	UploadedBy    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidTemplateType reports whether t is scheme or lesson_plan.
func ValidTemplateType(t string) bool {
	return t == TemplateTypeScheme || t == TemplateTypeLessonPlan
}
