package dto

import "time"

// DashboardStatsDTO response of GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	Documents       map[string]int `json:"documents"` // by processing status
	TotalDocuments  int            `json:"total_documents"`
	Schemes         int            `json:"schemes"`
	LessonPlans     int            `json:"lesson_plans"`
	Library         map[string]int `json:"library"` // by approval status
	AIQueriesLast7d int            `json:"ai_queries_last_7_days"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// SubjectDTO a CBC learning area.
type SubjectDTO struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	NameSwahili     string   `json:"name_swahili"`
	Code            string   `json:"code"`
	EducationLevels []string `json:"education_levels"`
	Description     string   `json:"description,omitempty"`
}

// EducationLevelDTO a CBC stage.
type EducationLevelDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	NameSwahili string `json:"name_swahili"`
	Code        string `json:"code"`
	GradeFrom   int    `json:"grade_from"`
	GradeTo     int    `json:"grade_to"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// EducationLevelRequest super admin input for creating or replacing a level.
type EducationLevelRequest struct {
	Name        string `json:"name"`
	NameSwahili string `json:"name_swahili"`
	Code        string `json:"code"`
	GradeFrom   int    `json:"grade_from"`
	GradeTo     int    `json:"grade_to"`
	Description string `json:"description"`
}

// AuditLogDTO an audit entry.
type AuditLogDTO struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AuditLogListResponse paged audit entries.
type AuditLogListResponse struct {
	Items []AuditLogDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}
