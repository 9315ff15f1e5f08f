package dto

// GenerateSchemeRequest input for POST /api/schemes/generate.
// TemplateContent takes precedence over TemplateID when both are sent.
type GenerateSchemeRequest struct {
	Subject                string `json:"subject"`
	Grade                  string `json:"grade"`
	Term                   string `json:"term"`
	Strand                 string `json:"strand"`
	SubStrand              string `json:"subStrand"`
	Weeks                  int    `json:"weeks"`
	TemplateID             string `json:"templateId,omitempty"`
	TemplateContent        string `json:"templateContent,omitempty"`
	AdditionalInstructions string `json:"additionalInstructions,omitempty"`
}

// GenerateLessonPlanRequest input for POST /api/lesson-plans/generate.
type GenerateLessonPlanRequest struct {
	Subject         string `json:"subject"`
	Grade           string `json:"grade"`
	Strand          string `json:"strand"`
	SubStrand       string `json:"subStrand"`
	Topic           string `json:"topic"`
	Duration        string `json:"duration"`
	TemplateID      string `json:"templateId,omitempty"`
	TemplateContent string `json:"templateContent,omitempty"`
}

// ChatMessage one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// ChatRequest the prior history plus the new user message.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Message  string        `json:"message"`
}

// ChatResponse the history with the new user message and the assistant reply appended.
type ChatResponse struct {
	Messages []ChatMessage `json:"messages"`
	Reply    string        `json:"reply"`
}

// AskRequest a reference question, optionally narrowed to a subject and grade.
type AskRequest struct {
	Question string `json:"question"`
	Subject  string `json:"subject,omitempty"`
	Grade    string `json:"grade,omitempty"`
	Language string `json:"language,omitempty"` // en | sw
}

// AskResponse the answer and the chunks it was grounded on.
type AskResponse struct {
	Answer           string         `json:"answer"`
	Sources          []ReferenceHit `json:"sources"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
}
