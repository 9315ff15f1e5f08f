package dto

import "time"

// UploadTemplateInput metadata accompanying a template upload.
type UploadTemplateInput struct {
	Name         string
	Description  string
	TemplateType string
	FileName     string
	Size         int64
}

// TemplateResponse a template. ExtractedText is only filled on single fetch.
type TemplateResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	TemplateType  string    `json:"template_type"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	TextLength    int       `json:"text_length"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	UploadedBy    string    `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TemplateListResponse paged templates.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
