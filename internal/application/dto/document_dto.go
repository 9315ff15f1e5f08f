package dto

import "time"

// UploadDocumentInput metadata accompanying a curriculum upload (multipart form fields).
type UploadDocumentInput struct {
	Title        string
	Subject      string
	Grade        string
	DocumentType string
	FileName     string
	Size         int64
}

// DocumentResponse a curriculum document. Extracted text is omitted from listings.
type DocumentResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Subject          string     `json:"subject"`
	Grade            string     `json:"grade"`
	DocumentType     string     `json:"document_type"`
	FileName         string     `json:"file_name"`
	FileSize         int64      `json:"file_size"`
	MimeType         string     `json:"mime_type"`
	ProcessingStatus string     `json:"processing_status"`
	ProcessingError  string     `json:"processing_error,omitempty"`
	ChunkCount       int        `json:"chunk_count"`
	ExtractedText    string     `json:"extracted_text,omitempty"`
	UploadedBy       string     `json:"uploaded_by"`
	CreatedAt        time.Time  `json:"created_at"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
}

// DocumentListResponse paged documents.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DocumentListQuery filters for GET /api/documents.
type DocumentListQuery struct {
	Subject      string `query:"subject"`
	Grade        string `query:"grade"`
	DocumentType string `query:"document_type"`
	Status       string `query:"status"`
	PageRequest
}

// ReferenceHit one chunk returned by the reference search.
type ReferenceHit struct {
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Subject       string  `json:"subject"`
	Grade         string  `json:"grade"`
	ChunkIndex    int     `json:"chunk_index"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
}

// ReferenceSearchResponse results of GET /api/documents/search.
type ReferenceSearchResponse struct {
	Query   string         `json:"query"`
	Results []ReferenceHit `json:"results"`
}
