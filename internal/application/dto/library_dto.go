package dto

import "time"

// UploadLibraryInput metadata accompanying a library upload.
type UploadLibraryInput struct {
	Title       string
	Description string
	Section     string
	Subfolder   string
	FileName    string
	Size        int64
}

// LibraryFileResponse a library resource.
type LibraryFileResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Section       string     `json:"section"`
	Subfolder     string     `json:"subfolder"`
	FileType      string     `json:"file_type"`
	FileName      string     `json:"file_name"`
	FileSize      int64      `json:"file_size"`
	MimeType      string     `json:"mime_type"`
	Status        string     `json:"status"`
	DeclineReason string     `json:"decline_reason,omitempty"`
	UploadedBy    string     `json:"uploaded_by"`
	ReviewedBy    string     `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LibraryListResponse paged library files.
type LibraryListResponse struct {
	Items []LibraryFileResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LibraryListQuery filters for GET /api/library.
type LibraryListQuery struct {
	Status    string `query:"status"`
	Section   string `query:"section"`
	Subfolder string `query:"subfolder"`
	FileType  string `query:"file_type"`
	PageRequest
}

// DeclineRequest admin input for PUT /api/library/:id/decline.
type DeclineRequest struct {
	Reason string `json:"reason"`
}

// LibrarySectionDTO a section with its subfolders.
type LibrarySectionDTO struct {
	Section    string                `json:"section"`
	Count      int                   `json:"count"`
	Subfolders []LibrarySubfolderDTO `json:"subfolders"`
}

// LibrarySubfolderDTO a subfolder and its file count.
type LibrarySubfolderDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
