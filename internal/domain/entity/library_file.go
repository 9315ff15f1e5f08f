package entity

import "time"

// LibraryStatus approval workflow of a library resource.
type LibraryStatus string

const (
	LibraryPending  LibraryStatus = "PENDING"
	LibraryApproved LibraryStatus = "APPROVED"
	LibraryDeclined LibraryStatus = "DECLINED"
)

// Library file kinds.
const (
	LibraryKindPDF   = "pdf"
	LibraryKindVideo = "video"
	LibraryKindAudio = "audio"
	LibraryKindImage = "image"
)

// LibraryFile an uploaded resource shown in the shared library once approved.
type LibraryFile struct {
	ID            string
	Title         string
	Description   string
	Section       string
	Subfolder     string
	FileType      string // pdf, video, audio, image
	FileName      string
	FilePath      string
	FileSize      int64
	MimeType      string
	Status        LibraryStatus
	DeclineReason string
	UploadedBy    string
	ReviewedBy    string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanReview reports whether the file may still be approved or declined.
// Reviews are one-directional: only PENDING files move.
func (f *LibraryFile) CanReview() bool {
	return f.Status == LibraryPending
}

// ValidLibraryStatus reports whether s names a known status.
func ValidLibraryStatus(s string) bool {
	switch LibraryStatus(s) {
	case LibraryPending, LibraryApproved, LibraryDeclined:
		return true
	}
	return false
}
