package entity

import "time"

// ProcessingStatus lifecycle of an uploaded curriculum document.
type ProcessingStatus string

const (
	ProcessingPending    ProcessingStatus = "PENDING"
	ProcessingProcessing ProcessingStatus = "PROCESSING"
	ProcessingCompleted  ProcessingStatus = "COMPLETED"
	ProcessingFailed     ProcessingStatus = "FAILED"
)

// Document types accepted on upload.
const (
	DocumentTypeCurriculum = "curriculum"
	DocumentTypeSyllabus   = "syllabus"
	DocumentTypeGuide      = "teachers_guide"
	DocumentTypeAssessment = "assessment"
	DocumentTypeOther      = "other"
)

// Document an uploaded curriculum file and its extraction state.
type Document struct {
	ID               string
	Title            string
	Subject          string
	Grade            string
	DocumentType     string
	FileName         string // original client filename
	FilePath         string
	FileSize         int64
	MimeType         string
	ContentHash      string // sha256, informative only
	ExtractedText    string
	ProcessingStatus ProcessingStatus
	ProcessingError  string
	ChunkCount       int
	UploadedBy       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ProcessedAt      *time.Time
}

// DocumentChunk a slice of extracted text used for reference search.
type DocumentChunk struct {
	ID         string
	DocumentID string
	ChunkIndex int
	Content    string
	StartChar  int
	EndChar    int
	CreatedAt  time.Time
}

// IsTerminal reports whether no further transition is allowed.
func (s ProcessingStatus) IsTerminal() bool {
	return s == ProcessingCompleted || s == ProcessingFailed
}

// CanTransition reports whether from -> to is a legal move:
// PENDING -> PROCESSING -> COMPLETED | FAILED.
func CanTransition(from, to ProcessingStatus) bool {
	switch from {
	case ProcessingPending:
		return to == ProcessingProcessing
	case ProcessingProcessing:
		return to == ProcessingCompleted || to == ProcessingFailed
	}
	return false
}

// ValidDocumentType reports whether t is an accepted document type.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeCurriculum, DocumentTypeSyllabus, DocumentTypeGuide, DocumentTypeAssessment, DocumentTypeOther:
		return true
	}
	return false
}

// ValidProcessingStatus reports whether s names a known status.
func ValidProcessingStatus(s string) bool {
	switch ProcessingStatus(s) {
	case ProcessingPending, ProcessingProcessing, ProcessingCompleted, ProcessingFailed:
		return true
	}
	return false
}
