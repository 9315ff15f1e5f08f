package ports

import (
	"context"
	"io"
)

// FileRule an accepted extension and the MIME types content sniffing may report for it.
type FileRule struct {
	Ext   string   // lower case, with dot
	MIMEs []string // any match is enough
	Kind  string   // pdf, docx, txt, video, audio, image
}

// AllowList the rules one upload kind accepts.
type AllowList []FileRule

// RuleFor returns the rule for a filename extension, or nil when the extension is not accepted.
func (a AllowList) RuleFor(ext string) *FileRule {
	for i := range a {
		if a[i].Ext == ext {
			return &a[i]
		}
	}
	return nil
}

// SaveRequest one file to persist.
type SaveRequest struct {
	Dir          string // sub-directory under the storage root: documents, templates, library
	OriginalName string
	Allow        AllowList
	MaxBytes     int64
}

// StoredFile what storage knows about a file it just wrote.
type StoredFile struct {
	Path     string
	Size     int64
	MimeType string
	Kind     string
	SHA256   string
}

// FileStorage outbound port to the upload directory.
// Save rejects disallowed extensions and sniffed MIME types before anything is written.
type FileStorage interface {
	Save(ctx context.Context, req SaveRequest, r io.Reader) (*StoredFile, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// TextExtractor turns a stored file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path, mimeType string) (string, error)
}
