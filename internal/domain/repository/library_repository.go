package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// LibraryFilter criteria for listing library files.
// VisibleTo, when set, restricts results to APPROVED files plus that user's own uploads.
type LibraryFilter struct {
	Status    string
	Section   string
	Subfolder string
	FileType  string
	VisibleTo string
	Limit     int
	Offset    int
}

// LibrarySection a section/subfolder pair with its file count.
type LibrarySection struct {
	Section   string
	Subfolder string
	Count     int
}

// LibraryRepository persistence port for LibraryFile.
type LibraryRepository interface {
	Create(ctx context.Context, f *entity.LibraryFile) error
	GetByID(ctx context.Context, id string) (*entity.LibraryFile, error)
	List(ctx context.Context, f LibraryFilter) ([]*entity.LibraryFile, int, error)

	// Review moves a PENDING file to APPROVED or DECLINED.
	// Returns domain.ErrConflict when the file is no longer PENDING.
	Review(ctx context.Context, f *entity.LibraryFile) error

	Sections(ctx context.Context, visibleTo string) ([]LibrarySection, error)
	CountByStatus(ctx context.Context) (map[entity.LibraryStatus]int, error)
}
