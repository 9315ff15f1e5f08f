package ports

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// SchemeRenderer serializes a scheme of work into one downloadable format.
type SchemeRenderer interface {
	Format() string      // csv, pdf, docx
	ContentType() string // HTTP media type of the artifact
	Render(ctx context.Context, scheme *entity.SchemeOfWork) ([]byte, error)
}
