package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

// uploadLimit the allow-list and size limit one upload endpoint enforces.
type uploadLimit struct {
	allow    ports.AllowList
	maxBytes int64
}

// withUpload reads the "file" form part, rejects it on the multipart header's size and
// extension before anything is opened, then hands the content to fn.
func withUpload(c *fiber.Ctx, lim uploadLimit, fn func(fh *multipart.FileHeader, r io.Reader) error) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: multipart field \"file\" is required", domain.ErrInvalidInput))
	}
	if err := ingestion.CheckUpload(lim.allow, fh.Filename, fh.Size, lim.maxBytes); err != nil {
		return writeError(c, err)
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()
	return fn(fh, f)
}
