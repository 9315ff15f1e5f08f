package ingestion

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

// CheckUpload validates a declared upload before anything touches the disk.
func CheckUpload(allow ports.AllowList, fileName string, size, maxBytes int64) error {
	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit is %d MB", domain.ErrFileTooLarge, size, maxBytes>>20)
	}
	if size <= 0 {
		return fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if allow.RuleFor(ext) == nil {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	return nil
}
