// Package storage keeps uploaded files on the local disk under UPLOAD_DIR.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

var _ ports.FileStorage = (*DiskStorage)(nil)

// sniffLen bytes read ahead for content detection.
const sniffLen = 3072

// DiskStorage writes files to <root>/<dir>/<uuid><ext>. Paths handed out are relative to root.
type DiskStorage struct {
	root string
}

// NewDiskStorage creates the root directory if needed.
func NewDiskStorage(root string) (*DiskStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", abs, err)
	}
	return &DiskStorage{root: abs}, nil
}

// Root absolute upload directory.
func (s *DiskStorage) Root() string { return s.root }

// Save checks the extension and the sniffed content type against the allow-list,
// then streams the file to disk. Nothing is left behind when a check fails.
func (s *DiskStorage) Save(ctx context.Context, req ports.SaveRequest, r io.Reader) (*ports.StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(req.OriginalName))
	rule := req.Allow.RuleFor(ext)
	if rule == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("storage: read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}

	detected := mimetype.Detect(head)
	mimeType, ok := matchRule(detected, rule)
	if !ok {
		return nil, fmt.Errorf("%w: %s content does not match %s", domain.ErrUnsupportedFileType, detected.String(), ext)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, filepath.Clean("/" + req.Dir)[1:])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	name := uuid.New().String() + ext
	full := filepath.Join(dir, name)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: create file: %w", err)
	}

	hasher := sha256.New()
	src := io.MultiReader(bytes.NewReader(head), r)
	if req.MaxBytes > 0 {
		src = io.LimitReader(src, req.MaxBytes+1)
	}
	written, copyErr := io.Copy(io.MultiWriter(f, hasher), src)
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return nil, fmt.Errorf("storage: write file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return nil, fmt.Errorf("storage: close file: %w", closeErr)
	case req.MaxBytes > 0 && written > req.MaxBytes:
		_ = os.Remove(full)
		return nil, fmt.Errorf("%w: limit is %d MB", domain.ErrFileTooLarge, req.MaxBytes>>20)
	}

	rel, _ := filepath.Rel(s.root, full)
	return &ports.StoredFile{
		Path:     filepath.ToSlash(rel),
		Size:     written,
		MimeType: mimeType,
		Kind:     rule.Kind,
		SHA256:   hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Open returns a reader over a stored file.
func (s *DiskStorage) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *DiskStorage) Remove(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

// resolve maps a stored path to an absolute one, refusing anything outside root.
func (s *DiskStorage) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path outside upload directory", domain.ErrInvalidInput)
	}
	return full, nil
}

// matchRule walks the detected type and its parents looking for an allowed MIME type.
func matchRule(detected *mimetype.MIME, rule *ports.FileRule) (string, bool) {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range rule.MIMEs {
			if m.Is(allowed) {
				return allowed, true
			}
		}
	}
	return "", false
}
