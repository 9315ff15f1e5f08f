package ingestion_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// ── In-memory document repository ─────────────────────────────────────────────

type memDocRepo struct {
	mu     sync.Mutex
	docs   map[string]*entity.Document
	chunks map[string][]entity.DocumentChunk
	trail  []entity.ProcessingStatus
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: map[string]*entity.Document{}, chunks: map[string][]entity.DocumentChunk{}}
}

func (r *memDocRepo) Create(_ context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.docs[d.ID] = &cp
	r.trail = append(r.trail, d.ProcessingStatus)
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocRepo) List(context.Context, repository.DocumentFilter) ([]*entity.Document, int, error) {
	return nil, 0, nil
}

func (r *memDocRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *memDocRepo) TransitionStatus(_ context.Context, id string, from, to entity.ProcessingStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.ProcessingStatus != from || !entity.CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	d.ProcessingStatus = to
	d.ProcessingError = errMsg
	r.trail = append(r.trail, to)
	return nil
}

func (r *memDocRepo) CompleteProcessing(_ context.Context, id, text string, chunks []entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.ProcessingStatus != entity.ProcessingProcessing {
		return domain.ErrInvalidTransition
	}
	d.ProcessingStatus = entity.ProcessingCompleted
	d.ExtractedText = text
	d.ChunkCount = len(chunks)
	r.chunks[id] = chunks
	r.trail = append(r.trail, entity.ProcessingCompleted)
	return nil
}

func (r *memDocRepo) SearchChunks(context.Context, repository.ChunkSearch) ([]repository.ChunkHit, error) {
	return nil, nil
}

func (r *memDocRepo) CountByStatus(context.Context) (map[entity.ProcessingStatus]int, error) {
	return nil, nil
}

// ── In-memory storage ─────────────────────────────────────────────────────────

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	saves int
}

func newMemStorage() *memStorage { return &memStorage{files: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, req ports.SaveRequest, r io.Reader) (*ports.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	ext := strings.ToLower(filepath.Ext(req.OriginalName))
	rule := req.Allow.RuleFor(ext)
	if rule == nil {
		return nil, domain.ErrUnsupportedFileType
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(req.Dir, req.OriginalName)
	s.files[path] = data
	return &ports.StoredFile{Path: path, Size: int64(len(data)), MimeType: rule.MIMEs[0], Kind: rule.Kind}, nil
}

func (s *memStorage) Open(path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

// ── Extractor and auditor ─────────────────────────────────────────────────────

type stubExtractor struct {
	text string
	err  error
}

func (e stubExtractor) Extract(context.Context, string, string) (string, error) {
	return e.text, e.err
}

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, ports.AuditEntry) {}

var errBrokenPDF = errors.New("malformed xref table")
