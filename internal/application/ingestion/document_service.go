// Package ingestion stores uploaded curriculum documents and templates and turns them into searchable text.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// processTimeout upper bound for extracting and chunking one document.
const processTimeout = 5 * time.Minute

// DocumentConfig limits and chunking parameters.
type DocumentConfig struct {
	MaxBytes     int64
	ChunkSize    int
	ChunkOverlap int
}

// DocumentService uploads curriculum documents and extracts them in the background.
type DocumentService struct {
	repo      repository.DocumentRepository
	storage   ports.FileStorage
	extractor ports.TextExtractor
	audit     ports.Auditor
	cfg       DocumentConfig

	wg sync.WaitGroup
}

// NewDocumentService builds the service.
func NewDocumentService(
	repo repository.DocumentRepository,
	storage ports.FileStorage,
	extractor ports.TextExtractor,
	audit ports.Auditor,
	cfg DocumentConfig,
) *DocumentService {
	return &DocumentService{repo: repo, storage: storage, extractor: extractor, audit: audit, cfg: cfg}
}

// Upload validates and stores the file, inserts a PENDING row and starts extraction.
// Size and extension are checked before the file is written.
func (s *DocumentService) Upload(ctx context.Context, userID string, in dto.UploadDocumentInput, r io.Reader) (*dto.DocumentResponse, error) {
	if err := CheckUpload(DocumentAllowList, in.FileName, in.Size, s.cfg.MaxBytes); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSpace(in.FileName)
	}
	docType := strings.TrimSpace(in.DocumentType)
	if docType == "" {
		docType = entity.DocumentTypeCurriculum
	}
	if !entity.ValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: unknown document_type %q", domain.ErrInvalidInput, docType)
	}
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Grade) == "" {
		return nil, fmt.Errorf("%w: subject and grade are required", domain.ErrInvalidInput)
	}

	stored, err := s.storage.Save(ctx, ports.SaveRequest{
		Dir:          DirDocuments,
		OriginalName: in.FileName,
		Allow:        DocumentAllowList,
		MaxBytes:     s.cfg.MaxBytes,
	}, r)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entity.Document{
		ID:               uuid.New().String(),
		Title:            title,
		Subject:          strings.TrimSpace(in.Subject),
		Grade:            strings.TrimSpace(in.Grade),
		DocumentType:     docType,
		FileName:         in.FileName,
		FilePath:         stored.Path,
		FileSize:         stored.Size,
		MimeType:         stored.MimeType,
		ContentHash:      stored.SHA256,
		ProcessingStatus: entity.ProcessingPending,
		UploadedBy:       userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		_ = s.storage.Remove(stored.Path)
		return nil, err
	}
	s.audit.Record(ctx, ports.AuditEntry{
		UserID: userID, Action: entity.AuditUpload, EntityType: "document", EntityID: doc.ID,
		Details: map[string]any{"file_name": doc.FileName, "size": doc.FileSize, "subject": doc.Subject, "grade": doc.Grade},
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Process(context.WithoutCancel(ctx), doc)
	}()

	return ToDocumentResponse(doc, false), nil
}

// Process runs PENDING -> PROCESSING -> COMPLETED | FAILED for one document.
// A document that is no longer PENDING is left alone.
func (s *DocumentService) Process(ctx context.Context, doc *entity.Document) {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	logger := log.With().Str("document_id", doc.ID).Logger()

	if err := s.repo.TransitionStatus(ctx, doc.ID, entity.ProcessingPending, entity.ProcessingProcessing, ""); err != nil {
		logger.Warn().Err(err).Msg("ingestion: document not claimable")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.fail(ctx, doc.ID, fmt.Errorf("panic during extraction: %v", rec))
		}
	}()

	started := time.Now()
	text, err := s.extractor.Extract(ctx, doc.FilePath, doc.MimeType)
	if err != nil {
		s.fail(ctx, doc.ID, err)
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.fail(ctx, doc.ID, errors.New("no extractable text"))
		return
	}

	spans := Chunk(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	chunks := make([]entity.DocumentChunk, 0, len(spans))
	now := time.Now()
	for i, sp := range spans {
		chunks = append(chunks, entity.DocumentChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChunkIndex: i,
			Content:    sp.Content,
			StartChar:  sp.Start,
			EndChar:    sp.End,
			CreatedAt:  now,
		})
	}
	if err := s.repo.CompleteProcessing(ctx, doc.ID, text, chunks); err != nil {
		s.fail(ctx, doc.ID, err)
		return
	}
	logger.Info().
		Int("chunks", len(chunks)).
		Int("characters", len([]rune(text))).
		Dur("elapsed", time.Since(started)).
		Msg("ingestion: document processed")
}

func (s *DocumentService) fail(ctx context.Context, id string, cause error) {
	log.Error().Err(cause).Str("document_id", id).Msg("ingestion: processing failed")
	if err := s.repo.TransitionStatus(ctx, id, entity.ProcessingProcessing, entity.ProcessingFailed, cause.Error()); err != nil {
		log.Error().Err(err).Str("document_id", id).Msg("ingestion: could not mark document as failed")
	}
}

// Wait blocks until every background extraction has finished.
func (s *DocumentService) Wait() {
	s.wg.Wait()
}

// Get returns one document including its extracted text.
func (s *DocumentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return ToDocumentResponse(doc, true), nil
}

// List returns documents matching the filters, without extracted text.
func (s *DocumentService) List(ctx context.Context, q dto.DocumentListQuery) (*dto.DocumentListResponse, error) {
	q.DefaultPage()
	if q.Status != "" && !entity.ValidProcessingStatus(strings.ToUpper(q.Status)) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, q.Status)
	}
	docs, total, err := s.repo.List(ctx, repository.DocumentFilter{
		Subject:      q.Subject,
		Grade:        q.Grade,
		DocumentType: q.DocumentType,
		Status:       strings.ToUpper(q.Status),
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentListResponse{
		Items: make([]dto.DocumentResponse, 0, len(docs)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, d := range docs {
		out.Items = append(out.Items, *ToDocumentResponse(d, false))
	}
	return out, nil
}

// Delete removes the row (and its chunks) and then the stored file.
func (s *DocumentService) Delete(ctx context.Context, userID, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Remove(doc.FilePath); err != nil {
		log.Warn().Err(err).Str("document_id", id).Msg("ingestion: stored file not removed")
	}
	s.audit.Record(ctx, ports.AuditEntry{
		UserID: userID, Action: entity.AuditDelete, EntityType: "document", EntityID: id,
		Details: map[string]any{"title": doc.Title},
	})
	return nil
}

// Search runs the reference search over chunks of COMPLETED documents.
func (s *DocumentService) Search(ctx context.Context, query, subject, grade string, limit int) (*dto.ReferenceSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q is required", domain.ErrInvalidInput)
	}
	hits, err := s.SearchChunks(ctx, query, subject, grade, limit)
	if err != nil {
		return nil, err
	}
	return &dto.ReferenceSearchResponse{Query: query, Results: hits}, nil
}

// SearchChunks returns the best matching chunks for a free-text query.
func (s *DocumentService) SearchChunks(ctx context.Context, query, subject, grade string, limit int) ([]dto.ReferenceHit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	hits, err := s.repo.SearchChunks(ctx, repository.ChunkSearch{Query: query, Subject: subject, Grade: grade, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, dto.ReferenceHit{
			DocumentID:    h.Chunk.DocumentID,
			DocumentTitle: h.DocumentTitle,
			Subject:       h.Subject,
			Grade:         h.Grade,
			ChunkIndex:    h.Chunk.ChunkIndex,
			Content:       h.Chunk.Content,
			Score:         h.Rank,
		})
	}
	return out, nil
}

// ToDocumentResponse maps a document; withText includes the extracted text.
func ToDocumentResponse(d *entity.Document, withText bool) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:               d.ID,
		Title:            d.Title,
		Subject:          d.Subject,
		Grade:            d.Grade,
		DocumentType:     d.DocumentType,
		FileName:         d.FileName,
		FileSize:         d.FileSize,
		MimeType:         d.MimeType,
		ProcessingStatus: string(d.ProcessingStatus),
		ProcessingError:  d.ProcessingError,
		ChunkCount:       d.ChunkCount,
		UploadedBy:       d.UploadedBy,
		CreatedAt:        d.CreatedAt,
		ProcessedAt:      d.ProcessedAt,
	}
	if withText {
		out.ExtractedText = d.ExtractedText
	}
	return out
}
