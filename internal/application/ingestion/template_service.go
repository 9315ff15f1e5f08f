package ingestion

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// TemplateService stores sample documents and extracts their text synchronously.
type TemplateService struct {
	repo      repository.TemplateRepository
	storage   ports.FileStorage
	extractor ports.TextExtractor
	audit     ports.Auditor
	maxBytes  int64
}

// NewTemplateService builds the service.
func NewTemplateService(
	repo repository.TemplateRepository,
	storage ports.FileStorage,
	extractor ports.TextExtractor,
	audit ports.Auditor,
	maxBytes int64,
) *TemplateService {
	return &TemplateService{repo: repo, storage: storage, extractor: extractor, audit: audit, maxBytes: maxBytes}
}

// Upload stores the template and its extracted text. Extraction failures reject the upload.
func (s *TemplateService) Upload(ctx context.Context, userID string, in dto.UploadTemplateInput, r io.Reader) (*dto.TemplateResponse, error) {
	if err := CheckUpload(TemplateAllowList, in.FileName, in.Size, s.maxBytes); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	tType := strings.TrimSpace(in.TemplateType)
	if tType == "" {
		tType = entity.TemplateTypeScheme
	}
	if !entity.ValidTemplateType(tType) {
		return nil, fmt.Errorf("%w: template_type must be scheme or lesson_plan", domain.ErrInvalidInput)
	}

	stored, err := s.storage.Save(ctx, ports.SaveRequest{
		Dir:          DirTemplates,
		OriginalName: in.FileName,
		Allow:        TemplateAllowList,
		MaxBytes:     s.maxBytes,
	}, r)
	if err != nil {
		return nil, err
	}
	text, err := s.extractor.Extract(ctx, stored.Path, stored.MimeType)
	if err != nil {
		_ = s.storage.Remove(stored.Path)
		return nil, fmt.Errorf("%w: could not read template text: %v", domain.ErrInvalidInput, err)
	}

	now := time.Now()
	t := &entity.Template{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		TemplateType:  tType,
		FileName:      in.FileName,
		FilePath:      stored.Path,
		FileSize:      stored.Size,
		MimeType:      stored.MimeType,
		ExtractedText: strings.TrimSpace(text),
		UploadedBy:    userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		_ = s.storage.Remove(stored.Path)
		return nil, err
	}
	s.audit.Record(ctx, ports.AuditEntry{
		UserID: userID, Action: entity.AuditUpload, EntityType: "template", EntityID: t.ID,
		Details: map[string]any{"file_name": t.FileName, "size": t.FileSize},
	})
	return toTemplateResponse(t, true), nil
}

// Get returns one template with its text.
func (s *TemplateService) Get(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTemplateResponse(t, true), nil
}

// Text returns the extracted text of a template, for prompt building.
func (s *TemplateService) Text(ctx context.Context, id string) (string, error) {
	if !domain.ValidID(id) {
		return "", domain.ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", domain.ErrNotFound
	}
	return t.ExtractedText, nil
}

// List returns templates, optionally of one type.
func (s *TemplateService) List(ctx context.Context, templateType string, page dto.PageRequest) (*dto.TemplateListResponse, error) {
	page.DefaultPage()
	list, total, err := s.repo.List(ctx, templateType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.TemplateListResponse{
		Items: make([]dto.TemplateResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, t := range list {
		out.Items = append(out.Items, *toTemplateResponse(t, false))
	}
	return out, nil
}

// Delete removes a template. Only its uploader or an admin may do so.
func (s *TemplateService) Delete(ctx context.Context, userID string, isAdmin bool, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if t.UploadedBy != userID && !isAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Remove(t.FilePath); err != nil {
		log.Warn().Err(err).Str("template_id", id).Msg("templates: stored file not removed")
	}
	s.audit.Record(ctx, ports.AuditEntry{
		UserID: userID, Action: entity.AuditDelete, EntityType: "template", EntityID: id,
		Details: map[string]any{"name": t.Name},
	})
	return nil
}

func toTemplateResponse(t *entity.Template, withText bool) *dto.TemplateResponse {
	out := &dto.TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		TemplateType: t.TemplateType,
		FileName:     t.FileName,
		FileSize:     t.FileSize,
		MimeType:     t.MimeType,
		TextLength:   len([]rune(t.ExtractedText)),
		UploadedBy:   t.UploadedBy,
		CreatedAt:    t.CreatedAt,
	}
	if withText {
		out.ExtractedText = t.ExtractedText
	}
	return out
}
