package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// LibraryUseCase shared resource library with an admin approval workflow.
type LibraryUseCase struct {
	repo     repository.LibraryRepository
	storage  ports.FileStorage
	audit    ports.Auditor
	maxBytes int64
}

// NewLibraryUseCase builds the use case.
func NewLibraryUseCase(repo repository.LibraryRepository, storage ports.FileStorage, audit ports.Auditor, maxBytes int64) *LibraryUseCase {
	return &LibraryUseCase{repo: repo, storage: storage, audit: audit, maxBytes: maxBytes}
}

// Upload stores a resource as PENDING until an admin reviews it.
func (uc *LibraryUseCase) Upload(ctx context.Context, actor Actor, in dto.UploadLibraryInput, r io.Reader) (*dto.LibraryFileResponse, error) {
	if err := ingestion.CheckUpload(ingestion.LibraryAllowList, in.FileName, in.Size, uc.maxBytes); err != nil {
		return nil, err
	}
	section := strings.TrimSpace(in.Section)
	if section == "" {
		return nil, fmt.Errorf("%w: section is required", domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.FileName
	}

	stored, err := uc.storage.Save(ctx, ports.SaveRequest{
		Dir:          ingestion.DirLibrary,
		OriginalName: in.FileName,
		Allow:        ingestion.LibraryAllowList,
		MaxBytes:     uc.maxBytes,
	}, r)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	f := &entity.LibraryFile{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Section:     section,
		Subfolder:   strings.TrimSpace(in.Subfolder),
		FileType:    stored.Kind,
		FileName:    in.FileName,
		FilePath:    stored.Path,
		FileSize:    stored.Size,
		MimeType:    stored.MimeType,
		Status:      entity.LibraryPending,
		UploadedBy:  actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		_ = uc.storage.Remove(stored.Path)
		return nil, err
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: entity.AuditUpload, EntityType: "library_file", EntityID: f.ID,
		Details: map[string]any{"file_name": f.FileName, "section": f.Section, "size": f.FileSize},
	})
	return toLibraryResponse(f), nil
}

// List returns library files. Non-admins only see APPROVED files and their own uploads.
func (uc *LibraryUseCase) List(ctx context.Context, actor Actor, q dto.LibraryListQuery) (*dto.LibraryListResponse, error) {
	q.DefaultPage()
	status := strings.ToUpper(strings.TrimSpace(q.Status))
	if status != "" && !entity.ValidLibraryStatus(status) {
		return nil, fmt.Errorf("%w: status must be PENDING, APPROVED or DECLINED", domain.ErrInvalidInput)
	}
	f := repository.LibraryFilter{
		Status:    status,
		Section:   q.Section,
		Subfolder: q.Subfolder,
		FileType:  q.FileType,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if !actor.IsAdmin() {
		f.VisibleTo = actor.UserID
	}
	files, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.LibraryListResponse{
		Items: make([]dto.LibraryFileResponse, 0, len(files)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, file := range files {
		out.Items = append(out.Items, *toLibraryResponse(file))
	}
	return out, nil
}

// Get returns a file the actor may see.
func (uc *LibraryUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.LibraryFileResponse, error) {
	f, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toLibraryResponse(f), nil
}

// Open returns the stored content of a file the actor may see. The caller closes the reader.
func (uc *LibraryUseCase) Open(ctx context.Context, actor Actor, id string) (io.ReadCloser, *dto.LibraryFileResponse, error) {
	f, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.storage.Open(f.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return rc, toLibraryResponse(f), nil
}

// Approve publishes a PENDING file.
func (uc *LibraryUseCase) Approve(ctx context.Context, actor Actor, id string) (*dto.LibraryFileResponse, error) {
	return uc.review(ctx, actor, id, entity.LibraryApproved, "")
}

// Decline rejects a PENDING file with an optional reason.
func (uc *LibraryUseCase) Decline(ctx context.Context, actor Actor, id, reason string) (*dto.LibraryFileResponse, error) {
	return uc.review(ctx, actor, id, entity.LibraryDeclined, strings.TrimSpace(reason))
}

func (uc *LibraryUseCase) review(ctx context.Context, actor Actor, id string, to entity.LibraryStatus, reason string) (*dto.LibraryFileResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if !f.CanReview() {
		return nil, fmt.Errorf("%w: file is already %s", domain.ErrConflict, f.Status)
	}

	now := time.Now()
	f.Status = to
	f.DeclineReason = reason
	f.ReviewedBy = actor.UserID
	f.ReviewedAt = &now
	f.UpdatedAt = now
	if err := uc.repo.Review(ctx, f); err != nil {
		return nil, err
	}

	action := entity.AuditApprove
	if to == entity.LibraryDeclined {
		action = entity.AuditDecline
	}
	details := map[string]any{"title": f.Title}
	if reason != "" {
		details["reason"] = reason
	}
	uc.audit.Record(ctx, ports.AuditEntry{
		UserID: actor.UserID, Action: action, EntityType: "library_file", EntityID: f.ID, Details: details,
	})
	return toLibraryResponse(f), nil
}

// Sections returns the section/subfolder tree of files visible to the actor.
func (uc *LibraryUseCase) Sections(ctx context.Context, actor Actor) ([]dto.LibrarySectionDTO, error) {
	visibleTo := actor.UserID
	if actor.IsAdmin() {
		visibleTo = ""
	}
	rows, err := uc.repo.Sections(ctx, visibleTo)
	if err != nil {
		return nil, err
	}
	bySection := map[string]*dto.LibrarySectionDTO{}
	for _, r := range rows {
		s, ok := bySection[r.Section]
		if !ok {
			s = &dto.LibrarySectionDTO{Section: r.Section, Subfolders: []dto.LibrarySubfolderDTO{}}
			bySection[r.Section] = s
		}
		s.Count += r.Count
		if r.Subfolder != "" {
			s.Subfolders = append(s.Subfolders, dto.LibrarySubfolderDTO{Name: r.Subfolder, Count: r.Count})
		}
	}
	out := make([]dto.LibrarySectionDTO, 0, len(bySection))
	for _, s := range bySection {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (uc *LibraryUseCase) visible(ctx context.Context, actor Actor, id string) (*entity.LibraryFile, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if f.Status != entity.LibraryApproved && f.UploadedBy != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func toLibraryResponse(f *entity.LibraryFile) *dto.LibraryFileResponse {
	return &dto.LibraryFileResponse{
		ID:            f.ID,
		Title:         f.Title,
		Description:   f.Description,
		Section:       f.Section,
		Subfolder:     f.Subfolder,
		FileType:      f.FileType,
		FileName:      f.FileName,
		FileSize:      f.FileSize,
		MimeType:      f.MimeType,
		Status:        string(f.Status),
		DeclineReason: f.DeclineReason,
		UploadedBy:    f.UploadedBy,
		ReviewedBy:    f.ReviewedBy,
		ReviewedAt:    f.ReviewedAt,
		CreatedAt:     f.CreatedAt,
	}
}
