package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo stores generation templates with their extracted text.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository builds the adapter. Pass the pool or a tx.
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `id, name, description, template_type, file_name, file_path, file_size,
	mime_type, extracted_text, uploaded_by, created_at, updated_at`

func (r *TemplateRepo) Create(ctx context.Context, t *entity.Template) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Name, t.Description, t.TemplateType, t.FileName, t.FilePath, t.FileSize, t.MimeType,
		t.ExtractedText, nullIfEmpty(t.UploadedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	t, err := scanTemplate(r.q.QueryRow(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context, templateType string, limit, offset int) ([]*entity.Template, int, error) {
	var w whereBuilder
	if templateType != "" {
		w.add("template_type = ?", templateType)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM templates`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}
	limit, offset = clampPage(limit, offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+templateColumns+` FROM templates`+w.sql()+
		` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*entity.Template, error) {
	var t entity.Template
	var uploadedBy *string
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.TemplateType, &t.FileName, &t.FilePath,
		&t.FileSize, &t.MimeType, &t.ExtractedText, &uploadedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.UploadedBy = derefString(uploadedBy)
	return &t, nil
}
