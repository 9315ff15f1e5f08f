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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo reads the seeded subjects and maintains education levels.
type CatalogRepo struct {
	q Querier
}

func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// ListSubjects filters by education level code when one is given.
func (r *CatalogRepo) ListSubjects(ctx context.Context, educationLevel string) ([]*entity.Subject, error) {
	var w whereBuilder
	if educationLevel != "" {
		w.add("? = ANY(education_levels)", educationLevel)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, name_swahili, code, education_levels, description
		FROM subjects`+w.sql()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var out []*entity.Subject
	for rows.Next() {
		var s entity.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.NameSwahili, &s.Code, &s.EducationLevels, &s.Description); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

const levelColumns = `id, name, name_swahili, code, grade_from, grade_to, description, is_active,
	COALESCE(created_by::text, ''), created_at, updated_at`

func scanLevel(row pgx.Row) (*entity.EducationLevel, error) {
	var l entity.EducationLevel
	err := row.Scan(&l.ID, &l.Name, &l.NameSwahili, &l.Code, &l.GradeFrom, &l.GradeTo,
		&l.Description, &l.Active, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListEducationLevels orders by the first grade a level covers.
func (r *CatalogRepo) ListEducationLevels(ctx context.Context, includeInactive bool) ([]*entity.EducationLevel, error) {
	var w whereBuilder
	if !includeInactive {
		w.add("is_active")
	}
	rows, err := r.q.Query(ctx, `SELECT `+levelColumns+` FROM education_levels`+w.sql()+` ORDER BY grade_from, name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list education levels: %w", err)
	}
	defer rows.Close()

	var out []*entity.EducationLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan education level: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetEducationLevel(ctx context.Context, id int) (*entity.EducationLevel, error) {
	l, err := scanLevel(r.q.QueryRow(ctx, `SELECT `+levelColumns+` FROM education_levels WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get education level: %w", err)
	}
	return l, nil
}

func (r *CatalogRepo) CreateEducationLevel(ctx context.Context, l *entity.EducationLevel) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO education_levels
			(name, name_swahili, code, grade_from, grade_to, description, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		l.Name, l.NameSwahili, l.Code, l.GradeFrom, l.GradeTo, l.Description, l.Active,
		nullIfEmpty(l.CreatedBy), l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("education level %q: %w", l.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert education level: %w", err)
	}
	return nil
}

func (r *CatalogRepo) UpdateEducationLevel(ctx context.Context, l *entity.EducationLevel) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE education_levels SET name = $2, name_swahili = $3, code = $4, grade_from = $5,
			grade_to = $6, description = $7, updated_at = $8
		WHERE id = $1`,
		l.ID, l.Name, l.NameSwahili, l.Code, l.GradeFrom, l.GradeTo, l.Description, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("education level %q: %w", l.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update education level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeactivateEducationLevel is the soft delete; the row stays for existing references.
func (r *CatalogRepo) DeactivateEducationLevel(ctx context.Context, id int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE education_levels SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate education level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountDocumentsAtLevel matches documents by grade text: the level name, a grade starting
// with the level code ("PP1", "JSS 2") or "Grade N" with N inside the level's range.
func (r *CatalogRepo) CountDocumentsAtLevel(ctx context.Context, id int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*)
		FROM documents d JOIN education_levels l ON l.id = $1
		WHERE lower(d.grade) = lower(l.name)
		   OR upper(d.grade) LIKE upper(l.code) || '%'
		   OR (d.grade ~* '^\s*grade\s*[0-9]+'
		       AND substring(d.grade from '[0-9]+')::int BETWEEN l.grade_from AND l.grade_to)`,
		id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count documents at education level: %w", err)
	}
	return n, nil
}
