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

var _ repository.SchemeRepository = (*SchemeRepo)(nil)

// SchemeRepo stores schemes of work; weekly plans live in a JSONB column.
type SchemeRepo struct {
	q Querier
}

// NewSchemeRepository builds the adapter. Pass the pool or a tx.
func NewSchemeRepository(q Querier) *SchemeRepo {
	return &SchemeRepo{q: q}
}

const schemeColumns = `id, title, subject, grade, term, strand, sub_strand, duration, weeks,
	general_objectives, weekly_plans, template_id, ai_generated, created_by, created_at, updated_at`

func (r *SchemeRepo) Create(ctx context.Context, s *entity.SchemeOfWork) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO schemes_of_work (`+schemeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.Title, s.Subject, s.Grade, s.Term, s.Strand, s.SubStrand, s.Duration, s.Weeks,
		nonNil(s.GeneralObjectives), weeklyPlans(s.WeeklyPlans), nullIfEmpty(s.TemplateID),
		s.AIGenerated, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scheme: %w", err)
	}
	return nil
}

func (r *SchemeRepo) GetByID(ctx context.Context, id string) (*entity.SchemeOfWork, error) {
	s, err := scanScheme(r.q.QueryRow(ctx, `SELECT `+schemeColumns+` FROM schemes_of_work WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scheme: %w", err)
	}
	return s, nil
}

// Update rewrites the content fields; owner and creation time never change.
func (r *SchemeRepo) Update(ctx context.Context, s *entity.SchemeOfWork) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE schemes_of_work SET title = $2, subject = $3, grade = $4, term = $5, strand = $6,
			sub_strand = $7, duration = $8, weeks = $9, general_objectives = $10, weekly_plans = $11,
			template_id = $12, ai_generated = $13, updated_at = $14
		WHERE id = $1`,
		s.ID, s.Title, s.Subject, s.Grade, s.Term, s.Strand, s.SubStrand, s.Duration, s.Weeks,
		nonNil(s.GeneralObjectives), weeklyPlans(s.WeeklyPlans), nullIfEmpty(s.TemplateID),
		s.AIGenerated, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scheme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SchemeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM schemes_of_work WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scheme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SchemeRepo) List(ctx context.Context, f repository.PlanFilter) ([]*entity.SchemeOfWork, int, error) {
	w := planWhere(f, true)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM schemes_of_work`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schemes: %w", err)
	}
	limit, offset := clampPage(f.Limit, f.Offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+schemeColumns+` FROM schemes_of_work`+w.sql()+
		` ORDER BY updated_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var list []*entity.SchemeOfWork
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan scheme: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *SchemeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM schemes_of_work`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count schemes: %w", err)
	}
	return n, nil
}

// planWhere is shared by schemes and lesson plans; lesson plans have no term.
func planWhere(f repository.PlanFilter, withTerm bool) *whereBuilder {
	w := &whereBuilder{}
	if f.OwnerID != "" {
		w.add("created_by = ?", f.OwnerID)
	}
	if f.Subject != "" {
		w.add("subject = ?", f.Subject)
	}
	if f.Grade != "" {
		w.add("grade = ?", f.Grade)
	}
	if withTerm && f.Term != "" {
		w.add("term = ?", f.Term)
	}
	return w
}

func weeklyPlans(p []entity.WeeklyPlan) []entity.WeeklyPlan {
	if p == nil {
		return []entity.WeeklyPlan{}
	}
	return p
}

func scanScheme(row pgx.Row) (*entity.SchemeOfWork, error) {
	var s entity.SchemeOfWork
	var templateID *string
	err := row.Scan(&s.ID, &s.Title, &s.Subject, &s.Grade, &s.Term, &s.Strand, &s.SubStrand,
		&s.Duration, &s.Weeks, &s.GeneralObjectives, &s.WeeklyPlans, &templateID, &s.AIGenerated,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.TemplateID = derefString(templateID)
	return &s, nil
}
