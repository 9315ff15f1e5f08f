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

var _ repository.LessonPlanRepository = (*LessonPlanRepo)(nil)

// LessonPlanRepo stores lesson plans; activities live in a JSONB column.
type LessonPlanRepo struct {
	q Querier
}

// NewLessonPlanRepository builds the adapter. Pass the pool or a tx.
func NewLessonPlanRepository(q Querier) *LessonPlanRepo {
	return &LessonPlanRepo{q: q}
}

const lessonPlanColumns = `id, title, subject, grade, strand, sub_strand, duration, lesson_date,
	specific_objectives, key_inquiry_questions, core_competencies, "values", resources, activities,
	assessment, reflection, scheme_id, ai_generated, created_by, created_at, updated_at`

func (r *LessonPlanRepo) Create(ctx context.Context, p *entity.LessonPlan) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO lesson_plans (`+lessonPlanColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		p.ID, p.Title, p.Subject, p.Grade, p.Strand, p.SubStrand, p.Duration, p.LessonDate,
		nonNil(p.SpecificObjectives), nonNil(p.KeyInquiryQuestions), nonNil(p.CoreCompetencies),
		nonNil(p.Values), nonNil(p.Resources), activities(p.Activities), nonNil(p.Assessment),
		p.Reflection, nullIfEmpty(p.SchemeID), p.AIGenerated, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lesson plan: %w", err)
	}
	return nil
}

func (r *LessonPlanRepo) GetByID(ctx context.Context, id string) (*entity.LessonPlan, error) {
	p, err := scanLessonPlan(r.q.QueryRow(ctx, `SELECT `+lessonPlanColumns+` FROM lesson_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson plan: %w", err)
	}
	return p, nil
}

func (r *LessonPlanRepo) Update(ctx context.Context, p *entity.LessonPlan) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE lesson_plans SET title = $2, subject = $3, grade = $4, strand = $5, sub_strand = $6,
			duration = $7, lesson_date = $8, specific_objectives = $9, key_inquiry_questions = $10,
			core_competencies = $11, "values" = $12, resources = $13, activities = $14,
			assessment = $15, reflection = $16, scheme_id = $17, ai_generated = $18, updated_at = $19
		WHERE id = $1`,
		p.ID, p.Title, p.Subject, p.Grade, p.Strand, p.SubStrand, p.Duration, p.LessonDate,
		nonNil(p.SpecificObjectives), nonNil(p.KeyInquiryQuestions), nonNil(p.CoreCompetencies),
		nonNil(p.Values), nonNil(p.Resources), activities(p.Activities), nonNil(p.Assessment),
		p.Reflection, nullIfEmpty(p.SchemeID), p.AIGenerated, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lesson plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LessonPlanRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM lesson_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LessonPlanRepo) List(ctx context.Context, f repository.PlanFilter) ([]*entity.LessonPlan, int, error) {
	w := planWhere(f, false)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM lesson_plans`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lesson plans: %w", err)
	}
	limit, offset := clampPage(f.Limit, f.Offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+lessonPlanColumns+` FROM lesson_plans`+w.sql()+
		` ORDER BY updated_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lesson plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.LessonPlan
	for rows.Next() {
		p, err := scanLessonPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lesson plan: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *LessonPlanRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM lesson_plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lesson plans: %w", err)
	}
	return n, nil
}

func activities(a []entity.LessonPlanActivity) []entity.LessonPlanActivity {
	if a == nil {
		return []entity.LessonPlanActivity{}
	}
	return a
}

func scanLessonPlan(row pgx.Row) (*entity.LessonPlan, error) {
	var p entity.LessonPlan
	var schemeID *string
	err := row.Scan(&p.ID, &p.Title, &p.Subject, &p.Grade, &p.Strand, &p.SubStrand, &p.Duration,
		&p.LessonDate, &p.SpecificObjectives, &p.KeyInquiryQuestions, &p.CoreCompetencies, &p.Values,
		&p.Resources, &p.Activities, &p.Assessment, &p.Reflection, &schemeID, &p.AIGenerated,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.SchemeID = derefString(schemeID)
	return &p, nil
}
