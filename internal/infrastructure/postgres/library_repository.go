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

var _ repository.LibraryRepository = (*LibraryRepo)(nil)

// LibraryRepo stores shared library resources and their review state.
type LibraryRepo struct {
	q Querier
}

// NewLibraryRepository builds the adapter. Pass the pool or a tx.
func NewLibraryRepository(q Querier) *LibraryRepo {
	return &LibraryRepo{q: q}
}

const libraryColumns = `id, title, description, section, subfolder, file_type, file_name, file_path,
	file_size, mime_type, status, decline_reason, uploaded_by, reviewed_by, reviewed_at, created_at, updated_at`

func (r *LibraryRepo) Create(ctx context.Context, f *entity.LibraryFile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO library_files (`+libraryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		f.ID, f.Title, f.Description, f.Section, f.Subfolder, f.FileType, f.FileName, f.FilePath,
		f.FileSize, f.MimeType, string(f.Status), f.DeclineReason, f.UploadedBy,
		nullIfEmpty(f.ReviewedBy), f.ReviewedAt, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert library file: %w", err)
	}
	return nil
}

func (r *LibraryRepo) GetByID(ctx context.Context, id string) (*entity.LibraryFile, error) {
	f, err := scanLibraryFile(r.q.QueryRow(ctx, `SELECT `+libraryColumns+` FROM library_files WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get library file: %w", err)
	}
	return f, nil
}

func (r *LibraryRepo) List(ctx context.Context, f repository.LibraryFilter) ([]*entity.LibraryFile, int, error) {
	w := libraryWhere(f.VisibleTo)
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Section != "" {
		w.add("section = ?", f.Section)
	}
	if f.Subfolder != "" {
		w.add("subfolder = ?", f.Subfolder)
	}
	if f.FileType != "" {
		w.add("file_type = ?", f.FileType)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM library_files`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count library files: %w", err)
	}
	limit, offset := clampPage(f.Limit, f.Offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+libraryColumns+` FROM library_files`+w.sql()+
		` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list library files: %w", err)
	}
	defer rows.Close()

	var list []*entity.LibraryFile
	for rows.Next() {
		lf, err := scanLibraryFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan library file: %w", err)
		}
		list = append(list, lf)
	}
	return list, total, rows.Err()
}

// Review only touches rows that are still PENDING; a concurrent review loses with ErrConflict.
func (r *LibraryRepo) Review(ctx context.Context, f *entity.LibraryFile) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE library_files
		SET status = $2, decline_reason = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $6
		WHERE id = $1 AND status = $7`,
		f.ID, string(f.Status), f.DeclineReason, nullIfEmpty(f.ReviewedBy), f.ReviewedAt, f.UpdatedAt,
		string(entity.LibraryPending),
	)
	if err != nil {
		return fmt.Errorf("review library file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: library file %s is no longer pending", domain.ErrConflict, f.ID)
	}
	return nil
}

func (r *LibraryRepo) Sections(ctx context.Context, visibleTo string) ([]repository.LibrarySection, error) {
	w := libraryWhere(visibleTo)
	rows, err := r.q.Query(ctx, `
		SELECT section, subfolder, count(*) FROM library_files`+w.sql()+`
		GROUP BY section, subfolder ORDER BY section, subfolder`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("library sections: %w", err)
	}
	defer rows.Close()

	var out []repository.LibrarySection
	for rows.Next() {
		var s repository.LibrarySection
		if err := rows.Scan(&s.Section, &s.Subfolder, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *LibraryRepo) CountByStatus(ctx context.Context) (map[entity.LibraryStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM library_files GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count library files by status: %w", err)
	}
	defer rows.Close()
	out := map[entity.LibraryStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[entity.LibraryStatus(status)] = n
	}
	return out, rows.Err()
}

// libraryWhere starts a filter limited to APPROVED files plus the user's own uploads.
// An empty visibleTo means no restriction.
func libraryWhere(visibleTo string) *whereBuilder {
	w := &whereBuilder{}
	if visibleTo != "" {
		w.add("(status = ? OR uploaded_by = ?)", string(entity.LibraryApproved), visibleTo)
	}
	return w
}

func scanLibraryFile(row pgx.Row) (*entity.LibraryFile, error) {
	var f entity.LibraryFile
	var status string
	var reviewedBy *string
	err := row.Scan(&f.ID, &f.Title, &f.Description, &f.Section, &f.Subfolder, &f.FileType, &f.FileName,
		&f.FilePath, &f.FileSize, &f.MimeType, &status, &f.DeclineReason, &f.UploadedBy, &reviewedBy,
		&f.ReviewedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Status = entity.LibraryStatus(status)
	f.ReviewedBy = derefString(reviewedBy)
	return &f, nil
}
