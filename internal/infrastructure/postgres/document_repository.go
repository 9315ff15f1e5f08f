package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements repository.DocumentRepository. It needs the pool itself
// because completing a document writes the chunks and the status in one transaction.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository builds the adapter.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// listing omits extracted_text, which can be megabytes per row.
const documentListColumns = `id, title, subject, grade, document_type, file_name, file_path, file_size,
	mime_type, content_hash, '' AS extracted_text, processing_status, processing_error, chunk_count,
	uploaded_by, created_at, updated_at, processed_at`

const documentColumns = `id, title, subject, grade, document_type, file_name, file_path, file_size,
	mime_type, content_hash, extracted_text, processing_status, processing_error, chunk_count,
	uploaded_by, created_at, updated_at, processed_at`

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		d.ID, d.Title, d.Subject, d.Grade, d.DocumentType, d.FileName, d.FilePath, d.FileSize,
		d.MimeType, d.ContentHash, d.ExtractedText, string(d.ProcessingStatus), d.ProcessingError,
		d.ChunkCount, nullIfEmpty(d.UploadedBy), d.CreatedAt, d.UpdatedAt, d.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var w whereBuilder
	if f.Subject != "" {
		w.add("subject = ?", f.Subject)
	}
	if f.Grade != "" {
		w.add("grade = ?", f.Grade)
	}
	if f.DocumentType != "" {
		w.add("document_type = ?", f.DocumentType)
	}
	if f.Status != "" {
		w.add("processing_status = ?", f.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM documents`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}
	limit, offset := clampPage(f.Limit, f.Offset)
	pageSQL, args := w.page(limit, offset)
	rows, err := r.pool.Query(ctx, `SELECT `+documentListColumns+` FROM documents`+w.sql()+
		` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// Delete removes the row; chunks go with it through ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransitionStatus is a compare-and-set on processing_status.
func (r *DocumentRepo) TransitionStatus(ctx context.Context, id string, from, to entity.ProcessingStatus, errMsg string) error {
	if !entity.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	var processedAt *time.Time
	now := time.Now().UTC()
	if to.IsTerminal() {
		processedAt = &now
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE documents
		SET processing_status = $3, processing_error = $4, updated_at = $5,
			processed_at = COALESCE($6, processed_at)
		WHERE id = $1 AND processing_status = $2`,
		id, string(from), string(to), errMsg, now, processedAt,
	)
	if err != nil {
		return fmt.Errorf("transition document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s is not %s", domain.ErrInvalidTransition, id, from)
	}
	return nil
}

// CompleteProcessing writes text and chunks and flips PROCESSING -> COMPLETED in one transaction.
func (r *DocumentRepo) CompleteProcessing(ctx context.Context, id, extractedText string, chunks []entity.DocumentChunk) error {
	return RunInTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		tag, err := tx.Exec(ctx, `
			UPDATE documents
			SET processing_status = $2, extracted_text = $3, chunk_count = $4, processing_error = '',
				updated_at = $5, processed_at = $5
			WHERE id = $1 AND processing_status = $6`,
			id, string(entity.ProcessingCompleted), extractedText, len(chunks), now,
			string(entity.ProcessingProcessing),
		)
		if err != nil {
			return fmt.Errorf("complete document: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: document %s is not PROCESSING", domain.ErrInvalidTransition, id)
		}

		batch := &pgx.Batch{}
		for _, c := range chunks {
			batch.Queue(`
				INSERT INTO document_chunks (id, document_id, chunk_index, content, start_char, end_char, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				c.ID, c.DocumentID, c.ChunkIndex, c.Content, c.StartChar, c.EndChar, c.CreatedAt)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		return nil
	})
}

// SearchChunks ranks chunks of COMPLETED documents by full-text match on any of the
// query's terms, so a whole question still finds chunks that share a few words with it.
func (r *DocumentRepo) SearchChunks(ctx context.Context, s repository.ChunkSearch) ([]repository.ChunkHit, error) {
	tsq := orQuery(s.Query)
	if tsq == "" {
		return nil, nil
	}
	var w whereBuilder
	w.add("d.processing_status = ?", string(entity.ProcessingCompleted))
	w.add("to_tsvector('simple', c.content) @@ to_tsquery('simple', ?)", tsq)
	if s.Subject != "" {
		w.add("d.subject = ?", s.Subject)
	}
	if s.Grade != "" {
		w.add("d.grade = ?", s.Grade)
	}
	limit := s.Limit
	if limit <= 0 {
		limit = 5
	}
	args := append(append([]any(nil), w.args...), limit)
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.document_id, c.chunk_index, c.content, c.start_char, c.end_char, c.created_at,
			d.title, d.subject, d.grade,
			ts_rank(to_tsvector('simple', c.content), to_tsquery('simple', $2)) AS rank
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id`+w.sql()+`
		ORDER BY rank DESC, d.created_at DESC, c.chunk_index
		LIMIT `+placeholder(len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var hits []repository.ChunkHit
	for rows.Next() {
		var h repository.ChunkHit
		var rank float32
		if err := rows.Scan(&h.Chunk.ID, &h.Chunk.DocumentID, &h.Chunk.ChunkIndex, &h.Chunk.Content,
			&h.Chunk.StartChar, &h.Chunk.EndChar, &h.Chunk.CreatedAt,
			&h.DocumentTitle, &h.Subject, &h.Grade, &rank); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		h.Rank = float64(rank)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// orQuery turns free text into a "a | b | c" tsquery of its words of two or more
// letters or digits. Returns "" when nothing is searchable.
func orQuery(text string) string {
	seen := map[string]bool{}
	var terms []string
	for _, f := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(f)) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return strings.Join(terms, " | ")
}

func (r *DocumentRepo) CountByStatus(ctx context.Context) (map[entity.ProcessingStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT processing_status, count(*) FROM documents GROUP BY processing_status`)
	if err != nil {
		return nil, fmt.Errorf("count documents by status: %w", err)
	}
	defer rows.Close()
	out := map[entity.ProcessingStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[entity.ProcessingStatus(status)] = n
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var status string
	var uploadedBy *string
	err := row.Scan(&d.ID, &d.Title, &d.Subject, &d.Grade, &d.DocumentType, &d.FileName, &d.FilePath,
		&d.FileSize, &d.MimeType, &d.ContentHash, &d.ExtractedText, &status, &d.ProcessingError,
		&d.ChunkCount, &uploadedBy, &d.CreatedAt, &d.UpdatedAt, &d.ProcessedAt)
	if err != nil {
		return nil, err
	}
	d.ProcessingStatus = entity.ProcessingStatus(status)
	d.UploadedBy = derefString(uploadedBy)
	return &d, nil
}
