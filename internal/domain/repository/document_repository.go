package repository

import (
	"context"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// DocumentFilter optional criteria for listing documents.
type DocumentFilter struct {
	Subject      string
	Grade        string
	DocumentType string
	Status       string
	Limit        int
	Offset       int
}

// ChunkSearch criteria for the reference search over extracted text.
type ChunkSearch struct {
	Query   string
	Subject string
	Grade   string
	Limit   int
}

// ChunkHit a matching chunk plus the document it belongs to.
type ChunkHit struct {
	Chunk         entity.DocumentChunk
	DocumentTitle string
	Subject       string
	Grade         string
	Rank          float64
}

// DocumentRepository persistence port for Document and its chunks.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, int, error)
	Delete(ctx context.Context, id string) error

	// TransitionStatus moves the document from `from` to `to` only if it is still in `from`.
	// Returns domain.ErrInvalidTransition when the row was not in the expected status.
	TransitionStatus(ctx context.Context, id string, from, to entity.ProcessingStatus, errMsg string) error

	// CompleteProcessing stores the text and chunks and moves PROCESSING -> COMPLETED atomically.
	CompleteProcessing(ctx context.Context, id, extractedText string, chunks []entity.DocumentChunk) error

	SearchChunks(ctx context.Context, s ChunkSearch) ([]ChunkHit, error)
	CountByStatus(ctx context.Context) (map[entity.ProcessingStatus]int, error)
}
