package ingestion_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

func newService(repo *memDocRepo, store *memStorage, ex stubExtractor) *ingestion.DocumentService {
	return ingestion.NewDocumentService(repo, store, ex, nopAuditor{}, ingestion.DocumentConfig{
		MaxBytes:     1 << 20,
		ChunkSize:    100,
		ChunkOverlap: 20,
	})
}

func upload(t *testing.T, svc *ingestion.DocumentService, name, body string) (*dto.DocumentResponse, error) {
	t.Helper()
	return svc.Upload(context.Background(), "teacher-1", dto.UploadDocumentInput{
		Title:    "Grade 3 Mathematics Design",
		Subject:  "Mathematics",
		Grade:    "Grade 3",
		FileName: name,
		Size:     int64(len(body)),
	}, strings.NewReader(body))
}

// Case 1: a readable document ends COMPLETED after PENDING and PROCESSING.
func TestUpload_ProcessesToCompleted(t *testing.T) {
	repo, store := newMemDocRepo(), newMemStorage()
	text := strings.Repeat("Learners identify numbers up to 100. ", 10)
	svc := newService(repo, store, stubExtractor{text: text})

	out, err := upload(t, svc, "design.txt", text)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcessingPending), out.ProcessingStatus)

	svc.Wait()

	doc, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessingCompleted, doc.ProcessingStatus)
	assert.Greater(t, doc.ChunkCount, 1)
	assert.Equal(t, []entity.ProcessingStatus{
		entity.ProcessingPending, entity.ProcessingProcessing, entity.ProcessingCompleted,
	}, repo.trail)
}

// Case 2: an extraction error ends FAILED with the cause recorded.
func TestUpload_ExtractionErrorEndsFailed(t *testing.T) {
	repo, store := newMemDocRepo(), newMemStorage()
	svc := newService(repo, store, stubExtractor{err: errBrokenPDF})

	out, err := upload(t, svc, "design.pdf", "%PDF-1.4 broken")
	require.NoError(t, err)
	svc.Wait()

	doc, _ := repo.GetByID(context.Background(), out.ID)
	assert.Equal(t, entity.ProcessingFailed, doc.ProcessingStatus)
	assert.Contains(t, doc.ProcessingError, "xref")
}

// Case 3: blank text is a failure, not an empty success.
func TestUpload_BlankTextEndsFailed(t *testing.T) {
	repo, store := newMemDocRepo(), newMemStorage()
	svc := newService(repo, store, stubExtractor{text: "  \n "})

	out, err := upload(t, svc, "scan.pdf", "%PDF-1.4")
	require.NoError(t, err)
	svc.Wait()

	doc, _ := repo.GetByID(context.Background(), out.ID)
	assert.Equal(t, entity.ProcessingFailed, doc.ProcessingStatus)
}

// Case 4: terminal documents are not reprocessed.
func TestProcess_TerminalDocumentIsLeftAlone(t *testing.T) {
	repo, store := newMemDocRepo(), newMemStorage()
	svc := newService(repo, store, stubExtractor{text: "new text"})

	doc := &entity.Document{ID: "doc-1", ProcessingStatus: entity.ProcessingFailed}
	require.NoError(t, repo.Create(context.Background(), doc))

	svc.Process(context.Background(), doc)

	got, _ := repo.GetByID(context.Background(), "doc-1")
	assert.Equal(t, entity.ProcessingFailed, got.ProcessingStatus)
	assert.Empty(t, got.ExtractedText)
}

// Case 5: oversized and disallowed files never reach storage.
func TestUpload_RejectedBeforeStorage(t *testing.T) {
	repo, store := newMemDocRepo(), newMemStorage()
	svc := newService(repo, store, stubExtractor{text: "x"})

	_, err := svc.Upload(context.Background(), "teacher-1", dto.UploadDocumentInput{
		Subject: "Mathematics", Grade: "Grade 3", FileName: "big.pdf", Size: 2 << 20,
	}, strings.NewReader("irrelevant"))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = upload(t, svc, "virus.exe", "MZ")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	assert.Zero(t, store.saves)
	assert.Empty(t, repo.docs)
}
