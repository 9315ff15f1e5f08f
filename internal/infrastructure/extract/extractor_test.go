package extract_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/docx"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/extract"
)

type memFiles map[string][]byte

func (m memFiles) Open(path string) (io.ReadCloser, error) {
	data, ok := m[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestExtract_Plain(t *testing.T) {
	files := memFiles{"documents/a.txt": []byte("\xef\xbb\xbfStrand 1:   Numbers.\r\n\r\n\r\n\r\nSub-strand 1.1\tCounting")}

	text, err := extract.NewExtractor(files).Extract(context.Background(), "documents/a.txt", "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "Strand 1: Numbers.\n\nSub-strand 1.1 Counting", text)
}

// Case 1: text written by the Word renderer comes back out, one paragraph per line.
func TestExtract_DOCX(t *testing.T) {
	data, err := docx.NewSchemeRenderer().Render(context.Background(), &entity.SchemeOfWork{
		Title: "Grade 5 English", Subject: "English", Grade: "Grade 5",
		WeeklyPlans: []entity.WeeklyPlan{{Week: 1, Topic: "Reading for fluency"}},
	})
	require.NoError(t, err)
	files := memFiles{"templates/t.docx": data}

	text, err := extract.NewExtractor(files).Extract(context.Background(), "templates/t.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.NoError(t, err)
	assert.Contains(t, text, "Grade 5 English\n")
	assert.Contains(t, text, "Reading for fluency")
}

// Case 2: the extension decides when the stored MIME type is generic.
func TestExtract_FallsBackToExtension(t *testing.T) {
	files := memFiles{"documents/b.txt": []byte("Values: unity")}

	text, err := extract.NewExtractor(files).Extract(context.Background(), "documents/b.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "Values: unity", text)
}

func TestExtract_BrokenPDF(t *testing.T) {
	files := memFiles{"documents/c.pdf": []byte("%PDF-1.4 this is not really a pdf")}

	_, err := extract.NewExtractor(files).Extract(context.Background(), "documents/c.pdf", "application/pdf")
	assert.Error(t, err)
}

func TestExtract_Unsupported(t *testing.T) {
	files := memFiles{"library/v.mp4": []byte("....ftypisom")}

	_, err := extract.NewExtractor(files).Extract(context.Background(), "library/v.mp4", "video/mp4")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}
