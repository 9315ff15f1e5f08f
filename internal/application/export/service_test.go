package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/export"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

type fakeRenderer struct {
	format string
	err    error
	panics bool
	calls  *[]string
}

func (f fakeRenderer) Format() string      { return f.format }
func (f fakeRenderer) ContentType() string { return "application/x-" + f.format }

func (f fakeRenderer) Render(_ context.Context, s *entity.SchemeOfWork) ([]byte, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.format)
	}
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.format + ":" + s.Title), nil
}

func scheme() *entity.SchemeOfWork {
	return &entity.SchemeOfWork{Title: "Grade 3 Mathematics – Term 1", Subject: "Mathematics", Grade: "Grade 3"}
}

// Case 1: a failing generator does not block the others; results keep request order.
func TestExportAll_PartialFailure(t *testing.T) {
	var calls []string
	svc := export.NewService(0,
		fakeRenderer{format: "csv", calls: &calls},
		fakeRenderer{format: "pdf", err: errors.New("font missing"), calls: &calls},
		fakeRenderer{format: "docx", calls: &calls},
	)

	results := svc.ExportAll(context.Background(), scheme(), []string{"csv", "pdf", "docx"})

	require.Len(t, results, 3)
	assert.Equal(t, []string{"csv", "pdf", "docx"}, calls, "generators run sequentially in order")

	assert.True(t, results[0].OK())
	assert.Equal(t, "Grade_3_Mathematics_Term_1.csv", results[0].Filename)
	assert.Equal(t, []byte("csv:Grade 3 Mathematics – Term 1"), results[0].Data)

	assert.False(t, results[1].OK())
	assert.Nil(t, results[1].Data)
	assert.EqualError(t, results[1].Err, "font missing")

	assert.True(t, results[2].OK())
	assert.Equal(t, "application/x-docx", results[2].ContentType)
}

// Case 2: a panicking generator is reported as that format's failure.
func TestExportAll_PanicIsContained(t *testing.T) {
	svc := export.NewService(0, fakeRenderer{format: "pdf", panics: true}, fakeRenderer{format: "csv"})

	results := svc.ExportAll(context.Background(), scheme(), []string{"pdf", "csv"})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.True(t, results[1].OK())
}

// Case 3: unknown formats fail individually with an input error.
func TestExport_UnknownFormat(t *testing.T) {
	svc := export.NewService(0, fakeRenderer{format: "csv"})

	res := svc.Export(context.Background(), scheme(), "xlsx")
	assert.ErrorIs(t, res.Err, domain.ErrInvalidInput)
}

// Case 4: no formats means all three defaults.
func TestExportAll_DefaultFormats(t *testing.T) {
	svc := export.NewService(0, fakeRenderer{format: "csv"}, fakeRenderer{format: "pdf"}, fakeRenderer{format: "docx"})

	results := svc.ExportAll(context.Background(), scheme(), nil)

	require.Len(t, results, 3)
	for i, f := range export.DefaultFormats {
		assert.Equal(t, f, results[i].Format)
		assert.True(t, results[i].OK())
	}
}

// Case 5: the fixed delay separates consecutive formats.
func TestExportAll_DelayBetweenFormats(t *testing.T) {
	svc := export.NewService(30*time.Millisecond, fakeRenderer{format: "csv"}, fakeRenderer{format: "pdf"}, fakeRenderer{format: "docx"})

	start := time.Now()
	results := svc.ExportAll(context.Background(), scheme(), nil)

	assert.Len(t, results, 3)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

// Case 6: a cancelled context fails the formats that had not started.
func TestExportAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := export.NewService(0, fakeRenderer{format: "csv"})

	results := svc.ExportAll(ctx, scheme(), []string{"csv"})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Grade 3 Mathematics":          "Grade_3_Mathematics.csv",
		"Kiswahili: Kusoma & Kuandika": "Kiswahili_Kusoma_Kuandika.csv",
		"Éducation Religieuse":         "Education_Religieuse.csv",
		"  ***  ":                      "scheme_of_work.csv",
		"":                             "scheme_of_work.csv",
	}
	for title, want := range cases {
		assert.Equal(t, want, export.Filename(title, "csv"), title)
	}
}
