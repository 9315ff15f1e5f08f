package docx_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/docx"
)

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return data
		}
	}
	t.Fatalf("part %s not found", name)
	return nil
}

func TestRender_Package(t *testing.T) {
	s := &entity.SchemeOfWork{
		Title: "Grade 4 Science & Technology", Subject: "Science", Grade: "Grade 4", Term: "Term 2",
		GeneralObjectives: []string{"Observe living things"},
		WeeklyPlans: []entity.WeeklyPlan{
			{Week: 1, Topic: "Plants <parts>", SpecificObjectives: []string{"Name parts of a plant", "Draw a plant"}},
			{Week: 2, Topic: "Animals"},
		},
	}
	data, err := docx.NewSchemeRenderer().Render(context.Background(), s)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.NotEmpty(t, zr.File)
	assert.Equal(t, "[Content_Types].xml", zr.File[0].Name)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(readPart(t, zr, "word/document.xml")))

	var texts []string
	for _, el := range doc.FindElements("//w:t") {
		texts = append(texts, el.Text())
	}
	assert.Contains(t, texts, "Grade 4 Science & Technology")
	assert.Contains(t, texts, "Plants <parts>")
	assert.Contains(t, texts, "Draw a plant")

	rows := doc.FindElements("//w:tbl/w:tr")
	assert.Len(t, rows, 3, "header plus one row per week")

	// one grid column per cell, declared ahead of the rows
	tbl := doc.FindElement("//w:tbl")
	require.NotNil(t, tbl)
	cols := tbl.FindElements("w:tblGrid/w:gridCol")
	require.Len(t, cols, 9)
	for _, c := range cols {
		assert.NotEmpty(t, c.SelectAttrValue("w:w", ""))
	}
	for _, row := range rows {
		assert.Len(t, row.SelectElements("w:tc"), len(cols))
	}
	var order []string
	for _, child := range tbl.ChildElements() {
		order = append(order, child.FullTag())
	}
	assert.Equal(t, []string{"w:tblPr", "w:tblGrid", "w:tr", "w:tr", "w:tr"}, order)
}

func TestRender_NoWeeksHasNoTable(t *testing.T) {
	data, err := docx.NewSchemeRenderer().Render(context.Background(), &entity.SchemeOfWork{Title: "Empty"})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(readPart(t, zr, "word/document.xml")))
	assert.Empty(t, doc.FindElements("//w:tbl"))
}
