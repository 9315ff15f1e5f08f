// Package docx renders a scheme of work as a Word (OOXML) document.
// The body is built as an XML tree with etree and zipped with the minimal package parts.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

var _ ports.SchemeRenderer = (*SchemeRenderer)(nil)

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Package parts. [Content_Types].xml must be the first entry.
const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`</Types>`

	rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
		`</Relationships>`
)

// weekColumns header of the weekly table.
var weekColumns = []string{
	"Week", "Topic", "Specific Objectives", "Key Inquiry Questions", "Learning Experiences",
	"Core Competencies", "Values", "Resources", "Assessment Methods",
}

// weekColumnTwips widths of weekColumns; they fill A4 landscape inside the default 1" margins.
var weekColumnTwips = []int{700, 1500, 1680, 1680, 1680, 1680, 1680, 1680, 1680}

// SchemeRenderer implements ports.SchemeRenderer for .docx.
type SchemeRenderer struct {
	now func() time.Time
}

// NewSchemeRenderer builds the renderer.
func NewSchemeRenderer() *SchemeRenderer { return &SchemeRenderer{now: time.Now} }

func (r *SchemeRenderer) Format() string { return "docx" }
func (r *SchemeRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Render writes a heading, the metadata paragraphs, the general objectives and one
// table row per weekly plan.
func (r *SchemeRenderer) Render(ctx context.Context, s *entity.SchemeOfWork) ([]byte, error) {
	body, err := r.documentXML(ctx, s)
	if err != nil {
		return nil, err
	}
	core, err := r.coreXML(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"docProps/core.xml", core},
		{"word/document.xml", body},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("docx: create entry %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return nil, fmt.Errorf("docx: write entry %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ── word/document.xml ─────────────────────────────────────────────────────────

func (r *SchemeRenderer) documentXML(ctx context.Context, s *entity.SchemeOfWork) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	body := root.CreateElement("w:body")

	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = "Scheme of Work"
	}
	paragraph(body, title, runStyle{bold: true, size: 32})
	paragraph(body, fmt.Sprintf("Subject: %s    Grade: %s    Term: %s", s.Subject, s.Grade, s.Term), runStyle{})
	paragraph(body, fmt.Sprintf("Strand: %s    Sub-strand: %s    Duration: %s", s.Strand, s.SubStrand, s.Duration), runStyle{})

	if len(s.GeneralObjectives) > 0 {
		paragraph(body, "General Objectives", runStyle{bold: true, size: 26})
		for _, o := range s.GeneralObjectives {
			paragraph(body, "• "+o, runStyle{})
		}
	}

	if len(s.WeeklyPlans) > 0 {
		paragraph(body, "Weekly Plans", runStyle{bold: true, size: 26})
		tbl := body.CreateElement("w:tbl")
		tblPr := tbl.CreateElement("w:tblPr")
		tblPr.CreateElement("w:tblW").CreateAttr("w:type", "auto")
		borders := tblPr.CreateElement("w:tblBorders")
		for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
			b := borders.CreateElement("w:" + side)
			b.CreateAttr("w:val", "single")
			b.CreateAttr("w:sz", "4")
		}
		grid := tbl.CreateElement("w:tblGrid")
		for _, w := range weekColumnTwips {
			grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(w))
		}

		tableRow(tbl, weekColumns, true)
		for i, w := range s.WeeklyPlans {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			week := w.Week
			if week == 0 {
				week = i + 1
			}
			tableRow(tbl, []string{
				strconv.Itoa(week),
				w.Topic,
				strings.Join(w.SpecificObjectives, "\n"),
				strings.Join(w.KeyInquiryQuestions, "\n"),
				strings.Join(w.LearningExperiences, "\n"),
				strings.Join(w.CoreCompetencies, "\n"),
				strings.Join(w.Values, "\n"),
				strings.Join(w.Resources, "\n"),
				strings.Join(w.AssessmentMethods, "\n"),
			}, false)
		}
	}

	sect := body.CreateElement("w:sectPr")
	pg := sect.CreateElement("w:pgSz")
	pg.CreateAttr("w:w", "16838") // A4 landscape
	pg.CreateAttr("w:h", "11906")
	pg.CreateAttr("w:orient", "landscape")

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("docx: serialize document: %w", err)
	}
	return out, nil
}

type runStyle struct {
	bold bool
	size int // half-points, 0 keeps the default
}

func paragraph(parent *etree.Element, s string, st runStyle) *etree.Element {
	p := parent.CreateElement("w:p")
	addRuns(p, s, st)
	return p
}

// addRuns writes s into one run, turning newlines into w:br.
func addRuns(p *etree.Element, s string, st runStyle) {
	r := p.CreateElement("w:r")
	if st.bold || st.size > 0 {
		rPr := r.CreateElement("w:rPr")
		if st.bold {
			rPr.CreateElement("w:b")
		}
		if st.size > 0 {
			rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(st.size))
		}
	}
	for i, ln := range strings.Split(s, "\n") {
		if i > 0 {
			r.CreateElement("w:br")
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(ln)
	}
}

func tableRow(tbl *etree.Element, cells []string, header bool) {
	tr := tbl.CreateElement("w:tr")
	for _, c := range cells {
		tc := tr.CreateElement("w:tc")
		paragraph(tc, c, runStyle{bold: header})
	}
}

// ── docProps/core.xml ─────────────────────────────────────────────────────────

func (r *SchemeRenderer) coreXML(s *entity.SchemeOfWork) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	cp := doc.CreateElement("cp:coreProperties")
	cp.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	cp.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	cp.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	cp.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	cp.CreateElement("dc:title").SetText(s.Title)
	cp.CreateElement("dc:subject").SetText(strings.TrimSpace(s.Subject + " " + s.Grade))
	cp.CreateElement("dc:creator").SetText("Elimu Hub")
	created := cp.CreateElement("dcterms:created")
	created.CreateAttr("xsi:type", "dcterms:W3CDTF")
	created.SetText(r.now().UTC().Format(time.RFC3339))

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("docx: serialize core properties: %w", err)
	}
	return out, nil
}
