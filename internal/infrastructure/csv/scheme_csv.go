// Package csv renders a scheme of work as a spreadsheet-friendly CSV file.
package csv

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

var _ ports.SchemeRenderer = (*SchemeRenderer)(nil)

// HeaderRows rows written before the first week.
const HeaderRows = 5

// listSep joins the items of a list field inside one cell.
const listSep = "; "

var weekColumns = []string{
	"Week",
	"Topic",
	"Specific Objectives",
	"Key Inquiry Questions",
	"Learning Experiences",
	"Core Competencies",
	"Values",
	"Resources",
	"Assessment Methods",
}

// SchemeRenderer writes every cell quoted, with embedded quotes doubled.
// Every row has the same number of columns.
type SchemeRenderer struct{}

// NewSchemeRenderer builds the renderer.
func NewSchemeRenderer() *SchemeRenderer { return &SchemeRenderer{} }

func (r *SchemeRenderer) Format() string      { return "csv" }
func (r *SchemeRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render writes the header block followed by one row per weekly plan.
func (r *SchemeRenderer) Render(ctx context.Context, s *entity.SchemeOfWork) ([]byte, error) {
	var buf bytes.Buffer

	writeRow(&buf, "Scheme of Work", s.Title)
	writeRow(&buf, "Subject", s.Subject, "Grade", s.Grade, "Term", s.Term)
	writeRow(&buf, "Strand", s.Strand, "Sub-strand", s.SubStrand, "Duration", s.Duration)
	writeRow(&buf, "General Objectives", strings.Join(s.GeneralObjectives, listSep))
	writeRow(&buf, weekColumns...)

	for i, w := range s.WeeklyPlans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		week := w.Week
		if week == 0 {
			week = i + 1
		}
		writeRow(&buf,
			strconv.Itoa(week),
			w.Topic,
			strings.Join(w.SpecificObjectives, listSep),
			strings.Join(w.KeyInquiryQuestions, listSep),
			strings.Join(w.LearningExperiences, listSep),
			strings.Join(w.CoreCompetencies, listSep),
			strings.Join(w.Values, listSep),
			strings.Join(w.Resources, listSep),
			strings.Join(w.AssessmentMethods, listSep),
		)
	}
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, cells ...string) {
	for i := 0; i < len(weekColumns); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
