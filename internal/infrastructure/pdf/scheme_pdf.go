// Package pdf renders a scheme of work as an A4 PDF with Maroto v2.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TITLE                                                       │
//	│  Subject | Grade | Term / Strand | Sub-strand | Duration     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GENERAL OBJECTIVES                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  WEEK n: topic                                               │
//	│    seven labelled detail fields                              │
//	└─────────────────────────────────────────────────────────────┘
//
// Rows are laid out against an explicit vertical cursor. A new page starts
// when the next row would pass the page height minus the bottom margin.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

var _ ports.SchemeRenderer = (*SchemeRenderer)(nil)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Geometry (mm) ─────────────────────────────────────────────────────────────

const (
	pageHeight   = 297.0
	margin       = 10.0
	lineHeight   = 5.0
	titleHeight  = 12.0
	headHeight   = 8.0
	ruleHeight   = 3.0
	wrapBody     = 95 // characters per body line at 9pt on the full width
	wrapIndented = 85 // characters per line of an indented detail field
)

// usableBottom the cursor may not pass this height.
const usableBottom = pageHeight - 2*margin

// ── Renderer ──────────────────────────────────────────────────────────────────

// SchemeRenderer implements ports.SchemeRenderer with Maroto v2.
type SchemeRenderer struct{}

// NewSchemeRenderer builds the renderer.
func NewSchemeRenderer() *SchemeRenderer { return &SchemeRenderer{} }

func (r *SchemeRenderer) Format() string      { return "pdf" }
func (r *SchemeRenderer) ContentType() string { return "application/pdf" }

// Render lays out title, metadata and objectives, then each week's seven detail fields.
// A scheme without weeks yields the title and metadata only.
func (r *SchemeRenderer) Render(ctx context.Context, s *entity.SchemeOfWork) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(margin).WithRightMargin(margin).
		WithTopMargin(margin).WithBottomMargin(margin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(nonEmpty(s.Title, "Scheme of Work"), true).
		WithAuthor("Elimu Hub", true).
		Build()

	l := &layout{}
	l.add(titleHeight, titleRow(s.Title))
	for _, m := range metadataLines(s) {
		l.add(lineHeight, textRow(m, props.Text{Size: 9, Color: colorGray}))
	}
	l.add(ruleHeight, line.NewRow(ruleHeight, props.Line{Color: colorPrimary, Thickness: 0.4}))

	if len(s.GeneralObjectives) > 0 {
		l.add(headHeight, headingRow("GENERAL OBJECTIVES"))
		for _, o := range s.GeneralObjectives {
			l.addWrapped("• "+o, wrapBody, 2)
		}
		l.add(ruleHeight, line.NewRow(ruleHeight, props.Line{Color: colorPrimary, Thickness: 0.4}))
	}

	for i, w := range s.WeeklyPlans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		week := w.Week
		if week == 0 {
			week = i + 1
		}
		l.keepTogether(headHeight + 2*lineHeight)
		l.add(headHeight, headingRow(fmt.Sprintf("WEEK %d: %s", week, nonEmpty(w.Topic, "-"))))
		for _, f := range weekFields(w) {
			l.add(lineHeight, textRow(f.label, props.Text{Style: fontstyle.Bold, Size: 8.5, Left: 2}))
			if len(f.items) == 0 {
				l.addWrapped("-", wrapIndented, 6)
			}
			for _, item := range f.items {
				l.addWrapped("• "+item, wrapIndented, 6)
			}
		}
		l.add(ruleHeight, line.NewRow(ruleHeight, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m := maroto.New(cfg)
	m.AddPages(l.pages()...)
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Cursor layout ─────────────────────────────────────────────────────────────

// layout groups rows into pages by tracking the vertical cursor.
type layout struct {
	done    [][]core.Row
	current []core.Row
	cursor  float64
}

func (l *layout) add(height float64, r core.Row) {
	if l.cursor+height > usableBottom && len(l.current) > 0 {
		l.breakPage()
	}
	l.current = append(l.current, r)
	l.cursor += height
}

// keepTogether starts a new page when less than height is left on this one.
func (l *layout) keepTogether(height float64) {
	if l.cursor+height > usableBottom && len(l.current) > 0 {
		l.breakPage()
	}
}

func (l *layout) addWrapped(s string, width int, indent float64) {
	for _, ln := range wrap(s, width) {
		l.add(lineHeight, textRow(ln, props.Text{Size: 8.5, Left: indent}))
	}
}

func (l *layout) breakPage() {
	l.done = append(l.done, l.current)
	l.current = nil
	l.cursor = 0
}

func (l *layout) pages() []core.Page {
	all := l.done
	if len(l.current) > 0 {
		all = append(all, l.current)
	}
	out := make([]core.Page, 0, len(all))
	for _, rows := range all {
		out = append(out, page.New().Add(rows...))
	}
	return out
}

// ── Rows ──────────────────────────────────────────────────────────────────────

func titleRow(title string) core.Row {
	return row.New(titleHeight).Add(col.New(12).Add(
		text.New(nonEmpty(title, "Scheme of Work"), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		}),
	))
}

func headingRow(s string) core.Row {
	return row.New(headHeight).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func textRow(s string, p props.Text) core.Row {
	p.Top = 0.5
	return row.New(lineHeight).Add(col.New(12).Add(text.New(s, p)))
}

func metadataLines(s *entity.SchemeOfWork) []string {
	return []string{
		fmt.Sprintf("Subject: %s   |   Grade: %s   |   Term: %s",
			nonEmpty(s.Subject, "-"), nonEmpty(s.Grade, "-"), nonEmpty(s.Term, "-")),
		fmt.Sprintf("Strand: %s   |   Sub-strand: %s   |   Duration: %s",
			nonEmpty(s.Strand, "-"), nonEmpty(s.SubStrand, "-"), nonEmpty(s.Duration, fmt.Sprintf("%d weeks", len(s.WeeklyPlans)))),
	}
}

type field struct {
	label string
	items []string
}

func weekFields(w entity.WeeklyPlan) []field {
	return []field{
		{"Specific Objectives", w.SpecificObjectives},
		{"Key Inquiry Questions", w.KeyInquiryQuestions},
		{"Learning Experiences", w.LearningExperiences},
		{"Core Competencies", w.CoreCompetencies},
		{"Values", w.Values},
		{"Resources", w.Resources},
		{"Assessment Methods", w.AssessmentMethods},
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// wrap splits s on word boundaries into lines of at most width runes.
// Words longer than width are cut.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if curLen > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
				curLen = 0
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
