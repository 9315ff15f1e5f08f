// Package export turns a scheme of work into downloadable CSV, PDF and Word files.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// DefaultFormats order used when a multi-format export names none.
var DefaultFormats = []string{FormatCSV, FormatPDF, FormatDOCX}

// fallbackBaseName used when the title has no usable characters.
const fallbackBaseName = "scheme_of_work"

// Result outcome of one format in a multi-format export.
// Exactly one of Data and Err is set.
type Result struct {
	Format      string
	Filename    string
	ContentType string
	Data        []byte
	Err         error
}

// OK reports whether the format was produced.
func (r Result) OK() bool { return r.Err == nil }

// Service dispatches a scheme to the renderer of each requested format.
type Service struct {
	renderers map[string]ports.SchemeRenderer
	delay     time.Duration
}

// NewService builds the service. delay is the pause between two formats of ExportAll.
func NewService(delay time.Duration, renderers ...ports.SchemeRenderer) *Service {
	m := make(map[string]ports.SchemeRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &Service{renderers: m, delay: delay}
}

// Export renders a single format.
func (s *Service) Export(ctx context.Context, scheme *entity.SchemeOfWork, format string) Result {
	format = strings.ToLower(strings.TrimSpace(format))
	res := Result{Format: format}

	r, ok := s.renderers[format]
	if !ok {
		res.Err = fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidInput, format)
		return res
	}
	res.Filename = Filename(scheme.Title, format)
	res.ContentType = r.ContentType()

	data, err := safeRender(ctx, r, scheme)
	if err != nil {
		res.Err = err
		return res
	}
	res.Data = data
	return res
}

// ExportAll renders every format one after the other, pausing between them.
// A failing format does not stop the others; cancelling ctx marks the remaining ones as failed.
func (s *Service) ExportAll(ctx context.Context, scheme *entity.SchemeOfWork, formats []string) []Result {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	results := make([]Result, 0, len(formats))
	for i, f := range formats {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Format: f, Err: err})
			continue
		}
		res := s.Export(ctx, scheme, f)
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("format", res.Format).Str("scheme", scheme.Title).Msg("export: format failed")
		}
		results = append(results, res)
	}
	return results
}

// safeRender turns a renderer panic into an error so one format cannot take down the batch.
func safeRender(ctx context.Context, r ports.SchemeRenderer, scheme *entity.SchemeOfWork) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s renderer panicked: %v", r.Format(), rec)
		}
	}()
	return r.Render(ctx, scheme)
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename derives a download name from the scheme title: accents are folded, every run
// of other non-alphanumeric characters becomes one underscore.
func Filename(title, format string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	base := strings.Trim(nonAlnum.ReplaceAllString(folded, "_"), "_")
	if base == "" {
		base = fallbackBaseName
	}
	return base + "." + format
}
