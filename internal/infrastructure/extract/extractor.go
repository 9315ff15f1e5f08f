// Package extract turns stored PDF, DOCX and plain-text files into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/ledongthuc/pdf"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

var _ ports.TextExtractor = (*Extractor)(nil)

// maxReadBytes files beyond this size are not loaded for extraction.
const maxReadBytes = 100 << 20

// Opener reads a stored file. ports.FileStorage satisfies it.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Extractor picks a format by MIME type, falling back to the file extension.
type Extractor struct {
	files Opener
}

// NewExtractor builds an extractor over the upload storage.
func NewExtractor(files Opener) *Extractor {
	return &Extractor{files: files}
}

// Extract returns the text of the file at path with runs of blanks collapsed.
func (e *Extractor) Extract(ctx context.Context, path, mimeType string) (string, error) {
	rc, err := e.files.Open(path)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(rc, maxReadBytes))
	_ = rc.Close()
	if err != nil {
		return "", fmt.Errorf("extract: read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var text string
	switch kindOf(path, mimeType) {
	case "pdf":
		text, err = PDF(data)
	case "docx":
		text, err = DOCX(data)
	case "txt":
		text = Plain(data)
	default:
		return "", fmt.Errorf("%w: cannot extract text from %s", domain.ErrUnsupportedFileType, mimeType)
	}
	if err != nil {
		return "", err
	}
	return normalize(text), nil
}

func kindOf(path, mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "application/pdf"):
		return "pdf"
	case strings.Contains(mimeType, "wordprocessingml"):
		return "docx"
	case strings.HasPrefix(mimeType, "text/plain"):
		return "txt"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".txt":
		return "txt"
	}
	return ""
}

// PDF extracts the plain text of every page. Malformed files return an error.
func PDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extract: malformed pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract: pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract: pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("extract: pdf read: %w", err)
	}
	return string(b), nil
}

// DOCX extracts word/document.xml, one line per paragraph.
func DOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract: docx archive: %w", err)
	}
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("extract: docx has no word/document.xml")
	}
	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("extract: docx open part: %w", err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return "", fmt.Errorf("extract: docx xml: %w", err)
	}
	var b strings.Builder
	for _, p := range doc.FindElements("//w:p") {
		for _, el := range p.FindElements(".//*") {
			switch el.Tag {
			case "t":
				b.WriteString(el.Text())
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Plain returns the bytes as text, replacing invalid UTF-8 and a leading BOM.
func Plain(data []byte) string {
	s := string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return s
}

var (
	blanksRe   = regexp.MustCompile(`[ \t\f\v\r]+`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
)

// normalize collapses horizontal whitespace and keeps at most one blank line.
func normalize(s string) string {
	s = blanksRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = newlinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}
