package usecase

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/domain"
)

const (
	DefaultPDFFilename = "resume.pdf"
	// DefaultMaxUploadBytes caps uploaded HTML files at 5MB.
	DefaultMaxUploadBytes int64 = 5 << 20
)

var (
	StandardPage = domain.PageSetup{
		ViewportWidth:  domain.A4ViewportWidth,
		ViewportHeight: domain.A4ViewportHeight,
		MarginMM:       domain.MarginStandardMM,
	}
	CompactPage = domain.PageSetup{
		ViewportWidth:  domain.A4ViewportWidth,
		ViewportHeight: domain.A4ViewportHeight,
		MarginMM:       domain.MarginCompactMM,
	}
)

// Exporter turns client HTML into PDF documents. Inline HTML is printed with
// standard margins, uploaded files with compact ones.
type Exporter struct {
	renderer       Renderer
	maxUploadBytes int64
}

func NewExporter(r Renderer, maxUploadBytes int64) *Exporter {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Exporter{renderer: r, maxUploadBytes: maxUploadBytes}
}

func (e *Exporter) MaxUploadBytes() int64 { return e.maxUploadBytes }

// ConvertHTML renders inline HTML. An empty filename becomes resume.pdf.
func (e *Exporter) ConvertHTML(ctx context.Context, html, filename string) (*domain.PDFDocument, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("%w: html is required", domain.ErrValidation)
	}
	filename = cleanFilename(filename)
	if filename == "" {
		filename = DefaultPDFFilename
	}
	data, err := e.renderer.RenderHTMLToPDF(ctx, html, StandardPage)
	if err != nil {
		return nil, err
	}
	return &domain.PDFDocument{Filename: filename, Data: data}, nil
}

// CheckUpload rejects anything that is not an HTML file within the size
// limit. It runs before the upload is read or rendered.
func (e *Exporter) CheckUpload(name, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".html" && ext != ".htm" {
		return fmt.Errorf("%w: only .html files are accepted", domain.ErrValidation)
	}
	if contentType != "" && contentType != "application/octet-stream" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "text/html" {
			return fmt.Errorf("%w: content type %q is not text/html", domain.ErrValidation, contentType)
		}
	}
	if size > e.maxUploadBytes {
		return fmt.Errorf("%w: file exceeds the %d byte limit", domain.ErrValidation, e.maxUploadBytes)
	}
	return nil
}

// ConvertUpload renders the HTML file stored at path. originalName is the
// client's file name and only drives the output name.
func (e *Exporter) ConvertUpload(ctx context.Context, path, originalName string) (*domain.PDFDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return nil, fmt.Errorf("%w: uploaded file is empty", domain.ErrValidation)
	}
	data, err := e.renderer.RenderHTMLToPDF(ctx, string(b), CompactPage)
	if err != nil {
		return nil, err
	}
	return &domain.PDFDocument{Filename: PDFFilename(originalName), Data: data}, nil
}

// PDFFilename swaps an .html or .htm extension for .pdf.
func PDFFilename(original string) string {
	name := cleanFilename(original)
	if name == "" {
		return DefaultPDFFilename
	}
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		name = strings.TrimSuffix(name, ext)
	}
	return name + ".pdf"
}

// cleanFilename keeps only the base name and drops characters that would
// break a quoted Content-Disposition value.
func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '"' || r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
}
