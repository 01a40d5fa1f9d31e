package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"resume-builder/internal/domain"
	"resume-builder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHTMLUsesStandardMargins(t *testing.T) {
	r := &testutil.Renderer{}
	e := NewExporter(r, 0)

	doc, err := e.ConvertHTML(context.Background(), "<h1>Alice</h1>", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPDFFilename, doc.Filename)
	assert.Equal(t, testutil.PDFMagic, doc.Data[:len(testutil.PDFMagic)])

	require.Len(t, r.Calls, 1)
	assert.Equal(t, "<h1>Alice</h1>", r.Calls[0].HTML)
	assert.Equal(t, float64(domain.MarginStandardMM), r.Calls[0].Setup.MarginMM)
	assert.Equal(t, int64(domain.A4ViewportWidth), r.Calls[0].Setup.ViewportWidth)
	assert.Equal(t, int64(domain.A4ViewportHeight), r.Calls[0].Setup.ViewportHeight)
}

func TestConvertHTMLFilename(t *testing.T) {
	e := NewExporter(&testutil.Renderer{}, 0)

	doc, err := e.ConvertHTML(context.Background(), "<p>x</p>", `../../cv "final".pdf`)
	require.NoError(t, err)
	assert.Equal(t, "cv final.pdf", doc.Filename)
}

func TestConvertHTMLRejectsEmpty(t *testing.T) {
	r := &testutil.Renderer{}
	e := NewExporter(r, 0)

	_, err := e.ConvertHTML(context.Background(), "  \n", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, r.CallCount())
}

func TestConvertHTMLRenderFailure(t *testing.T) {
	r := &testutil.Renderer{Err: errors.Join(domain.ErrRenderFailure, errors.New("chrome crashed"))}
	e := NewExporter(r, 0)

	doc, err := e.ConvertHTML(context.Background(), "<p>x</p>", "")
	assert.ErrorIs(t, err, domain.ErrRenderFailure)
	assert.Nil(t, doc)
}

func TestConvertUploadUsesCompactMargins(t *testing.T) {
	r := &testutil.Renderer{}
	e := NewExporter(r, 0)

	path := filepath.Join(t.TempDir(), "upload.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>Bob</h1>"), 0o600))

	doc, err := e.ConvertUpload(context.Background(), path, "My Resume.HTML")
	require.NoError(t, err)
	assert.Equal(t, "My Resume.pdf", doc.Filename)

	require.Len(t, r.Calls, 1)
	assert.Equal(t, "<h1>Bob</h1>", r.Calls[0].HTML)
	assert.Equal(t, float64(domain.MarginCompactMM), r.Calls[0].Setup.MarginMM)
}

func TestConvertUploadEmptyFile(t *testing.T) {
	r := &testutil.Renderer{}
	e := NewExporter(r, 0)

	path := filepath.Join(t.TempDir(), "upload.html")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := e.ConvertUpload(context.Background(), path, "cv.html")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, r.CallCount())
}

func TestCheckUpload(t *testing.T) {
	e := NewExporter(&testutil.Renderer{}, 1024)

	tests := []struct {
		name        string
		file        string
		contentType string
		size        int64
		ok          bool
	}{
		{"html", "cv.html", "text/html", 100, true},
		{"htm with charset", "cv.htm", "text/html; charset=utf-8", 100, true},
		{"no content type", "cv.html", "", 100, true},
		{"octet stream", "cv.html", "application/octet-stream", 100, true},
		{"at limit", "cv.html", "text/html", 1024, true},
		{"over limit", "cv.html", "text/html", 1025, false},
		{"pdf extension", "cv.pdf", "text/html", 100, false},
		{"no extension", "cv", "text/html", 100, false},
		{"wrong content type", "cv.html", "image/png", 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.CheckUpload(tt.file, tt.contentType, tt.size)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPDFFilename(t *testing.T) {
	tests := map[string]string{
		"resume.html":       "resume.pdf",
		"resume.htm":        "resume.pdf",
		"Resume.HTML":       "Resume.pdf",
		"notes.txt":         "notes.txt.pdf",
		"":                  DefaultPDFFilename,
		"dir/sub/cv.html":   "cv.pdf",
		`C:\Users\a\cv.htm`: "cv.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, PDFFilename(in), in)
	}
}

func TestNewExporterDefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultMaxUploadBytes, NewExporter(nil, 0).MaxUploadBytes())
	assert.Equal(t, int64(10), NewExporter(nil, 10).MaxUploadBytes())
}
