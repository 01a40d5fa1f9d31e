// Command render_check prints an HTML file, or a resume exported from the
// API as JSON, to PDF with the same renderer the server uses. It is meant for
// checking a Chrome installation and previewing layouts.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	var (
		htmlPath   = flag.String("html", "", "HTML file to render")
		resumePath = flag.String("resume", "", "resume JSON (as returned by GET /api/resumes/:id) to lay out and render")
		outPath    = flag.String("out", "", "output PDF path (default derived from the input name)")
		compact    = flag.Bool("compact", false, "use the 5mm upload margins instead of 20mm")
		chromePath = flag.String("chrome", os.Getenv("CHROME_PATH"), "chrome binary, empty to search PATH")
		timeout    = flag.Duration("timeout", 60*time.Second, "render timeout")
		saveHTML   = flag.Bool("save-html", false, "also write the HTML that was rendered next to the PDF")
	)
	flag.Parse()

	log := logger.SetupDefault(os.Stderr, slog.LevelInfo)

	if err := run(*htmlPath, *resumePath, *outPath, *compact, *chromePath, *timeout, *saveHTML); err != nil {
		log.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func run(htmlPath, resumePath, outPath string, compact bool, chromePath string, timeout time.Duration, saveHTML bool) error {
	if (htmlPath == "") == (resumePath == "") {
		return errors.New("exactly one of -html or -resume is required")
	}

	var (
		html string
		in   = htmlPath
	)
	if htmlPath != "" {
		b, err := os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("read html: %w", err)
		}
		html = string(b)
	} else {
		in = resumePath
		b, err := os.ReadFile(resumePath)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		var r domain.Resume
		if err := json.Unmarshal(b, &r); err != nil {
			return fmt.Errorf("decode resume: %w", err)
		}
		if html, err = resumeHTML(&r); err != nil {
			return err
		}
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(usecase.PDFFilename(in), ".pdf")
		if strings.HasSuffix(strings.ToLower(in), ".json") {
			outPath = strings.TrimSuffix(outPath, ".json")
		}
		outPath += ".pdf"
	}

	// keep the HTML even when rendering fails so the layout can be inspected
	if saveHTML {
		htmlOut := strings.TrimSuffix(outPath, ".pdf") + ".html"
		if err := os.WriteFile(htmlOut, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		slog.Info("wrote html", "path", htmlOut)
	}

	setup := usecase.StandardPage
	if compact {
		setup = usecase.CompactPage
	}

	start := time.Now()
	pdf, err := infra.NewChromedpRenderer(chromePath, timeout).RenderHTMLToPDF(context.Background(), html, setup)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	slog.Info("wrote pdf", "path", outPath, "bytes", len(pdf), "duration", time.Since(start).String())
	return nil
}
