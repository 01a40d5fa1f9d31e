package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-builder/internal/domain"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches, the unit PrintToPDF expects.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	mmPerInch  = 25.4
)

// ChromedpRenderer prints HTML to PDF with a headless Chrome that is started
// for each call and torn down afterwards. Nothing is shared between renders.
type ChromedpRenderer struct {
	execPath string
	timeout  time.Duration
}

// NewChromedpRenderer builds a renderer. An empty execPath lets chromedp find
// Chrome on PATH; a zero timeout leaves renders unbounded.
func NewChromedpRenderer(execPath string, timeout time.Duration) *ChromedpRenderer {
	return &ChromedpRenderer{execPath: execPath, timeout: timeout}
}

// RenderHTMLToPDF returns the PDF bytes for html. Every failure is wrapped in
// domain.ErrRenderFailure and no partial output is returned.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string, setup domain.PageSetup) ([]byte, error) {
	pdf, err := r.render(ctx, html, setup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailure, err)
	}
	return pdf, nil
}

func (r *ChromedpRenderer) render(ctx context.Context, html string, setup domain.PageSetup) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(cctx, r.timeout)
		defer cancel()
	}

	// chrome loads the document from disk so relative assets and network
	// requests behave as they would for a saved page
	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	idle := make(chan cdp.LoaderID, 16)
	chromedp.ListenTarget(cctx, func(ev any) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	margin := setup.MarginMM / mmPerInch

	var pdfBuf []byte
	err = chromedp.Run(cctx,
		chromedp.EmulateViewport(setup.ViewportWidth, setup.ViewportHeight),
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, loaderID, errorText, err := page.Navigate("file://" + htmlPath).Do(ctx)
			if err != nil {
				return err
			}
			if errorText != "" {
				return fmt.Errorf("navigate: %s", errorText)
			}
			return waitNetworkIdle(ctx, idle, loaderID)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// waitNetworkIdle blocks until the networkIdle lifecycle event for loaderID
// arrives. Events from other loaders (the initial about:blank) are skipped.
func waitNetworkIdle(ctx context.Context, idle <-chan cdp.LoaderID, loaderID cdp.LoaderID) error {
	for {
		select {
		case id := <-idle:
			if id == loaderID {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
