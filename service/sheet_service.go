package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// SheetServiceInterface defines the contract for moderation sheet exports
type SheetServiceInterface interface {
	GeneratePDF(ctx context.Context, designID string) ([]byte, error)
}

// SheetService prints the four-view moderation sheet to PDF with headless Chrome
type SheetService struct {
	baseURL    string // Base URL the sheet HTML is served from (e.g., "http://localhost:8080")
	chromePath string
}

// NewSheetService creates a SheetService. chromePath may be empty to auto-detect.
func NewSheetService(baseURL, chromePath string) *SheetService {
	return &SheetService{baseURL: baseURL, chromePath: chromePath}
}

// Ensure SheetService implements SheetServiceInterface
var _ SheetServiceInterface = (*SheetService)(nil)

// detectChromePath returns the configured Chrome/Chromium path when it exists,
// then the first of the common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Warnf("⚠️  CHROME_PATH %s does not exist, trying common paths", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SheetURL returns the address of the printable sheet of a design
func (s *SheetService) SheetURL(designID string) string {
	return fmt.Sprintf("%s/api/customize/%s/sheet.html", s.baseURL, url.PathEscape(designID))
}

// GeneratePDF renders the sheet of a design to an A4 PDF
func (s *SheetService) GeneratePDF(ctx context.Context, designID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.SheetURL(designID)
	log.Infof("📄 Printing moderation sheet %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and layer images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) { resolve(); return; }
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Errorf("❌ Failed to print sheet for design %s: %v", designID, err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Infof("✅ Moderation sheet ready: design=%s, %d bytes", designID, len(pdfBuf))
	return pdfBuf, nil
}
