package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-extractor/internal/types"
)

// MinRenderedLength is the extracted text length below which an HTML page
// is assumed to build its content with JavaScript
const MinRenderedLength = 200

// RenderFunc returns the HTML of a page after scripts have run
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// NeedsBrowser reports whether a fetched document is too thin to be the
// resume itself. Only HTML pages qualify; plain text is taken as served.
func NeedsBrowser(doc *Document) bool {
	return doc.Format == types.FormatHTML && len(strings.TrimSpace(doc.Text)) < MinRenderedLength
}

// RenderWithBrowser loads url in headless Chrome and returns the rendered
// HTML. Chrome or Chromium must be installed.
func RenderWithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
