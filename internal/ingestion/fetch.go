package ingestion

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeExtractor/1.0)"

// FetchOptions configures URL fetching
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
	// UseBrowser re-renders thin HTML pages in a headless browser
	UseBrowser bool
	// Render replaces RenderWithBrowser when set
	Render RenderFunc
}

// DefaultFetchOptions returns sensible defaults for fetching
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// contentTypeFormats maps response media types to format tags
var contentTypeFormats = map[string]string{
	"text/html":             types.FormatHTML,
	"application/xhtml+xml": types.FormatHTML,
	"text/plain":            types.FormatText,
	"text/markdown":         types.FormatMarkdown,
	"text/x-markdown":       types.FormatMarkdown,
}

// FetchURL retrieves a resume published as a web page or text file
func FetchURL(ctx context.Context, rawURL string, opts *FetchOptions) (*Document, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, &LoadError{Source: rawURL, Message: "invalid URL", Cause: err}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &LoadError{Source: rawURL, Message: "failed to create request", Cause: err}
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Source: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	format, ok := contentTypeFormats[mediaType]
	if !ok {
		return nil, &LoadError{
			Source:  rawURL,
			Message: "unsupported content type",
			Cause:   &types.UnsupportedFormatError{Format: mediaType},
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxInputSize+1))
	if err != nil {
		return nil, &LoadError{Source: rawURL, Message: "failed to read response body", Cause: err}
	}
	doc, err := fromBytes(rawURL, body, format)
	if err != nil {
		return nil, err
	}
	if opts.UseBrowser && NeedsBrowser(doc) {
		return renderFallback(ctx, doc, opts), nil
	}
	return doc, nil
}

// renderFallback re-fetches doc through a browser. The HTTP document is
// kept when rendering fails or yields no more text.
func renderFallback(ctx context.Context, doc *Document, opts *FetchOptions) *Document {
	log := zerolog.Ctx(ctx)
	render := opts.Render
	if render == nil {
		render = RenderWithBrowser
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log.Debug().Str("url", doc.Source).Int("chars", len(doc.Text)).Msg("page text is short, rendering in browser")
	html, err := render(ctx, doc.Source, timeout)
	if err != nil {
		log.Warn().Err(err).Str("url", doc.Source).Msg("browser rendering failed, using HTTP content")
		return doc
	}
	rendered, err := fromBytes(doc.Source, []byte(html), types.FormatHTML)
	if err != nil {
		log.Warn().Err(err).Str("url", doc.Source).Msg("rendered page unreadable, using HTTP content")
		return doc
	}
	if len(rendered.Text) <= len(doc.Text) {
		return doc
	}
	return rendered
}
