package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

func newResumeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/resume.html", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>Jane Roe</h1><p>jane@roe.dev</p>"))
	})
	mux.HandleFunc("/resume.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("JANE ROE\r\njane@roe.dev\r\n"))
	})
	mux.HandleFunc("/resume.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchURL(t *testing.T) {
	server := newResumeServer(t)

	tests := []struct {
		path   string
		format string
		text   string
	}{
		{"/resume.html", types.FormatHTML, "Jane Roe\njane@roe.dev"},
		{"/resume.txt", types.FormatText, "JANE ROE\njane@roe.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			doc, err := FetchURL(context.Background(), server.URL+tt.path, nil)
			require.NoError(t, err)
			assert.Equal(t, server.URL+tt.path, doc.Source)
			assert.Equal(t, tt.format, doc.Format)
			assert.Equal(t, tt.text, doc.Text)
		})
	}
}

func TestFetchURL_Errors(t *testing.T) {
	server := newResumeServer(t)

	tests := []struct {
		name    string
		url     string
		opts    *FetchOptions
		message string
	}{
		{"invalid url", "not a url", nil, "invalid URL"},
		{"unsupported scheme", "ftp://example.com/cv.txt", nil, "invalid URL"},
		{"not found", server.URL + "/missing", nil, "HTTP status 404"},
		{"binary content type", server.URL + "/resume.pdf", nil, "unsupported content type"},
		{"timeout", server.URL + "/slow", &FetchOptions{Timeout: 20 * time.Millisecond}, "HTTP request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FetchURL(context.Background(), tt.url, tt.opts)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.url, loadErr.Source)
			assert.Contains(t, loadErr.Message, tt.message)
		})
	}
}

func TestFetchURL_ContextCancelled(t *testing.T) {
	server := newResumeServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchURL(ctx, server.URL+"/resume.txt", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNeedsBrowser(t *testing.T) {
	long := strings.Repeat("Led the platform team. ", 10)

	tests := []struct {
		name string
		doc  *Document
		want bool
	}{
		{"empty html shell", &Document{Format: types.FormatHTML, Text: "Loading..."}, true},
		{"whitespace only", &Document{Format: types.FormatHTML, Text: "   \n  "}, true},
		{"full html page", &Document{Format: types.FormatHTML, Text: long}, false},
		{"short plain text", &Document{Format: types.FormatText, Text: "JANE ROE"}, false},
		{"short markdown", &Document{Format: types.FormatMarkdown, Text: "Jane Roe"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsBrowser(tt.doc))
		})
	}
}

func TestFetchURL_BrowserFallback(t *testing.T) {
	server := newResumeServer(t)
	renderedPage := "<h1>Jane Roe</h1><p>jane@roe.dev</p><h2>Experience</h2><p>" +
		strings.Repeat("Staff Engineer | Initech | 2019 - Present<br>", 6) + "</p>"

	tests := []struct {
		name       string
		path       string
		useBrowser bool
		render     RenderFunc
		wantCalls  int
		wantText   string
	}{
		{
			name:       "thin page is rendered",
			path:       "/resume.html",
			useBrowser: true,
			render: func(context.Context, string, time.Duration) (string, error) {
				return renderedPage, nil
			},
			wantCalls: 1,
			wantText:  "Staff Engineer | Initech",
		},
		{
			name:       "render failure keeps http content",
			path:       "/resume.html",
			useBrowser: true,
			render: func(context.Context, string, time.Duration) (string, error) {
				return "", errors.New("chrome not found")
			},
			wantCalls: 1,
			wantText:  "Jane Roe\njane@roe.dev",
		},
		{
			name:       "rendered page with less text is ignored",
			path:       "/resume.html",
			useBrowser: true,
			render: func(context.Context, string, time.Duration) (string, error) {
				return "<p>Jane</p>", nil
			},
			wantCalls: 1,
			wantText:  "Jane Roe\njane@roe.dev",
		},
		{
			name:       "browser disabled",
			path:       "/resume.html",
			useBrowser: false,
			wantText:   "Jane Roe\njane@roe.dev",
		},
		{
			name:       "plain text never rendered",
			path:       "/resume.txt",
			useBrowser: true,
			wantText:   "JANE ROE\njane@roe.dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			opts := DefaultFetchOptions()
			opts.UseBrowser = tt.useBrowser
			opts.Render = func(ctx context.Context, url string, timeout time.Duration) (string, error) {
				calls++
				assert.Equal(t, server.URL+tt.path, url)
				assert.Equal(t, DefaultTimeout, timeout)
				return tt.render(ctx, url, timeout)
			}

			doc, err := FetchURL(context.Background(), server.URL+tt.path, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Contains(t, doc.Text, tt.wantText)
			assert.Equal(t, hashText(doc.Text), doc.Hash)
		})
	}
}
