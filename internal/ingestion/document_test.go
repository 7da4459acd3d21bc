package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"resume.txt", types.FormatText, false},
		{"resume.TEXT", types.FormatText, false},
		{"/tmp/cv.md", types.FormatMarkdown, false},
		{"cv.markdown", types.FormatMarkdown, false},
		{"cv.HTML", types.FormatHTML, false},
		{"cv.htm", types.FormatHTML, false},
		{"resume.pdf", "", true},
		{"resume.docx", "", true},
		{"resume", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if tt.wantErr {
				var formatErr *types.UnsupportedFormatError
				assert.True(t, errors.As(err, &formatErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile_Text(t *testing.T) {
	path := writeFile(t, "resume.txt", []byte("JOHN DOE\r\njohn@doe.dev\r\n\r\n\r\n\r\nEXPERIENCE\r\n"))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, types.FormatText, doc.Format)
	assert.Equal(t, "JOHN DOE\njohn@doe.dev\n\nEXPERIENCE", doc.Text)
	assert.Len(t, doc.Hash, 64)

	raw, err := doc.RawDocument()
	require.NoError(t, err)
	assert.Equal(t, 4, raw.LineCount())
	assert.Equal(t, types.FormatText, raw.Format())
}

func TestLoadFile_Markdown(t *testing.T) {
	path := writeFile(t, "resume.md", []byte("# Jane Roe\n[GitHub](https://github.com/jroe)\n\n## **Skills**\n- Go\n"))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.FormatMarkdown, doc.Format)
	assert.Equal(t, "Jane Roe\nhttps://github.com/jroe\n\nSkills\n• Go", doc.Text)
}

func TestLoadFile_HTML(t *testing.T) {
	path := writeFile(t, "resume.html", []byte("<h1>Jane Roe</h1><h2>Skills</h2><ul><li>Go</li></ul>"))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.FormatHTML, doc.Format)
	assert.Equal(t, "Jane Roe\n\nSkills\n• Go", doc.Text)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		message string
		cause   error
	}{
		{
			name:    "not found",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.txt") },
			message: "file not found",
			cause:   os.ErrNotExist,
		},
		{
			name:    "binary content",
			path:    func(t *testing.T) string { return writeFile(t, "resume.txt", []byte("JOHN\x00DOE")) },
			message: "unreadable content",
			cause:   ErrBinaryContent,
		},
		{
			name:    "invalid utf-8",
			path:    func(t *testing.T) string { return writeFile(t, "resume.txt", []byte{'J', 0xff, 0xfe}) },
			message: "unreadable content",
			cause:   ErrBinaryContent,
		},
		{
			name: "too large",
			path: func(t *testing.T) string {
				return writeFile(t, "resume.txt", []byte(strings.Repeat("a", MaxInputSize+1)))
			},
			message: "bytes",
			cause:   ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path(t))
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Contains(t, loadErr.Message, tt.message)
			assert.True(t, errors.Is(err, tt.cause))
		})
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "resume.pdf", []byte("%PDF-1.7"))

	_, err := LoadFile(path)
	require.Error(t, err)

	var formatErr *types.UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "pdf", formatErr.Format)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestFromText(t *testing.T) {
	doc, err := FromText("inline", "Jane Roe  \n\n\n\nSkills", "plain")
	require.NoError(t, err)
	assert.Equal(t, types.FormatText, doc.Format)
	assert.Equal(t, "Jane Roe\n\nSkills", doc.Text)

	// converted upstream; cleaned as text
	doc, err = FromText("inline", "Jane Roe", "PDF")
	require.NoError(t, err)
	assert.Equal(t, types.FormatPDF, doc.Format)

	_, err = FromText("inline", "Jane Roe", "exe")
	var formatErr *types.UnsupportedFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestFromText_HashTracksCleanedText(t *testing.T) {
	a, err := FromText("a", "Jane Roe\r\n", "txt")
	require.NoError(t, err)
	b, err := FromText("b", "Jane Roe\n", "txt")
	require.NoError(t, err)
	c, err := FromText("c", "John Doe\n", "txt")
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}
