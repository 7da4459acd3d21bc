package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-extractor/internal/types"
)

// MaxInputSize bounds the bytes read from a file or URL
const MaxInputSize = 5 << 20

// extensionFormats maps file extensions to format tags that can be loaded
// from disk. Binary formats must be converted to text before they reach the
// engine.
var extensionFormats = map[string]string{
	".txt":      types.FormatText,
	".text":     types.FormatText,
	".md":       types.FormatMarkdown,
	".markdown": types.FormatMarkdown,
	".html":     types.FormatHTML,
	".htm":      types.FormatHTML,
}

// Document is a cleaned resume source
type Document struct {
	Source string `json:"source"`
	Format string `json:"format"`
	Text   string `json:"-"`
	Hash   string `json:"hash"`
}

// RawDocument returns the engine input for the document
func (d *Document) RawDocument() (types.RawDocument, error) {
	return types.NewRawDocument(d.Text, d.Format)
}

// FormatForPath returns the format tag for a file path based on its extension
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", &types.UnsupportedFormatError{Format: strings.TrimPrefix(ext, ".")}
}

// LoadFile reads a resume file and converts it to cleaned line text
func LoadFile(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "unsupported file type", Cause: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &LoadError{Source: path, Message: "failed to stat file", Cause: err}
	}
	if info.Size() > MaxInputSize {
		return nil, &LoadError{Source: path, Message: fmt.Sprintf("file is %d bytes", info.Size()), Cause: ErrTooLarge}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return fromBytes(path, content, format)
}

// FromText cleans text supplied directly, converting it first when the
// format is markup. Other accepted tags (pdf, docx) name a source that was
// already converted to text upstream.
func FromText(source, text, format string) (*Document, error) {
	return fromBytes(source, []byte(text), format)
}

func fromBytes(source string, content []byte, format string) (*Document, error) {
	canonical, err := types.NormalizeFormat(format)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "unsupported format", Cause: err}
	}
	if len(content) > MaxInputSize {
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("content is %d bytes", len(content)), Cause: ErrTooLarge}
	}
	if bytes.IndexByte(content, 0) >= 0 || !utf8.Valid(content) {
		return nil, &LoadError{Source: source, Message: "unreadable content", Cause: ErrBinaryContent}
	}

	text := string(content)
	switch canonical {
	case types.FormatHTML:
		text, err = HTMLToText(text)
		if err != nil {
			return nil, &LoadError{Source: source, Message: "failed to convert HTML", Cause: err}
		}
	case types.FormatMarkdown:
		text, err = MarkdownToText(text)
		if err != nil {
			return nil, &LoadError{Source: source, Message: "failed to convert Markdown", Cause: err}
		}
	default:
		text = CleanText(text)
	}

	return &Document{
		Source: source,
		Format: canonical,
		Text:   text,
		Hash:   hashText(text),
	}, nil
}

// hashText generates a SHA-256 hash of the cleaned text
func hashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
