package parsing

import (
	"fmt"

	"github.com/jonathan/resume-extractor/internal/types"
)

// EmptyDocumentError is returned when a document has no non-whitespace content
type EmptyDocumentError struct {
	Format string
}

func (e *EmptyDocumentError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("empty document: %s input has no content", e.Format)
	}
	return "empty document: input has no content"
}

// UnsupportedFormatError is returned when the input format tag is not accepted.
// It aliases the type raised by types.NewRawDocument so callers can match
// either with errors.As.
type UnsupportedFormatError = types.UnsupportedFormatError
