package ingestion

import (
	"errors"
	"fmt"
)

// ErrBinaryContent is returned for inputs that are not UTF-8 text
var ErrBinaryContent = errors.New("content is not UTF-8 text")

// ErrTooLarge is returned for inputs above MaxInputSize
var ErrTooLarge = errors.New("content exceeds maximum input size")

// LoadError represents a failure to turn a source into a resume document
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
