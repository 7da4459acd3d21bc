package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/correction"
	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/types"
)

// ErrStoreUnavailable is returned for requests that need persistence when the
// server runs without a database
var ErrStoreUnavailable = errors.New("resume storage is not configured")

// ErrSessionNotFound indicates no open session has the requested ID
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrResumeNotFound indicates no stored resume has the requested ID
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		sessionErr    *ErrSessionNotFound
		resumeErr     *ErrResumeNotFound
		formatErr     *types.UnsupportedFormatError
		pathErr       *types.InvalidPathError
		emptyErr      *parsing.EmptyDocumentError
		loadErr       *ingestion.LoadError
	)

	switch {
	case errors.As(err, &sessionErr), errors.As(err, &resumeErr), errors.Is(err, db.ErrResumeNotFound):
		return http.StatusNotFound
	case errors.Is(err, correction.ErrSessionCommitted):
		return http.StatusConflict
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &emptyErr), errors.Is(err, correction.ErrUnknownField),
		errors.Is(err, correction.ErrIndexOutOfRange), errors.Is(err, correction.ErrUnknownCategory),
		errors.Is(err, correction.ErrNotScalar), errors.Is(err, correction.ErrNotList):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr), errors.As(err, &pathErr), errors.As(err, &loadErr),
		errors.Is(err, correction.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
