package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/types"
)

// ErrResumeNotFound is returned by updates and deletes addressing a missing record
var ErrResumeNotFound = errors.New("parsed resume not found")

const (
	// DefaultListLimit caps list queries that do not set a limit
	DefaultListLimit = 50
	// MaxListLimit is the largest limit a list query accepts
	MaxListLimit = 500
)

// StoredResume is a parsed resume record with its storage metadata
type StoredResume struct {
	ID           uuid.UUID          `json:"id"`
	SourceName   string             `json:"source_name,omitempty"`
	Format       string             `json:"format"`
	ContentHash  string             `json:"content_hash"`
	Record       types.ParsedResume `json:"record"`
	Score        float64            `json:"score"`
	WarningCount int                `json:"warning_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ResumeSummary is a lightweight view of a stored resume for listing
type ResumeSummary struct {
	ID           uuid.UUID `json:"id"`
	SourceName   string    `json:"source_name,omitempty"`
	Name         string    `json:"name"`
	Format       string    `json:"format"`
	Score        float64   `json:"score"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaveResumeInput contains the fields needed to store a parsed resume
type SaveResumeInput struct {
	SourceName string
	SourceText string // hashed for duplicate detection; not stored
	Record     types.ParsedResume
}

// ResumeFilters holds optional filters for listing resumes
type ResumeFilters struct {
	Format   string
	MinScore float64
	Name     string // case-insensitive substring of contact.name
	Limit    int
}

// HashSource generates a SHA-256 hash of the source text
func HashSource(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// limit returns the effective row limit
func (f ResumeFilters) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
