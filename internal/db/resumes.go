package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-extractor/internal/types"
)

const resumeColumns = `id, source_name, format, content_hash, record, score, warning_count, created_at, updated_at`

// SaveParsedResume stores a new parsed resume and returns it with its assigned ID
func (db *DB) SaveParsedResume(ctx context.Context, input *SaveResumeInput) (*StoredResume, error) {
	content, err := json.Marshal(&input.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}

	id := uuid.New()
	row := db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (id, source_name, format, content_hash, record, score, warning_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+resumeColumns,
		id, input.SourceName, input.Record.Metadata.Format, HashSource(input.SourceText),
		content, input.Record.Metadata.Score, len(input.Record.Warnings),
	)
	stored, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return stored, nil
}

// GetParsedResume retrieves a stored resume by ID. Returns nil, nil when no row exists.
func (db *DB) GetParsedResume(ctx context.Context, id uuid.UUID) (*StoredResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM parsed_resumes WHERE id = $1`,
		id,
	)
	stored, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume: %w", err)
	}
	return stored, nil
}

// FindByContentHash returns the most recent resume parsed from identical source text, or nil
func (db *DB) FindByContentHash(ctx context.Context, hash string) (*StoredResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM parsed_resumes WHERE content_hash = $1
		 ORDER BY created_at DESC LIMIT 1`,
		hash,
	)
	stored, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find parsed resume by hash: %w", err)
	}
	return stored, nil
}

// UpdateParsedResume replaces the record of a stored resume, typically with
// the output of a committed correction session
func (db *DB) UpdateParsedResume(ctx context.Context, id uuid.UUID, rec *types.ParsedResume) (*StoredResume, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE parsed_resumes
		 SET record = $2, score = $3, warning_count = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, content, rec.Metadata.Score, len(rec.Warnings),
	)
	stored, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, id)
		}
		return nil, fmt.Errorf("failed to update parsed resume: %w", err)
	}
	return stored, nil
}

// DeleteParsedResume deletes a stored resume
func (db *DB) DeleteParsedResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM parsed_resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete parsed resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrResumeNotFound, id)
	}
	return nil
}

// ListParsedResumes retrieves resume summaries, newest first, with optional filters
func (db *DB) ListParsedResumes(ctx context.Context, filters ResumeFilters) ([]ResumeSummary, error) {
	query, args := buildListQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.SourceName, &s.Name, &s.Format, &s.Score, &s.WarningCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parsed resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	return summaries, nil
}

// buildListQuery assembles the filtered list query and its positional arguments
func buildListQuery(filters ResumeFilters) (string, []any) {
	query := `SELECT id, source_name, COALESCE(record->'contact'->>'name', ''), format, score, warning_count, created_at
		FROM parsed_resumes WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Format != "" {
		query += fmt.Sprintf(" AND format = $%d", argNum)
		args = append(args, filters.Format)
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}
	if filters.Name != "" {
		query += fmt.Sprintf(" AND record->'contact'->>'name' ILIKE $%d", argNum)
		args = append(args, "%"+filters.Name+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.limit())
	return query, args
}

func scanResume(row pgx.Row) (*StoredResume, error) {
	var (
		s       StoredResume
		content []byte
	)
	if err := row.Scan(&s.ID, &s.SourceName, &s.Format, &s.ContentHash, &content,
		&s.Score, &s.WarningCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	rec, err := types.UnmarshalResume(content)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed resume: %w", err)
	}
	s.Record = *rec
	return &s, nil
}
