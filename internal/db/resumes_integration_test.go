//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	return db
}

func testRecord(name string) types.ParsedResume {
	rec := types.ParsedResume{
		Contact: types.ContactInfo{Name: name, Email: "test@example.com"},
		Skills:  []types.SkillGroup{{Category: "Languages", Skills: []string{"Go", "SQL"}}},
		Metadata: types.Metadata{
			Format:        "txt",
			SectionsFound: []types.SectionLabel{types.SectionHeader, types.SectionSkills},
			Score:         35,
			ParsedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
	rec.EnsureCollections()
	rec.Confidence.Set(types.ContactField{Name: types.ContactName}, types.ConfidenceHigh)
	rec.Warnings = []types.Warning{{Code: types.WarningNoExperienceFound, Field: "experience", Message: "no work experience entries found"}}
	return rec
}

func TestIntegration_ParsedResume_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	name := "Integration " + uuid.New().String()[:8]
	rec := testRecord(name)

	stored, err := db.SaveParsedResume(ctx, &SaveResumeInput{
		SourceName: "resume.txt",
		SourceText: "source for " + name,
		Record:     rec,
	})
	if err != nil {
		t.Fatalf("SaveParsedResume failed: %v", err)
	}
	defer func() { _ = db.DeleteParsedResume(ctx, stored.ID) }()

	t.Run("save assigns metadata", func(t *testing.T) {
		if stored.ID == uuid.Nil {
			t.Error("ID should not be nil")
		}
		if stored.ContentHash != HashSource("source for "+name) {
			t.Errorf("ContentHash = %q", stored.ContentHash)
		}
		if stored.WarningCount != 1 {
			t.Errorf("WarningCount = %d, want 1", stored.WarningCount)
		}
	})

	t.Run("get round-trips the record", func(t *testing.T) {
		got, err := db.GetParsedResume(ctx, stored.ID)
		if err != nil {
			t.Fatalf("GetParsedResume failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected a stored resume")
		}
		if got.Record.Contact.Name != name {
			t.Errorf("Name = %q, want %q", got.Record.Contact.Name, name)
		}
		if got.Record.Confidence.Get(types.ContactField{Name: types.ContactName}) != types.ConfidenceHigh {
			t.Error("confidence did not round-trip")
		}
		if !got.Record.Metadata.ParsedAt.Equal(rec.Metadata.ParsedAt) {
			t.Errorf("ParsedAt = %v, want %v", got.Record.Metadata.ParsedAt, rec.Metadata.ParsedAt)
		}
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := db.GetParsedResume(ctx, uuid.New())
		if err != nil {
			t.Fatalf("GetParsedResume failed: %v", err)
		}
		if got != nil {
			t.Error("expected nil for missing resume")
		}
	})

	t.Run("find by content hash", func(t *testing.T) {
		got, err := db.FindByContentHash(ctx, HashSource("source for "+name))
		if err != nil {
			t.Fatalf("FindByContentHash failed: %v", err)
		}
		if got == nil || got.ID != stored.ID {
			t.Error("expected to find the stored resume by hash")
		}
	})

	t.Run("update replaces record", func(t *testing.T) {
		edited := rec.Clone()
		edited.Contact.Name = name + " Jr"
		edited.Warnings = []types.Warning{}
		edited.Metadata.Score = 40

		updated, err := db.UpdateParsedResume(ctx, stored.ID, &edited)
		if err != nil {
			t.Fatalf("UpdateParsedResume failed: %v", err)
		}
		if updated.Record.Contact.Name != name+" Jr" || updated.WarningCount != 0 || updated.Score != 40 {
			t.Errorf("unexpected update result: %+v", updated)
		}
		if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
			t.Error("UpdatedAt should not precede CreatedAt")
		}
	})

	t.Run("list filters by name", func(t *testing.T) {
		list, err := db.ListParsedResumes(ctx, ResumeFilters{Name: name, Limit: 10})
		if err != nil {
			t.Fatalf("ListParsedResumes failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != stored.ID {
			t.Errorf("expected exactly the stored resume, got %+v", list)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := db.UpdateParsedResume(ctx, uuid.New(), &rec)
		if !errors.Is(err, ErrResumeNotFound) {
			t.Errorf("expected ErrResumeNotFound, got %v", err)
		}
	})
}
