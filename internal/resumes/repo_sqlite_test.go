package resumes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"resume-generator/internal/shared/storage/db"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "resumes.db"), db.DefaultMigrateOptions())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return &SQLiteRepo{DB: sqlDB}
}

func TestSQLiteRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	created := time.Date(2026, 2, 3, 4, 5, 6, 7000, time.UTC)
	in := StoredResume{ID: "id-1", Record: sampleRecord("ada"), CreatedAt: created, UpdatedAt: created}

	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, StoredResume{ID: "id-2", Record: sampleRecord("ada"), CreatedAt: created, UpdatedAt: created}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.Get(ctx, "ada")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	rec := sampleRecord("ada")
	rec.Keywords = []string{"engines"}
	later := created.Add(time.Hour)
	if err := repo.Update(ctx, StoredResume{Record: rec, UpdatedAt: later}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = repo.Get(ctx, "ada")
	if !got.UpdatedAt.Equal(later) || !got.CreatedAt.Equal(created) || len(got.Record.Keywords) != 1 {
		t.Fatalf("unexpected after update: %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}

	if err := repo.Delete(ctx, "ada"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "ada"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, StoredResume{Record: rec, UpdatedAt: later}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
