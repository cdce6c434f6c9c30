package resumes

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, StoredResume{ID: "1", Record: sampleRecord("b"), CreatedAt: created}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, StoredResume{ID: "2", Record: sampleRecord("a"), CreatedAt: created}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, StoredResume{ID: "3", Record: sampleRecord("a")}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 || list[0].Name() != "a" || list[1].Name() != "b" {
		t.Fatalf("unexpected list %+v, %v", list, err)
	}

	rec := sampleRecord("a")
	rec.BasicInfo.Name = "Countess"
	updated := created.Add(time.Hour)
	if err := repo.Update(ctx, StoredResume{Record: rec, UpdatedAt: updated}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "2" || got.Record.BasicInfo.Name != "Countess" || !got.UpdatedAt.Equal(updated) || !got.CreatedAt.Equal(created) {
		t.Fatalf("update lost fields: %+v", got)
	}
	if err := repo.Update(ctx, StoredResume{Record: sampleRecord("zzz")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
