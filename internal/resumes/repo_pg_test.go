package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	s := StoredResume{ID: "id-1", Record: sampleRecord("ada"), CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("id-1", "ada", sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicate(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("INSERT INTO resumes").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	err := repo.Create(context.Background(), StoredResume{ID: "x", Record: sampleRecord("ada")})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPGRepoGetDecodesLegacyRecord(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	legacy := `{"name":"ada","basic_info":{"name":"Ada","github":"ada"},"education":[{"university":"Home"}],"keywords":"engines, numbers"}`
	mock.ExpectQuery("FROM resumes").
		WithArgs("ada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "record", "created_at", "updated_at"}).
			AddRow("id-1", []byte(legacy), now, now))

	got, err := repo.Get(context.Background(), "ada")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Record.BasicInfo.Links.GitHub != "ada" || got.Record.Education[0].Institution != "Home" {
		t.Fatalf("legacy fields not decoded: %+v", got.Record)
	}
	if len(got.Record.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", got.Record.Keywords)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM resumes").WithArgs("nobody").WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateAndDeleteMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE resumes").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), StoredResume{Record: sampleRecord("ghost")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "record", "created_at", "updated_at"}).
			AddRow("1", []byte(`{"name":"a","basic_info":{"name":"A"}}`), now, now).
			AddRow("2", []byte(`{"name":"b","basic_info":{"name":"B"}}`), now, now))

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name() != "a" || list[1].Record.BasicInfo.Name != "B" {
		t.Fatalf("unexpected list %+v", list)
	}
}
