package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLiteRepo implements Repo on SQLite. Records are JSON text and timestamps
// RFC 3339 text so that both supported drivers read them the same way.
type SQLiteRepo struct {
	DB *sql.DB
}

// List returns every resume ordered by name.
func (r *SQLiteRepo) List(ctx context.Context) ([]StoredResume, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, record, created_at, updated_at FROM resumes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StoredResume{}
	for rows.Next() {
		s, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get fetches a resume by name.
func (r *SQLiteRepo) Get(ctx context.Context, name string) (StoredResume, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT id, record, created_at, updated_at FROM resumes WHERE name = ?`, name)
	s, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredResume{}, ErrNotFound
	}
	return s, err
}

// Create inserts a new resume.
func (r *SQLiteRepo) Create(ctx context.Context, s StoredResume) error {
	raw, err := json.Marshal(s.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO resumes (id, name, record, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Name(), string(raw), formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrAlreadyExists
	}
	return err
}

// Update replaces the record stored under s.Name().
func (r *SQLiteRepo) Update(ctx context.Context, s StoredResume) error {
	raw, err := json.Marshal(s.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE resumes SET record = ?, updated_at = ? WHERE name = ?`,
		string(raw), formatTime(s.UpdatedAt), s.Name(),
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// Delete removes a resume by name.
func (r *SQLiteRepo) Delete(ctx context.Context, name string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE name = ?`, name)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row rowScanner) (StoredResume, error) {
	var s StoredResume
	var raw, created, updated string
	if err := row.Scan(&s.ID, &raw, &created, &updated); err != nil {
		return StoredResume{}, err
	}
	var err error
	if s.Record, err = decodeRecord([]byte(raw)); err != nil {
		return StoredResume{}, err
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return StoredResume{}, fmt.Errorf("parse created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return StoredResume{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return s, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

var _ Repo = (*SQLiteRepo)(nil)
