package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"resume-generator/resume/model"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns every resume ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]StoredResume, error) {
	const query = `
SELECT id, record, created_at, updated_at
FROM resumes
ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StoredResume{}
	for rows.Next() {
		var s StoredResume
		var raw []byte
		if err := rows.Scan(&s.ID, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if s.Record, err = decodeRecord(raw); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get fetches a resume by name.
func (r *PGRepo) Get(ctx context.Context, name string) (StoredResume, error) {
	const query = `
SELECT id, record, created_at, updated_at
FROM resumes
WHERE name = $1
LIMIT 1`
	var s StoredResume
	var raw []byte
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&s.ID, &raw, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredResume{}, ErrNotFound
		}
		return StoredResume{}, err
	}
	if s.Record, err = decodeRecord(raw); err != nil {
		return StoredResume{}, err
	}
	return s, nil
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, s StoredResume) error {
	const query = `
INSERT INTO resumes (id, name, record, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	raw, err := json.Marshal(s.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, s.ID, s.Name(), raw, s.CreatedAt, s.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrAlreadyExists
	}
	return err
}

// Update replaces the record stored under s.Name().
func (r *PGRepo) Update(ctx context.Context, s StoredResume) error {
	const query = `
UPDATE resumes
SET record = $1, updated_at = $2
WHERE name = $3`
	raw, err := json.Marshal(s.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query, raw, s.UpdatedAt, s.Name())
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

// Delete removes a resume by name.
func (r *PGRepo) Delete(ctx context.Context, name string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE name = $1`, name)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeRecord(raw []byte) (model.ResumeRecord, error) {
	var rec model.ResumeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.ResumeRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
