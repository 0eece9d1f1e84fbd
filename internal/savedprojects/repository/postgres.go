package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

const createSavedProjectsTable = `
CREATE TABLE IF NOT EXISTS saved_projects (
	owner          TEXT        NOT NULL,
	id             BIGINT      NOT NULL,
	saved_at       TIMESTAMPTZ NOT NULL,
	client_name    TEXT        NOT NULL,
	schema_version INT         NOT NULL,
	record         JSONB       NOT NULL,
	PRIMARY KEY (owner, id)
);
`

// PostgresStore keeps one row per saved project with the full record in JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the saved_projects table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSavedProjectsTable); err != nil {
		return fmt.Errorf("failed to create saved_projects table: %w", err)
	}
	return nil
}

// Append inserts p, bumping the id on a unique violation.
func (s *PostgresStore) Append(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error) {
	const q = `
INSERT INTO saved_projects (owner, id, saved_at, client_name, schema_version, record)
VALUES ($1, $2, $3, $4, $5, $6);
`
	for i := 0; i < 5; i++ {
		record, err := json.Marshal(p)
		if err != nil {
			return domain.SavedProject{}, fmt.Errorf("failed to encode saved project: %w", err)
		}

		_, err = s.db.ExecContext(ctx, q, owner, p.ID, p.SavedAt, p.ClientName, p.SchemaVersion, record)
		if err == nil {
			return p, nil
		}

		// unique violation on (owner, id) → retry with the next id
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			p.ID++
			continue
		}
		return domain.SavedProject{}, fmt.Errorf("failed to insert saved project: %w", err)
	}
	return domain.SavedProject{}, fmt.Errorf("failed to generate unique saved project id")
}

func (s *PostgresStore) List(ctx context.Context, owner string) ([]domain.SavedProject, error) {
	const q = `
SELECT record
FROM saved_projects
WHERE owner = $1
ORDER BY saved_at DESC, id DESC;
`
	rows, err := s.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved projects: %w", err)
	}
	defer rows.Close()

	out := []domain.SavedProject{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		p, err := domain.Decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error) {
	const q = `
SELECT record
FROM saved_projects
WHERE owner = $1 AND id = $2;
`
	var raw []byte
	err := s.db.QueryRowContext(ctx, q, owner, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.SavedProject{}, fmt.Errorf("failed to get saved project: %w", err)
	}
	return domain.Decode(raw)
}

func (s *PostgresStore) Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedProject{}, domain.ErrInvalidName
	}

	const q = `
UPDATE saved_projects
SET client_name = $3,
    record = jsonb_set(record, '{client_name}', to_jsonb($3::text))
WHERE owner = $1 AND id = $2
RETURNING record;
`
	var raw []byte
	err := s.db.QueryRowContext(ctx, q, owner, id, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.SavedProject{}, fmt.Errorf("failed to rename saved project: %w", err)
	}
	return domain.Decode(raw)
}

func (s *PostgresStore) Delete(ctx context.Context, owner string, id int64) error {
	const q = `DELETE FROM saved_projects WHERE owner = $1 AND id = $2;`

	res, err := s.db.ExecContext(ctx, q, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
