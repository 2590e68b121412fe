package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage keeps documents in the ledger_documents table created
// by postgres.RunMigrations.
func NewPostgresStorage(db *sql.DB) DocumentStorage {
	return &postgresStorage{db: db}
}

func (s *postgresStorage) Save(ctx context.Context, path string, data io.Reader) error {
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}

	query := `INSERT INTO ledger_documents (path, body, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, path, body); err != nil {
		return fmt.Errorf("failed to save document %s: %w", path, err)
	}
	return nil
}

func (s *postgresStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	var body []byte
	query := `SELECT body FROM ledger_documents WHERE path = $1`
	err := s.db.QueryRowContext(ctx, query, path).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}
