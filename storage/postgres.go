package storage

import (
	"context"
	"database/sql"

	"github.com/awantoch/kwanixflow/model"
	_ "github.com/lib/pq"
)

// PostgresStorage implements Storage on PostgreSQL via lib/pq.
type PostgresStorage struct {
	db *sql.DB
}

var _ Storage = (*PostgresStorage)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS exports (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	extension TEXT NOT NULL,
	size INTEGER NOT NULL,
	url TEXT,
	created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS exports_session_idx ON exports(session_id);
`

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) SaveExport(ctx context.Context, rec *model.ExportRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO exports (id, session_id, filename, extension, size, url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET filename=EXCLUDED.filename, extension=EXCLUDED.extension, size=EXCLUDED.size, url=EXCLUDED.url
`, rec.ID, rec.SessionID, rec.Filename, rec.Extension, rec.Size, rec.URL, rec.CreatedAt.UnixNano())
	return err
}

func (s *PostgresStorage) ListExports(ctx context.Context, sessionID string) ([]*model.ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, filename, extension, size, url, created_at
FROM exports WHERE session_id=$1 ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExports(rows)
}

func (s *PostgresStorage) DeleteExports(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exports WHERE session_id=$1`, sessionID)
	return err
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
