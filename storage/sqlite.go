package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/utils"
	_ "modernc.org/sqlite"
)

// SqliteStorage implements Storage using SQLite as the backend.
type SqliteStorage struct {
	db *sql.DB
}

var _ Storage = (*SqliteStorage)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exports (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	extension TEXT NOT NULL,
	size INTEGER NOT NULL,
	url TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS exports_session_idx ON exports(session_id);
`

func NewSqliteStorage(dsn string) (*SqliteStorage, error) {
	// Only create parent directories if not using in-memory SQLite (":memory:").
	if dsn != ":memory:" && dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, utils.Errorf("failed to create db directory %q: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) SaveExport(ctx context.Context, rec *model.ExportRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO exports (id, session_id, filename, extension, size, url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET filename=excluded.filename, extension=excluded.extension, size=excluded.size, url=excluded.url
`, rec.ID, rec.SessionID, rec.Filename, rec.Extension, rec.Size, rec.URL, rec.CreatedAt.UnixNano())
	return err
}

func (s *SqliteStorage) ListExports(ctx context.Context, sessionID string) ([]*model.ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, filename, extension, size, url, created_at
FROM exports WHERE session_id=? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExports(rows)
}

func (s *SqliteStorage) DeleteExports(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exports WHERE session_id=?`, sessionID)
	return err
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}
