package storage

import (
	"database/sql"
	"time"

	"github.com/awantoch/kwanixflow/model"
)

// scanExports reads rows of (id, session_id, filename, extension, size, url,
// created_at) where created_at is Unix nanoseconds.
func scanExports(rows *sql.Rows) ([]*model.ExportRecord, error) {
	out := []*model.ExportRecord{}
	for rows.Next() {
		var rec model.ExportRecord
		var url sql.NullString
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Filename, &rec.Extension, &rec.Size, &url, &createdAt); err != nil {
			return nil, err
		}
		rec.URL = url.String
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, &rec)
	}
	return out, rows.Err()
}
