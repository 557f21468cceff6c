package storage

import (
	"context"

	"github.com/awantoch/kwanixflow/model"
)

// Storage is the export ledger: a record of every file handed out for download.
type Storage interface {
	SaveExport(ctx context.Context, rec *model.ExportRecord) error
	ListExports(ctx context.Context, sessionID string) ([]*model.ExportRecord, error)
	DeleteExports(ctx context.Context, sessionID string) error
	Close() error
}
