package export

import (
	"context"
	"time"

	"github.com/awantoch/kwanixflow/blob"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/event"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/storage"
	"github.com/awantoch/kwanixflow/utils"
	"github.com/google/uuid"
)

// Exporter builds artifacts and archives them. Any of its collaborators may be
// nil; a missing blob store means files are handed out but not kept.
type Exporter struct {
	blobs  blob.BlobStore
	ledger storage.Storage
	bus    event.EventBus
	now    func() time.Time
}

func NewExporter(blobs blob.BlobStore, ledger storage.Storage, bus event.EventBus) *Exporter {
	return &Exporter{blobs: blobs, ledger: ledger, bus: bus, now: time.Now}
}

// Export builds the artifact for content and records it. Only an unsupported
// extension fails; archive and ledger errors are logged and the artifact is
// still returned.
func (e *Exporter) Export(ctx context.Context, sessionID, content, ext string) (Artifact, *model.ExportRecord, error) {
	art, err := Build(content, ext)
	if err != nil {
		return Artifact{}, nil, err
	}
	rec := &model.ExportRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Filename:  art.Filename,
		Extension: art.Extension,
		Size:      len(art.Data),
		CreatedAt: e.now().UTC(),
	}
	if e.blobs != nil {
		key := BlobKey(sessionID, rec.ID, ext)
		url, err := e.blobs.Put(ctx, art.Data, art.ContentType, key)
		if err != nil {
			utils.WarnCtx(ctx, constants.LogFailedArchive, "session", sessionID, "error", err)
		} else {
			rec.URL = url
		}
	}
	if e.ledger != nil {
		if err := e.ledger.SaveExport(ctx, rec); err != nil {
			utils.WarnCtx(ctx, "record export failed", "session", sessionID, "error", err)
		}
	}
	if e.bus != nil {
		payload := map[string]any{
			"session_id": sessionID,
			"export_id":  rec.ID,
			"filename":   rec.Filename,
			"size":       rec.Size,
		}
		if err := e.bus.Publish(constants.TopicExportCreated, payload); err != nil {
			utils.WarnCtx(ctx, constants.LogFailedPublish, "error", err)
		}
	}
	return art, rec, nil
}

// History lists the ledger entries of a session. Without a ledger it is empty.
func (e *Exporter) History(ctx context.Context, sessionID string) ([]*model.ExportRecord, error) {
	if e.ledger == nil {
		return []*model.ExportRecord{}, nil
	}
	return e.ledger.ListExports(ctx, sessionID)
}

// Forget removes a session's ledger entries.
func (e *Exporter) Forget(ctx context.Context, sessionID string) error {
	if e.ledger == nil {
		return nil
	}
	return e.ledger.DeleteExports(ctx, sessionID)
}

// BlobKey names the archived copy of one export.
func BlobKey(sessionID, exportID, ext string) string {
	return sessionID + "-" + exportID + "-" + FileName(ext)
}
