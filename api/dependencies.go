package api

import (
	"context"

	"github.com/awantoch/kwanixflow/blob"
	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/event"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/session"
	"github.com/awantoch/kwanixflow/storage"
	"github.com/awantoch/kwanixflow/telemetry"
	"github.com/awantoch/kwanixflow/utils"
)

// Dependencies are the long-lived collaborators behind a DiagramService.
type Dependencies struct {
	Service DiagramService
	Store   storage.Storage
	Blobs   blob.BlobStore
	Bus     event.EventBus
}

// InitializeDependencies sets up storage, blob store, event bus and tracing
// from cfg. Returns a cleanup function that should be called when shutting down.
func InitializeDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.Log.Level != "" {
		utils.SetLevel(cfg.Log.Level)
	}

	store, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	bus, err := event.NewEventBusFromConfig(&cfg.Event)
	if err != nil {
		utils.WarnCtx(ctx, "Failed to create event bus, using in-memory fallback", "error", err)
		bus = event.NewInProcEventBus()
	}

	blobStore, err := blob.NewDefaultBlobStore(ctx, &cfg.Blob)
	if err != nil {
		utils.WarnCtx(ctx, "Failed to create blob store, exports will not be archived", "error", err)
		blobStore = nil
	}

	shutdownTracing, err := telemetry.Init(cfg)
	if err != nil {
		utils.WarnCtx(ctx, "Failed to initialize tracing", "error", err)
		shutdownTracing = nil
	}

	busCtx, stopBus := context.WithCancel(context.Background())
	if err := telemetry.CountEvents(busCtx, bus); err != nil {
		utils.WarnCtx(ctx, "Failed to subscribe event metrics", "error", err)
	}

	exporter := export.NewExporter(blobStore, store, bus)
	sessions := session.NewManager(cfg.Export.DefaultExtension)
	deps := &Dependencies{
		Service: NewDiagramService(sessions, exporter, bus),
		Store:   store,
		Blobs:   blobStore,
		Bus:     bus,
	}

	cleanup := func() {
		stopBus()
		if err := bus.Close(); err != nil {
			utils.Error("Failed to close event bus: %v", err)
		}
		if err := store.Close(); err != nil {
			utils.Error("Failed to close storage: %v", err)
		}
		if shutdownTracing != nil {
			if err := shutdownTracing(context.Background()); err != nil {
				utils.Error("Failed to shut down tracing: %v", err)
			}
		}
	}
	return deps, cleanup, nil
}
