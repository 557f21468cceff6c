package storage

import (
	"context"
	"sync"

	"github.com/awantoch/kwanixflow/model"
)

// MemoryStorage implements Storage in-memory (for fallback/dev mode)
type MemoryStorage struct {
	mu      sync.Mutex
	exports map[string][]*model.ExportRecord // sessionID -> records, oldest first
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		exports: make(map[string][]*model.ExportRecord),
	}
}

func (m *MemoryStorage) SaveExport(ctx context.Context, rec *model.ExportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.exports[rec.SessionID] = append(m.exports[rec.SessionID], &cp)
	return nil
}

func (m *MemoryStorage) ListExports(ctx context.Context, sessionID string) ([]*model.ExportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.ExportRecord, 0, len(m.exports[sessionID]))
	for _, rec := range m.exports[sessionID] {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryStorage) DeleteExports(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.exports, sessionID)
	return nil
}

func (m *MemoryStorage) Close() error { return nil }
