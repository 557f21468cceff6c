package session

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Manager owns the live sessions of a process.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	defaultExt string
}

// NewManager returns a Manager whose sessions start with defaultExt selected.
func NewManager(defaultExt string) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		defaultExt: defaultExt,
	}
}

// Create starts a new session with a random id.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.defaultExt)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete discards a session and all of its state.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns the ids of all live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
