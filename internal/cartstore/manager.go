package cartstore

import (
	"log"
	"sync"

	"storefront/internal/handle"
)

// Manager hands out one Store per visitor for the web server, each bound
// to its own handle slot. Stores are created lazily and live for the
// process lifetime; Init runs on first use.
type Manager struct {
	gw      Gateway
	handles handle.Handles
	logger  *log.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(gw Gateway, handles handle.Handles, logger *log.Logger) *Manager {
	return &Manager{
		gw:      gw,
		handles: handles,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// Store returns the visitor's store, creating it if needed. The caller
// is responsible for running Init before mutating.
func (m *Manager) Store(visitorID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[visitorID]; ok {
		return st
	}
	st := New(m.gw, m.handles.Slot(visitorID), m.logger)
	m.stores[visitorID] = st
	return st
}
