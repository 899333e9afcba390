package handle

import (
	"context"
	"sync"
)

// Key is the fixed name under which the cart id is persisted, matching
// the browser client's localStorage key.
const Key = "shopify_cart_id"

// DefaultSlot is the slot used by single-session embeddings. The web
// server uses one slot per visitor.
const DefaultSlot = "default"

// Store is one durable slot holding the last-known cart id. Absence is
// a normal state (first run). Implementations must only ever hold an id
// the gateway issued; callers write after the gateway returns a cart,
// never speculatively.
type Store interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, cartID string) error
	Clear(ctx context.Context) error
}

// Handles hands out slot-bound Stores from a shared backend.
type Handles interface {
	Slot(name string) Store
}

// Pinger is implemented by backends with a remote dependency worth
// checking in readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Memory is an in-process backend, used in tests and as the fallback
// when no durable backend is configured.
type Memory struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

func (m *Memory) Slot(name string) Store {
	return &memorySlot{backend: m, name: name}
}

type memorySlot struct {
	backend *Memory
	name    string
}

func (s *memorySlot) Load(_ context.Context) (string, bool, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	id, ok := s.backend.slots[s.name]
	return id, ok, nil
}

func (s *memorySlot) Save(_ context.Context, cartID string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.slots[s.name] = cartID
	return nil
}

func (s *memorySlot) Clear(_ context.Context) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	delete(s.backend.slots, s.name)
	return nil
}
