package cartstore

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/handle"
)

// DefaultCurrency is reported before a cart exists.
const DefaultCurrency = "USD"

// Gateway is the slice of the commerce platform the store depends on.
type Gateway interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
	AddLines(ctx context.Context, cartID, variantID string, quantity int) (*domain.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
	UpdateLines(ctx context.Context, cartID string, updates []gateway.LineUpdate) (*domain.Cart, error)
}

type phase int

const (
	phaseUninitialized phase = iota
	phaseInitializing
	phaseReady
	phaseMutating
	phaseErrored
)

// Store owns the local view of one remote cart and keeps it consistent
// with the platform: the persisted handle always names the held cart,
// and at most one mutation is in flight at a time. A failed mutation
// keeps the last known-good cart for display and records the error; it
// is never retried automatically.
type Store struct {
	gw     Gateway
	handle handle.Store
	logger *log.Logger

	// initMu serializes Init so concurrent callers wait for the first
	// run instead of racing to create carts.
	initMu sync.Mutex

	mu          sync.Mutex
	phase       phase
	cart        *domain.Cart
	lastErr     error
	displayOpen bool
}

func New(gw Gateway, h handle.Store, logger *log.Logger) *Store {
	return &Store{gw: gw, handle: h, logger: logger}
}

// Init resolves a usable cart: reuse the persisted handle when the
// platform still knows the cart, otherwise create a fresh one and
// overwrite the handle. Idempotent once it has succeeded; a failed run
// leaves the store uninitialized so the caller may invoke it again.
func (s *Store) Init(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	if s.phase != phaseUninitialized {
		s.mu.Unlock()
		return nil
	}
	s.phase = phaseInitializing
	s.mu.Unlock()

	cart, err := s.recoverCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = phaseUninitialized
		s.lastErr = err
		return err
	}
	s.cart = cart
	s.phase = phaseReady
	s.lastErr = nil
	return nil
}

func (s *Store) recoverCart(ctx context.Context) (*domain.Cart, error) {
	id, ok, err := s.handle.Load(ctx)
	if err != nil {
		// A broken handle slot is treated like a first run.
		s.logger.Printf("cart handle unreadable, creating fresh cart: %v", err)
		ok = false
	}
	if ok {
		cart, err := s.gw.GetCart(ctx, id)
		if err != nil {
			s.logger.Printf("fetch cart %s failed, creating fresh cart: %v", id, err)
		} else if cart != nil {
			return cart, nil
		}
		// Expired or unreachable cart falls through to the create path.
	}
	cart, err := s.gw.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.handle.Save(ctx, cart.ID); err != nil {
		return nil, err
	}
	return cart, nil
}

// beginMutation claims the single in-flight mutation slot.
func (s *Store) beginMutation() (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case phaseMutating:
		return nil, domain.ErrBusy
	case phaseReady, phaseErrored:
		// Errored keeps the last good cart; the next mutation may proceed.
	default:
		return nil, domain.ErrNotReady
	}
	if s.cart == nil {
		return nil, domain.ErrNotReady
	}
	s.phase = phaseMutating
	return s.cart, nil
}

// endMutation commits the gateway's cart or records the failure while
// retaining the prior cart snapshot.
func (s *Store) endMutation(cart *domain.Cart, err error, openDisplay bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = phaseErrored
		s.lastErr = err
		return err
	}
	s.cart = cart
	s.phase = phaseReady
	s.lastErr = nil
	if openDisplay {
		s.displayOpen = true
	}
	return nil
}

// AddItem adds quantity of the given variant and opens the cart display
// on success.
func (s *Store) AddItem(ctx context.Context, variantID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(variantID) == "" {
		return nil, errors.New("variantId required")
	}
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	cart, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	updated, err := s.gw.AddLines(ctx, cart.ID, variantID, quantity)
	if err := s.endMutation(updated, err, true); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveItem removes one line. An unknown line id surfaces as the
// platform's rejection; it is not validated locally.
func (s *Store) RemoveItem(ctx context.Context, lineID string) (*domain.Cart, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, errors.New("lineId required")
	}
	cart, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	updated, err := s.gw.RemoveLines(ctx, cart.ID, []string{lineID})
	if err := s.endMutation(updated, err, false); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateQuantity sets a new quantity for one line. A quantity of zero or
// less is by policy equivalent to RemoveItem: lines with non-positive
// quantity must not exist.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, lineID)
	}
	if strings.TrimSpace(lineID) == "" {
		return nil, errors.New("lineId required")
	}
	cart, err := s.beginMutation()
	if err != nil {
		return nil, err
	}
	updated, err := s.gw.UpdateLines(ctx, cart.ID, []gateway.LineUpdate{{LineID: lineID, Quantity: quantity}})
	if err := s.endMutation(updated, err, false); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear abandons the current cart and starts a fresh empty one. The
// platform has no delete-cart operation; the old cart is simply left
// behind. The fresh cart is created before the handle is overwritten so
// a failure at any point leaves handle and held cart matching.
func (s *Store) Clear(ctx context.Context) (*domain.Cart, error) {
	if _, err := s.beginMutation(); err != nil {
		return nil, err
	}
	fresh, err := s.gw.CreateCart(ctx)
	if err == nil {
		err = s.handle.Save(ctx, fresh.ID)
	}
	if err := s.endMutation(fresh, err, false); err != nil {
		return nil, err
	}
	return fresh, nil
}

// OpenDisplay marks the cart UI open. Local state only, always succeeds.
func (s *Store) OpenDisplay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayOpen = true
}

// CloseDisplay marks the cart UI closed.
func (s *Store) CloseDisplay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayOpen = false
}
