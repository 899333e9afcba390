package cartstore

import "storefront/internal/domain"

// Snapshot is the read surface for UI code. Every field is derived from
// the held cart at call time, so it cannot drift from it.
type Snapshot struct {
	Cart          *domain.Cart
	ItemCount     int
	Total         string
	Currency      string
	IsDisplayOpen bool
	IsMutating    bool
	Initialized   bool
	LastError     error
}

// Snapshot returns the current derived view. The cart pointer is shared:
// the store replaces carts wholesale and never mutates one in place.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Cart:          s.cart,
		ItemCount:     s.cart.ItemCount(),
		Total:         "0.00",
		Currency:      DefaultCurrency,
		IsDisplayOpen: s.displayOpen,
		IsMutating:    s.phase == phaseMutating,
		Initialized:   s.phase == phaseReady || s.phase == phaseMutating || s.phase == phaseErrored,
		LastError:     s.lastErr,
	}
	if s.cart != nil {
		snap.Total = s.cart.TotalAmount.Display()
		if s.cart.TotalAmount.CurrencyCode != "" {
			snap.Currency = s.cart.TotalAmount.CurrencyCode
		}
	}
	return snap
}
