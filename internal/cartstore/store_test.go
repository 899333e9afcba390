package cartstore

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/handle"
)

type stubGateway struct {
	mu sync.Mutex

	createResults []*domain.Cart
	createErr     error
	createCalls   int

	getCart   *domain.Cart
	getErr    error
	getCalls  int
	lastGetID string

	addCart        *domain.Cart
	addErr         error
	addCalls       int
	lastAddCartID  string
	lastAddVariant string
	lastAddQty     int

	removeCart    *domain.Cart
	removeErr     error
	removeCalls   int
	lastRemoveIDs []string

	updateCart  *domain.Cart
	updateErr   error
	updateCalls int
	lastUpdates []gateway.LineUpdate

	// When set, AddLines signals started and waits for release, so tests
	// can hold a mutation in flight.
	started chan struct{}
	release chan struct{}
}

func (s *stubGateway) CreateCart(_ context.Context) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	var res *domain.Cart
	if len(s.createResults) > 0 {
		idx := s.createCalls
		if idx >= len(s.createResults) {
			idx = len(s.createResults) - 1
		}
		res = s.createResults[idx]
	}
	s.createCalls++
	return res, nil
}

func (s *stubGateway) GetCart(_ context.Context, id string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	s.lastGetID = id
	return s.getCart, s.getErr
}

func (s *stubGateway) AddLines(_ context.Context, cartID, variantID string, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	s.addCalls++
	s.lastAddCartID = cartID
	s.lastAddVariant = variantID
	s.lastAddQty = quantity
	started, release := s.started, s.release
	s.mu.Unlock()
	if started != nil {
		close(started)
		<-release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCart, s.addErr
}

func (s *stubGateway) RemoveLines(_ context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeCalls++
	s.lastRemoveIDs = lineIDs
	return s.removeCart, s.removeErr
}

func (s *stubGateway) UpdateLines(_ context.Context, cartID string, updates []gateway.LineUpdate) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	s.lastUpdates = updates
	return s.updateCart, s.updateErr
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func emptyCart(id string) *domain.Cart {
	return &domain.Cart{
		ID:          id,
		CheckoutURL: "https://shop.example/checkout/" + id,
		TotalAmount: domain.Money{Amount: "0.00", CurrencyCode: "USD"},
	}
}

func newTestStore(gw Gateway) (*Store, handle.Store) {
	slot := handle.NewMemory().Slot(handle.DefaultSlot)
	return New(gw, slot, testLogger()), slot
}

func mustHandle(t *testing.T, slot handle.Store) string {
	t.Helper()
	id, ok, err := slot.Load(context.Background())
	if err != nil {
		t.Fatalf("load handle: %v", err)
	}
	if !ok {
		t.Fatalf("expected handle to be set")
	}
	return id
}

func TestInitFreshSessionCreatesCart(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1")}}
	st, slot := newTestStore(gw)

	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := st.Snapshot()
	if !snap.Initialized || snap.Cart == nil || snap.Cart.ID != "c1" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.ItemCount != 0 || snap.Total != "0.00" || snap.Currency != "USD" {
		t.Fatalf("unexpected derived values: %+v", snap)
	}
	if snap.LastError != nil {
		t.Fatalf("unexpected lastError: %v", snap.LastError)
	}
	if id := mustHandle(t, slot); id != "c1" {
		t.Fatalf("expected handle c1, got %s", id)
	}
}

func TestInitReusesExistingCart(t *testing.T) {
	gw := &stubGateway{getCart: emptyCart("c_old")}
	st, slot := newTestStore(gw)
	if err := slot.Save(context.Background(), "c_old"); err != nil {
		t.Fatalf("seed handle: %v", err)
	}

	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.createCalls != 0 {
		t.Fatalf("expected no cart creation, got %d", gw.createCalls)
	}
	if gw.lastGetID != "c_old" {
		t.Fatalf("expected fetch of c_old, got %s", gw.lastGetID)
	}
	if st.Snapshot().Cart.ID != "c_old" {
		t.Fatalf("expected cart c_old")
	}
	if id := mustHandle(t, slot); id != "c_old" {
		t.Fatalf("expected handle c_old, got %s", id)
	}
}

func TestInitExpiredCartCreatesNew(t *testing.T) {
	gw := &stubGateway{
		getCart:       nil, // platform no longer knows the id
		createResults: []*domain.Cart{emptyCart("c_new")},
	}
	st, slot := newTestStore(gw)
	if err := slot.Save(context.Background(), "c_old"); err != nil {
		t.Fatalf("seed handle: %v", err)
	}

	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := st.Snapshot()
	if snap.Cart.ID != "c_new" {
		t.Fatalf("expected fresh cart, got %+v", snap.Cart)
	}
	if snap.LastError != nil {
		t.Fatalf("recovery is not an error, got %v", snap.LastError)
	}
	if id := mustHandle(t, slot); id != "c_new" {
		t.Fatalf("expected handle overwritten to c_new, got %s", id)
	}
}

func TestInitFetchFailureFallsBackToCreate(t *testing.T) {
	gw := &stubGateway{
		getErr:        &domain.NetworkError{Op: "cart", Err: errors.New("timeout")},
		createResults: []*domain.Cart{emptyCart("c_new")},
	}
	st, slot := newTestStore(gw)
	if err := slot.Save(context.Background(), "c_old"); err != nil {
		t.Fatalf("seed handle: %v", err)
	}

	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id := mustHandle(t, slot); id != "c_new" {
		t.Fatalf("expected handle c_new, got %s", id)
	}
}

func TestInitCreateFailureIsRetryable(t *testing.T) {
	gw := &stubGateway{createErr: &domain.NetworkError{Op: "cartCreate", Err: errors.New("down")}}
	st, slot := newTestStore(gw)

	if err := st.Init(context.Background()); err == nil {
		t.Fatalf("expected init error")
	}
	snap := st.Snapshot()
	if snap.Initialized {
		t.Fatalf("store must not report initialized after failed init")
	}
	if snap.LastError == nil {
		t.Fatalf("expected lastError recorded")
	}
	if _, ok, _ := slot.Load(context.Background()); ok {
		t.Fatalf("handle must not be written on failed init")
	}

	gw.mu.Lock()
	gw.createErr = nil
	gw.createResults = []*domain.Cart{emptyCart("c1")}
	gw.mu.Unlock()

	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if st.Snapshot().Cart.ID != "c1" {
		t.Fatalf("expected cart c1 after retry")
	}
}

func TestInitIdempotentAfterSuccess(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1")}}
	st, _ := newTestStore(gw)

	for i := 0; i < 3; i++ {
		if err := st.Init(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if gw.createCalls != 1 {
		t.Fatalf("expected a single create, got %d", gw.createCalls)
	}
}

func TestAddItemReplacesCartAndOpensDisplay(t *testing.T) {
	updated := &domain.Cart{
		ID: "c1",
		Lines: []domain.LineItem{{
			ID:       "line_1",
			Quantity: 2,
			Subtotal: domain.Money{Amount: "40.00", CurrencyCode: "USD"},
			Merchandise: domain.Merchandise{
				VariantID:    "variant-42",
				Title:        "Default",
				ProductTitle: "Tee",
			},
		}},
		TotalAmount: domain.Money{Amount: "40.00", CurrencyCode: "USD"},
	}
	gw := &stubGateway{
		createResults: []*domain.Cart{emptyCart("c1")},
		addCart:       updated,
	}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	got, err := st.AddItem(context.Background(), "variant-42", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated {
		t.Fatalf("expected gateway cart returned")
	}
	if gw.lastAddCartID != "c1" || gw.lastAddVariant != "variant-42" || gw.lastAddQty != 2 {
		t.Fatalf("add not forwarded as expected: %s %s %d", gw.lastAddCartID, gw.lastAddVariant, gw.lastAddQty)
	}

	snap := st.Snapshot()
	if snap.ItemCount != 2 || snap.Total != "40.00" || !snap.IsDisplayOpen {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestAddItemValidation(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1")}}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := st.AddItem(context.Background(), "variant-1", 0); err == nil {
		t.Fatalf("expected quantity validation error")
	}
	if _, err := st.AddItem(context.Background(), "  ", 1); err == nil {
		t.Fatalf("expected variant validation error")
	}
	if gw.addCalls != 0 {
		t.Fatalf("gateway must not be called for invalid input")
	}
}

func TestMutationsBeforeInitFailNotReady(t *testing.T) {
	st, _ := newTestStore(&stubGateway{})

	if _, err := st.AddItem(context.Background(), "v1", 1); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if _, err := st.RemoveItem(context.Background(), "line_1"); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if _, err := st.Clear(context.Background()); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestConcurrentMutationFailsBusy(t *testing.T) {
	gw := &stubGateway{
		createResults: []*domain.Cart{emptyCart("c1")},
		addCart:       emptyCart("c1"),
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := st.AddItem(context.Background(), "v1", 1)
		firstDone <- err
	}()
	<-gw.started

	before := st.Snapshot()
	if !before.IsMutating {
		t.Fatalf("expected IsMutating while in flight")
	}
	if _, err := st.RemoveItem(context.Background(), "line_1"); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if st.Snapshot().Cart != before.Cart {
		t.Fatalf("busy rejection must not alter the held cart")
	}

	close(gw.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first mutation should succeed: %v", err)
	}
	if st.Snapshot().IsMutating {
		t.Fatalf("expected mutation slot released")
	}
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		gw := &stubGateway{
			createResults: []*domain.Cart{emptyCart("c1")},
			removeCart:    emptyCart("c1"),
		}
		st, _ := newTestStore(gw)
		if err := st.Init(context.Background()); err != nil {
			t.Fatalf("init: %v", err)
		}

		if _, err := st.UpdateQuantity(context.Background(), "line_x", quantity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gw.updateCalls != 0 {
			t.Fatalf("quantity %d must not issue an update", quantity)
		}
		if gw.removeCalls != 1 || len(gw.lastRemoveIDs) != 1 || gw.lastRemoveIDs[0] != "line_x" {
			t.Fatalf("quantity %d must remove line_x, got %v", quantity, gw.lastRemoveIDs)
		}
	}
}

func TestUpdateQuantityPositiveUpdates(t *testing.T) {
	gw := &stubGateway{
		createResults: []*domain.Cart{emptyCart("c1")},
		updateCart:    emptyCart("c1"),
	}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := st.UpdateQuantity(context.Background(), "line_x", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.removeCalls != 0 || gw.updateCalls != 1 {
		t.Fatalf("expected a single update, got remove=%d update=%d", gw.removeCalls, gw.updateCalls)
	}
	if len(gw.lastUpdates) != 1 || gw.lastUpdates[0].LineID != "line_x" || gw.lastUpdates[0].Quantity != 3 {
		t.Fatalf("unexpected updates: %+v", gw.lastUpdates)
	}
}

func TestRejectedMutationKeepsPriorCart(t *testing.T) {
	gw := &stubGateway{
		createResults: []*domain.Cart{emptyCart("c1")},
		removeErr: &domain.RejectedError{
			Op:         "cartLinesRemove",
			UserErrors: []domain.UserError{{Message: "line does not exist"}},
		},
	}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	before := st.Snapshot().Cart

	_, err := st.RemoveItem(context.Background(), "line_x")
	var rejected *domain.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}

	snap := st.Snapshot()
	if snap.Cart != before {
		t.Fatalf("held cart must be unchanged after rejection")
	}
	if snap.LastError == nil {
		t.Fatalf("expected lastError recorded")
	}
	if snap.IsMutating {
		t.Fatalf("mutation slot must be released after failure")
	}
}

func TestSuccessfulMutationClearsLastError(t *testing.T) {
	gw := &stubGateway{
		createResults: []*domain.Cart{emptyCart("c1")},
		removeErr:     &domain.RejectedError{Op: "cartLinesRemove"},
		addCart:       emptyCart("c1"),
	}
	st, _ := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := st.RemoveItem(context.Background(), "line_x"); err == nil {
		t.Fatalf("expected rejection")
	}
	if _, err := st.AddItem(context.Background(), "v1", 1); err != nil {
		t.Fatalf("mutation after errored state should proceed: %v", err)
	}
	if st.Snapshot().LastError != nil {
		t.Fatalf("expected lastError cleared after success")
	}
}

func TestClearStartsFreshCart(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1"), emptyCart("c2")}}
	st, slot := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	fresh, err := st.Clear(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.ID != "c2" {
		t.Fatalf("expected fresh cart c2, got %s", fresh.ID)
	}
	if id := mustHandle(t, slot); id != "c2" {
		t.Fatalf("expected handle c2, got %s", id)
	}
	if st.Snapshot().ItemCount != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestClearCreateFailureKeepsOldCart(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1")}}
	st, slot := newTestStore(gw)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	gw.mu.Lock()
	gw.createErr = &domain.NetworkError{Op: "cartCreate", Err: errors.New("down")}
	gw.mu.Unlock()

	if _, err := st.Clear(context.Background()); err == nil {
		t.Fatalf("expected clear failure")
	}
	snap := st.Snapshot()
	if snap.Cart == nil || snap.Cart.ID != "c1" {
		t.Fatalf("old cart must be retained, got %+v", snap.Cart)
	}
	if id := mustHandle(t, slot); id != "c1" {
		t.Fatalf("handle must still match held cart, got %s", id)
	}
}

func TestDisplayToggles(t *testing.T) {
	st, _ := newTestStore(&stubGateway{createResults: []*domain.Cart{emptyCart("c1")}})

	st.OpenDisplay()
	if !st.Snapshot().IsDisplayOpen {
		t.Fatalf("expected display open")
	}
	st.CloseDisplay()
	if st.Snapshot().IsDisplayOpen {
		t.Fatalf("expected display closed")
	}
}

func TestSnapshotDefaultsWithoutCart(t *testing.T) {
	st, _ := newTestStore(&stubGateway{})

	snap := st.Snapshot()
	if snap.Cart != nil || snap.ItemCount != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Total != "0.00" || snap.Currency != DefaultCurrency {
		t.Fatalf("unexpected defaults: %+v", snap)
	}
	if snap.Initialized {
		t.Fatalf("expected uninitialized")
	}
}

func TestManagerReturnsStorePerVisitor(t *testing.T) {
	gw := &stubGateway{createResults: []*domain.Cart{emptyCart("c1")}}
	m := NewManager(gw, handle.NewMemory(), testLogger())

	a := m.Store("visitor-a")
	b := m.Store("visitor-b")
	if a == b {
		t.Fatalf("expected distinct stores per visitor")
	}
	if m.Store("visitor-a") != a {
		t.Fatalf("expected cached store for repeat visitor")
	}
}
