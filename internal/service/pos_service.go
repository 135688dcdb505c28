package service

import (
	"context"
	"sync"

	"agri-pos/internal/model"
	"agri-pos/internal/pos"

	"github.com/rs/zerolog"
)

// posService implements PosService for the single operator terminal. The
// mutex serialises cart mutations and checkout against concurrent HTTP
// requests; it is not a multi-terminal concurrency control, which remains
// out of scope.
type posService struct {
	mu           sync.Mutex
	session      *pos.Session
	orchestrator *pos.Orchestrator
	logger       zerolog.Logger
}

// NewPosService creates the POS service around the terminal session.
func NewPosService(session *pos.Session, orchestrator *pos.Orchestrator, logger zerolog.Logger) PosService {
	return &posService{
		session:      session,
		orchestrator: orchestrator,
		logger:       logger.With().Str("service", "pos").Logger(),
	}
}

// Cart returns the current cart contents.
func (s *posService) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

// AddLine puts quantity units of a product into the cart.
func (s *posService) AddLine(productID string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Cart.Add(s.session.Catalog, productID, quantity); err != nil {
		return s.cartView(), err
	}

	s.logger.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart line added")
	return s.cartView(), nil
}

// AdjustLine changes a line's quantity by delta.
func (s *posService) AdjustLine(index, delta int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Cart.AdjustQuantity(s.session.Catalog, index, delta); err != nil {
		return s.cartView(), err
	}
	return s.cartView(), nil
}

// RemoveLine drops a cart line.
func (s *posService) RemoveLine(index int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Cart.RemoveLine(index); err != nil {
		return s.cartView(), err
	}
	return s.cartView(), nil
}

// ClearCart empties the cart.
func (s *posService) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Cart.Clear()
	return s.cartView()
}

// LookupCustomer prefills the contact form for a known phone. Exact match
// only, like everywhere else.
func (s *posService) LookupCustomer(phone string) (model.Customer, bool) {
	return s.session.Catalog.CustomerByPhone(phone)
}

// Checkout runs the checkout state machine. On success the catalog is
// reloaded so stock levels reflect the sale; a failed reload is logged but
// does not undo the committed checkout.
func (s *posService) Checkout(ctx context.Context, in pos.ContactInfo, note string) (*pos.CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.orchestrator.Checkout(ctx, s.session, in, note)
	if err != nil {
		return nil, err
	}

	if err := s.session.Catalog.Reload(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog reload after checkout failed")
	}

	return result, nil
}

// Reload refreshes the catalog snapshot from the store.
func (s *posService) Reload(ctx context.Context) error {
	return s.session.Catalog.Reload(ctx)
}

// cartView builds the read-only cart representation. Callers hold the mutex.
func (s *posService) cartView() CartView {
	return CartView{
		Lines: s.session.Cart.Lines(),
		Total: s.session.Cart.Total(),
	}
}
