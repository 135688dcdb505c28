package pos

import (
	"context"

	"agri-pos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutStore is the slice of the record store the orchestrator needs.
type CheckoutStore interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ReplaceProduct(ctx context.Context, product *model.Product) error
	CreateCustomer(ctx context.Context, customer *model.Customer) error
	ReplaceCustomer(ctx context.Context, customer *model.Customer) error
	CreateOrder(ctx context.Context, order *model.Order) error
}

// CheckoutResult reports a completed checkout.
type CheckoutResult struct {
	Order           model.Order `json:"order"`
	Total           int64       `json:"total"`
	CustomerCreated bool        `json:"customerCreated"`
}

// Orchestrator runs the checkout state machine:
//
//	Idle → Validating → ResolvingCustomer → PersistingOrder → DecrementingStock → Completed
//
// Store calls are issued strictly sequentially and there is no rollback: a
// failure after the customer write leaves the customer persisted with no
// order, and a failure mid-decrement leaves earlier decrements in place. The
// domain tolerates manual reconciliation, so this weak model is intentional
// and must not be silently strengthened. On any failure the cart is left
// untouched so the operator can correct and retry.
type Orchestrator struct {
	store    CheckoutStore
	resolver *Resolver
	logger   zerolog.Logger
}

// NewOrchestrator creates a checkout orchestrator.
func NewOrchestrator(store CheckoutStore, resolver *Resolver, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		resolver: resolver,
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// Checkout converts the session's cart into a persisted order, resolving the
// customer by phone and decrementing stock per line. On success the cart is
// cleared; the caller is expected to reload the catalog snapshot afterwards.
func (o *Orchestrator) Checkout(ctx context.Context, session *Session, in ContactInfo, note string) (*CheckoutResult, error) {
	// Step 1: preconditions, before any store call.
	if session.Cart.Empty() {
		return nil, model.ErrEmptyCart
	}
	in = in.trimmed()
	if in.Phone == "" {
		return nil, model.MissingFieldError("phone")
	}
	if in.Name == "" {
		return nil, model.MissingFieldError("name")
	}

	lines := session.Cart.Lines()
	total := session.Cart.Total()

	// Step 2: re-validate stock against the authoritative store. The
	// snapshot may be stale relative to writes from outside this session.
	o.logger.Debug().Int("lines", len(lines)).Msg("validating stock")
	for _, line := range lines {
		product, err := o.store.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			o.logger.Warn().
				Str("product_id", line.ProductID).
				Msg("product vanished before checkout")
			return nil, model.ProductVanishedError(line.Name)
		}
		if product.Stock < line.Quantity {
			o.logger.Warn().
				Str("product_id", product.ID).
				Int("stock", product.Stock).
				Int("wanted", line.Quantity).
				Msg("insufficient stock at checkout")
			return nil, model.InsufficientStockError(product.Name, product.Stock)
		}
	}

	// Step 3: resolve and persist the customer. From here on side effects
	// are not rolled back.
	intent, err := o.resolver.Resolve(session.Catalog, in)
	if err != nil {
		return nil, err
	}
	if intent.Create {
		err = o.store.CreateCustomer(ctx, &intent.Customer)
	} else {
		err = o.store.ReplaceCustomer(ctx, &intent.Customer)
	}
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to persist customer")
		return nil, err
	}

	// Step 4: materialise and persist the order.
	order := model.Order{
		ID:         uuid.NewString(),
		CustomerID: intent.Customer.ID,
		CustomerSnapshot: model.CustomerSnapshot{
			Name:          in.Name,
			Phone:         in.Phone,
			Commune:       in.Commune,
			Village:       in.Village,
			AddressDetail: in.AddressDetail,
		},
		Items:     lines,
		Total:     total,
		CreatedAt: model.Now(),
		Note:      note,
	}
	if err := o.store.CreateOrder(ctx, &order); err != nil {
		o.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to persist order; customer write stands")
		return nil, err
	}

	// Step 5: decrement stock one product at a time. A failure here leaves
	// the order and any earlier decrements in place.
	for _, line := range lines {
		product, err := o.store.GetProduct(ctx, line.ProductID)
		if err != nil {
			o.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Str("product_id", line.ProductID).
				Msg("stock decrement aborted mid-way")
			return nil, err
		}
		if product == nil {
			o.logger.Error().
				Str("order_id", order.ID).
				Str("product_id", line.ProductID).
				Msg("product vanished mid-decrement")
			return nil, model.ProductVanishedError(line.Name)
		}

		product.Stock -= line.Quantity
		product.UpdatedAt = model.Now()
		if err := o.store.ReplaceProduct(ctx, product); err != nil {
			o.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Str("product_id", product.ID).
				Msg("stock decrement aborted mid-way")
			return nil, err
		}
	}

	// Step 6: completed.
	session.Cart.Clear()

	o.logger.Info().
		Str("order_id", order.ID).
		Str("customer_id", intent.Customer.ID).
		Int64("total", total).
		Bool("customer_created", intent.Create).
		Msg("checkout completed")

	return &CheckoutResult{
		Order:           order,
		Total:           total,
		CustomerCreated: intent.Create,
	}, nil
}
