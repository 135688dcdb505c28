// Package service wires the store, the catalog snapshot and the POS engine
// behind the interfaces the HTTP layer consumes. Reads are served from the
// snapshot; every successful mutation writes to the store and then reloads
// the snapshot wholesale, matching the refresh discipline of the POS front
// end.
package service

import (
	"context"

	"agri-pos/internal/model"
	"agri-pos/internal/pos"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List returns products filtered by free-text query and category.
	List(query, category string) []model.Product

	// GetByID returns a product from the current snapshot.
	GetByID(id string) (model.Product, bool)

	// LowStock returns the products closest to running out.
	LowStock() []model.Product

	// Create validates and persists a new product, then reloads the
	// catalog.
	Create(ctx context.Context, product *model.Product) error

	// Update validates and overwrites an existing product, then reloads
	// the catalog.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product, then reloads the catalog.
	Delete(ctx context.Context, id string) error
}

// CustomerService defines operations for customer management.
type CustomerService interface {
	// List returns customers filtered by free-text query.
	List(query string) []model.Customer

	// GetByID returns a customer from the current snapshot.
	GetByID(id string) (model.Customer, bool)

	// Areas groups customers by commune and village.
	Areas() map[string]map[string][]model.Customer

	// History returns a customer's purchase history.
	History(id string) ([]model.Order, error)

	// Create validates and persists a new customer, enforcing phone
	// uniqueness, then reloads the catalog.
	Create(ctx context.Context, customer *model.Customer) error

	// Update validates and overwrites an existing customer, enforcing
	// phone uniqueness against other customers, then reloads the catalog.
	Update(ctx context.Context, customer *model.Customer) error

	// Delete removes a customer. Past orders keep their snapshots.
	Delete(ctx context.Context, id string) error
}

// OrderService defines read access to committed orders.
type OrderService interface {
	// List returns orders filtered by customer name or phone.
	List(query string) []model.Order

	// GetByID returns an order from the current snapshot.
	GetByID(id string) (model.Order, bool)
}

// ContentService defines operations for shop metadata and advisory content.
type ContentService interface {
	// Meta returns the shop-wide settings.
	Meta() model.Meta

	// SeasonPests returns the pest advisories.
	SeasonPests() []model.SeasonPest

	// CreateSeasonPest persists a new pest advisory, then reloads.
	CreateSeasonPest(ctx context.Context, pest *model.SeasonPest) error

	// UpdateSeasonPest overwrites a pest advisory, then reloads.
	UpdateSeasonPest(ctx context.Context, pest *model.SeasonPest) error

	// DeleteSeasonPest removes a pest advisory, then reloads.
	DeleteSeasonPest(ctx context.Context, id string) error

	// Articles returns the advisory articles.
	Articles() []model.Article

	// CreateArticle persists a new article, then reloads.
	CreateArticle(ctx context.Context, article *model.Article) error

	// UpdateArticle overwrites an article, then reloads.
	UpdateArticle(ctx context.Context, article *model.Article) error

	// DeleteArticle removes an article, then reloads.
	DeleteArticle(ctx context.Context, id string) error
}

// CartView is the read-only cart representation handed to the view layer.
type CartView struct {
	Lines []model.CartLine `json:"lines"`
	Total int64            `json:"total"`
}

// PosService drives the single POS terminal session.
type PosService interface {
	// Cart returns the current cart contents.
	Cart() CartView

	// AddLine puts quantity units of a product into the cart.
	AddLine(productID string, quantity int) (CartView, error)

	// AdjustLine changes a line's quantity by delta.
	AdjustLine(index, delta int) (CartView, error)

	// RemoveLine drops a cart line.
	RemoveLine(index int) (CartView, error)

	// ClearCart empties the cart.
	ClearCart() CartView

	// LookupCustomer prefills the contact form for a known phone.
	LookupCustomer(phone string) (model.Customer, bool)

	// Checkout runs the checkout state machine and reloads the catalog on
	// success.
	Checkout(ctx context.Context, in pos.ContactInfo, note string) (*pos.CheckoutResult, error)

	// Reload refreshes the catalog snapshot from the store.
	Reload(ctx context.Context) error
}
