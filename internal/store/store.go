package store

import (
	"context"

	"agri-pos/internal/model"
)

// ProductStore defines product record access against the backing store.
// Get methods return (nil, nil) when the record does not exist.
type ProductStore interface {
	// ListProducts retrieves all products, most recently updated first.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct retrieves a single product by its ID.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// CreateProduct inserts a new product record.
	CreateProduct(ctx context.Context, product *model.Product) error

	// ReplaceProduct overwrites the product record with the given ID.
	ReplaceProduct(ctx context.Context, product *model.Product) error

	// DeleteProduct removes the product record with the given ID.
	DeleteProduct(ctx context.Context, id string) error
}

// CustomerStore defines customer record access against the backing store.
type CustomerStore interface {
	// ListCustomers retrieves all customers, most recently created first.
	ListCustomers(ctx context.Context) ([]model.Customer, error)

	// GetCustomer retrieves a single customer by its ID.
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)

	// CreateCustomer inserts a new customer record.
	CreateCustomer(ctx context.Context, customer *model.Customer) error

	// ReplaceCustomer overwrites the customer record with the given ID.
	ReplaceCustomer(ctx context.Context, customer *model.Customer) error

	// DeleteCustomer removes the customer record. Past orders keep their
	// own customer snapshots and are unaffected.
	DeleteCustomer(ctx context.Context, id string) error
}

// OrderStore defines order record access against the backing store. Orders
// are append-only: there is no replace or delete.
type OrderStore interface {
	// ListOrders retrieves all orders, most recent first.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// GetOrder retrieves a single order by its ID.
	GetOrder(ctx context.Context, id string) (*model.Order, error)

	// CreateOrder inserts a new order record.
	CreateOrder(ctx context.Context, order *model.Order) error
}

// ContentStore defines access to shop metadata and advisory content.
type ContentStore interface {
	// GetMeta retrieves the shop-wide settings record.
	GetMeta(ctx context.Context) (*model.Meta, error)

	// ListSeasonPests retrieves all seasonal pest advisories.
	ListSeasonPests(ctx context.Context) ([]model.SeasonPest, error)

	// CreateSeasonPest inserts a new pest advisory.
	CreateSeasonPest(ctx context.Context, pest *model.SeasonPest) error

	// ReplaceSeasonPest overwrites a pest advisory.
	ReplaceSeasonPest(ctx context.Context, pest *model.SeasonPest) error

	// DeleteSeasonPest removes a pest advisory.
	DeleteSeasonPest(ctx context.Context, id string) error

	// ListArticles retrieves all advisory articles, most recently updated
	// first.
	ListArticles(ctx context.Context) ([]model.Article, error)

	// CreateArticle inserts a new article.
	CreateArticle(ctx context.Context, article *model.Article) error

	// ReplaceArticle overwrites an article.
	ReplaceArticle(ctx context.Context, article *model.Article) error

	// DeleteArticle removes an article.
	DeleteArticle(ctx context.Context, id string) error
}

// Store is the full record-store surface the application depends on.
type Store interface {
	ProductStore
	CustomerStore
	OrderStore
	ContentStore

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
