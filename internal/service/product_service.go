package service

import (
	"context"
	"strings"

	"agri-pos/internal/model"
	"agri-pos/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Defaults for the low-stock dashboard list, matching the shop's reorder
// habits.
const (
	lowStockThreshold = 5
	lowStockLimit     = 10
)

// productCatalog is the snapshot surface the product service reads from.
type productCatalog interface {
	SearchProducts(query, category string) []model.Product
	ProductByID(id string) (model.Product, bool)
	LowStock(threshold, limit int) []model.Product
	Reload(ctx context.Context) error
}

// productService implements ProductService.
type productService struct {
	store     store.ProductStore
	catalog   productCatalog
	threshold int
	logger    zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(st store.ProductStore, catalog productCatalog, threshold int, logger zerolog.Logger) ProductService {
	if threshold <= 0 {
		threshold = lowStockThreshold
	}
	return &productService{
		store:     st,
		catalog:   catalog,
		threshold: threshold,
		logger:    logger.With().Str("service", "product").Logger(),
	}
}

// List returns products filtered by free-text query and category.
func (s *productService) List(query, category string) []model.Product {
	return s.catalog.SearchProducts(query, category)
}

// GetByID returns a product from the current snapshot.
func (s *productService) GetByID(id string) (model.Product, bool) {
	return s.catalog.ProductByID(id)
}

// LowStock returns the products closest to running out.
func (s *productService) LowStock() []model.Product {
	return s.catalog.LowStock(s.threshold, lowStockLimit)
}

// Create validates and persists a new product, then reloads the catalog.
func (s *productService) Create(ctx context.Context, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := model.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.store.CreateProduct(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return err
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return s.catalog.Reload(ctx)
}

// Update validates and overwrites an existing product, then reloads the
// catalog.
func (s *productService) Update(ctx context.Context, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	existing, ok := s.catalog.ProductByID(product.ID)
	if !ok {
		return model.NotFoundError("product")
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = model.Now()

	if err := s.store.ReplaceProduct(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to update product")
		return err
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product updated")
	return s.catalog.Reload(ctx)
}

// Delete removes a product, then reloads the catalog.
func (s *productService) Delete(ctx context.Context, id string) error {
	if _, ok := s.catalog.ProductByID(id); !ok {
		return model.NotFoundError("product")
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return s.catalog.Reload(ctx)
}

// validateProduct enforces the product form rules.
func validateProduct(product *model.Product) error {
	if product == nil {
		return model.ValidationError("product is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return model.MissingFieldError("name")
	}
	if product.Price < 0 {
		return model.ValidationError("price must not be negative")
	}
	if product.Stock < 0 {
		return model.ValidationError("stock must not be negative")
	}
	return nil
}
