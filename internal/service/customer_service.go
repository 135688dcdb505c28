package service

import (
	"context"
	"strings"

	"agri-pos/internal/model"
	"agri-pos/internal/pos"
	"agri-pos/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// customerCatalog is the snapshot surface the customer service reads from.
type customerCatalog interface {
	SearchCustomers(query string) []model.Customer
	CustomerByID(id string) (model.Customer, bool)
	CustomerByPhone(phone string) (model.Customer, bool)
	CustomersByArea() map[string]map[string][]model.Customer
	OrdersForCustomer(customer model.Customer) []model.Order
	Reload(ctx context.Context) error
}

// customerService implements CustomerService.
type customerService struct {
	store    store.CustomerStore
	catalog  customerCatalog
	resolver *pos.Resolver
	logger   zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(st store.CustomerStore, catalog customerCatalog, resolver *pos.Resolver, logger zerolog.Logger) CustomerService {
	return &customerService{
		store:    st,
		catalog:  catalog,
		resolver: resolver,
		logger:   logger.With().Str("service", "customer").Logger(),
	}
}

// List returns customers filtered by free-text query.
func (s *customerService) List(query string) []model.Customer {
	return s.catalog.SearchCustomers(query)
}

// GetByID returns a customer from the current snapshot.
func (s *customerService) GetByID(id string) (model.Customer, bool) {
	return s.catalog.CustomerByID(id)
}

// Areas groups customers by commune and village.
func (s *customerService) Areas() map[string]map[string][]model.Customer {
	return s.catalog.CustomersByArea()
}

// History returns a customer's purchase history, matched by ID or by the
// phone captured in order snapshots.
func (s *customerService) History(id string) ([]model.Order, error) {
	customer, ok := s.catalog.CustomerByID(id)
	if !ok {
		return nil, model.NotFoundError("customer")
	}
	return s.catalog.OrdersForCustomer(customer), nil
}

// Create validates and persists a new customer, enforcing phone uniqueness,
// then reloads the catalog.
func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if err := s.resolver.CheckPhoneUnique(s.catalog, customer.Phone, ""); err != nil {
		return err
	}

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	customer.CreatedAt = model.Now()

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customer.ID).Msg("failed to create customer")
		return err
	}

	s.logger.Info().Str("customer_id", customer.ID).Msg("customer created")
	return s.catalog.Reload(ctx)
}

// Update validates and overwrites an existing customer, enforcing phone
// uniqueness against other customers, then reloads the catalog.
func (s *customerService) Update(ctx context.Context, customer *model.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}

	existing, ok := s.catalog.CustomerByID(customer.ID)
	if !ok {
		return model.NotFoundError("customer")
	}
	if err := s.resolver.CheckPhoneUnique(s.catalog, customer.Phone, customer.ID); err != nil {
		return err
	}

	customer.CreatedAt = existing.CreatedAt

	if err := s.store.ReplaceCustomer(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customer.ID).Msg("failed to update customer")
		return err
	}

	s.logger.Info().Str("customer_id", customer.ID).Msg("customer updated")
	return s.catalog.Reload(ctx)
}

// Delete removes a customer. Past orders keep their own snapshots, so
// history stays intact.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if _, ok := s.catalog.CustomerByID(id); !ok {
		return model.NotFoundError("customer")
	}

	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")
		return err
	}

	s.logger.Info().Str("customer_id", id).Msg("customer deleted")
	return s.catalog.Reload(ctx)
}

// validateCustomer enforces the customer form rules.
func validateCustomer(customer *model.Customer) error {
	if customer == nil {
		return model.ValidationError("customer is required")
	}
	if strings.TrimSpace(customer.Name) == "" {
		return model.MissingFieldError("name")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return model.MissingFieldError("phone")
	}
	return nil
}
