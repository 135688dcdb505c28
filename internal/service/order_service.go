package service

import (
	"agri-pos/internal/model"

	"github.com/rs/zerolog"
)

// orderCatalog is the snapshot surface the order service reads from.
type orderCatalog interface {
	SearchOrders(query string) []model.Order
	OrderByID(id string) (model.Order, bool)
}

// orderService implements OrderService. Orders are read-only: they are
// created by checkout and never edited here.
type orderService struct {
	catalog orderCatalog
	logger  zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(catalog orderCatalog, logger zerolog.Logger) OrderService {
	return &orderService{
		catalog: catalog,
		logger:  logger.With().Str("service", "order").Logger(),
	}
}

// List returns orders filtered by customer name or phone.
func (s *orderService) List(query string) []model.Order {
	return s.catalog.SearchOrders(query)
}

// GetByID returns an order from the current snapshot.
func (s *orderService) GetByID(id string) (model.Order, bool) {
	return s.catalog.OrderByID(id)
}
