package handler

import (
	"net/http"

	"agri-pos/internal/model"
	"agri-pos/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order browsing. Orders are created by the POS
// checkout only; there is no write surface here.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests, filtered by customer name or phone.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.service.List(r.URL.Query().Get("q"))
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	order, ok := h.service.GetByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
