package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agri-pos/internal/pos"
	"agri-pos/internal/service"

	"github.com/rs/zerolog"
)

// PosHandler handles the POS terminal endpoints: cart mutation, customer
// prefill and checkout.
type PosHandler struct {
	service service.PosService
	logger  zerolog.Logger
}

// NewPosHandler creates a new POS handler.
func NewPosHandler(service service.PosService, logger zerolog.Logger) *PosHandler {
	return &PosHandler{
		service: service,
		logger:  logger.With().Str("handler", "pos").Logger(),
	}
}

// addLineRequest is the payload for adding a cart line.
type addLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// adjustLineRequest is the payload for changing a line quantity.
type adjustLineRequest struct {
	Delta int `json:"delta"`
}

// checkoutRequest is the payload for checkout: the contact form plus a note.
type checkoutRequest struct {
	pos.ContactInfo
	Note string `json:"note"`
}

// Cart handles GET /api/pos/cart requests.
func (h *PosHandler) Cart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Cart())
}

// ClearCart handles DELETE /api/pos/cart requests.
func (h *PosHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ClearCart())
}

// AddLine handles POST /api/pos/cart/lines requests.
func (h *PosHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.AddLine(req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AdjustLine handles POST /api/pos/cart/lines/{index} requests.
func (h *PosHandler) AdjustLine(w http.ResponseWriter, r *http.Request, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	var req adjustLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.AdjustLine(index, req.Delta)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveLine handles DELETE /api/pos/cart/lines/{index} requests.
func (h *PosHandler) RemoveLine(w http.ResponseWriter, r *http.Request, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	cart, err := h.service.RemoveLine(index)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// LookupCustomer handles GET /api/pos/customer?phone= requests, used to
// prefill the contact form when a known phone is entered.
func (h *PosHandler) LookupCustomer(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeError(w, http.StatusBadRequest, "phone query parameter is required", h.logger)
		return
	}

	customer, ok := h.service.LookupCustomer(phone)
	if !ok {
		writeError(w, http.StatusNotFound, "no customer with this phone", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// Checkout handles POST /api/pos/checkout requests.
func (h *PosHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Checkout(r.Context(), req.ContactInfo, req.Note)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Reload handles POST /api/catalog/reload requests.
func (h *PosHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
