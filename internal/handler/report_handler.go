package handler

import (
	"bytes"
	"net/http"

	"agri-pos/internal/report"
	"agri-pos/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves spreadsheet exports.
type ReportHandler struct {
	orders   service.OrderService
	exporter *report.Exporter
	logger   zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(orders service.OrderService, exporter *report.Exporter, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		orders:   orders,
		exporter: exporter,
		logger:   logger.With().Str("handler", "report").Logger(),
	}
}

// Orders handles GET /api/reports/orders requests, streaming an xlsx
// workbook of all orders, optionally filtered like the order list.
func (h *ReportHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders := h.orders.List(r.URL.Query().Get("q"))

	// Render fully before writing headers so a failed export still
	// produces a proper error response.
	var buf bytes.Buffer
	if err := h.exporter.WriteOrders(&buf, orders); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export orders", h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("failed to stream report")
	}
}
