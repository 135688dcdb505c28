// Package report renders store records into spreadsheet reports the shop
// owner can open in Excel.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

// Exporter writes xlsx reports.
type Exporter struct {
	logger zerolog.Logger
}

// NewExporter creates a report exporter.
func NewExporter(logger zerolog.Logger) *Exporter {
	return &Exporter{
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// WriteOrders renders one row per order into an xlsx workbook and writes it
// to w.
func (e *Exporter) WriteOrders(w io.Writer, orders []model.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Order ID", "Date", "Customer", "Phone", "Commune", "Village", "Items", "Total (VND)", "Note"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to map header cell: %w", err)
		}
		if err := f.SetCellValue(ordersSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, order := range orders {
		values := []any{
			order.ID,
			order.CreatedAt.Format(time.RFC3339),
			order.CustomerSnapshot.Name,
			order.CustomerSnapshot.Phone,
			order.CustomerSnapshot.Commune,
			order.CustomerSnapshot.Village,
			itemSummary(order.Items),
			order.Total,
			order.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to map cell: %w", err)
			}
			if err := f.SetCellValue(ordersSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write order row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info().Int("orders", len(orders)).Msg("orders report exported")
	return nil
}

// itemSummary renders order lines the way the POS shows them: "name xqty".
func itemSummary(items []model.CartLine) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s x%d", item.Name, item.Quantity)
	}
	return strings.Join(parts, ", ")
}
