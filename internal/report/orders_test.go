package report

import (
	"bytes"
	"testing"
	"time"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporter_WriteOrders(t *testing.T) {
	orders := []model.Order{
		{
			ID: "O1",
			CustomerSnapshot: model.CustomerSnapshot{
				Name:    "Nguyen A",
				Phone:   "0900000001",
				Commune: "Xa B",
				Village: "Thon 1",
			},
			Items: []model.CartLine{
				{ProductID: "P1", Name: "NPK fertiliser 25kg", Price: 10000, Quantity: 2, LineTotal: 20000},
				{ProductID: "P2", Name: "Rice seed 10kg", Price: 45000, Quantity: 1, LineTotal: 45000},
			},
			Total:     65000,
			CreatedAt: time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
			Note:      "pays next week",
		},
		{
			ID: "O2",
			CustomerSnapshot: model.CustomerSnapshot{
				Name:  "Tran B",
				Phone: "0900000002",
			},
			Items: []model.CartLine{
				{ProductID: "P1", Name: "NPK fertiliser 25kg", Price: 10000, Quantity: 1, LineTotal: 10000},
			},
			Total:     10000,
			CreatedAt: time.Date(2024, 6, 16, 14, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	exporter := NewExporter(zerolog.Nop())
	require.NoError(t, exporter.WriteOrders(&buf, orders))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Orders"}, f.GetSheetList(), "default sheet is dropped")

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per order")

	assert.Equal(t, []string{
		"Order ID", "Date", "Customer", "Phone", "Commune", "Village", "Items", "Total (VND)", "Note",
	}, rows[0])

	assert.Equal(t, "O1", rows[1][0])
	assert.Equal(t, "2024-06-15T09:30:00Z", rows[1][1])
	assert.Equal(t, "Nguyen A", rows[1][2])
	assert.Equal(t, "NPK fertiliser 25kg x2, Rice seed 10kg x1", rows[1][6])
	assert.Equal(t, "65000", rows[1][7])
	assert.Equal(t, "pays next week", rows[1][8])

	assert.Equal(t, "O2", rows[2][0])
	assert.Equal(t, "Tran B", rows[2][2])
}

func TestExporter_WriteOrders_Empty(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewExporter(zerolog.Nop())
	require.NoError(t, exporter.WriteOrders(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
