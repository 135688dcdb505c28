package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(query, category string) []model.Product {
	args := m.Called(query, category)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Product)
}

func (m *MockProductService) GetByID(id string) (model.Product, bool) {
	args := m.Called(id)
	return args.Get(0).(model.Product), args.Bool(1)
}

func (m *MockProductService) LowStock() []model.Product {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Product)
}

func (m *MockProductService) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductHandler_List(t *testing.T) {
	testProducts := []model.Product{
		{ID: "P1", Name: "NPK fertiliser 25kg", Price: 10000, Stock: 5},
		{ID: "P2", Name: "Rice seed 10kg", Price: 45000, Stock: 2},
	}

	tests := []struct {
		name         string
		target       string
		wantQuery    string
		wantCategory string
		mockReturn   []model.Product
		wantLen      int
	}{
		{
			name:       "All products",
			target:     "/api/products",
			mockReturn: testProducts,
			wantLen:    2,
		},
		{
			name:      "Query filter",
			target:    "/api/products?q=rice",
			wantQuery: "rice",
			mockReturn: []model.Product{
				testProducts[1],
			},
			wantLen: 1,
		},
		{
			name:         "Category filter",
			target:       "/api/products?category=seed",
			wantCategory: "seed",
			mockReturn:   nil,
			wantLen:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			mockService.On("List", tt.wantQuery, tt.wantCategory).Return(tt.mockReturn)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)

			var got []model.Product
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Len(t, got, tt.wantLen, "nil service result encodes as an empty array")
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("GetByID", "P1").
			Return(model.Product{ID: "P1", Name: "NPK fertiliser 25kg"}, true)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P1", nil)
		rec := httptest.NewRecorder()
		handler.GetByID(rec, req, "P1")

		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "NPK fertiliser 25kg", got.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("GetByID", "nope").Return(model.Product{}, false)

		req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
		rec := httptest.NewRecorder()
		handler.GetByID(rec, req, "nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Success",
			body:       `{"name":"Urea 50kg","price":30000,"stock":10}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Invalid JSON",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing name",
			body:       `{"price":30000}`,
			serviceErr: model.MissingFieldError("name"),
			wantStatus: http.StatusBadRequest,
			wantCode:   model.ErrCodeMissingField,
		},
		{
			name:       "Store unavailable",
			body:       `{"name":"Urea 50kg"}`,
			serviceErr: model.StoreError("POST /products: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantCode:   model.ErrCodeStoreError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.wantStatus != http.StatusBadRequest || tt.serviceErr != nil {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).
					Return(tt.serviceErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/products",
				bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantCode, resp.Code)
			}
		})
	}
}

func TestProductHandler_Update_SetsIDFromPath(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.ID == "P1"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/products/P1",
		bytes.NewReader([]byte(`{"id":"spoofed","name":"NPK fertiliser 25kg"}`)))
	rec := httptest.NewRecorder()
	handler.Update(rec, req, "P1")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("Delete", mock.Anything, "P1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/products/P1", nil)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req, "P1")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("Delete", mock.Anything, "nope").Return(model.NotFoundError("product"))

		req := httptest.NewRequest(http.MethodDelete, "/api/products/nope", nil)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req, "nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandler_LowStock(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("LowStock").Return([]model.Product{{ID: "P2", Stock: 2}})

	req := httptest.NewRequest(http.MethodGet, "/api/products/low-stock", nil)
	rec := httptest.NewRecorder()
	handler.LowStock(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].ID)
}
