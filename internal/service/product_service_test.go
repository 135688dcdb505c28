package service

import (
	"context"
	"testing"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductStore is a mock implementation of store.ProductStore.
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductStore) CreateProduct(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStore) ReplaceProduct(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStore) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubProductCatalog serves a fixed product list and counts reloads.
type stubProductCatalog struct {
	products []model.Product
	reloads  int
}

func (s *stubProductCatalog) SearchProducts(query, category string) []model.Product {
	return s.products
}

func (s *stubProductCatalog) ProductByID(id string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *stubProductCatalog) LowStock(threshold, limit int) []model.Product {
	var low []model.Product
	for _, p := range s.products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}

func (s *stubProductCatalog) Reload(ctx context.Context) error {
	s.reloads++
	return nil
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		product     *model.Product
		storeErr    error
		wantErr     error
		wantStore   bool
		wantReloads int
	}{
		{
			name:        "Success",
			product:     &model.Product{Name: "NPK fertiliser 25kg", Price: 10000, Stock: 5},
			wantStore:   true,
			wantReloads: 1,
		},
		{
			name:    "Missing name",
			product: &model.Product{Price: 10000},
			wantErr: model.ErrMissingField,
		},
		{
			name:    "Negative price",
			product: &model.Product{Name: "NPK fertiliser 25kg", Price: -1},
			wantErr: model.ErrValidation,
		},
		{
			name:    "Negative stock",
			product: &model.Product{Name: "NPK fertiliser 25kg", Stock: -1},
			wantErr: model.ErrValidation,
		},
		{
			name:      "Store failure propagates without reload",
			product:   &model.Product{Name: "NPK fertiliser 25kg", Price: 10000},
			storeErr:  model.StoreError("POST /products: store returned 500"),
			wantErr:   model.ErrStore,
			wantStore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockProductStore)
			catalog := &stubProductCatalog{}
			svc := NewProductService(mockStore, catalog, 0, zerolog.Nop())

			if tt.wantStore {
				mockStore.On("CreateProduct", ctx, tt.product).Return(tt.storeErr)
			}

			err := svc.Create(ctx, tt.product)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tt.product.ID, "an ID is assigned on create")
				assert.False(t, tt.product.CreatedAt.IsZero())
				assert.Equal(t, tt.product.CreatedAt, tt.product.UpdatedAt)
			}
			assert.Equal(t, tt.wantReloads, catalog.reloads)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	existing := model.Product{ID: "P1", Name: "NPK fertiliser 25kg", Price: 10000, Stock: 5,
		CreatedAt: model.Now()}

	t.Run("Success keeps creation time", func(t *testing.T) {
		mockStore := new(MockProductStore)
		catalog := &stubProductCatalog{products: []model.Product{existing}}
		svc := NewProductService(mockStore, catalog, 0, zerolog.Nop())

		updated := &model.Product{ID: "P1", Name: "NPK fertiliser 25kg", Price: 12000, Stock: 8}
		mockStore.On("ReplaceProduct", ctx, updated).Return(nil)

		require.NoError(t, svc.Update(ctx, updated))
		assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
		assert.False(t, updated.UpdatedAt.IsZero())
		assert.Equal(t, 1, catalog.reloads)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockStore := new(MockProductStore)
		catalog := &stubProductCatalog{}
		svc := NewProductService(mockStore, catalog, 0, zerolog.Nop())

		err := svc.Update(ctx, &model.Product{ID: "nope", Name: "x"})
		assert.ErrorIs(t, err, model.ErrNotFound)
		mockStore.AssertNotCalled(t, "ReplaceProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockStore := new(MockProductStore)
		catalog := &stubProductCatalog{products: []model.Product{{ID: "P1", Name: "NPK fertiliser 25kg"}}}
		svc := NewProductService(mockStore, catalog, 0, zerolog.Nop())

		mockStore.On("DeleteProduct", ctx, "P1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "P1"))
		assert.Equal(t, 1, catalog.reloads)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockStore := new(MockProductStore)
		svc := NewProductService(mockStore, &stubProductCatalog{}, 0, zerolog.Nop())

		err := svc.Delete(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrNotFound)
		mockStore.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})
}

func TestProductService_LowStock_DefaultThreshold(t *testing.T) {
	catalog := &stubProductCatalog{products: []model.Product{
		{ID: "P1", Stock: 5},
		{ID: "P2", Stock: 6},
	}}
	svc := NewProductService(new(MockProductStore), catalog, 0, zerolog.Nop())

	low := svc.LowStock()
	require.Len(t, low, 1)
	assert.Equal(t, "P1", low[0].ID)
}
