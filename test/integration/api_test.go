// Package integration exercises the full HTTP stack against an in-process
// stand-in for the backing record store.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"agri-pos/internal/catalog"
	"agri-pos/internal/handler"
	"agri-pos/internal/model"
	"agri-pos/internal/pos"
	"agri-pos/internal/report"
	"agri-pos/internal/router"
	"agri-pos/internal/service"
	"agri-pos/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testAPIKey = "integration-test-key"

// recordStore mimics the JSON record server: one collection per entity with
// list, get, create, replace and delete, plus the /meta singleton.
type recordStore struct {
	mu          sync.Mutex
	meta        map[string]any
	collections map[string][]map[string]any
}

func newRecordStore() *recordStore {
	return &recordStore{
		meta: map[string]any{
			"shopName":   "Cua hang vat tu nong nghiep",
			"categories": []string{"fertiliser", "seed", "pesticide"},
		},
		collections: map[string][]map[string]any{
			"products": {
				{"id": "P1", "name": "NPK fertiliser 25kg", "category": "fertiliser", "price": 10000, "stock": 5},
				{"id": "P2", "name": "Rice seed 10kg", "category": "seed", "price": 45000, "stock": 2},
			},
			"customers": {
				{"id": "C1", "name": "Tran B", "phone": "0900000099", "commune": "Xa A"},
			},
			"orders":      {},
			"seasonPests": {},
			"articles":    {},
		},
	}
}

func (s *recordStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/meta" {
			_ = json.NewEncoder(w).Encode(s.meta)
			return
		}

		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
		coll, ok := s.collections[parts[0]]
		if !ok {
			http.NotFound(w, r)
			return
		}

		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				_ = json.NewEncoder(w).Encode(coll)
			case http.MethodPost:
				record := decodeRecord(w, r)
				if record == nil {
					return
				}
				s.collections[parts[0]] = append(coll, record)
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(record)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		id := parts[1]
		idx := -1
		for i, record := range coll {
			if record["id"] == id {
				idx = i
				break
			}
		}

		switch r.Method {
		case http.MethodGet:
			if idx < 0 {
				http.NotFound(w, r)
				return
			}
			_ = json.NewEncoder(w).Encode(coll[idx])
		case http.MethodPut:
			if idx < 0 {
				http.NotFound(w, r)
				return
			}
			record := decodeRecord(w, r)
			if record == nil {
				return
			}
			coll[idx] = record
			_ = json.NewEncoder(w).Encode(record)
		case http.MethodDelete:
			if idx < 0 {
				http.NotFound(w, r)
				return
			}
			s.collections[parts[0]] = append(coll[:idx], coll[idx+1:]...)
			_, _ = w.Write([]byte("{}"))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func decodeRecord(w http.ResponseWriter, r *http.Request) map[string]any {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return nil
	}
	return record
}

func (s *recordStore) record(t *testing.T, coll, id string) map[string]any {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.collections[coll] {
		if record["id"] == id {
			return record
		}
	}
	t.Fatalf("record %s/%s not found", coll, id)
	return nil
}

func (s *recordStore) count(coll string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[coll])
}

// newAPIServer wires the full application stack against the record store and
// serves it over httptest, the way main does for production.
func newAPIServer(t *testing.T, backend *recordStore) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	backendServer := httptest.NewServer(backend.handler())
	t.Cleanup(backendServer.Close)

	client := store.NewClient(backendServer.URL, 5*time.Second, logger)
	snapshot := catalog.New(client, logger)
	require.NoError(t, snapshot.Reload(context.Background()))

	session := pos.NewSession(snapshot)
	resolver := pos.NewResolver(logger)
	orchestrator := pos.NewOrchestrator(client, resolver, logger)

	productSvc := service.NewProductService(client, snapshot, 5, logger)
	customerSvc := service.NewCustomerService(client, snapshot, resolver, logger)
	orderSvc := service.NewOrderService(snapshot, logger)
	contentSvc := service.NewContentService(client, snapshot, logger)
	posSvc := service.NewPosService(session, orchestrator, logger)

	apiHandler := router.New(
		handler.NewProductHandler(productSvc, logger),
		handler.NewCustomerHandler(customerSvc, logger),
		handler.NewOrderHandler(orderSvc, logger),
		handler.NewPosHandler(posSvc, logger),
		handler.NewContentHandler(contentSvc, logger),
		handler.NewReportHandler(orderSvc, report.NewExporter(logger), logger),
		testAPIKey,
		logger,
	)

	apiServer := httptest.NewServer(apiHandler)
	t.Cleanup(apiServer.Close)
	return apiServer
}

func doRequest(t *testing.T, server *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthEndpointNeedsNoAuth(t *testing.T) {
	server := newAPIServer(t, newRecordStore())

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIKeyRequired(t *testing.T) {
	server := newAPIServer(t, newRecordStore())

	resp, err := http.Get(server.URL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutFlow(t *testing.T) {
	backend := newRecordStore()
	server := newAPIServer(t, backend)

	// Browse the catalogue.
	resp, body := doRequest(t, server, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []model.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 2)

	// Ring up 2 bags of fertiliser.
	resp, body = doRequest(t, server, http.MethodPost, "/api/pos/cart/lines",
		map[string]any{"productId": "P1", "qty": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart service.CartView
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Equal(t, int64(20000), cart.Total)

	// A new walk-in customer pays.
	resp, body = doRequest(t, server, http.MethodPost, "/api/pos/checkout",
		map[string]any{"phone": "0900000001", "name": "Nguyen A", "note": "first visit"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result pos.CheckoutResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(20000), result.Total)
	assert.True(t, result.CustomerCreated)

	// The store holds the decremented stock and the new records.
	assert.Equal(t, float64(3), backend.record(t, "products", "P1")["stock"])
	assert.Equal(t, 1, backend.count("orders"))
	assert.Equal(t, 2, backend.count("customers"))

	// The cart is empty and the catalog was reloaded: the API serves the
	// new stock level.
	resp, body = doRequest(t, server, http.MethodGet, "/api/pos/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Empty(t, cart.Lines)

	resp, body = doRequest(t, server, http.MethodGet, "/api/products/P1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p1 model.Product
	require.NoError(t, json.Unmarshal(body, &p1))
	assert.Equal(t, 3, p1.Stock)

	// The order shows up in history.
	resp, body = doRequest(t, server, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []model.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Nguyen A", orders[0].CustomerSnapshot.Name)
}

func TestCheckoutInsufficientStockConflict(t *testing.T) {
	backend := newRecordStore()
	server := newAPIServer(t, backend)

	resp, _ := doRequest(t, server, http.MethodPost, "/api/pos/cart/lines",
		map[string]any{"productId": "P2", "qty": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Stock sold out behind the terminal's back.
	backend.record(t, "products", "P2")["stock"] = 1

	resp, body := doRequest(t, server, http.MethodPost, "/api/pos/checkout",
		map[string]any{"phone": "0900000001", "name": "Nguyen A"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "Rice seed 10kg")

	// Nothing was written and the cart survived.
	assert.Equal(t, 0, backend.count("orders"))
	assert.Equal(t, 1, backend.count("customers"))
}

func TestCustomerDuplicatePhoneRejected(t *testing.T) {
	server := newAPIServer(t, newRecordStore())

	resp, body := doRequest(t, server, http.MethodPost, "/api/customers",
		map[string]any{"name": "Nguyen A", "phone": "0900000099"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE_PHONE")
}

func TestCustomerLookupPrefill(t *testing.T) {
	server := newAPIServer(t, newRecordStore())

	resp, body := doRequest(t, server, http.MethodGet, "/api/pos/customer?phone=0900000099", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var customer model.Customer
	require.NoError(t, json.Unmarshal(body, &customer))
	assert.Equal(t, "Tran B", customer.Name)

	resp, _ = doRequest(t, server, http.MethodGet, "/api/pos/customer?phone=0000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductLifecycle(t *testing.T) {
	backend := newRecordStore()
	server := newAPIServer(t, backend)

	resp, body := doRequest(t, server, http.MethodPost, "/api/products",
		map[string]any{"name": "Urea 50kg", "category": "fertiliser", "price": 30000, "stock": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Product
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 3, backend.count("products"))

	resp, _ = doRequest(t, server, http.MethodPut, "/api/products/"+created.ID,
		map[string]any{"name": "Urea 50kg", "category": "fertiliser", "price": 32000, "stock": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, server, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.Product
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, int64(32000), updated.Price)

	resp, _ = doRequest(t, server, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 2, backend.count("products"))
}

func TestOrdersReportDownload(t *testing.T) {
	backend := newRecordStore()
	server := newAPIServer(t, backend)

	// Commit one sale so the report has a row.
	resp, _ := doRequest(t, server, http.MethodPost, "/api/pos/cart/lines",
		map[string]any{"productId": "P1", "qty": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, server, http.MethodPost, "/api/pos/checkout",
		map[string]any{"phone": "0900000001", "name": "Nguyen A"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, server, http.MethodGet, "/api/reports/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nguyen A", rows[1][2])
}

func TestAreasGrouping(t *testing.T) {
	server := newAPIServer(t, newRecordStore())

	resp, body := doRequest(t, server, http.MethodGet, "/api/customers/areas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var areas map[string]map[string][]model.Customer
	require.NoError(t, json.Unmarshal(body, &areas))
	require.Contains(t, areas, "Xa A")
	found := false
	for _, customers := range areas["Xa A"] {
		for _, c := range customers {
			if c.ID == "C1" {
				found = true
			}
		}
	}
	assert.True(t, found, fmt.Sprintf("C1 grouped under its commune: %v", areas))
}
