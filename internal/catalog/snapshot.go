// Package catalog holds the session-scoped, read-mostly cache of store
// records. A snapshot is refreshed wholesale via Reload and read by the cart
// and the view layer; it is never written to directly. Checkout re-reads
// products from the authoritative store, not from here.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"agri-pos/internal/model"
	"agri-pos/internal/store"

	"github.com/rs/zerolog"
)

// Fallback group keys for customers with no recorded area.
const (
	unknownCommune = "unknown commune"
	unknownVillage = "unknown village"
)

// Snapshot caches one copy of every store collection for the current session.
// Reload replaces the cached slices wholesale under the write lock; accessors
// hand out the current slices, which are never mutated in place.
type Snapshot struct {
	store  store.Store
	logger zerolog.Logger

	mu          sync.RWMutex
	meta        model.Meta
	seasonPests []model.SeasonPest
	articles    []model.Article
	products    []model.Product
	customers   []model.Customer
	orders      []model.Order
}

// New creates an empty snapshot backed by the given store.
func New(st store.Store, logger zerolog.Logger) *Snapshot {
	return &Snapshot{
		store:  st,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Reload re-fetches every collection from the store, replacing the cached
// copies wholesale. A failed fetch leaves the previous snapshot in place.
func (s *Snapshot) Reload(ctx context.Context) error {
	meta, err := s.store.GetMeta(ctx)
	if err != nil {
		return err
	}

	pests, err := s.store.ListSeasonPests(ctx)
	if err != nil {
		return err
	}

	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return err
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return err
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if meta != nil {
		s.meta = *meta
	}
	s.seasonPests = pests
	s.articles = articles
	s.products = products
	s.customers = customers
	s.orders = orders
	s.mu.Unlock()

	s.logger.Info().
		Int("products", len(products)).
		Int("customers", len(customers)).
		Int("orders", len(orders)).
		Msg("catalog reloaded")

	return nil
}

// Meta returns the cached shop settings.
func (s *Snapshot) Meta() model.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// SeasonPests returns the cached pest advisories.
func (s *Snapshot) SeasonPests() []model.SeasonPest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seasonPests
}

// Articles returns the cached advisory articles.
func (s *Snapshot) Articles() []model.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles
}

// Products returns the cached product list.
func (s *Snapshot) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Customers returns the cached customer list.
func (s *Snapshot) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers
}

// Orders returns the cached order list.
func (s *Snapshot) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders
}

// ProductByID looks up a cached product. The returned value is a copy.
func (s *Snapshot) ProductByID(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// OrderByID looks up a cached order. The returned value is a copy.
func (s *Snapshot) OrderByID(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// CustomerByID looks up a cached customer. The returned value is a copy.
func (s *Snapshot) CustomerByID(id string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

// CustomerByPhone looks up a cached customer by exact phone match. No
// normalisation is applied: stored data relies on exact string equality.
func (s *Snapshot) CustomerByPhone(phone string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.Phone == phone {
			return c, true
		}
	}
	return model.Customer{}, false
}

// SearchProducts filters products by free-text query over name and
// description, optionally restricted to a category.
func (s *Snapshot) SearchProducts(query, category string) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Product
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" {
			hay := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// SearchCustomers filters customers by free-text query over name, phone,
// commune and village.
func (s *Snapshot) SearchCustomers(query string) []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.customers
	}
	var out []model.Customer
	for _, c := range s.customers {
		hay := strings.ToLower(c.Name + " " + c.Phone + " " + c.Commune + " " + c.Village)
		if strings.Contains(hay, q) {
			out = append(out, c)
		}
	}
	return out
}

// SearchOrders filters orders by the customer snapshot's name or phone.
func (s *Snapshot) SearchOrders(query string) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.orders
	}
	var out []model.Order
	for _, o := range s.orders {
		hay := strings.ToLower(o.CustomerSnapshot.Name + " " + o.CustomerSnapshot.Phone)
		if strings.Contains(hay, q) {
			out = append(out, o)
		}
	}
	return out
}

// LowStock returns up to limit products with stock at or below threshold,
// lowest stock first.
func (s *Snapshot) LowStock(threshold, limit int) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var low []model.Product
	for _, p := range s.products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}

// CustomersByArea groups customers by commune, then village. Customers with
// blank area fields land under the unknown buckets.
func (s *Snapshot) CustomersByArea() map[string]map[string][]model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	areas := make(map[string]map[string][]model.Customer)
	for _, c := range s.customers {
		commune := strings.TrimSpace(c.Commune)
		if commune == "" {
			commune = unknownCommune
		}
		village := strings.TrimSpace(c.Village)
		if village == "" {
			village = unknownVillage
		}
		if areas[commune] == nil {
			areas[commune] = make(map[string][]model.Customer)
		}
		areas[commune][village] = append(areas[commune][village], c)
	}
	return areas
}

// OrdersForCustomer returns the purchase history for a customer, matching by
// customer ID or by the order's snapshot phone. The phone match keeps history
// reachable after a customer record was deleted and re-created.
func (s *Snapshot) OrdersForCustomer(customer model.Customer) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Order
	for _, o := range s.orders {
		if o.CustomerID == customer.ID || o.CustomerSnapshot.Phone == customer.Phone {
			out = append(out, o)
		}
	}
	return out
}
