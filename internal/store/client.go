package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
)

// errNotFound marks a 404 on a read; Get methods translate it to
// (nil, nil).
var errNotFound = errors.New("record not found")

var _ Store = (*Client)(nil)

// Client talks to the backing record store over its REST protocol: one
// collection per entity with list, get, create, replace and delete. Failures
// are surfaced verbatim as StoreError; the client never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "store").Logger(),
	}
}

// do issues a single JSON request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("store request failed")
		return model.StoreError(fmt.Sprintf("%s %s: %v", method, path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.StoreError(fmt.Sprintf("%s %s: reading response: %v", method, path, err))
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("store request")

	// A 404 on a read means the record does not exist; the Get wrappers
	// translate it to (nil, nil). On writes a 404 is a real store failure
	// and falls through below.
	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
		return errNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.StoreError(fmt.Sprintf("%s %s: store returned %d: %s",
			method, path, resp.StatusCode, truncate(string(respBody), 200)))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return model.StoreError(fmt.Sprintf("%s %s: decoding response: %v", method, path, err))
		}
	}

	return nil
}

// Ping checks that the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/meta", nil, nil)
}

// GetMeta retrieves the shop-wide settings record.
func (c *Client) GetMeta(ctx context.Context) (*model.Meta, error) {
	var meta model.Meta
	if err := c.do(ctx, http.MethodGet, "/meta", nil, &meta); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}

// ListProducts retrieves all products, most recently updated first.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products?_sort=updatedAt&_order=desc", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product, or (nil, nil) when it does not
// exist.
func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &product); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product record.
func (c *Client) CreateProduct(ctx context.Context, product *model.Product) error {
	return c.do(ctx, http.MethodPost, "/products", product, nil)
}

// ReplaceProduct overwrites the product record with the given ID.
func (c *Client) ReplaceProduct(ctx context.Context, product *model.Product) error {
	return c.do(ctx, http.MethodPut, "/products/"+product.ID, product, nil)
}

// DeleteProduct removes a product record.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// ListCustomers retrieves all customers, most recently created first.
func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers?_sort=createdAt&_order=desc", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer retrieves a single customer, or (nil, nil) when it does not
// exist.
func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+id, nil, &customer); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer inserts a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	return c.do(ctx, http.MethodPost, "/customers", customer, nil)
}

// ReplaceCustomer overwrites the customer record with the given ID.
func (c *Client) ReplaceCustomer(ctx context.Context, customer *model.Customer) error {
	return c.do(ctx, http.MethodPut, "/customers/"+customer.ID, customer, nil)
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil)
}

// ListOrders retrieves all orders, most recent first.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders?_sort=createdAt&_order=desc", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder retrieves a single order, or (nil, nil) when it does not exist.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &order); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts a new order record.
func (c *Client) CreateOrder(ctx context.Context, order *model.Order) error {
	return c.do(ctx, http.MethodPost, "/orders", order, nil)
}

// ListSeasonPests retrieves all seasonal pest advisories.
func (c *Client) ListSeasonPests(ctx context.Context) ([]model.SeasonPest, error) {
	var pests []model.SeasonPest
	if err := c.do(ctx, http.MethodGet, "/seasonPests", nil, &pests); err != nil {
		return nil, err
	}
	return pests, nil
}

// CreateSeasonPest inserts a new pest advisory.
func (c *Client) CreateSeasonPest(ctx context.Context, pest *model.SeasonPest) error {
	return c.do(ctx, http.MethodPost, "/seasonPests", pest, nil)
}

// ReplaceSeasonPest overwrites a pest advisory.
func (c *Client) ReplaceSeasonPest(ctx context.Context, pest *model.SeasonPest) error {
	return c.do(ctx, http.MethodPut, "/seasonPests/"+pest.ID, pest, nil)
}

// DeleteSeasonPest removes a pest advisory.
func (c *Client) DeleteSeasonPest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/seasonPests/"+id, nil, nil)
}

// ListArticles retrieves all advisory articles, most recently updated first.
func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := c.do(ctx, http.MethodGet, "/articles?_sort=updatedAt&_order=desc", nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// CreateArticle inserts a new article.
func (c *Client) CreateArticle(ctx context.Context, article *model.Article) error {
	return c.do(ctx, http.MethodPost, "/articles", article, nil)
}

// ReplaceArticle overwrites an article.
func (c *Client) ReplaceArticle(ctx context.Context, article *model.Article) error {
	return c.do(ctx, http.MethodPut, "/articles/"+article.ID, article, nil)
}

// DeleteArticle removes an article.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+id, nil, nil)
}

// truncate limits store response bodies embedded in error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
