// Package pos implements the point-of-sale transaction engine: the cart, the
// phone-based customer resolver and the checkout orchestrator that turns a
// cart into a persisted order with stock decrements.
package pos

import (
	"agri-pos/internal/model"
)

// ProductIndex is the read-only product view the cart validates against,
// satisfied by the catalog snapshot.
type ProductIndex interface {
	ProductByID(id string) (model.Product, bool)
}

// Cart is the ordered set of intended purchase lines for the current POS
// session. It is pure in-memory state: nothing is persisted until checkout.
// Line prices are fixed when a line is added and never re-read.
type Cart struct {
	lines []model.CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity units of a product into the cart. If a line for the
// product already exists its quantity grows and the line total is recomputed
// from that line's original snapshot price, not from a fresh price read.
func (c *Cart) Add(products ProductIndex, productID string, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	product, ok := products.ProductByID(productID)
	if !ok {
		return model.ErrProductNotFound
	}

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if product.Stock < c.lines[i].Quantity+quantity {
			return model.InsufficientStockError(product.Name, product.Stock)
		}
		c.lines[i].Quantity += quantity
		c.lines[i].LineTotal = int64(c.lines[i].Quantity) * c.lines[i].Price
		return nil
	}

	if product.Stock < quantity {
		return model.InsufficientStockError(product.Name, product.Stock)
	}

	c.lines = append(c.lines, model.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		LineTotal: product.Price * int64(quantity),
	})
	return nil
}

// AdjustQuantity changes a line's quantity by delta. The resulting quantity
// must stay at least 1; dropping a line goes through RemoveLine instead.
func (c *Cart) AdjustQuantity(products ProductIndex, index, delta int) error {
	if index < 0 || index >= len(c.lines) {
		return model.ErrIndexOutOfRange
	}

	line := &c.lines[index]
	next := line.Quantity + delta
	if next < 1 {
		return model.ErrInvalidQuantity
	}

	product, ok := products.ProductByID(line.ProductID)
	if !ok {
		return model.ErrProductNotFound
	}
	if product.Stock < next {
		return model.InsufficientStockError(product.Name, product.Stock)
	}

	line.Quantity = next
	line.LineTotal = int64(next) * line.Price
	return nil
}

// RemoveLine drops a line unconditionally.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return model.ErrIndexOutOfRange
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the sum of all line totals.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.LineTotal
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
