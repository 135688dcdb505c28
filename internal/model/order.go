package model

import "time"

// CartLine is a single product entry in a cart or order. Name and Price are
// snapshots taken when the line was added; they do not track later product
// edits.
type CartLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
}

// CustomerSnapshot is the contact information captured at the moment of sale.
// It is an immutable copy: later customer edits or deletion leave it intact.
type CustomerSnapshot struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Commune       string `json:"commune"`
	Village       string `json:"village"`
	AddressDetail string `json:"addressDetail"`
}

// Order is a committed sale. Orders are created exactly once at checkout and
// never mutated or deleted by this application. CustomerID is a weak
// reference used for history lookups only.
type Order struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customerId"`
	CustomerSnapshot CustomerSnapshot `json:"customerSnapshot"`
	Items            []CartLine       `json:"items"`
	Total            int64            `json:"total"`
	CreatedAt        time.Time        `json:"createdAt"`
	Note             string           `json:"note,omitempty"`
}
