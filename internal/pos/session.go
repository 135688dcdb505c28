package pos

import (
	"agri-pos/internal/catalog"
)

// Session is the state of one POS terminal: the catalog snapshot products are
// sold against and the cart being built. It replaces the ambient globals of
// earlier revisions; all cart and checkout operations receive it explicitly.
type Session struct {
	Catalog *catalog.Snapshot
	Cart    *Cart
}

// NewSession creates a fresh session with an empty cart.
func NewSession(snapshot *catalog.Snapshot) *Session {
	return &Session{
		Catalog: snapshot,
		Cart:    NewCart(),
	}
}
