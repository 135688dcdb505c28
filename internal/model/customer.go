package model

import "time"

// Customer represents a shop customer. Phone is the de-facto identity key:
// the store does not enforce uniqueness, this application does at write time.
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Commune       string    `json:"commune"`
	Village       string    `json:"village"`
	AddressDetail string    `json:"addressDetail"`
	CreatedAt     time.Time `json:"createdAt"`
}
