package model

import "time"

// SeasonPest is a seasonal pest advisory shown on the shop dashboard.
type SeasonPest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Risk      string    `json:"risk"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Article is an advisory article for customers.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta holds shop-wide settings served by the store's /meta record.
type Meta struct {
	ShopName   string   `json:"shopName"`
	Categories []string `json:"categories"`
}
