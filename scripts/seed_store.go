package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// seedStore populates the backing record store with sample shop data so the
// API can be exercised locally. Run against a fresh store:
//
//	STORE_BASE_URL=http://localhost:3000 go run scripts/seed_store.go
func main() {
	baseURL := os.Getenv("STORE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	now := time.Now().UTC().Truncate(time.Millisecond)

	products := []map[string]any{
		{
			"id": "prod-npk-16-16-8", "name": "NPK 16-16-8 25kg", "category": "fertiliser",
			"price": 285000, "stock": 40, "description": "Granular NPK for rice and maize",
			"createdAt": now, "updatedAt": now,
		},
		{
			"id": "prod-urea-50", "name": "Urea 46% 50kg", "category": "fertiliser",
			"price": 520000, "stock": 25, "description": "",
			"createdAt": now, "updatedAt": now,
		},
		{
			"id": "prod-om5451-10", "name": "Rice seed OM5451 10kg", "category": "seed",
			"price": 165000, "stock": 12, "description": "Certified seed, 95% germination",
			"createdAt": now, "updatedAt": now,
		},
		{
			"id": "prod-abamectin-100", "name": "Abamectin 3.6EC 100ml", "category": "pesticide",
			"price": 48000, "stock": 4, "description": "Leaf folder and thrips control",
			"createdAt": now, "updatedAt": now,
		},
	}

	customers := []map[string]any{
		{
			"id": "cust-sample-1", "name": "Nguyen Van Hai", "phone": "0905123456",
			"commune": "Hoa Tien", "village": "Thon Duong Son", "addressDetail": "",
			"createdAt": now,
		},
		{
			"id": "cust-sample-2", "name": "Tran Thi Lan", "phone": "0912345678",
			"commune": "Hoa Tien", "village": "Thon Le Son", "addressDetail": "Nha gan cho",
			"createdAt": now,
		},
	}

	pests := []map[string]any{
		{
			"id": "pest-brown-planthopper", "name": "Brown planthopper", "risk": "high",
			"note":      "Dense patches reported on summer-autumn rice",
			"createdAt": now, "updatedAt": now,
		},
	}

	articles := []map[string]any{
		{
			"id": "article-npk-timing", "title": "When to apply NPK on rice", "category": "fertiliser",
			"content":   "Split applications: basal, tillering and panicle initiation.",
			"createdAt": now, "updatedAt": now,
		},
	}

	seeds := []struct {
		collection string
		records    []map[string]any
	}{
		{"products", products},
		{"customers", customers},
		{"seasonPests", pests},
		{"articles", articles},
	}

	client := &http.Client{Timeout: 10 * time.Second}
	total := 0
	for _, seed := range seeds {
		for _, record := range seed.records {
			if err := post(client, baseURL+"/"+seed.collection, record); err != nil {
				log.Fatalf("Failed to seed %s: %v", seed.collection, err)
			}
			total++
		}
		fmt.Printf("Seeded %d records into %s\n", len(seed.records), seed.collection)
	}

	fmt.Printf("\nDone: %d records written to %s\n", total, baseURL)
}

func post(client *http.Client, url string, record map[string]any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store returned %d for %s", resp.StatusCode, url)
	}
	return nil
}
