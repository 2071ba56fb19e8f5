package models

import "time"

// Product represents a product entity in the inventory system.
type Product struct {
	ID                string    `json:"id" mapstructure:"-"`
	Name              string    `json:"name" mapstructure:"name"`
	SKU               string    `json:"sku" mapstructure:"sku"`
	Stock             int       `json:"stock" mapstructure:"stock"`
	MinStockThreshold int       `json:"minStockThreshold" mapstructure:"minStockThreshold"`
	LastUpdated       time.Time `json:"lastUpdated,omitempty" mapstructure:"lastUpdated"`
}

// IsLow reports whether the product is below its minimum stock threshold.
// It is never stored, so threshold edits apply to existing stock levels.
func IsLow(p Product) bool {
	return p.Stock < p.MinStockThreshold
}

// ProductName returns the name of the product with the given id, or
// "unknown product" when the reference is dangling.
func ProductName(products []Product, id string) (string, bool) {
	for _, p := range products {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "unknown product", false
}
