package models

import "time"

const NotificationTypeLowStock = "low_stock"

// Notification is an alert raised for a product. Message is rendered once at
// creation time and is not re-derived afterwards.
type Notification struct {
	ID        string    `json:"id" mapstructure:"-"`
	Type      string    `json:"type" mapstructure:"type"`
	ProductID string    `json:"productId" mapstructure:"productId"`
	Message   string    `json:"message" mapstructure:"message"`
	Timestamp time.Time `json:"timestamp,omitempty" mapstructure:"timestamp"`
	Read      bool      `json:"read" mapstructure:"read"`
}
