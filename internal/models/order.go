package models

import "time"

// Order is a supplier order. ProductName is a snapshot taken when the order
// was placed and does not follow later product renames.
type Order struct {
	ID               string    `json:"id" mapstructure:"-"`
	ProductID        string    `json:"productId" mapstructure:"productId"`
	ProductName      string    `json:"productName" mapstructure:"productName"`
	Quantity         int       `json:"quantity" mapstructure:"quantity"`
	Status           string    `json:"status" mapstructure:"status"`
	OrderDate        time.Time `json:"orderDate,omitempty" mapstructure:"orderDate"`
	LastStatusUpdate time.Time `json:"lastStatusUpdate,omitempty" mapstructure:"lastStatusUpdate"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every status a supplier may report, in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
