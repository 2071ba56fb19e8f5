package handlers

import (
	"time"

	"github.com/rogerio-castellano/stocksync/internal/models"
)

type ProductRequest struct {
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Stock             any    `json:"stock" swaggertype:"integer"`
	MinStockThreshold any    `json:"minStockThreshold" swaggertype:"integer"`
}

// ProductPatchRequest is a partial update; absent fields are left as stored.
type ProductPatchRequest struct {
	Name              *string `json:"name,omitempty"`
	SKU               *string `json:"sku,omitempty"`
	Stock             any     `json:"stock,omitempty" swaggertype:"integer"`
	MinStockThreshold any     `json:"minStockThreshold,omitempty" swaggertype:"integer"`
}

type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	Stock             int       `json:"stock"`
	MinStockThreshold int       `json:"minStockThreshold"`
	LastUpdated       time.Time `json:"lastUpdated"`
	LowStock          bool      `json:"lowStock"`
}

type CreatedResult struct {
	ID string `json:"id"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type StockChangeResult struct {
	Product    ProductResponse `json:"product"`
	AlertID    string          `json:"alertId,omitempty"`
	AlertError string          `json:"alertError,omitempty"`
}

type OrderRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    any    `json:"quantity" swaggertype:"integer"`
	Status      string `json:"status,omitempty"`
}

type OrderResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	ProductKnown     bool      `json:"productKnown"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	OrderDate        time.Time `json:"orderDate"`
	LastStatusUpdate time.Time `json:"lastStatusUpdate"`
}

type StatusEventRequest struct {
	Status string `json:"status"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ProductID string    `json:"productId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type NotificationsResult struct {
	Data   []NotificationResponse `json:"data"`
	Unread int                    `json:"unread"`
}

type CustomTokenRequest struct {
	Token string `json:"token"`
}

type SessionResult struct {
	Token     string `json:"token"`
	Subject   string `json:"subject"`
	Anonymous bool   `json:"anonymous"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                    `json:"imported"`
	Errors                []FieldValidationError `json:"errors"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Stock:             p.Stock,
		MinStockThreshold: p.MinStockThreshold,
		LastUpdated:       p.LastUpdated,
		LowStock:          models.IsLow(p),
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// toOrderResponses resolves each order's product against products. An order
// whose product is gone keeps its stored name, or "unknown product" when it
// has none.
func toOrderResponses(orders []models.Order, products []models.Product) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		name, known := models.ProductName(products, o.ProductID)
		if !known && o.ProductName != "" {
			name = o.ProductName
		}
		out[i] = OrderResponse{
			ID:               o.ID,
			ProductID:        o.ProductID,
			ProductName:      name,
			ProductKnown:     known,
			Quantity:         o.Quantity,
			Status:           o.Status,
			OrderDate:        o.OrderDate,
			LastStatusUpdate: o.LastStatusUpdate,
		}
	}
	return out
}

func toNotificationsResult(notifications []models.Notification, unread int) NotificationsResult {
	data := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		data[i] = NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			ProductID: n.ProductID,
			Message:   n.Message,
			Timestamp: n.Timestamp,
			Read:      n.Read,
		}
	}
	return NotificationsResult{Data: data, Unread: unread}
}
