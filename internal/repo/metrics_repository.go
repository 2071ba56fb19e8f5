package repo

import (
	"context"

	"github.com/rogerio-castellano/stocksync/internal/models"
)

type Metrics struct {
	TotalProducts       int            `json:"total_products"`
	LowStockCount       int            `json:"low_stock_count"`
	TotalOrders         int            `json:"total_orders"`
	OrdersByStatus      map[string]int `json:"orders_by_status"`
	TotalNotifications  int            `json:"total_notifications"`
	UnreadNotifications int            `json:"unread_notifications"`
	DanglingOrders      int            `json:"dangling_orders"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context, tenant string) (Metrics, error)
}

// StoreMetricsRepository computes dashboard metrics from the current
// contents of a tenant's collections.
type StoreMetricsRepository struct {
	store DocumentStore
}

func NewStoreMetricsRepository(store DocumentStore) *StoreMetricsRepository {
	return &StoreMetricsRepository{store: store}
}

// GetDashboardMetrics implements MetricsRepository.
func (r *StoreMetricsRepository) GetDashboardMetrics(ctx context.Context, tenant string) (Metrics, error) {
	productDocs, err := r.store.List(ctx, ProductsCollection, tenant)
	if err != nil {
		return Metrics{}, MapError("metrics", ProductsCollection, "", err)
	}
	orderDocs, err := r.store.List(ctx, OrdersCollection, tenant)
	if err != nil {
		return Metrics{}, MapError("metrics", OrdersCollection, "", err)
	}
	notificationDocs, err := r.store.List(ctx, NotificationsCollection, tenant)
	if err != nil {
		return Metrics{}, MapError("metrics", NotificationsCollection, "", err)
	}

	products, _ := DecodeAll(productDocs, DecodeProduct)
	orders, _ := DecodeAll(orderDocs, DecodeOrder)
	notifications, _ := DecodeAll(notificationDocs, DecodeNotification)
	return ComputeMetrics(products, orders, notifications), nil
}

// ComputeMetrics summarizes the three collections. Orders whose product no
// longer exists are counted as dangling, not rejected.
func ComputeMetrics(products []models.Product, orders []models.Order, notifications []models.Notification) Metrics {
	m := Metrics{
		TotalProducts:      len(products),
		TotalOrders:        len(orders),
		TotalNotifications: len(notifications),
		OrdersByStatus:     map[string]int{},
	}

	for _, p := range products {
		if models.IsLow(p) {
			m.LowStockCount++
		}
	}

	for _, o := range orders {
		m.OrdersByStatus[o.Status]++
		if _, ok := models.ProductName(products, o.ProductID); !ok {
			m.DanglingOrders++
		}
	}

	for _, n := range notifications {
		if !n.Read {
			m.UnreadNotifications++
		}
	}

	return m
}
