package alerts

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"go.uber.org/zap"
)

// Engine creates low-stock notifications and tracks whether they were read.
type Engine struct {
	store repo.DocumentStore
}

func NewEngine(store repo.DocumentStore) *Engine {
	return &Engine{store: store}
}

// LowStockMessage renders the text stored with a low-stock notification.
func LowStockMessage(productID, productName string, currentStock, minThreshold int) string {
	return fmt.Sprintf("Low stock alert! %s (SKU: %s) is at %d units, below threshold of %d.",
		productName, productID, currentStock, minThreshold)
}

// RaiseLowStock always stores a new unread notification. Repeated calls for
// the same product produce repeated notifications; callers raise once per
// stock change that ends below threshold.
func (e *Engine) RaiseLowStock(ctx context.Context, tenant, productID, productName string, currentStock, minThreshold int) (string, error) {
	id, err := e.store.Create(ctx, repo.NotificationsCollection, tenant, map[string]any{
		"type":      models.NotificationTypeLowStock,
		"productId": productID,
		"message":   LowStockMessage(productID, productName, currentStock, minThreshold),
		"timestamp": repo.ServerTimestamp,
		"read":      false,
	})
	if err != nil {
		return "", repo.MapError("create", repo.NotificationsCollection, "", err)
	}
	zap.L().Warn("low stock alert raised",
		zap.String("tenant", tenant),
		zap.String("product_id", productID),
		zap.Int("stock", currentStock),
		zap.Int("threshold", minThreshold))
	return id, nil
}

// MarkRead flags the notification as read. Marking an unknown notification is
// logged and otherwise ignored.
func (e *Engine) MarkRead(ctx context.Context, tenant, id string) error {
	err := e.store.Update(ctx, repo.NotificationsCollection, tenant, id, map[string]any{"read": true})
	if errors.Is(err, repo.ErrDocumentNotFound) {
		zap.L().Warn("mark read: notification not found", zap.String("tenant", tenant), zap.String("id", id))
		return nil
	}
	if err != nil {
		return repo.MapError("mark read", repo.NotificationsCollection, id, err)
	}
	return nil
}

// List returns the tenant's notifications, newest first.
func (e *Engine) List(ctx context.Context, tenant string) ([]models.Notification, error) {
	docs, err := e.store.List(ctx, repo.NotificationsCollection, tenant)
	if err != nil {
		return nil, repo.MapError("list", repo.NotificationsCollection, "", err)
	}
	return decodeSorted(docs), nil
}

// Subscribe delivers every notification snapshot sorted newest first. The
// store does not order snapshots, so sorting happens here.
func (e *Engine) Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Notification), onError func(error)) (repo.CancelFunc, error) {
	cancel, err := e.store.Subscribe(ctx, repo.NotificationsCollection, tenant, func(docs []repo.Document) {
		onSnapshot(decodeSorted(docs))
	}, onError)
	if err != nil {
		return nil, repo.MapError("subscribe", repo.NotificationsCollection, "", err)
	}
	return cancel, nil
}

// SortNewestFirst orders notifications by timestamp, descending. Notifications
// without a timestamp go last.
func SortNewestFirst(notifications []models.Notification) {
	slices.SortStableFunc(notifications, func(a, b models.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

func UnreadCount(notifications []models.Notification) int {
	n := 0
	for _, notification := range notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}

func decodeSorted(docs []repo.Document) []models.Notification {
	notifications, errs := repo.DecodeAll(docs, repo.DecodeNotification)
	for _, err := range errs {
		zap.L().Warn("skipping undecodable notification", zap.Error(err))
	}
	SortNewestFirst(notifications)
	return notifications
}
