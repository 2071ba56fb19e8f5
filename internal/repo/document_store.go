package repo

import (
	"context"
	"errors"
	"fmt"
)

const (
	ProductsCollection      = "products"
	OrdersCollection        = "orders"
	NotificationsCollection = "notifications"
)

// Document is a stored record: a storage-assigned id plus its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

type serverTimestamp struct{}

// ServerTimestamp is a field placeholder that the store replaces with its own
// wall clock at write time.
var ServerTimestamp = serverTimestamp{}

// SnapshotFunc receives the full current collection on every change.
type SnapshotFunc func(docs []Document)

// ErrorFunc receives subscription failures. The subscription stays registered.
type ErrorFunc func(err error)

// CancelFunc stops a subscription. It is safe to call more than once.
type CancelFunc func()

// DocumentStore is keyed document storage namespaced by tenant, with live
// collection subscriptions delivering full snapshots.
type DocumentStore interface {
	Create(ctx context.Context, collection, tenant string, fields map[string]any) (string, error)
	Get(ctx context.Context, collection, tenant, id string) (Document, error)
	List(ctx context.Context, collection, tenant string) ([]Document, error)
	Update(ctx context.Context, collection, tenant, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, tenant, id string) error
	Subscribe(ctx context.Context, collection, tenant string, onSnapshot SnapshotFunc, onError ErrorFunc) (CancelFunc, error)
}

// ErrDocumentNotFound is returned when an id does not resolve in a collection.
var ErrDocumentNotFound = errors.New("document not found")

// ErrMissingTenant is returned when a call carries no tenant.
var ErrMissingTenant = errors.New("tenant is required")

// CollectionPath returns the namespace of a tenant's collection.
func CollectionPath(appID, tenant, collection string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/%s", appID, tenant, collection)
}

func isServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
