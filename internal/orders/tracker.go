package orders

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"go.uber.org/zap"
)

// OrderInput carries a new supplier order. An empty Status means pending.
type OrderInput struct {
	ProductID   string
	ProductName string
	Quantity    any
	Status      string
}

// Tracker owns supplier orders and records status events reported by
// suppliers. It never checks that the ordered product still exists.
type Tracker struct {
	store repo.DocumentStore
	rand  func(n int) int
}

func NewTracker(store repo.DocumentStore) *Tracker {
	return &Tracker{store: store, rand: rand.IntN}
}

// SetRandom replaces the source used by Simulate.
func (t *Tracker) SetRandom(intn func(n int) int) {
	t.rand = intn
}

// Create stores a new order with orderDate and lastStatusUpdate taken from
// the store clock.
func (t *Tracker) Create(ctx context.Context, tenant string, in OrderInput) (string, error) {
	var errs models.ValidationErrors

	quantity, err := models.ToInt(in.Quantity)
	if err != nil || quantity < 1 {
		errs = append(errs, models.NewValidationError("quantity", "Quantity must be at least 1"))
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.IsValidOrderStatus(status) {
		errs = append(errs, models.NewValidationError("status", fmt.Sprintf("unknown status %q", status)))
	}
	if len(errs) > 0 {
		return "", errs
	}

	id, err := t.store.Create(ctx, repo.OrdersCollection, tenant, map[string]any{
		"productId":        in.ProductID,
		"productName":      in.ProductName,
		"quantity":         quantity,
		"status":           status,
		"orderDate":        repo.ServerTimestamp,
		"lastStatusUpdate": repo.ServerTimestamp,
	})
	if err != nil {
		return "", repo.MapError("create", repo.OrdersCollection, "", err)
	}
	return id, nil
}

// Simulate places a pending order for a random product with a random
// quantity between 1 and 10.
func (t *Tracker) Simulate(ctx context.Context, tenant string, products []models.Product) (models.Order, error) {
	if len(products) == 0 {
		return models.Order{}, models.NewValidationError("products", "add some products before simulating an order")
	}

	p := products[t.rand(len(products))]
	in := OrderInput{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    t.rand(10) + 1,
		Status:      models.OrderStatusPending,
	}
	id, err := t.Create(ctx, tenant, in)
	if err != nil {
		return models.Order{}, err
	}
	return t.Get(ctx, tenant, id)
}

// ApplyStatusEvent records a status reported by a supplier. Any known status
// may follow any other.
func (t *Tracker) ApplyStatusEvent(ctx context.Context, tenant, orderID, status string) error {
	if !models.IsValidOrderStatus(status) {
		return models.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	err := t.store.Update(ctx, repo.OrdersCollection, tenant, orderID, map[string]any{
		"status":           status,
		"lastStatusUpdate": repo.ServerTimestamp,
	})
	if err != nil {
		return repo.MapError("apply status", repo.OrdersCollection, orderID, err)
	}
	zap.S().Infof("Supplier event: order %s status updated to %s", orderID, status)
	return nil
}

func (t *Tracker) Get(ctx context.Context, tenant, id string) (models.Order, error) {
	doc, err := t.store.Get(ctx, repo.OrdersCollection, tenant, id)
	if err != nil {
		return models.Order{}, repo.MapError("get", repo.OrdersCollection, id, err)
	}
	o, err := repo.DecodeOrder(doc)
	if err != nil {
		return models.Order{}, models.NewStorageError("decode order", err)
	}
	return o, nil
}

func (t *Tracker) List(ctx context.Context, tenant string) ([]models.Order, error) {
	docs, err := t.store.List(ctx, repo.OrdersCollection, tenant)
	if err != nil {
		return nil, repo.MapError("list", repo.OrdersCollection, "", err)
	}
	return decodeOrders(docs), nil
}

// Subscribe delivers the full order list on every change.
func (t *Tracker) Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Order), onError func(error)) (repo.CancelFunc, error) {
	cancel, err := t.store.Subscribe(ctx, repo.OrdersCollection, tenant, func(docs []repo.Document) {
		onSnapshot(decodeOrders(docs))
	}, onError)
	if err != nil {
		return nil, repo.MapError("subscribe", repo.OrdersCollection, "", err)
	}
	return cancel, nil
}

func decodeOrders(docs []repo.Document) []models.Order {
	orders, errs := repo.DecodeAll(docs, repo.DecodeOrder)
	for _, err := range errs {
		zap.L().Warn("skipping undecodable order", zap.Error(err))
	}
	return orders
}
