package orders

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tenant = "user-1"

func newTracker() (*Tracker, *repo.InMemoryDocumentStore) {
	store := repo.NewInMemoryDocumentStore("test-app")
	return NewTracker(store), store
}

func TestTracker_CreateDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()

	id, err := tr.Create(ctx, tenant, OrderInput{ProductID: "p1", ProductName: "Widget", Quantity: "3"})
	require.NoError(t, err)

	o, err := tr.Get(ctx, tenant, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, 3, o.Quantity)
	assert.False(t, o.OrderDate.IsZero())
	assert.Equal(t, o.OrderDate, o.LastStatusUpdate)
}

func TestTracker_CreateValidation(t *testing.T) {
	tr, _ := newTracker()

	tests := []struct {
		name  string
		input OrderInput
		field string
	}{
		{name: "zero quantity", input: OrderInput{ProductID: "p1", Quantity: 0}, field: "quantity"},
		{name: "not a number", input: OrderInput{ProductID: "p1", Quantity: "many"}, field: "quantity"},
		{name: "unknown status", input: OrderInput{ProductID: "p1", Quantity: 1, Status: "lost"}, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Create(context.Background(), tenant, tt.input)
			require.ErrorIs(t, err, models.ErrValidation)
			var errs models.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestTracker_CreateAllowsDanglingProduct(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()

	id, err := tr.Create(ctx, tenant, OrderInput{ProductID: "never-existed", Quantity: 1})
	require.NoError(t, err)

	list, err := tr.List(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	name, known := models.ProductName(nil, list[0].ProductID)
	assert.False(t, known)
	assert.Equal(t, "unknown product", name)
}

func TestTracker_ApplyStatusEvent(t *testing.T) {
	ctx := context.Background()
	tr, store := newTracker()

	id, err := tr.Create(ctx, tenant, OrderInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	before, err := tr.Get(ctx, tenant, id)
	require.NoError(t, err)

	require.NoError(t, tr.ApplyStatusEvent(ctx, tenant, id, models.OrderStatusDelivered))
	after, err := tr.Get(ctx, tenant, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, after.Status)
	assert.True(t, after.LastStatusUpdate.After(before.LastStatusUpdate))
	assert.Equal(t, before.OrderDate, after.OrderDate)

	// any status may follow any other
	require.NoError(t, tr.ApplyStatusEvent(ctx, tenant, id, models.OrderStatusPending))

	docs, err := store.List(ctx, repo.OrdersCollection, tenant)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestTracker_ApplyStatusEventUnknownOrder(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()

	err := tr.ApplyStatusEvent(ctx, tenant, "missing", models.OrderStatusShipped)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)

	list, err := tr.List(ctx, tenant)
	require.NoError(t, err)
	assert.Empty(t, list, "no order is created for an unknown id")
}

func TestTracker_ApplyStatusEventUnknownStatus(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()
	id, err := tr.Create(ctx, tenant, OrderInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	err = tr.ApplyStatusEvent(ctx, tenant, id, "teleported")
	assert.ErrorIs(t, err, models.ErrValidation)

	o, err := tr.Get(ctx, tenant, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, o.Status)
}

func TestTracker_Simulate(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()
	tr.SetRandom(func(n int) int { return n - 1 })

	products := []models.Product{{ID: "p1", Name: "Widget"}, {ID: "p2", Name: "Gadget"}}
	o, err := tr.Simulate(ctx, tenant, products)
	require.NoError(t, err)
	assert.Equal(t, "p2", o.ProductID)
	assert.Equal(t, "Gadget", o.ProductName)
	assert.Equal(t, 10, o.Quantity)
	assert.Equal(t, models.OrderStatusPending, o.Status)
}

func TestTracker_SimulateQuantityRange(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker()
	products := []models.Product{{ID: "p1", Name: "Widget"}}

	for range 20 {
		o, err := tr.Simulate(ctx, tenant, products)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, o.Quantity, 1)
		assert.LessOrEqual(t, o.Quantity, 10)
	}
}

func TestTracker_SimulateWithoutProducts(t *testing.T) {
	tr, store := newTracker()
	_, err := tr.Simulate(context.Background(), tenant, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	docs, err := store.List(context.Background(), repo.OrdersCollection, tenant)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
