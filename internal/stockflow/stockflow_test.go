package stockflow

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/stocksync/internal/alerts"
	"github.com/rogerio-castellano/stocksync/internal/inventory"
	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tenant = "user-1"

type fixture struct {
	svc    *Service
	ledger *inventory.Ledger
	alerts *alerts.Engine
}

func newFixture() fixture {
	store := repo.NewInMemoryDocumentStore("test-app")
	l := inventory.NewLedger(store)
	e := alerts.NewEngine(store)
	return fixture{svc: NewService(l, e), ledger: l, alerts: e}
}

func (f fixture) widget(t *testing.T, stock, threshold int) string {
	t.Helper()
	id, err := f.ledger.Create(context.Background(), tenant, inventory.ProductInput{
		Name: "Widget", SKU: "W-1", Stock: stock, MinStockThreshold: threshold,
	})
	require.NoError(t, err)
	return id
}

func (f fixture) notifications(t *testing.T) []models.Notification {
	t.Helper()
	list, err := f.alerts.List(context.Background(), tenant)
	require.NoError(t, err)
	return list
}

func TestAdjustStock_DropBelowThresholdRaisesOneAlert(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 10, 5)

	res, err := f.svc.AdjustStock(context.Background(), tenant, id, -7)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Product.Stock)
	assert.NotEmpty(t, res.AlertID)

	list := f.notifications(t)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ProductID)
	assert.Equal(t, "Low stock alert! Widget (SKU: "+id+") is at 3 units, below threshold of 5.", list[0].Message)
	assert.False(t, list[0].Read)
}

func TestAdjustStock_StayingLowAlertsAgain(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 3, 5)

	_, err := f.svc.AdjustStock(context.Background(), tenant, id, -1)
	require.NoError(t, err)
	_, err = f.svc.AdjustStock(context.Background(), tenant, id, -1)
	require.NoError(t, err)

	assert.Len(t, f.notifications(t), 2, "every change that ends low raises its own alert")
}

func TestAdjustStock_AboveThresholdRaisesNothing(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 10, 5)

	res, err := f.svc.AdjustStock(context.Background(), tenant, id, -5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Product.Stock, "stock equal to the threshold is not low")
	assert.Empty(t, res.AlertID)
	assert.Empty(t, f.notifications(t))
}

func TestAdjustStock_ZeroDeltaIsANoOp(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 1, 5)
	before, err := f.ledger.Get(context.Background(), tenant, id)
	require.NoError(t, err)

	res, err := f.svc.AdjustStock(context.Background(), tenant, id, 0)
	require.NoError(t, err)
	assert.Equal(t, before, res.Product)
	assert.Empty(t, f.notifications(t))
}

func TestAdjustStock_ClampsAndAlerts(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 2, 5)

	res, err := f.svc.AdjustStock(context.Background(), tenant, id, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.Stock)
	assert.Len(t, f.notifications(t), 1)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AdjustStock(context.Background(), tenant, "missing", -1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, f.notifications(t))
}

func TestUpdateProduct_OnlyStockEditsAlert(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 10, 5)

	res, err := f.svc.UpdateProduct(context.Background(), tenant, id, inventory.ProductPatch{MinStockThreshold: 50})
	require.NoError(t, err)
	assert.True(t, models.IsLow(res.Product))
	assert.Empty(t, f.notifications(t), "a threshold edit alone raises nothing")

	res, err = f.svc.UpdateProduct(context.Background(), tenant, id, inventory.ProductPatch{Stock: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AlertID)
	assert.Len(t, f.notifications(t), 1)
}

func TestUpdateProduct_UnchangedStockRaisesNothing(t *testing.T) {
	f := newFixture()
	id := f.widget(t, 5, 10)

	name := "Widget v2"
	res, err := f.svc.UpdateProduct(context.Background(), tenant, id, inventory.ProductPatch{Name: &name, Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", res.Product.Name)
	assert.True(t, models.IsLow(res.Product))
	assert.Empty(t, res.AlertID)
	assert.Empty(t, f.notifications(t), "resending the current stock is not a change")

	res, err = f.svc.UpdateProduct(context.Background(), tenant, id, inventory.ProductPatch{Stock: "4"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AlertID)
	assert.Len(t, f.notifications(t), 1)
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateProduct(context.Background(), tenant, "missing", inventory.ProductPatch{Stock: 1})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, f.notifications(t))
}

type alerterMock struct {
	mock.Mock
}

func (m *alerterMock) RaiseLowStock(ctx context.Context, tenant, productID, productName string, currentStock, minThreshold int) (string, error) {
	args := m.Called(ctx, tenant, productID, productName, currentStock, minThreshold)
	return args.String(0), args.Error(1)
}

func TestAdjustStock_AlertFailureKeepsStockChange(t *testing.T) {
	store := repo.NewInMemoryDocumentStore("test-app")
	l := inventory.NewLedger(store)
	id, err := l.Create(context.Background(), tenant, inventory.ProductInput{Name: "Widget", SKU: "W-1", Stock: 6, MinStockThreshold: 5})
	require.NoError(t, err)

	alerter := &alerterMock{}
	boom := errors.New("notifications unavailable")
	alerter.On("RaiseLowStock", mock.Anything, tenant, id, "Widget", 4, 5).Return("", boom).Once()

	res, err := NewService(l, alerter).AdjustStock(context.Background(), tenant, id, -2)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, id, res.Product.ID)
	assert.Equal(t, 4, res.Product.Stock)

	stored, err := l.Get(context.Background(), tenant, id)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Stock)
	alerter.AssertExpectations(t)
}
