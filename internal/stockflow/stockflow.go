// Package stockflow joins stock changes to low-stock alerts: after a stock
// change, a product that ends below its threshold gets exactly one alert.
package stockflow

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/stocksync/internal/inventory"
	"github.com/rogerio-castellano/stocksync/internal/models"
)

type Ledger interface {
	Get(ctx context.Context, tenant, id string) (models.Product, error)
	Update(ctx context.Context, tenant, id string, patch inventory.ProductPatch) (models.Product, error)
	AdjustStock(ctx context.Context, tenant, id string, delta int) (models.Product, error)
}

type Alerter interface {
	RaiseLowStock(ctx context.Context, tenant, productID, productName string, currentStock, minThreshold int) (string, error)
}

// Result is the product after the change and the id of the alert raised for
// it, if any.
type Result struct {
	Product models.Product
	AlertID string
}

type Service struct {
	ledger Ledger
	alerts Alerter
}

func NewService(ledger Ledger, alerts Alerter) *Service {
	return &Service{ledger: ledger, alerts: alerts}
}

// AdjustStock applies delta and raises an alert when the resulting stock is
// below threshold. A zero delta changes nothing and raises nothing.
func (s *Service) AdjustStock(ctx context.Context, tenant, id string, delta int) (Result, error) {
	if delta == 0 {
		p, err := s.ledger.Get(ctx, tenant, id)
		return Result{Product: p}, err
	}

	p, err := s.ledger.AdjustStock(ctx, tenant, id, delta)
	if err != nil {
		return Result{}, err
	}
	return s.raiseIfLow(ctx, tenant, p)
}

// UpdateProduct applies an edit. Only an edit that changes the stock can
// raise an alert; resending the current stock or editing only the threshold
// raises nothing.
func (s *Service) UpdateProduct(ctx context.Context, tenant, id string, patch inventory.ProductPatch) (Result, error) {
	if patch.Stock == nil {
		p, err := s.ledger.Update(ctx, tenant, id, patch)
		return Result{Product: p}, err
	}

	before, err := s.ledger.Get(ctx, tenant, id)
	if err != nil {
		return Result{}, err
	}
	p, err := s.ledger.Update(ctx, tenant, id, patch)
	if err != nil {
		return Result{}, err
	}
	if p.Stock == before.Stock {
		return Result{Product: p}, nil
	}
	return s.raiseIfLow(ctx, tenant, p)
}

func (s *Service) raiseIfLow(ctx context.Context, tenant string, p models.Product) (Result, error) {
	res := Result{Product: p}
	if !models.IsLow(p) {
		return res, nil
	}
	alertID, err := s.alerts.RaiseLowStock(ctx, tenant, p.ID, p.Name, p.Stock, p.MinStockThreshold)
	if err != nil {
		return res, fmt.Errorf("stock of %s changed but alert failed: %w", p.ID, err)
	}
	res.AlertID = alertID
	return res, nil
}
