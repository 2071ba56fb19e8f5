// Package inventory owns product records: creation, edits, stock
// adjustments and live product snapshots.
//
// The ledger does not raise alerts. Callers that change stock compare the
// result with the threshold themselves (see package stockflow).
package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"go.uber.org/zap"
)

// ProductInput carries the fields of a new product. Stock and
// MinStockThreshold accept anything that reads as an integer (numbers,
// numeric strings); nil means zero.
type ProductInput struct {
	Name              string
	SKU               string
	Stock             any
	MinStockThreshold any
}

// ProductPatch is a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name              *string
	SKU               *string
	Stock             any
	MinStockThreshold any
}

type Ledger struct {
	store repo.DocumentStore
}

func NewLedger(store repo.DocumentStore) *Ledger {
	return &Ledger{store: store}
}

// Create validates and stores a new product and returns its id.
func (l *Ledger) Create(ctx context.Context, tenant string, in ProductInput) (string, error) {
	var errs models.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, models.NewValidationError("name", "Name is required"))
	}
	if strings.TrimSpace(in.SKU) == "" {
		errs = append(errs, models.NewValidationError("sku", "SKU is required"))
	}
	stock, verr := coerceCount("stock", in.Stock)
	if verr != nil {
		errs = append(errs, verr)
	}
	threshold, verr := coerceCount("minStockThreshold", in.MinStockThreshold)
	if verr != nil {
		errs = append(errs, verr)
	}
	if len(errs) > 0 {
		return "", errs
	}

	id, err := l.store.Create(ctx, repo.ProductsCollection, tenant, map[string]any{
		"name":              in.Name,
		"sku":               in.SKU,
		"stock":             stock,
		"minStockThreshold": threshold,
		"lastUpdated":       repo.ServerTimestamp,
	})
	if err != nil {
		return "", repo.MapError("create", repo.ProductsCollection, "", err)
	}
	return id, nil
}

// Get retrieves a product by its id.
func (l *Ledger) Get(ctx context.Context, tenant, id string) (models.Product, error) {
	doc, err := l.store.Get(ctx, repo.ProductsCollection, tenant, id)
	if err != nil {
		return models.Product{}, repo.MapError("get", repo.ProductsCollection, id, err)
	}
	p, err := repo.DecodeProduct(doc)
	if err != nil {
		return models.Product{}, models.NewStorageError("decode product", err)
	}
	return p, nil
}

// List returns every product of the tenant.
func (l *Ledger) List(ctx context.Context, tenant string) ([]models.Product, error) {
	docs, err := l.store.List(ctx, repo.ProductsCollection, tenant)
	if err != nil {
		return nil, repo.MapError("list", repo.ProductsCollection, "", err)
	}
	return decodeProducts(docs), nil
}

// Update applies a partial update and returns the product as stored.
func (l *Ledger) Update(ctx context.Context, tenant, id string, patch ProductPatch) (models.Product, error) {
	fields := map[string]any{}
	var errs models.ValidationErrors

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			errs = append(errs, models.NewValidationError("name", "Name is required"))
		}
		fields["name"] = *patch.Name
	}
	if patch.SKU != nil {
		if strings.TrimSpace(*patch.SKU) == "" {
			errs = append(errs, models.NewValidationError("sku", "SKU is required"))
		}
		fields["sku"] = *patch.SKU
	}
	if patch.Stock != nil {
		stock, err := coerceCount("stock", patch.Stock)
		if err != nil {
			errs = append(errs, err)
		}
		fields["stock"] = stock
	}
	if patch.MinStockThreshold != nil {
		threshold, err := coerceCount("minStockThreshold", patch.MinStockThreshold)
		if err != nil {
			errs = append(errs, err)
		}
		fields["minStockThreshold"] = threshold
	}
	if len(errs) > 0 {
		return models.Product{}, errs
	}

	fields["lastUpdated"] = repo.ServerTimestamp
	if err := l.store.Update(ctx, repo.ProductsCollection, tenant, id, fields); err != nil {
		return models.Product{}, repo.MapError("update", repo.ProductsCollection, id, err)
	}
	return l.Get(ctx, tenant, id)
}

// AdjustStock adds delta to the current stock, clamping at zero, and returns
// the product carrying the resulting stock.
//
// This is a read followed by a write. Two concurrent adjustments of the same
// product may lose one of the updates.
func (l *Ledger) AdjustStock(ctx context.Context, tenant, id string, delta int) (models.Product, error) {
	p, err := l.Get(ctx, tenant, id)
	if err != nil {
		return models.Product{}, err
	}

	p.Stock = ClampStock(addStock(p.Stock, delta))
	err = l.store.Update(ctx, repo.ProductsCollection, tenant, id, map[string]any{
		"stock":       p.Stock,
		"lastUpdated": repo.ServerTimestamp,
	})
	if err != nil {
		return models.Product{}, repo.MapError("adjust stock", repo.ProductsCollection, id, err)
	}
	return p, nil
}

// Delete removes the product. Orders and notifications that reference it are
// left as they are.
func (l *Ledger) Delete(ctx context.Context, tenant, id string) error {
	if err := l.store.Delete(ctx, repo.ProductsCollection, tenant, id); err != nil {
		return repo.MapError("delete", repo.ProductsCollection, id, err)
	}
	return nil
}

// Subscribe delivers the full product list on every change until the
// returned function is called.
func (l *Ledger) Subscribe(ctx context.Context, tenant string, onSnapshot func([]models.Product), onError func(error)) (repo.CancelFunc, error) {
	cancel, err := l.store.Subscribe(ctx, repo.ProductsCollection, tenant, func(docs []repo.Document) {
		onSnapshot(decodeProducts(docs))
	}, onError)
	if err != nil {
		return nil, repo.MapError("subscribe", repo.ProductsCollection, "", err)
	}
	return cancel, nil
}

// addStock saturates at the int limits instead of wrapping.
func addStock(stock, delta int) int {
	switch {
	case delta > 0 && stock > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && stock < math.MinInt-delta:
		return math.MinInt
	}
	return stock + delta
}

// ClampStock never lets a stock level go below zero.
func ClampStock(stock int) int {
	return max(0, stock)
}

func decodeProducts(docs []repo.Document) []models.Product {
	products, errs := repo.DecodeAll(docs, repo.DecodeProduct)
	for _, err := range errs {
		zap.L().Warn("skipping undecodable product", zap.Error(err))
	}
	return products
}

// coerceCount reads v as a non-negative integer. Negative values are clamped
// to zero.
func coerceCount(field string, v any) (int, *models.ValidationError) {
	if v == nil {
		return 0, nil
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, nil
		}
	}
	n, err := models.ToInt(v)
	if err != nil {
		return 0, models.NewValidationError(field, fmt.Sprintf("%v is not an integer", v))
	}
	return max(0, n), nil
}
