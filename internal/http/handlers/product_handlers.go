package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stocksync/internal/inventory"
	"github.com/rogerio-castellano/stocksync/internal/stockflow"
	"go.uber.org/zap"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the caller's inventory. Negative stock or threshold is stored as zero.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} FieldValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	tenant := tenantOf(r)
	id, err := ledger.Create(r.Context(), tenant, inventory.ProductInput{
		Name:              req.Name,
		SKU:               req.SKU,
		Stock:             req.Stock,
		MinStockThreshold: req.MinStockThreshold,
	})
	if err != nil {
		writeError(w, err, "could not create product")
		return
	}

	created, err := ledger.Get(r.Context(), tenant, id)
	if err != nil {
		writeError(w, err, "could not fetch created product")
		return
	}
	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := ledger.List(r.Context(), tenantOf(r))
	if err != nil {
		writeError(w, err, "could not fetch products")
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := ledger.Get(r.Context(), tenantOf(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update. Setting stock below the threshold raises a low-stock alert.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductPatchRequest true "Fields to change"
// @Success 200 {object} StockChangeResult
// @Failure 400 {array} FieldValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductPatchRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	res, err := stockService.UpdateProduct(r.Context(), tenantOf(r), chi.URLParam(r, "id"), inventory.ProductPatch{
		Name:              req.Name,
		SKU:               req.SKU,
		Stock:             req.Stock,
		MinStockThreshold: req.MinStockThreshold,
	})
	writeStockChange(w, res, err, "could not update product")
}

// AdjustQuantityHandler godoc
// @Summary Adjust product stock
// @Description Adds delta to the stock, never going below zero. Ending below the threshold raises a low-stock alert.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock delta"
// @Success 200 {object} StockChangeResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	res, err := stockService.AdjustStock(r.Context(), tenantOf(r), chi.URLParam(r, "id"), req.Delta)
	writeStockChange(w, res, err, "could not adjust stock")
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Orders and notifications that reference the product are kept.
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := ledger.Delete(r.Context(), tenantOf(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStockChange reports a stock change. When the stock was written but the
// alert could not be stored, the change is still reported, with the alert
// failure alongside it.
func writeStockChange(w http.ResponseWriter, result stockflow.Result, err error, failure string) {
	id := result.Product.ID
	if err != nil && id == "" {
		writeError(w, err, failure)
		return
	}
	res := StockChangeResult{Product: toProductResponse(result.Product), AlertID: result.AlertID}
	if err != nil {
		zap.L().Error("low stock alert failed", zap.String("product_id", id), zap.Error(err))
		res.AlertError = "stock updated but the low stock alert could not be stored"
	}
	respond(w, http.StatusOK, res)
}
