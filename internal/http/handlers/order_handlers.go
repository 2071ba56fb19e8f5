package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stocksync/internal/models"
	"github.com/rogerio-castellano/stocksync/internal/orders"
)

// GetOrdersHandler godoc
// @Summary List supplier orders
// @Description Orders whose product was deleted are listed with productKnown=false.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	tenant := tenantOf(r)
	list, err := tracker.List(r.Context(), tenant)
	if err != nil {
		writeError(w, err, "could not fetch orders")
		return
	}
	products, err := ledger.List(r.Context(), tenant)
	if err != nil {
		writeError(w, err, "could not fetch products")
		return
	}
	respond(w, http.StatusOK, toOrderResponses(list, products))
}

// CreateOrderHandler godoc
// @Summary Place a supplier order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body OrderRequest true "Order to place"
// @Success 201 {object} OrderResponse
// @Failure 400 {array} FieldValidationError
// @Failure 500 {string} string "Internal error"
// @Router /orders [post]
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	tenant := tenantOf(r)
	id, err := tracker.Create(r.Context(), tenant, orders.OrderInput{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, err, "could not create order")
		return
	}
	writeOrder(w, r, tenant, id, http.StatusCreated)
}

// SimulateOrderHandler godoc
// @Summary Simulate an incoming order
// @Description Places a pending order for a random product with a quantity between 1 and 10.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} OrderResponse
// @Failure 400 {array} FieldValidationError "No products to order"
// @Failure 500 {string} string "Internal error"
// @Router /orders/simulate [post]
func SimulateOrderHandler(w http.ResponseWriter, r *http.Request) {
	tenant := tenantOf(r)
	products, err := ledger.List(r.Context(), tenant)
	if err != nil {
		writeError(w, err, "could not fetch products")
		return
	}
	order, err := tracker.Simulate(r.Context(), tenant, products)
	if err != nil {
		writeError(w, err, "could not simulate order")
		return
	}
	respond(w, http.StatusCreated, toOrderResponses([]models.Order{order}, products)[0])
}

// OrderStatusWebhookHandler godoc
// @Summary Supplier status event
// @Description Records a status reported by a supplier. Any known status may follow any other.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param event body StatusEventRequest true "New status (pending|shipped|delivered|cancelled)"
// @Success 200 {object} OrderResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {string} string "Not found"
// @Failure 429 {string} string "Too many requests"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id}/status [post]
func OrderStatusWebhookHandler(w http.ResponseWriter, r *http.Request) {
	var req StatusEventRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	tenant := tenantOf(r)
	id := chi.URLParam(r, "id")
	if err := tracker.ApplyStatusEvent(r.Context(), tenant, id, req.Status); err != nil {
		writeError(w, err, "could not apply status event")
		return
	}
	writeOrder(w, r, tenant, id, http.StatusOK)
}

func writeOrder(w http.ResponseWriter, r *http.Request, tenant, id string, status int) {
	order, err := tracker.Get(r.Context(), tenant, id)
	if err != nil {
		writeError(w, err, "could not fetch order")
		return
	}
	products, err := ledger.List(r.Context(), tenant)
	if err != nil {
		writeError(w, err, "could not fetch products")
		return
	}
	respond(w, status, toOrderResponses([]models.Order{order}, products)[0])
}
