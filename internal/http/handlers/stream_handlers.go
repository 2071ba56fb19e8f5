package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rogerio-castellano/stocksync/internal/alerts"
	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/livesync"
	"github.com/rogerio-castellano/stocksync/internal/models"
	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

// StreamHandler godoc
// @Summary Live collection snapshots
// @Description Server-sent events. Each products, orders or notifications event carries the whole collection.
// @Description An error event names a collection whose live updates failed.
// @Tags stream
// @Produce text/event-stream
// @Security BearerAuth
// @Param token query string false "Session token, for clients that cannot set headers"
// @Success 200 {string} string "event stream"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /stream [get]
func StreamHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	identity := auth.NewIdentity(signer)
	identity.Restore(claims)

	session := livesync.NewSession(identity, ledger, tracker, alertEngine)
	failures := make(chan string, 3)
	session.OnError(func(collection string, err error) {
		select {
		case failures <- collection:
		default:
		}
	})
	if err := session.Start(ctx); err != nil {
		writeError(w, err, "could not open stream")
		return
	}
	defer session.Close()

	productsCh, stopProducts := session.Products.Watch()
	defer stopProducts()
	ordersCh, stopOrders := session.Orders.Watch()
	defer stopOrders()
	notificationsCh, stopNotifications := session.Notifications.Watch()
	defer stopNotifications()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	var latestProducts []models.Product
	var latestOrders []models.Order
	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case items := <-productsCh:
			latestProducts = items
			err = writeEvent(w, "products", toProductResponses(items))
			if err == nil && latestOrders != nil {
				// Product names shown on orders follow the products.
				err = writeEvent(w, "orders", toOrderResponses(latestOrders, latestProducts))
			}
		case items := <-ordersCh:
			latestOrders = items
			err = writeEvent(w, "orders", toOrderResponses(items, latestProducts))
		case items := <-notificationsCh:
			err = writeEvent(w, "notifications", toNotificationsResult(items, alerts.UnreadCount(items)))
		case collection := <-failures:
			err = writeEvent(w, "error", map[string]string{"collection": collection})
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": keep-alive\n\n")
		}
		if err != nil {
			zap.L().Debug("stream closed", zap.String("tenant", claims.Subject), zap.Error(err))
			return
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
