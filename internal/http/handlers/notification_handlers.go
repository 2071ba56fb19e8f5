package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stocksync/internal/alerts"
)

// GetNotificationsHandler godoc
// @Summary List notifications
// @Description Newest first, with the number of unread notifications.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NotificationsResult
// @Failure 500 {string} string "Internal error"
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := alertEngine.List(r.Context(), tenantOf(r))
	if err != nil {
		writeError(w, err, "could not fetch notifications")
		return
	}
	respond(w, http.StatusOK, toNotificationsResult(list, alerts.UnreadCount(list)))
}

// MarkNotificationReadHandler godoc
// @Summary Mark a notification as read
// @Description Marking an unknown notification succeeds without effect.
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "Marked as read"
// @Failure 500 {string} string "Internal error"
// @Router /notifications/{id}/read [post]
func MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	if err := alertEngine.MarkRead(r.Context(), tenantOf(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "could not mark notification as read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
