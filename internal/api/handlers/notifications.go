package handlers

import (
	"net/http"

	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/notify"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db     *gorm.DB
	notify *notify.Service
}

func NewNotificationHandler(db *gorm.DB, notifyService *notify.Service) *NotificationHandler {
	return &NotificationHandler{db: db, notify: notifyService}
}

// List returns the user's inbox, newest first, with the unread count.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch notifications", err)
		return
	}

	inbox, err := h.notify.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Failed to fetch notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NotificationsResponse{
		Response: dto.OK("Notifications fetched successfully"),
		Inbox:    inbox,
	})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	var req dto.UserIDRequest
	if !decode(w, r, &req) {
		return
	}
	userID, err := resolveCaller(r, h.db, req.UserID)
	if err != nil {
		writeError(w, r, "Failed to mark notifications as read", err)
		return
	}

	updated, err := h.notify.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Failed to mark notifications as read", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MarkAllReadResponse{
		Response: dto.OK("All notifications marked as read"),
		Updated:  updated,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "notification")
	if err != nil {
		writeError(w, r, "Failed to mark notification as read", err)
		return
	}

	if err := h.notify.MarkRead(r.Context(), id); err != nil {
		writeError(w, r, "Failed to mark notification as read", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Notification marked as read"))
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "notification")
	if err != nil {
		writeError(w, r, "Failed to delete notification", err)
		return
	}

	if err := h.notify.Delete(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete notification", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Notification deleted successfully"))
}
