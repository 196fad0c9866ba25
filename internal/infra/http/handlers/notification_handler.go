package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type NotificationHandler struct {
	NotificationUC *usecase.NotificationUseCase
}

func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{NotificationUC: uc}
}

type notificationListResponse struct {
	Notifications []entity.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.NotificationUC.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	if items == nil {
		items = []entity.Notification{}
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: items, UnreadCount: unread})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationUC.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationUC.MarkAllRead(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationUC.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
