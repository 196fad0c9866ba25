package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ContactHandler struct {
	MessagingUC *usecase.MessagingUseCase
}

func NewContactHandler(uc *usecase.MessagingUseCase) *ContactHandler {
	return &ContactHandler{MessagingUC: uc}
}

type contactListResponse struct {
	Contacts    []entity.Contact `json:"contacts"`
	TotalUnread int              `json:"total_unread"`
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, ok := prospectStatuses(queryList(r, "status"))
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidStatus, "unknown status in filter")
		return
	}

	contacts, err := h.MessagingUC.ListContacts(r.Context(), usecase.ContactFilter{
		Status:  statuses,
		Product: queryList(r, "product"),
		Search:  r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := h.MessagingUC.UnreadTotal(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contactListResponse{Contacts: contacts, TotalUnread: total})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.MessagingUC.GetContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendMessageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	msg, err := h.MessagingUC.SendMessage(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordMessages(string(msg.Channel), "single", 1)
	writeJSON(w, http.StatusCreated, msg)
}

func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	c, err := h.MessagingUC.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) SendMass(w http.ResponseWriter, r *http.Request) {
	var input usecase.MassMessageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	out, err := h.MessagingUC.SendMassMessage(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	channel := string(input.Channel)
	if channel == "" {
		channel = "whatsapp"
	}
	middleware.RecordMessages(channel, "mass", len(out.Sent))
	writeJSON(w, http.StatusOK, out)
}
