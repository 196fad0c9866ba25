package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ProspectHandler struct {
	ProspectUC    *usecase.ProspectUseCase
	TransitionUC  *usecase.StatusTransitionUseCase
	InteractionUC *usecase.RecordInteractionUseCase
}

func NewProspectHandler(
	prospectUC *usecase.ProspectUseCase,
	transitionUC *usecase.StatusTransitionUseCase,
	interactionUC *usecase.RecordInteractionUseCase,
) *ProspectHandler {
	return &ProspectHandler{
		ProspectUC:    prospectUC,
		TransitionUC:  transitionUC,
		InteractionUC: interactionUC,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type moveRequest struct {
	Board string `json:"board,omitempty"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type moveResponse struct {
	Applied bool `json:"applied"`
}

func (h *ProspectHandler) filterFromQuery(w http.ResponseWriter, r *http.Request) (usecase.ProspectFilter, bool) {
	statuses, ok := prospectStatuses(queryList(r, "status"))
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidStatus, "unknown prospect status in filter")
		return usecase.ProspectFilter{}, false
	}
	dr, err := queryDateRange(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid date: "+err.Error())
		return usecase.ProspectFilter{}, false
	}
	return usecase.ProspectFilter{
		Status:    statuses,
		Product:   queryList(r, "product"),
		Source:    queryList(r, "source"),
		DateRange: dr,
		Search:    r.URL.Query().Get("search"),
	}, true
}

func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	prospects, err := h.ProspectUC.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

func (h *ProspectHandler) Board(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	board, err := h.ProspectUC.Board(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *ProspectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProspectUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateProspectInput
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.ProspectUC.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProspectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateProspectInput
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.ProspectUC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProspectHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, ok := entity.ParseProspectStatus(req.Status)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidStatus, "status "+req.Status+" is not a prospect status")
		return
	}

	p, err := h.TransitionUC.ChangeProspectStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordStatusTransition("prospect", "manual")
	writeJSON(w, http.StatusOK, p)
}

func (h *ProspectHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.TransitionUC.MoveProspect(r.Context(), chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.Applied() {
		middleware.RecordStatusTransition("prospect", "kanban")
	} else {
		middleware.RecordNoopMove("prospect")
	}
	writeJSON(w, http.StatusOK, moveResponse{Applied: outcome.Applied()})
}

func (h *ProspectHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordInteractionInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ProspectID = chi.URLParam(r, "id")
	if s, ok := entity.ParseProspectStatus(string(input.NewStatus)); ok {
		input.NewStatus = s
	}

	out, err := h.InteractionUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.RecordInteraction(string(input.InteractionType), string(input.Result))
	if out.StatusChanged() {
		middleware.RecordStatusTransition("prospect", "interaction")
	}
	if out.Task != nil {
		middleware.RecordDerivedTask(string(input.NextAction))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ProspectHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	items, err := h.ProspectUC.Interactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
