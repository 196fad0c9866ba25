package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type TaskHandler struct {
	TaskUC       *usecase.TaskUseCase
	TransitionUC *usecase.StatusTransitionUseCase
}

func NewTaskHandler(taskUC *usecase.TaskUseCase, transitionUC *usecase.StatusTransitionUseCase) *TaskHandler {
	return &TaskHandler{TaskUC: taskUC, TransitionUC: transitionUC}
}

type priorityRequest struct {
	Priority string `json:"priority"`
}

func (h *TaskHandler) filterFromQuery(w http.ResponseWriter, r *http.Request) (usecase.TaskFilter, bool) {
	var f usecase.TaskFilter
	for _, raw := range queryList(r, "status") {
		s, ok := entity.ParseTaskStatus(raw)
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidStatus, "unknown task status in filter")
			return f, false
		}
		f.Status = append(f.Status, s)
	}
	for _, raw := range queryList(r, "priority") {
		p := entity.TaskPriority(raw)
		if !p.Valid() {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidPriority, "unknown task priority in filter")
			return f, false
		}
		f.Priority = append(f.Priority, p)
	}
	dr, err := queryDateRange(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid date: "+err.Error())
		return f, false
	}
	f.AssignedTo = queryList(r, "assigned_to")
	f.DateRange = dr
	f.Search = r.URL.Query().Get("search")
	return f, true
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	cards, err := h.TaskUC.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *TaskHandler) Board(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}
	board, err := h.TaskUC.Board(r.Context(), usecase.TaskBoardKind(r.URL.Query().Get("by")), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.TaskUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateTaskInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.TaskUC.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var input usecase.EditTaskInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.TaskUC.Edit(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, ok := entity.ParseTaskStatus(req.Status)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidStatus, "status "+req.Status+" is not a task status")
		return
	}

	t, err := h.TransitionUC.ChangeTaskStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordStatusTransition("task", "manual")
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) ChangePriority(w http.ResponseWriter, r *http.Request) {
	var req priorityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.TransitionUC.ChangeTaskPriority(r.Context(), chi.URLParam(r, "id"), entity.TaskPriority(req.Priority))
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordStatusTransition("task_priority", "manual")
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board := usecase.TaskBoardKind(req.Board)
	outcome, err := h.TransitionUC.MoveTask(r.Context(), board, chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.Applied() {
		middleware.RecordStatusTransition("task", "kanban")
	} else {
		middleware.RecordNoopMove("task")
	}
	writeJSON(w, http.StatusOK, moveResponse{Applied: outcome.Applied()})
}
