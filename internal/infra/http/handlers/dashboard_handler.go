package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.DashboardUseCase
}

func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{DashboardUC: uc}
}

func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	summary, err := h.DashboardUC.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
