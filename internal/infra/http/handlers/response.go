package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

var notFound = []error{
	entity.ErrProspectNotFound,
	entity.ErrTaskNotFound,
	entity.ErrContactNotFound,
	entity.ErrTemplateNotFound,
	entity.ErrNotificationNotFound,
}

// writeError traduz os erros do domínio para HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusUnprocessableEntity
		switch de.Code {
		case usecase.CodeInvalidStatus, usecase.CodeInvalidPriority, usecase.CodeInvalidChannel:
			status = http.StatusBadRequest
		case usecase.CodeVersionConflict:
			status = http.StatusConflict
		case usecase.CodeForbidden:
			status = http.StatusForbidden
		}
		writeJSON(w, status, ErrorResponse{Error: de.Code, Message: de.Message, Fields: de.Fields})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, entity.ErrInvalidCredentials):
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
		return
	case errors.Is(err, entity.ErrSessionNotFound):
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no active session")
		return
	case errors.Is(err, entity.ErrVersionConflict):
		writeErrorResponse(w, http.StatusConflict, usecase.CodeVersionConflict, err.Error())
		return
	}

	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"error":  err,
	}).Error("❌ Erro interno")
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return false
	}
	return true
}

// queryList aceita ?status=a&status=b e ?status=a,b
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseDate aceita RFC3339 ou YYYY-MM-DD. endOfDay estende a data simples
// até o último instante do dia (limite superior inclusivo).
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryDateRange(r *http.Request) (*usecase.DateRange, error) {
	from, err := parseDate(r.URL.Query().Get("from"), false)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(r.URL.Query().Get("to"), true)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return nil, nil
	}
	return &usecase.DateRange{From: from, To: to}, nil
}

func prospectStatuses(raw []string) ([]entity.ProspectStatus, bool) {
	out := make([]entity.ProspectStatus, 0, len(raw))
	for _, v := range raw {
		s, ok := entity.ParseProspectStatus(v)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
