package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// RequireRole bloqueia a rota sem sessão (401) ou com papel abaixo de min (403).
func (h *AuthHandler) RequireRole(min entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := h.AuthUC.RequireRole(r.Context(), min); err != nil {
				logrus.WithFields(logrus.Fields{
					"path":     r.URL.Path,
					"required": min,
				}).Debug("🔒 Acesso negado")
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
