package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// DefaultAllowedOrigin é o front-end de desenvolvimento (vite).
const DefaultAllowedOrigin = "http://localhost:5173"

type Router struct {
	Auth          *AuthHandler
	Prospects     *ProspectHandler
	Tasks         *TaskHandler
	Contacts      *ContactHandler
	Templates     *TemplateHandler
	Notifications *NotificationHandler
	Dashboard     *DashboardHandler
	Health        *HealthHandler

	AllowedOrigins []string
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)

	origins := rt.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{DefaultAllowedOrigin}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if rt.Health != nil {
		r.Get("/health", rt.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", rt.Auth.Login)
		r.Post("/logout", rt.Auth.Logout)
		r.Get("/me", rt.Auth.Me)
	})

	// rotas do CRM exigem sessão; /auth, /health e /metrics ficam abertas
	r.Group(func(r chi.Router) {
		r.Use(rt.Auth.RequireRole(entity.RoleAgent))

		r.Route("/prospects", func(r chi.Router) {
			r.Get("/", rt.Prospects.List)
			r.Post("/", rt.Prospects.Create)
			r.Get("/board", rt.Prospects.Board)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.Prospects.Get)
				r.Patch("/", rt.Prospects.Update)
				r.Patch("/status", rt.Prospects.ChangeStatus)
				r.Post("/move", rt.Prospects.Move)
				r.Post("/interactions", rt.Prospects.RecordInteraction)
				r.Get("/interactions", rt.Prospects.Interactions)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.Tasks.List)
			r.Post("/", rt.Tasks.Create)
			r.Get("/board", rt.Tasks.Board)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.Tasks.Get)
				r.Put("/", rt.Tasks.Edit)
				r.Delete("/", rt.Tasks.Delete)
				r.Patch("/status", rt.Tasks.ChangeStatus)
				r.Patch("/priority", rt.Tasks.ChangePriority)
				r.Post("/move", rt.Tasks.Move)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", rt.Contacts.List)
			r.Get("/{id}", rt.Contacts.Get)
			r.Post("/{id}/messages", rt.Contacts.SendMessage)
			r.Post("/{id}/read", rt.Contacts.MarkRead)
		})
		r.Post("/messages/mass", rt.Contacts.SendMass)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", rt.Templates.List)
			r.Post("/", rt.Templates.Create)
			r.Get("/{id}", rt.Templates.Get)
			r.Get("/{id}/render", rt.Templates.Render)
			r.Delete("/{id}", rt.Templates.Delete)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", rt.Notifications.List)
			r.Post("/read-all", rt.Notifications.MarkAllRead)
			r.Post("/{id}/read", rt.Notifications.MarkRead)
			r.Delete("/{id}", rt.Notifications.Clear)
		})

		r.Get("/dashboard", rt.Dashboard.Handle)
	})

	return r
}
