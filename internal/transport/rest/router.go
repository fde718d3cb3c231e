package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/joshwmy/record-management/internal/auth"
	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/dataset"
	"github.com/joshwmy/record-management/internal/incident"
	"github.com/joshwmy/record-management/internal/ingest"
	"github.com/joshwmy/record-management/internal/insight"
	"github.com/joshwmy/record-management/internal/ticket"
	"github.com/joshwmy/record-management/internal/transport/middleware"
	"github.com/joshwmy/record-management/internal/transport/swagger"
	"github.com/joshwmy/record-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Incident *incident.Handler
	Ticket   *ticket.Handler
	Dataset  *dataset.Handler
	Ingest   *ingest.Handler
	Insight  *insight.Handler
}

// RegisterAllRoutes mounts the API. Every record route requires a valid
// session plus the role permission for its domain and action.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sessions middleware.SessionValidator, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a live session.
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.SessionAuth(sessions))

			registerRecordRoutes(pr, "/incidents", authz.DomainCybersecurity, recordHandlers{
				list:   h.Incident.List,
				get:    h.Incident.Get,
				create: h.Incident.Create,
				update: h.Incident.Update,
				delete: h.Incident.Delete,
				upload: h.Ingest.Upload(authz.DomainCybersecurity),
			})

			registerRecordRoutes(pr, "/tickets", authz.DomainTickets, recordHandlers{
				list:   h.Ticket.List,
				get:    h.Ticket.Get,
				create: h.Ticket.Create,
				update: h.Ticket.Update,
				delete: h.Ticket.Delete,
				upload: h.Ingest.Upload(authz.DomainTickets),
			})

			registerRecordRoutes(pr, "/datasets", authz.DomainDatasets, recordHandlers{
				list:   h.Dataset.List,
				get:    h.Dataset.Get,
				create: h.Dataset.Create,
				update: h.Dataset.Update,
				delete: h.Dataset.Delete,
				upload: h.Ingest.Upload(authz.DomainDatasets),
			})

			if h.Insight != nil {
				pr.Post("/insight", h.Insight.Summarize)
			}

			// Admin user management.
			pr.Route("/admin/users", func(ar chi.Router) {
				ar.Use(middleware.Require(authz.DomainAdmin, authz.ActionManageUsers))
				ar.Get("/", h.User.List)
				ar.Get("/{username}", h.User.Get)
				ar.Patch("/{username}/role", h.User.ChangeRole)
				ar.Post("/{username}/unlock", h.Auth.Unlock)
			})
		})
	})
}

type recordHandlers struct {
	list   http.HandlerFunc
	get    http.HandlerFunc
	create http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
	upload http.HandlerFunc
}

func registerRecordRoutes(r chi.Router, pattern string, domain authz.Domain, h recordHandlers) {
	r.Route(pattern, func(rr chi.Router) {
		rr.Group(func(gr chi.Router) {
			gr.Use(middleware.Require(domain, authz.ActionView))
			gr.Get("/", h.list)
			gr.Get("/{id}", h.get)
		})
		rr.Group(func(gr chi.Router) {
			gr.Use(middleware.Require(domain, authz.ActionCreate))
			gr.Post("/", h.create)
			gr.Post("/upload", h.upload)
		})
		rr.Group(func(gr chi.Router) {
			gr.Use(middleware.Require(domain, authz.ActionUpdate))
			gr.Patch("/{id}", h.update)
		})
		rr.Group(func(gr chi.Router) {
			gr.Use(middleware.Require(domain, authz.ActionDelete))
			gr.Delete("/{id}", h.delete)
		})
	})
}
