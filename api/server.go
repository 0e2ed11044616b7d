/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend dev server

ROUTE GROUPS:
  /api/parameters/*   Parameter catalog management
  /api/captures/*     Per-period attendance captures
  /api/payroll/*      Computation and exports
  /api/settings/*     Persisted flags
  /api/health         Liveness

SECURITY NOTE:
  No authentication middleware. The server binds for a single operator
  on a trusted machine.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Parameter catalog routes
		r.Route("/parameters", func(r chi.Router) {
			r.Get("/", h.GetParameters)
			r.Put("/", h.PutParameters)
			r.Post("/activate", h.ActivateParameters)
			r.Get("/active", h.GetActiveParameters)
			r.Post("/employees", h.AddEmployee)
			r.Delete("/employees/{id}", h.DeleteEmployee)
		})

		// Capture routes
		r.Route("/captures", func(r chi.Router) {
			r.Get("/{periodKey}", h.GetCaptures)
			r.Put("/{periodKey}/{employeeID}", h.UpsertCapture)
		})

		// Payroll routes
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.GetPayroll)
			r.Post("/capture", h.SaveCaptureInfo)
			r.Get("/export.csv", h.ExportCSV)
			r.Get("/export.pdf", h.ExportPDF)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/goal", h.GetGoal)
			r.Put("/goal", h.PutGoal)
		})
	})

	return r
}
