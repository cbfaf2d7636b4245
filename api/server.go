/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the browser editor

ROUTE GROUPS:
  /api/state, /api/summary, /api/commands   Command and query interface
  /api/backup, /api/restore                 JSON backup round trip
  /api/shifts.csv, /api/report.xlsx         Tabular import/export

SECURITY NOTE:
  No authentication. The server is meant to run on the user's own machine.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/paycalc/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Get("/summary", h.GetSummary)
		r.Post("/commands", h.PostCommand)

		r.Get("/backup", h.GetBackup)
		r.Post("/restore", h.PostRestore)

		r.Get("/shifts.csv", h.ExportCSV)
		r.Post("/shifts.csv", h.ImportCSV)
		r.Get("/report.xlsx", h.ExportXLSX)
	})

	return r
}
