/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. RequestLogger: Structured request logging (httplog, ECS schema)
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. Heartbeat:     GET /health liveness probe
  5. CORS:          Cross-origin requests for the frontend
  6. RequestSize:   Bodies capped at 1 MiB (413 past the cap)

ROUTE GROUPS:
  /api/payroll/*    Payslip calculation and PDF
  /api/rules        Rule table
  /api/profile/*    Company profile
  /api/calendar/*   Business/rest days, vacation days
  /api/holidays/*   Company holidays
  /api/scenarios/*  Demo scenarios
  /*                Static files (frontend)

STATIC FILE SERVING:
  Serves the frontend from web/ when present.
  Falls back to index.html for client-side routing.

SECURITY NOTE:
  No authentication middleware. The calculator is single-user.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewLogger returns a JSON slog logger whose attributes follow the ECS schema
// used by the request logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "holerite"),
	)
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(h.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestSize(maxBodySize))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", h.GetRules)

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.Calculate)
			r.Post("/payslip.pdf", h.PayslipPDF)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Put("/", h.UpdateProfile)
			r.Get("/document", h.ExportProfileDocument)
			r.Post("/document", h.ImportProfileDocument)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/{month}", h.GetMonth)
			r.Post("/vacation", h.VacationDays)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Serve static files
	staticDir := "./web"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		// Try relative to executable
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))

			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Holerite</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Holerite API</h1>
<p>No frontend found in <code>./web</code>.</p>
<ul>
<li><a href="/api/rules">/api/rules</a> - rule table</li>
<li><a href="/api/profile">/api/profile</a> - company profile</li>
<li><a href="/api/holidays">/api/holidays</a> - company holidays</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
