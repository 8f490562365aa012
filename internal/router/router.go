// Package router sets up all HTTP routes and middleware chains for the
// Mantle server. Generation endpoints share a tighter rate limit than
// the rest of the surface.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mantle/internal/handlers"
	"mantle/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(app *handlers.App, aiLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.ClientIdentity)

	// Health check.
	r.Get("/health", healthHandler)

	// Dashboard and landing page.
	r.Get("/", app.Home)
	r.Get("/dashboard", app.Home)

	// Generation endpoints — expensive Gemini calls, rate limited.
	r.Route("/api", func(r chi.Router) {
		if aiLimiter != nil {
			r.Use(aiLimiter.Middleware)
		}
		r.Post("/brand", app.BrandCreate)
		r.Post("/logos", app.LogosCreate)
		r.Post("/variations", app.VariationsCreate)
		r.Post("/refine", app.SigilRefine)
		r.Post("/regenerate", app.Regenerate)
		r.Post("/chat", app.ChatSend)
	})

	// Preferences.
	r.Route("/prefs", func(r chi.Router) {
		r.Post("/key", app.KeySave)
		r.Post("/theme", app.ThemeSave)
		r.Post("/logout", app.Logout)
	})

	// Exports.
	r.Route("/export", func(r chi.Router) {
		r.Get("/package", app.ExportPackage)
		r.Get("/guide.pdf", app.ExportGuidePDF)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
