// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface of the Mantle server:
// identity generation, sigil refinement, the steward chat stream,
// preference management and brand package exports.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"mantle/internal/ai"
	"mantle/internal/export"
	"mantle/internal/middleware"
	"mantle/internal/prefs"
	"mantle/internal/render"
	"mantle/internal/storage"
	"mantle/internal/workspace"
)

// CaptureFunc renders a URL in a headless browser and returns a PNG.
type CaptureFunc func(ctx context.Context, url string) ([]byte, error)

// App bundles the dependencies shared by all handlers. The AI client is
// built per request because each client may bring their own key.
type App struct {
	renderer *render.Renderer
	hub      *workspace.Hub
	prefs    *prefs.Store
	// storage is nil when object storage is not configured.
	storage *storage.Client
	baseURL string
	// serverKey is the fallback Gemini key from the environment.
	serverKey string
	newAI     func(apiKey string) *ai.Client
	capture   CaptureFunc
}

// Options configures a new App.
type Options struct {
	Renderer  *render.Renderer
	Hub       *workspace.Hub
	Prefs     *prefs.Store
	Storage   *storage.Client
	BaseURL   string
	ServerKey string
	NewAI     func(apiKey string) *ai.Client
	Capture   CaptureFunc
}

// New creates the handler set. Options.NewAI and Options.Capture default
// to the real Gemini client and headless browser capture.
func New(opts Options) *App {
	app := &App{
		renderer:  opts.Renderer,
		hub:       opts.Hub,
		prefs:     opts.Prefs,
		storage:   opts.Storage,
		baseURL:   opts.BaseURL,
		serverKey: opts.ServerKey,
		newAI:     opts.NewAI,
		capture:   opts.Capture,
	}
	if app.newAI == nil {
		app.newAI = func(apiKey string) *ai.Client {
			return ai.NewClient(ai.Config{APIKey: apiKey})
		}
	}
	if app.capture == nil {
		app.capture = export.CaptureDashboard
	}
	return app
}

// Home renders the landing page, or the dashboard once an identity has
// been woven for this client.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	// Headless capture requests identify the client by query parameter
	// instead of cookie.
	if qid := r.URL.Query().Get("client"); qid != "" {
		if parsed, err := uuid.Parse(qid); err == nil {
			clientID = parsed.String()
		}
	}
	ws := a.hub.Get(clientID)

	theme, hasKey := a.clientPrefs(r.Context(), clientID)

	identity := ws.Identity()
	if identity == nil {
		a.renderer.Page(w, r, "index", render.BuildPageData(theme, hasKey, nil, nil, nil))
		return
	}

	logos := ws.Logos()
	a.renderer.Page(w, r, "dashboard", render.BuildPageData(theme, hasKey, identity, &logos, ws.Messages()))
}

// clientPrefs loads the theme and key presence for a client, falling
// back to defaults when the preference store is unreachable.
func (a *App) clientPrefs(ctx context.Context, clientID string) (theme string, hasKey bool) {
	theme = prefs.ThemeSummer
	hasKey = a.serverKey != ""

	if a.prefs == nil {
		return theme, hasKey
	}

	if t, err := a.prefs.Theme(ctx, clientID); err != nil {
		slog.Warn("theme lookup failed", "error", err)
	} else {
		theme = t
	}
	if key, err := a.prefs.APIKey(ctx, clientID); err != nil {
		slog.Warn("api key lookup failed", "error", err)
	} else if key != "" {
		hasKey = true
	}
	return theme, hasKey
}

// apiKey resolves the Gemini key for a client: their stored key wins,
// the server-wide key is the fallback.
func (a *App) apiKey(ctx context.Context, clientID string) string {
	if a.prefs != nil {
		if key, err := a.prefs.APIKey(ctx, clientID); err == nil && key != "" {
			return key
		}
	}
	return a.serverKey
}

// renderError re-renders the landing page with an inline error message.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	theme, hasKey := a.clientPrefs(r.Context(), clientID)

	w.WriteHeader(status)
	data := render.BuildPageData(theme, hasKey, nil, nil, nil)
	data.Error = msg
	a.renderer.Page(w, r, "index", data)
}

// aiFailure maps an AI error onto the right status and user message.
// Credential problems are actionable by the user; everything else is a
// transient upstream failure.
func (a *App) aiFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ai.IsAuthError(err) {
		a.renderError(w, r, http.StatusUnauthorized, "Your Gemini API key was rejected. Check the key and try again.")
		return
	}
	if errors.Is(err, workspace.ErrBusy) {
		a.renderError(w, r, http.StatusConflict, "A generation is already in progress. Give it a moment.")
		return
	}
	a.renderError(w, r, http.StatusBadGateway, "The generation service is unavailable right now. Please retry shortly.")
}
