// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"mantle/internal/ai"
	"mantle/internal/middleware"
)

// KeySave stores the client's own Gemini API key after a shape check.
// The key is never echoed back.
func (a *App) KeySave(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())

	key := strings.TrimSpace(r.FormValue("api_key"))
	if err := ai.ValidateKeyFormat(key); err != nil {
		a.renderError(w, r, http.StatusBadRequest, "That does not look like a Gemini API key (they start with AIza).")
		return
	}

	if a.prefs == nil {
		a.renderError(w, r, http.StatusServiceUnavailable, "Preference storage is not available.")
		return
	}
	if err := a.prefs.SetAPIKey(r.Context(), clientID, key); err != nil {
		slog.Error("api key save failed", "error", err)
		a.renderError(w, r, http.StatusInternalServerError, "Could not save the key. Please retry.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ThemeSave flips between the summer and winter mantle.
func (a *App) ThemeSave(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())

	if a.prefs != nil {
		if err := a.prefs.SetTheme(r.Context(), clientID, r.FormValue("theme")); err != nil {
			slog.Warn("theme save failed", "error", err)
			a.renderError(w, r, http.StatusBadRequest, "Unknown theme.")
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the stored preferences, drops the in-memory workspace
// and expires the client cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())

	if a.prefs != nil {
		if err := a.prefs.Clear(r.Context(), clientID); err != nil {
			slog.Error("preference clear failed", "error", err)
		}
	}
	a.hub.Drop(clientID)

	http.SetCookie(w, &http.Cookie{
		Name:   middleware.ClientCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
