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
	"mantle/internal/models"
)

// opGenerate and friends are the per-workspace busy latches; one
// expensive operation of each kind at a time.
const (
	opGenerate   = "generate"
	opVariations = "variations"
	opRefine     = "refine"
	opExport     = "export"
)

// BrandCreate weaves a new identity from the submitted mission: the
// structured identity first, then both sigils. A fresh generation token
// makes any in-flight results from a previous run stale.
func (a *App) BrandCreate(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	mission := strings.TrimSpace(r.FormValue("mission"))
	if msg := validateMission(mission); msg != "" {
		a.renderError(w, r, http.StatusBadRequest, msg)
		return
	}

	key := a.apiKey(r.Context(), clientID)
	if err := ai.ValidateKeyFormat(key); err != nil {
		a.renderError(w, r, http.StatusUnauthorized, "Connect a valid Gemini API key before weaving your mantle.")
		return
	}

	if err := ws.TryBegin(opGenerate); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opGenerate)

	token := ws.BeginGeneration()
	client := a.newAI(key)

	identity, err := client.GenerateIdentity(r.Context(), mission)
	if err != nil {
		slog.Error("identity generation failed", "error", err)
		a.aiFailure(w, r, err)
		return
	}
	if !ws.ApplyIdentity(token, identity) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	logos, err := client.GenerateLogos(r.Context(), mission, parseSize(r.FormValue("size")))
	if err != nil {
		// The identity stands on its own; sigils can be regenerated.
		slog.Error("sigil generation failed", "error", err)
	} else {
		ws.ApplyLogos(token, logos)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogosCreate re-weaves both sigils from the current identity's
// mission without touching the identity itself.
func (a *App) LogosCreate(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	identity := ws.Identity()
	if identity == nil {
		a.renderError(w, r, http.StatusBadRequest, "Weave an identity before requesting sigils.")
		return
	}

	if err := ws.TryBegin(opGenerate); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opGenerate)

	token := ws.Token()
	client := a.newAI(a.apiKey(r.Context(), clientID))

	logos, err := client.GenerateLogos(r.Context(), identity.Mission, parseSize(r.FormValue("size")))
	if err != nil {
		slog.Error("sigil generation failed", "error", err)
		a.aiFailure(w, r, err)
		return
	}
	ws.ApplyLogos(token, logos)

	a.Home(w, r)
}

// VariationsCreate derives the simplified, monochrome and outline
// variations from the current primary sigil, replacing any previous set
// wholesale.
func (a *App) VariationsCreate(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	logos := ws.Logos()
	if !logos.HasPrimary() {
		a.renderError(w, r, http.StatusBadRequest, "Weave a primary sigil before requesting variations.")
		return
	}

	if err := ws.TryBegin(opVariations); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opVariations)

	token := ws.Token()
	client := a.newAI(a.apiKey(r.Context(), clientID))

	variations, err := client.GenerateVariations(r.Context(), logos.Primary)
	if err != nil {
		slog.Error("variation generation failed", "error", err)
		a.aiFailure(w, r, err)
		return
	}
	ws.ApplyVariations(token, variations)

	a.Home(w, r)
}

// SigilRefine modifies the primary or secondary sigil per a free-text
// instruction. A response without an image means the model declined;
// the current sigil stays.
func (a *App) SigilRefine(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	kind := r.FormValue("kind")
	instruction := strings.TrimSpace(r.FormValue("instruction"))
	if instruction == "" {
		a.renderError(w, r, http.StatusBadRequest, "Describe how the sigil should change.")
		return
	}

	logos := ws.Logos()
	var image []byte
	switch kind {
	case "primary":
		image = logos.Primary
	case "secondary":
		image = logos.Secondary
	default:
		a.renderError(w, r, http.StatusBadRequest, "Unknown sigil.")
		return
	}
	if len(image) == 0 {
		a.renderError(w, r, http.StatusBadRequest, "That sigil has not been woven yet.")
		return
	}

	if err := ws.TryBegin(opRefine); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opRefine)

	token := ws.Token()
	client := a.newAI(a.apiKey(r.Context(), clientID))

	refined, err := client.RefineLogo(r.Context(), image, instruction)
	if err != nil {
		slog.Error("sigil refinement failed", "error", err, "kind", kind)
		a.aiFailure(w, r, err)
		return
	}
	if refined != nil {
		if applied, err := ws.UpdateLogo(token, kind, refined); err != nil {
			slog.Warn("refined sigil rejected", "error", err)
		} else if !applied {
			slog.Info("refined sigil discarded as stale", "kind", kind)
		}
	}

	a.Home(w, r)
}

// Regenerate discards the current identity so a new mission can be
// woven. Chat history survives on purpose.
func (a *App) Regenerate(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	a.hub.Get(clientID).BeginGeneration()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseSize maps the optional size form value onto a resolution,
// defaulting to 2K.
func parseSize(v string) models.ImageSize {
	switch v {
	case "1K":
		return models.Size1K
	case "4K":
		return models.Size4K
	default:
		return models.Size2K
	}
}
