// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"mantle/internal/export"
	"mantle/internal/middleware"
)

// ExportPackage assembles and serves the zip brand package. When object
// storage is configured the archive is also kept there, but a storage
// failure never blocks the download.
func (a *App) ExportPackage(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	identity := ws.Identity()
	if identity == nil {
		a.renderError(w, r, http.StatusBadRequest, "Weave an identity before exporting.")
		return
	}

	if err := ws.TryBegin(opExport); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opExport)

	logos := ws.Logos()

	data, err := export.BuildPackage(r.Context(), identity, &logos)
	if err != nil {
		slog.Error("package assembly failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := export.ArchiveName(identity)

	if a.storage != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			url, err := a.storage.ArchivePackage(ctx, clientID, name, "application/zip", data)
			if err != nil {
				slog.Warn("package archival failed", "error", err)
				return
			}
			slog.Info("package archived", "client", clientID, "url", url)
		}()
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}

// ExportGuidePDF captures the dashboard in a headless browser and
// serves it as a paginated PDF.
func (a *App) ExportGuidePDF(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	if ws.Identity() == nil {
		a.renderError(w, r, http.StatusBadRequest, "Weave an identity before exporting.")
		return
	}

	if err := ws.TryBegin(opExport); err != nil {
		a.aiFailure(w, r, err)
		return
	}
	defer ws.End(opExport)

	// The headless browser has no session cookie; the query parameter
	// routes it to this client's workspace.
	capture, err := a.capture(r.Context(), a.baseURL+"/?client="+clientID)
	if err != nil {
		slog.Error("dashboard capture failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	pdf, err := export.BuildGuidePDF(capture)
	if err != nil {
		slog.Error("guide pdf assembly failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="mantle-guide.pdf"`)
	w.Write(pdf)
}
