// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mantle/internal/middleware"
)

// chatEvent is one SSE payload sent to the browser.
type chatEvent struct {
	Text string `json:"text"`
}

// ChatSend appends the user's message to the transcript and streams the
// steward's reply back as server-sent events, persisting each chunk as
// it arrives so the transcript never lags the stream.
func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.ClientIDFromCtx(r.Context())
	ws := a.hub.Get(clientID)

	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// History snapshot before this exchange; the new message travels
	// separately.
	history := ws.Messages()
	identity := ws.Identity()

	ws.AppendUser(message)
	reply, err := ws.BeginModelMessage()
	if err != nil {
		http.Error(w, "a reply is already streaming", http.StatusConflict)
		return
	}
	defer ws.FinishModelMessage(reply.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	client := a.newAI(a.apiKey(r.Context(), clientID))
	streamErr := client.StreamChat(r.Context(), identity, history, message, func(text string) error {
		ws.AppendChunk(reply.ID, text)

		payload, err := json.Marshal(chatEvent{Text: text})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if streamErr != nil {
		slog.Error("steward stream failed", "error", streamErr)
		ws.SetMessageText(reply.ID, "The steward is momentarily unavailable. Please try again.")
		fmt.Fprint(w, "event: error\ndata: stream interrupted\n\n")
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
