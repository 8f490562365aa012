// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workspace holds the in-memory brand state for one client
// session: the current identity, logos, and the consultant transcript.
// Generation results are tagged with a monotonically increasing token so
// a slow response that arrives after the user started a fresh generation
// is discarded instead of clobbering newer state.
package workspace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"mantle/internal/models"
)

// ErrBusy is returned when an expensive operation is already in flight
// for this workspace and a duplicate invocation is rejected.
var ErrBusy = errors.New("workspace: operation already in progress")

// ErrStreamActive is returned when a second streaming model message is
// requested while one is still growing.
var ErrStreamActive = errors.New("workspace: a model response is already streaming")

// Workspace is the mutable brand state of a single session. All methods
// are safe for concurrent use; completed async operations are the only
// write paths and are serialised by the mutex.
type Workspace struct {
	mu         sync.Mutex
	identity   *models.BrandIdentity
	logos      models.LogoResult
	messages   []models.ChatMessage
	generation uint64
	busy       map[string]bool
	streaming  uuid.UUID // ID of the in-progress model message, zero when none
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{
		logos: models.LogoResult{Variations: []models.LogoVariation{}},
		busy:  make(map[string]bool),
	}
}

// --- Generation token ---

// BeginGeneration resets the brand state for a fresh run and returns the
// token that must accompany the eventual results. Invalidates any result
// still in flight from an earlier run.
func (w *Workspace) BeginGeneration() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation++
	w.identity = nil
	w.logos = models.LogoResult{Variations: []models.LogoVariation{}}
	return w.generation
}

// ApplyIdentity stores a generated identity. Returns false (and stores
// nothing) when the token is stale.
func (w *Workspace) ApplyIdentity(token uint64, identity *models.BrandIdentity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.generation {
		return false
	}
	w.identity = identity
	return true
}

// ApplyLogos stores a logo result under the same staleness rule.
func (w *Workspace) ApplyLogos(token uint64, logos *models.LogoResult) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.generation {
		return false
	}
	w.logos = *logos
	if w.logos.Variations == nil {
		w.logos.Variations = []models.LogoVariation{}
	}
	return true
}

// ApplyVariations replaces the variation set wholesale; variations are
// never merged incrementally.
func (w *Workspace) ApplyVariations(token uint64, variations []models.LogoVariation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.generation {
		return false
	}
	if variations == nil {
		variations = []models.LogoVariation{}
	}
	w.logos.Variations = variations
	return true
}

// Token returns the current generation token without resetting state,
// for operations (refine, variations) that extend the current brand.
func (w *Workspace) Token() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation
}

// UpdateLogo swaps a refined image into the named slot ("primary" or
// "secondary"). Refinement extends the current brand, so it carries the
// same staleness rule as the other result writers.
func (w *Workspace) UpdateLogo(token uint64, kind string, image []byte) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if token != w.generation {
		return false, nil
	}
	switch kind {
	case "primary":
		w.logos.Primary = image
	case "secondary":
		w.logos.Secondary = image
	default:
		return false, fmt.Errorf("workspace: unknown logo slot %q", kind)
	}
	return true, nil
}

// Identity returns the current identity, or nil before generation.
func (w *Workspace) Identity() *models.BrandIdentity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.identity
}

// Logos returns a snapshot of the current logo state.
func (w *Workspace) Logos() models.LogoResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.logos
}

// --- Busy latches ---

// TryBegin latches the named operation, rejecting duplicates while one
// invocation is in flight (the "is exporting" / "is generating" flags).
func (w *Workspace) TryBegin(op string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy[op] {
		return ErrBusy
	}
	w.busy[op] = true
	return nil
}

// End releases the named operation latch.
func (w *Workspace) End(op string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.busy, op)
}

// --- Chat transcript ---

// AppendUser adds a user message to the transcript and returns it.
func (w *Workspace) AppendUser(text string) models.ChatMessage {
	msg := models.NewChatMessage(models.RoleUser, text)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msg)
	return msg
}

// BeginModelMessage appends an empty model message whose ID is the stable
// target for streamed chunks. Only one model message may be growing at a
// time per workspace.
func (w *Workspace) BeginModelMessage() (models.ChatMessage, error) {
	msg := models.NewChatMessage(models.RoleModel, "")
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.streaming != uuid.Nil {
		return models.ChatMessage{}, ErrStreamActive
	}
	w.streaming = msg.ID
	w.messages = append(w.messages, msg)
	return msg, nil
}

// AppendChunk concatenates streamed text onto the message with the given
// ID. Lookup is by ID, never by position, so the transcript stays correct
// if other messages are appended concurrently.
func (w *Workspace) AppendChunk(id uuid.UUID, text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.messages {
		if w.messages[i].ID == id {
			w.messages[i].Text += text
			return true
		}
	}
	return false
}

// FinishModelMessage marks streaming complete for the given message.
func (w *Workspace) FinishModelMessage(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.streaming == id {
		w.streaming = uuid.Nil
	}
}

// SetMessageText replaces a message's text wholesale (used to surface a
// stream failure in place of a partial response).
func (w *Workspace) SetMessageText(id uuid.UUID, text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.messages {
		if w.messages[i].ID == id {
			w.messages[i].Text = text
			return true
		}
	}
	return false
}

// Messages returns a copy of the transcript.
func (w *Workspace) Messages() []models.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

// --- Hub ---

// Hub maps session IDs to their workspaces.
type Hub struct {
	mu     sync.Mutex
	spaces map[string]*Workspace
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{spaces: make(map[string]*Workspace)}
}

// Get returns the workspace for a session, creating it on first use.
func (h *Hub) Get(sessionID string) *Workspace {
	h.mu.Lock()
	defer h.mu.Unlock()
	ws, ok := h.spaces[sessionID]
	if !ok {
		ws = New()
		h.spaces[sessionID] = ws
	}
	return ws
}

// Drop removes a session's workspace (logout).
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.spaces, sessionID)
}
