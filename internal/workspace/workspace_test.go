// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workspace

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"mantle/internal/models"
)

func TestStaleIdentityDiscarded(t *testing.T) {
	ws := New()

	old := ws.BeginGeneration()
	fresh := ws.BeginGeneration() // user restarted before the first finished

	slow := &models.BrandIdentity{Tagline: "stale"}
	if ws.ApplyIdentity(old, slow) {
		t.Error("stale result must be rejected")
	}
	if ws.Identity() != nil {
		t.Error("stale identity was stored")
	}

	current := &models.BrandIdentity{Tagline: "fresh"}
	if !ws.ApplyIdentity(fresh, current) {
		t.Error("current result must be accepted")
	}
	if got := ws.Identity(); got == nil || got.Tagline != "fresh" {
		t.Errorf("identity = %+v, want the fresh one", got)
	}
}

func TestBeginGenerationResetsBrandState(t *testing.T) {
	ws := New()
	token := ws.BeginGeneration()
	ws.ApplyIdentity(token, &models.BrandIdentity{Tagline: "first"})
	ws.ApplyLogos(token, &models.LogoResult{Primary: []byte("img")})

	ws.BeginGeneration()

	if ws.Identity() != nil {
		t.Error("identity should be cleared on fresh generation")
	}
	if logos := ws.Logos(); logos.HasPrimary() {
		t.Error("logos should be cleared on fresh generation")
	}
}

func TestVariationsReplacedWholesale(t *testing.T) {
	ws := New()
	token := ws.BeginGeneration()

	ws.ApplyVariations(token, []models.LogoVariation{
		{Name: "simplified"}, {Name: "monochrome"},
	})
	ws.ApplyVariations(token, []models.LogoVariation{{Name: "outline"}})

	logos := ws.Logos()
	if len(logos.Variations) != 1 || logos.Variations[0].Name != "outline" {
		t.Errorf("variations = %+v, want wholesale replacement", logos.Variations)
	}
}

func TestUpdateLogoSlots(t *testing.T) {
	ws := New()
	token := ws.BeginGeneration()

	ok, err := ws.UpdateLogo(token, "primary", []byte("refined"))
	if err != nil || !ok {
		t.Fatalf("UpdateLogo primary: ok=%v err=%v", ok, err)
	}
	if string(ws.Logos().Primary) != "refined" {
		t.Error("primary not updated")
	}

	if _, err := ws.UpdateLogo(token, "tertiary", nil); err == nil {
		t.Error("expected error for unknown slot")
	}

	// Stale token: silently dropped.
	stale := token
	ws.BeginGeneration()
	ok, err = ws.UpdateLogo(stale, "primary", []byte("late"))
	if err != nil {
		t.Fatalf("UpdateLogo stale: %v", err)
	}
	if ok {
		t.Error("stale refine result must be discarded")
	}
}

func TestBusyLatch(t *testing.T) {
	ws := New()

	if err := ws.TryBegin("export"); err != nil {
		t.Fatalf("first TryBegin: %v", err)
	}
	if err := ws.TryBegin("export"); !errors.Is(err, ErrBusy) {
		t.Errorf("duplicate TryBegin error = %v, want ErrBusy", err)
	}
	// Different operation is unaffected.
	if err := ws.TryBegin("generate"); err != nil {
		t.Errorf("unrelated op rejected: %v", err)
	}

	ws.End("export")
	if err := ws.TryBegin("export"); err != nil {
		t.Errorf("TryBegin after End: %v", err)
	}
}

func TestChatStreamingAppendsByID(t *testing.T) {
	ws := New()
	ws.AppendUser("hello there")

	msg, err := ws.BeginModelMessage()
	if err != nil {
		t.Fatalf("BeginModelMessage: %v", err)
	}

	// Only one growing model message at a time.
	if _, err := ws.BeginModelMessage(); !errors.Is(err, ErrStreamActive) {
		t.Errorf("second BeginModelMessage error = %v, want ErrStreamActive", err)
	}

	for _, chunk := range []string{"Hel", "lo,", " world"} {
		if !ws.AppendChunk(msg.ID, chunk) {
			t.Fatalf("AppendChunk(%q) target not found", chunk)
		}
	}
	ws.FinishModelMessage(msg.ID)

	messages := ws.Messages()
	if len(messages) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(messages))
	}
	if messages[1].Text != "Hello, world" {
		t.Errorf("streamed text = %q, want %q", messages[1].Text, "Hello, world")
	}

	// Stream finished: a new model message may begin.
	if _, err := ws.BeginModelMessage(); err != nil {
		t.Errorf("BeginModelMessage after finish: %v", err)
	}
}

func TestAppendChunkUnknownID(t *testing.T) {
	ws := New()
	if ws.AppendChunk(uuid.New(), "orphan") {
		t.Error("appending to an unknown message should report failure")
	}
}

func TestHubSessionsIsolated(t *testing.T) {
	hub := NewHub()

	a := hub.Get("session-a")
	b := hub.Get("session-b")
	if a == b {
		t.Fatal("sessions must have distinct workspaces")
	}
	if hub.Get("session-a") != a {
		t.Error("same session should return the same workspace")
	}

	token := a.BeginGeneration()
	a.ApplyIdentity(token, &models.BrandIdentity{Tagline: "a"})
	if b.Identity() != nil {
		t.Error("state leaked between sessions")
	}

	hub.Drop("session-a")
	if hub.Get("session-a") == a {
		t.Error("dropped session should get a fresh workspace")
	}
}
