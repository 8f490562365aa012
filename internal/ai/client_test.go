// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mantle/internal/models"
)

// ---------- Helpers ----------

// newTestClient returns a Client pointed at the given test server.
func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		APIKey:  "AIzaTestKey",
		BaseURL: srv.URL,
	})
}

// textSuccessBody builds a Gemini generateContent response carrying a
// single text part.
func textSuccessBody(t *testing.T, text string) []byte {
	t.Helper()
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return b
}

// imageSuccessBody builds a response carrying a single inline PNG part.
func imageSuccessBody(t *testing.T, png []byte) []byte {
	t.Helper()
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{
				{InlineData: &inlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(png)}},
			}}},
		},
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return b
}

const identityJSON = `{
	"tagline": "Weave Your Mantle",
	"brandVoice": "Regal and concise",
	"colors": [
		{"hex": "#112233", "name": "Deep Loom", "usage": "Primary", "detailedUsage": "Headers", "contrastInfo": "Use white text"},
		{"hex": "#AABBCC", "name": "Pale Thread", "usage": "Accent", "detailedUsage": "Buttons", "contrastInfo": "Use dark text"}
	],
	"theme": {
		"light": {"background": "#FFFFFF", "surface": "#F5F5F5", "textPrimary": "#111111", "textSecondary": "#555555", "accent": "#112233", "border": "#DDDDDD"},
		"dark": {"background": "#0A0A0A", "surface": "#1A1A1A", "textPrimary": "#EEEEEE", "textSecondary": "#AAAAAA", "accent": "#AABBCC", "border": "#333333"}
	},
	"typography": {"headerFamily": "Playfair Display", "bodyFamily": "Inter", "reasoning": "Serif authority with neutral body"}
}`

// ---------- Identity ----------

func TestGenerateIdentitySuccess(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write(textSuccessBody(t, identityJSON))
	}))
	defer srv.Close()

	identity, err := newTestClient(srv).GenerateIdentity(context.Background(), "Sell artisanal yarn")
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	if gotKey != "AIzaTestKey" {
		t.Errorf("api key header = %q", gotKey)
	}
	if identity.Mission != "Sell artisanal yarn" {
		t.Errorf("mission = %q, want the caller's mission", identity.Mission)
	}
	if len(identity.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(identity.Colors))
	}
	if identity.Colors[0].Name != "Deep Loom" {
		t.Errorf("first color = %q", identity.Colors[0].Name)
	}
	if identity.Theme.Dark.Background != "#0A0A0A" {
		t.Errorf("dark background = %q", identity.Theme.Dark.Background)
	}
	if identity.Typography.HeaderFamily != "Playfair Display" {
		t.Errorf("header family = %q", identity.Typography.HeaderFamily)
	}
}

func TestGenerateIdentityAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"status": "INVALID_ARGUMENT", "message": "API key not valid.", "details": [{"reason": "API_KEY_INVALID"}]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GenerateIdentity(context.Background(), "mission")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("error %v should classify as auth error", err)
	}
}

func TestGenerateIdentityServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GenerateIdentity(context.Background(), "mission")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsAuthError(err) {
		t.Errorf("service failure %v must not classify as auth error", err)
	}
}

// ---------- Logos ----------

func TestGenerateLogosPartialResult(t *testing.T) {
	png := []byte("fake-png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if bytes.Contains(body, []byte("primary logo")) {
			w.Write(imageSuccessBody(t, png))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	logos, err := newTestClient(srv).GenerateLogos(context.Background(), "mission", models.Size1K)
	if err != nil {
		t.Fatalf("partial failure must not fail the call: %v", err)
	}
	if !logos.HasPrimary() {
		t.Error("primary missing")
	}
	if logos.HasSecondary() {
		t.Error("secondary should be absent after its request failed")
	}
	if !bytes.Equal(logos.Primary, png) {
		t.Error("primary bytes mismatch")
	}
}

func TestGenerateLogosTotalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).GenerateLogos(context.Background(), "mission", models.Size1K); err == nil {
		t.Fatal("expected error when both logo requests fail")
	}
}

// ---------- Variations ----------

func TestGenerateVariationsDropsFailures(t *testing.T) {
	png := []byte("variation-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if bytes.Contains(body, []byte("black and white")) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(imageSuccessBody(t, png))
	}))
	defer srv.Close()

	variations, err := newTestClient(srv).GenerateVariations(context.Background(), []byte("primary"))
	if err != nil {
		t.Fatalf("GenerateVariations: %v", err)
	}

	if len(variations) != 2 {
		t.Fatalf("got %d variations, want 2 (monochrome dropped)", len(variations))
	}
	if variations[0].Name != "simplified" || variations[1].Name != "outline" {
		t.Errorf("variations out of order: %s, %s", variations[0].Name, variations[1].Name)
	}
	if variations[0].Label != "Simplified Icon" {
		t.Errorf("label = %q", variations[0].Label)
	}
}

// ---------- Refine ----------

func TestRefineLogoNoImageReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Model answered with prose only; no inline image part.
		w.Write(textSuccessBody(t, "I cannot fulfil that request."))
	}))
	defer srv.Close()

	img, err := newTestClient(srv).RefineLogo(context.Background(), []byte("logo"), "make it rounder")
	if err != nil {
		t.Fatalf("RefineLogo: %v", err)
	}
	if img != nil {
		t.Error("expected nil image for an image-less response")
	}
}

func TestRefineLogoSuccess(t *testing.T) {
	png := []byte("refined")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !bytes.Contains(body, []byte("make it rounder")) {
			t.Error("instruction missing from request body")
		}
		if !bytes.Contains(body, []byte("inlineData")) {
			t.Error("source image missing from request body")
		}
		w.Write(imageSuccessBody(t, png))
	}))
	defer srv.Close()

	img, err := newTestClient(srv).RefineLogo(context.Background(), []byte("logo"), "make it rounder")
	if err != nil {
		t.Fatalf("RefineLogo: %v", err)
	}
	if !bytes.Equal(img, png) {
		t.Error("refined image bytes mismatch")
	}
}

// ---------- Chat streaming ----------

func TestStreamChatDeliversChunksInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "alt=sse") {
			t.Errorf("expected alt=sse query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Hel", "lo,", " world"} {
			w.Write([]byte("data: "))
			w.Write(textSuccessBody(t, chunk))
			w.Write([]byte("\n\n"))
		}
	}))
	defer srv.Close()

	var got strings.Builder
	err := newTestClient(srv).StreamChat(context.Background(), nil, nil, "greetings", func(text string) error {
		got.WriteString(text)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if got.String() != "Hello, world" {
		t.Errorf("concatenated stream = %q, want %q", got.String(), "Hello, world")
	}
}

func TestStreamChatIncludesBrandContext(t *testing.T) {
	brand := &models.BrandIdentity{
		Mission: "m", Tagline: "t", BrandVoice: "v",
		Colors:     []models.Color{{Name: "Deep Loom"}},
		Typography: models.FontPairing{HeaderFamily: "H", BodyFamily: "B"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !bytes.Contains(body, []byte("Deep Loom")) {
			t.Error("brand context not present in system instruction")
		}
		if !bytes.Contains(body, []byte("Mantle Steward")) {
			t.Error("persona missing from system instruction")
		}
		w.Write([]byte("data: "))
		w.Write(textSuccessBody(t, "ok"))
		w.Write([]byte("\n\n"))
	}))
	defer srv.Close()

	history := []models.ChatMessage{models.NewChatMessage(models.RoleUser, "earlier question")}
	err := newTestClient(srv).StreamChat(context.Background(), brand, history, "next", func(string) error { return nil })
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
}

// ---------- Key validation ----------

func TestValidateKeyFormat(t *testing.T) {
	cases := []struct {
		key     string
		wantErr bool
	}{
		{"AIzaSyExample123", false},
		{"  AIzaSyExample123  ", false},
		{"", true},
		{"sk-openai-style", true},
		{"aiza-lowercase", true},
	}

	for _, tc := range cases {
		err := ValidateKeyFormat(tc.key)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateKeyFormat(%q) error = %v, wantErr %v", tc.key, err, tc.wantErr)
		}
		if err != nil && !IsAuthError(err) {
			t.Errorf("ValidateKeyFormat(%q) error should be an auth error", tc.key)
		}
	}
}
