// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai is the brand generation client: a hand-rolled Google Gemini
// REST client (POST /v1beta/models/{model}:generateContent) that produces
// the identity JSON, logo imagery, logo variations, refinements, and the
// streaming consultant chat. It is the sole source of identity and
// imagery for the rest of the application.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds credentials and model selection for the client.
type Config struct {
	APIKey     string
	BaseURL    string // defaults to the public Gemini endpoint
	TextModel  string // reasoning model for identity and chat
	ImageModel string // image generation model for logos
}

// Client issues requests against the Gemini v1beta REST API.
type Client struct {
	config      Config
	client      *http.Client // text requests
	imageClient *http.Client // image requests get a longer deadline
}

// NewClient creates a Gemini client, applying defaults for any unset
// model or endpoint fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-3-pro-preview"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-3-pro-image-preview"
	}
	return &Client{
		config:      cfg,
		client:      &http.Client{Timeout: 60 * time.Second},
		imageClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// --- Gemini wire types ---

type geminiRequest struct {
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	Contents          []geminiContent   `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

// inlineData carries base64-encoded raster payloads in both directions.
type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string       `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema      `json:"responseSchema,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// schema mirrors the subset of the OpenAPI schema object that Gemini's
// structured output accepts.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// firstText returns the first text part of the first candidate.
func (r *geminiResponse) firstText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	for _, part := range r.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// firstImage returns the first inline image payload of the first
// candidate, decoded from base64, or nil when no image was returned.
func (r *geminiResponse) firstImage() ([]byte, error) {
	if len(r.Candidates) == 0 {
		return nil, nil
	}
	for _, part := range r.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			data, err := decodeBase64(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini inline data: %w", err)
			}
			return data, nil
		}
	}
	return nil, nil
}

// generate posts a generateContent request and decodes the response.
func (c *Client) generate(ctx context.Context, httpClient *http.Client, model string, body geminiRequest) (*geminiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, respBody)
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini unmarshal: %w", err)
	}
	return &result, nil
}

// imagePart builds an inlineData part from raw PNG bytes.
func imagePart(png []byte) geminiPart {
	return geminiPart{InlineData: &inlineData{
		MimeType: "image/png",
		Data:     encodeBase64(png),
	}}
}

// ValidateKeyFormat rejects credentials that cannot possibly be Google
// API keys before any network call is made.
func ValidateKeyFormat(apiKey string) error {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return &AuthError{Message: "API key is required"}
	}
	if !strings.HasPrefix(key, "AIza") {
		return &AuthError{Message: `invalid API key format: Google API keys start with "AIza"`}
	}
	return nil
}
