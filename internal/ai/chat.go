// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mantle/internal/models"
)

const stewardPersona = `You are "The Mantle Steward", a royal tailor and brand strategist for the Stagware ecosystem.

Your philosophy:
"Your code is the muscle; your brand is the Mantle."
You believe a brand is a "coat" worn by an application.
You speak with a slightly regal, professional, and authoritative tone. Use metaphors about weaving, stitching, seasons (Winter/Summer), and layers.

Your goal is to help the user refine their brand, answer questions about usage, marketing strategy, and design theory.
Keep answers concise, professional, and helpful.`

// stewardInstruction builds the consultant system prompt, primed with the
// current brand context when one exists.
func stewardInstruction(brand *models.BrandIdentity) string {
	if brand == nil {
		return stewardPersona
	}

	names := make([]string, len(brand.Colors))
	for i, c := range brand.Colors {
		names[i] = c.Name
	}

	context := fmt.Sprintf(`

CURRENT CLIENT CONTEXT:
Mission: %s
Tagline: %s
Brand Voice: %s
Colors: %s
Fonts: %s + %s`,
		brand.Mission, brand.Tagline, brand.BrandVoice,
		strings.Join(names, ", "),
		brand.Typography.HeaderFamily, brand.Typography.BodyFamily)

	return stewardPersona + context
}

// StreamChat sends the transcript plus the new user message to the
// reasoning model and delivers the response as ordered text chunks via
// onChunk. Chunks arrive in server order and are never reordered or
// dropped; the caller concatenates them into the growing model message.
// Streaming stops early if onChunk returns an error.
func (c *Client) StreamChat(ctx context.Context, brand *models.BrandIdentity, history []models.ChatMessage, message string, onChunk func(text string) error) error {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, geminiContent{
			Role:  m.Role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  models.RoleUser,
		Parts: []geminiPart{{Text: message}},
	})

	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: stewardInstruction(brand)}}},
		Contents:          contents,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse",
		c.config.BaseURL, c.config.TextModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	// The default client's overall timeout would cut long streams short;
	// rely on ctx for cancellation instead.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("gemini http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return classifyStatus(resp.StatusCode, respBody)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk geminiResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("gemini stream chunk: %w", err)
		}
		if text := chunk.firstText(); text != "" {
			if err := onChunk(text); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("gemini stream read: %w", err)
	}
	return nil
}
