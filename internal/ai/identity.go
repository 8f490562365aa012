// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"mantle/internal/models"
)

const identityPrompt = `Create a comprehensive brand identity for a company with this mission: %q.

1. Provide a color palette of 5 distinct colors (Hex, Name, Usage, Notes, Accessibility).
2. Define a Light Mode and Dark Mode UI color scheme derived from the palette. For each mode, specify:
   - Background Color
   - Surface/Card Color
   - Text Primary Color
   - Text Secondary Color
   - Accent/Button Color
   - Border Color
3. Provide a typography pairing.
4. Provide a tagline and brand voice.`

// identitySchema constrains the structured JSON output to the
// BrandIdentity shape (minus mission, which is appended client-side).
func identitySchema() *schema {
	themeColors := func() *schema {
		return &schema{Type: "OBJECT", Properties: map[string]*schema{
			"background":    {Type: "STRING"},
			"surface":       {Type: "STRING"},
			"textPrimary":   {Type: "STRING"},
			"textSecondary": {Type: "STRING"},
			"accent":        {Type: "STRING"},
			"border":        {Type: "STRING"},
		}}
	}

	return &schema{Type: "OBJECT", Properties: map[string]*schema{
		"tagline":    {Type: "STRING"},
		"brandVoice": {Type: "STRING"},
		"colors": {Type: "ARRAY", Items: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"hex":           {Type: "STRING", Description: "Hex code e.g. #FFFFFF"},
				"name":          {Type: "STRING", Description: "Creative name for the color"},
				"usage":         {Type: "STRING", Description: "Short category: Primary, Accent, etc."},
				"detailedUsage": {Type: "STRING", Description: "Specific advice on where to apply this color in UI/Marketing"},
				"contrastInfo":  {Type: "STRING", Description: "Accessibility notes regarding text contrast ratios"},
			},
		}},
		"theme": {Type: "OBJECT", Properties: map[string]*schema{
			"light": themeColors(),
			"dark":  themeColors(),
		}},
		"typography": {Type: "OBJECT", Properties: map[string]*schema{
			"headerFamily": {Type: "STRING", Description: "Name of a Google Font for headers"},
			"bodyFamily":   {Type: "STRING", Description: "Name of a Google Font for body text"},
			"reasoning":    {Type: "STRING"},
		}},
	}}
}

// GenerateIdentity asks the reasoning model for a complete brand identity
// (palette, themes, typography, tagline, voice — logos are generated
// separately). A rejected credential surfaces as *AuthError; every other
// failure (network, malformed response) is generic.
func (c *Client) GenerateIdentity(ctx context.Context, mission string) (*models.BrandIdentity, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(identityPrompt, mission)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   identitySchema(),
		},
	}

	result, err := c.generate(ctx, c.client, c.config.TextModel, body)
	if err != nil {
		return nil, err
	}

	text := result.firstText()
	if text == "" {
		return nil, fmt.Errorf("gemini: no text in identity response")
	}

	var identity models.BrandIdentity
	if err := json.Unmarshal([]byte(text), &identity); err != nil {
		return nil, fmt.Errorf("gemini: identity payload: %w", err)
	}
	identity.Mission = mission
	return &identity, nil
}
