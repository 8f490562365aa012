// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"mantle/internal/models"
)

const (
	primaryLogoPrompt = `Design a primary logo for a brand with this mission: %s.
Style: Minimalist, Vector-like, Professional, Scalable.
Do not include complex text. Focus on a strong symbol.`

	secondaryLogoPrompt = `Design a secondary brand mark or icon pattern for a brand with this mission: %s.
Style: Abstract, Complementary to a main logo, Monoline or Solid shape.`

	refinePrompt = `Modify this logo based on the following instruction: %s. Maintain the core identity but apply the requested change.`
)

// variationPrompt is one of the fixed transform requests issued when the
// user asks for logo variations.
type variationPrompt struct {
	name  string
	label string
	text  string
}

var variationPrompts = []variationPrompt{
	{
		name:  "simplified",
		label: "Simplified Icon",
		text:  "Create a simplified, flat vector icon version of this logo. Minimalist, high contrast, suitable for a favicon or app icon. Remove small details.",
	},
	{
		name:  "monochrome",
		label: "Monochrome (B&W)",
		text:  "Convert this logo into a strict black and white (ink stamp style) version. High contrast, no greyscale, solid shapes.",
	},
	{
		name:  "outline",
		label: "Outline Version",
		text:  "Create a line-art / outline version of this logo. Elegant strokes, white background.",
	},
}

// generateImage issues one image request and returns the decoded PNG
// bytes, or nil when the model returned no image part.
func (c *Client) generateImage(ctx context.Context, parts []geminiPart, size models.ImageSize) ([]byte, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &generationConfig{
			ImageConfig: &imageConfig{
				AspectRatio: "1:1",
				ImageSize:   string(size),
			},
		},
	}

	result, err := c.generate(ctx, c.imageClient, c.config.ImageModel, body)
	if err != nil {
		return nil, err
	}
	return result.firstImage()
}

// GenerateLogos requests the primary sigil and secondary crest as two
// logically independent image calls running concurrently. Either may fail
// on its own; a partial result (one logo present, one absent) is valid
// and returned as-is. An error is returned only when both requests fail,
// so the caller has nothing to show.
func (c *Client) GenerateLogos(ctx context.Context, mission string, size models.ImageSize) (*models.LogoResult, error) {
	if size == "" {
		size = models.Size1K
	}

	var (
		wg                    sync.WaitGroup
		primary, secondary    []byte
		primaryErr, secondErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primary, primaryErr = c.generateImage(ctx,
			[]geminiPart{{Text: fmt.Sprintf(primaryLogoPrompt, mission)}}, size)
	}()
	go func() {
		defer wg.Done()
		secondary, secondErr = c.generateImage(ctx,
			[]geminiPart{{Text: fmt.Sprintf(secondaryLogoPrompt, mission)}}, size)
	}()
	wg.Wait()

	if primaryErr != nil && secondErr != nil {
		return nil, fmt.Errorf("gemini: both logo requests failed: primary: %v; secondary: %w", primaryErr, secondErr)
	}
	if primaryErr != nil {
		slog.Warn("primary logo generation failed", "error", primaryErr)
	}
	if secondErr != nil {
		slog.Warn("secondary logo generation failed", "error", secondErr)
	}

	return &models.LogoResult{
		Primary:    primary,
		Secondary:  secondary,
		Variations: []models.LogoVariation{},
	}, nil
}

// GenerateVariations issues the fixed set of named transform requests
// against the primary logo, concurrently. A variation that fails or
// returns no image data is logged and dropped from the result rather than
// failing the batch. The returned slice preserves the fixed prompt order.
func (c *Client) GenerateVariations(ctx context.Context, primaryPNG []byte) ([]models.LogoVariation, error) {
	results := make([]*models.LogoVariation, len(variationPrompts))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range variationPrompts {
		g.Go(func() error {
			img, err := c.generateImage(gctx,
				[]geminiPart{imagePart(primaryPNG), {Text: p.text}}, models.Size1K)
			if err != nil {
				slog.Warn("logo variation failed", "variation", p.name, "error", err)
				return nil // isolated per item, never escalates to siblings
			}
			if img == nil {
				slog.Warn("logo variation returned no image", "variation", p.name)
				return nil
			}
			results[i] = &models.LogoVariation{Name: p.name, Label: p.label, Image: img}
			return nil
		})
	}
	g.Wait()

	variations := make([]models.LogoVariation, 0, len(results))
	for _, v := range results {
		if v != nil {
			variations = append(variations, *v)
		}
	}
	return variations, nil
}

// RefineLogo performs an image-conditioned edit of an existing logo.
// A (nil, nil) return means the model produced no image, which is
// distinct from a request failure.
func (c *Client) RefineLogo(ctx context.Context, image []byte, instruction string) ([]byte, error) {
	return c.generateImage(ctx,
		[]geminiPart{imagePart(image), {Text: fmt.Sprintf(refinePrompt, instruction)}},
		models.Size1K)
}
