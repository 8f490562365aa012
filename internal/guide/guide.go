// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package guide generates the human-readable brand guide shipped as the
// package README, and renders it to HTML for the dashboard via goldmark.
package guide

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"mantle/internal/models"
)

// md is the configured goldmark instance, reused across calls. The guide
// embeds fenced CSS blocks, so highlighting is enabled.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

var guideTmpl = template.Must(template.New("guide").Parse(`# {{.Title}} - Mantle Package

> {{.Mission}}

---

## Package Contents

### Brand Assets
- **sigils/** - Logo files in multiple formats
  - Primary Sigil (PNG, PNG-Transparent, SVG)
  - Secondary Crest (PNG, PNG-Transparent, SVG)
  - Logo Variations: Simplified, Monochrome, Outline (PNG, PNG-Transparent, SVG each)

### Brand Data
- **mantle-identity.json** - Complete brand identity data in JSON format
- **mantle.css** - CSS variables and theme configuration
- **README.md** - This comprehensive brand guide

---

## Color Palette
{{range .Colors}}
### {{.Name}}
- **Hex:** ` + "`{{.Hex}}`" + `
- **Usage:** {{.Usage}}
{{end}}
---

## Typography

### Header Font
- **Family:** {{.Typography.HeaderFamily}}
- **Usage:** Headings, titles, and brand statements

### Body Font
- **Family:** {{.Typography.BodyFamily}}
- **Usage:** Body text, descriptions, and general content

### Font Pairing Rationale
{{.Typography.Reasoning}}

---

## Theme Configuration

### Light Theme (Summer Mantle)
{{template "theme" .Theme.Light}}
### Dark Theme (Winter Mantle)
{{template "theme" .Theme.Dark}}
---

## Usage Guide

### Using the Logos

**SVG Files (Recommended for Web & Print)**
- Vector graphics that scale infinitely without quality loss
- Perfect for responsive web design, high-DPI displays, and print materials
- Can be styled with CSS (colors, sizes, etc.)

**PNG Files (Raster Images)**
- High-quality bitmap images
- **Standard PNG:** Original logo with background
- **Transparent PNG:** Files ending in ` + "`-transparent.png`" + ` have white backgrounds removed
- Use transparent versions for overlaying on colored backgrounds
- Ideal for social media, presentations, and quick mockups

### Implementing the CSS Theme

Import ` + "`mantle.css`" + ` into your project and use the variables:

` + "```css" + `
.header {
  font-family: var(--font-header);
  color: var(--text-main);
  background: var(--bg-surface);
}

.button {
  background: var(--brand-accent);
}
` + "```" + `

Theme switching via ` + "`prefers-color-scheme`" + ` is already configured in mantle.css.

---

## Brand Guidelines

### Logo Usage
- Maintain clear space around logos (minimum 20% of logo height)
- Use Primary Sigil for main branding
- Use Secondary Crest for secondary applications
- Use variations for specific contexts (simplified for small sizes, monochrome for single-color applications)

### Color Application
- Use accent color sparingly for calls-to-action and highlights
- Maintain sufficient contrast ratios for accessibility (WCAG AA minimum)
- Refer to color usage guidelines in the palette section

### Typography Hierarchy
- Use header font for H1-H3 and brand statements
- Use body font for paragraphs, UI elements, and general text

---

**Generated by Mantle** - The Identity Layer for Modern Brands
{{define "theme"}}- **Background:** ` + "`{{.Background}}`" + `
- **Surface:** ` + "`{{.Surface}}`" + `
- **Primary Text:** ` + "`{{.TextPrimary}}`" + `
- **Secondary Text:** ` + "`{{.TextSecondary}}`" + `
- **Border:** ` + "`{{.Border}}`" + `
- **Accent:** ` + "`{{.Accent}}`" + `
{{end}}`))

// guideData adds the derived title to the identity for the template.
type guideData struct {
	*models.BrandIdentity
	Title string
}

// Markdown renders the brand guide document for an identity.
func Markdown(identity *models.BrandIdentity) (string, error) {
	title := strings.TrimSpace(identity.Tagline)
	if title == "" {
		title = "Brand Identity"
	}

	var buf bytes.Buffer
	if err := guideTmpl.Execute(&buf, guideData{BrandIdentity: identity, Title: title}); err != nil {
		return "", fmt.Errorf("guide: render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the guide as HTML for the dashboard page.
func HTML(identity *models.BrandIdentity) (string, error) {
	source, err := Markdown(identity)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("guide: render html: %w", err)
	}
	return buf.String(), nil
}
