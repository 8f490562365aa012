// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package css renders the brand's design tokens as CSS custom properties:
// font families, named palette colours, and the six theme slots under a
// light default with a dark media-query override.
package css

import (
	"fmt"
	"strings"

	"mantle/internal/models"
	"mantle/internal/slug"
)

// Tokens renders the stitching pattern for a generated identity. The
// output is the exact text shipped in the export package as mantle.css.
func Tokens(identity *models.BrandIdentity) string {
	var sb strings.Builder

	sb.WriteString(":root {\n")
	sb.WriteString("  /* The Royal Script */\n")
	fmt.Fprintf(&sb, "  --font-header: '%s', serif;\n", identity.Typography.HeaderFamily)
	fmt.Fprintf(&sb, "  --font-body: '%s', sans-serif;\n", identity.Typography.BodyFamily)
	sb.WriteString("\n  /* Thread & Dye */\n")
	for _, c := range identity.Colors {
		fmt.Fprintf(&sb, "  --color-%s: %s;\n", slug.Kebab(c.Name), c.Hex)
	}
	sb.WriteString("\n  /* Summer Mantle (Light) */\n")
	writeTheme(&sb, "  ", identity.Theme.Light)
	sb.WriteString("}\n\n")

	sb.WriteString("@media (prefers-color-scheme: dark) {\n  :root {\n")
	sb.WriteString("    /* Winter Mantle (Dark) */\n")
	writeTheme(&sb, "    ", identity.Theme.Dark)
	sb.WriteString("  }\n}\n")

	return sb.String()
}

func writeTheme(sb *strings.Builder, indent string, t models.ThemeColors) {
	fmt.Fprintf(sb, "%s--bg-page: %s;\n", indent, t.Background)
	fmt.Fprintf(sb, "%s--bg-surface: %s;\n", indent, t.Surface)
	fmt.Fprintf(sb, "%s--text-main: %s;\n", indent, t.TextPrimary)
	fmt.Fprintf(sb, "%s--text-muted: %s;\n", indent, t.TextSecondary)
	fmt.Fprintf(sb, "%s--border-dim: %s;\n", indent, t.Border)
	fmt.Fprintf(sb, "%s--brand-accent: %s;\n", indent, t.Accent)
}

// FontImportURL builds the Google Fonts stylesheet URL for the pairing.
func FontImportURL(t models.FontPairing) string {
	header := strings.ReplaceAll(t.HeaderFamily, " ", "+")
	body := strings.ReplaceAll(t.BodyFamily, " ", "+")
	return fmt.Sprintf(
		"https://fonts.googleapis.com/css2?family=%s:wght@400;700&family=%s:wght@300;400;500&display=swap",
		header, body)
}
