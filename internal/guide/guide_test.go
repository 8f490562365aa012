// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package guide

import (
	"strings"
	"testing"

	"mantle/internal/models"
)

func testIdentity() *models.BrandIdentity {
	return &models.BrandIdentity{
		Mission:    "Sell artisanal yarn to the discerning knitter",
		Tagline:    "Weave Your Mantle",
		BrandVoice: "Regal",
		Colors: []models.Color{
			{Hex: "#112233", Name: "Deep Loom", Usage: "Primary"},
			{Hex: "#AABBCC", Name: "Pale Thread", Usage: "Accent"},
		},
		Theme: models.Theme{
			Light: models.ThemeColors{Background: "#FFFFFF", Accent: "#112233"},
			Dark:  models.ThemeColors{Background: "#0A0A0A", Accent: "#AABBCC"},
		},
		Typography: models.FontPairing{
			HeaderFamily: "Playfair Display",
			BodyFamily:   "Inter",
			Reasoning:    "Serif authority with neutral body",
		},
	}
}

func TestMarkdownContainsBrandData(t *testing.T) {
	out, err := Markdown(testIdentity())
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	for _, frag := range []string{
		"# Weave Your Mantle - Mantle Package",
		"> Sell artisanal yarn to the discerning knitter",
		"### Deep Loom",
		"`#112233`",
		"### Pale Thread",
		"Playfair Display",
		"Serif authority with neutral body",
		"### Light Theme (Summer Mantle)",
		"### Dark Theme (Winter Mantle)",
		"`#0A0A0A`",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("guide missing %q", frag)
		}
	}
}

func TestMarkdownFallsBackWithoutTagline(t *testing.T) {
	identity := testIdentity()
	identity.Tagline = ""

	out, err := Markdown(identity)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(out, "# Brand Identity - Mantle Package") {
		t.Error("expected fallback title")
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(testIdentity())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	if !strings.Contains(out, "<h1") {
		t.Error("expected rendered heading")
	}
	if !strings.Contains(out, "Deep Loom") {
		t.Error("palette missing from rendered guide")
	}
	if strings.Contains(out, "{{") {
		t.Error("unexecuted template action leaked into output")
	}
}
