// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives machine-friendly identifiers from brand text:
// kebab-cased tokens for CSS custom property names and underscore-joined
// names for the downloadable package file.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// nonWord matches characters unsafe in a download filename.
	nonWord = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Kebab creates a CSS-token-friendly identifier from a colour or font
// name. Example: "Deep Ocean Blue!" → "deep-ocean-blue".
func Kebab(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Filename converts a tagline into a safe archive filename stem,
// replacing every non-alphanumeric run character with an underscore.
// Empty input falls back to the given default.
func Filename(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return nonWord.ReplaceAllString(s, "_")
}
