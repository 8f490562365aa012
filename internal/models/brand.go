// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the brand identity data structures exchanged
// between the generation client, the export assembler, and the HTTP API.
// Field names and JSON tags match the Gemini structured-output contract.
package models

// Color is a single palette entry. Hex is expected to be a 6-digit
// "#RRGGBB" value; malformed values are tolerated downstream (the contrast
// analyzer degrades to a fixed accessible result instead of erroring).
type Color struct {
	Hex           string `json:"hex"`
	Name          string `json:"name"`
	Usage         string `json:"usage"`
	DetailedUsage string `json:"detailedUsage"`
	ContrastInfo  string `json:"contrastInfo"`
}

// ThemeColors holds the six semantic UI slots for one mode.
type ThemeColors struct {
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	Accent        string `json:"accent"`
	Border        string `json:"border"`
}

// Theme pairs the light ("Summer Mantle") and dark ("Winter Mantle")
// schemes. The two are independently authored; no cross-invariant is
// enforced between them.
type Theme struct {
	Light ThemeColors `json:"light"`
	Dark  ThemeColors `json:"dark"`
}

// FontPairing is the recommended typography: two Google Font family names
// plus the model's rationale for pairing them.
type FontPairing struct {
	HeaderFamily string `json:"headerFamily"`
	BodyFamily   string `json:"bodyFamily"`
	Reasoning    string `json:"reasoning"`
}

// BrandIdentity is the complete generated identity, minus logos (those
// live in LogoResult and are populated asynchronously). Regeneration
// produces a wholly new value; fields are never mutated in place.
type BrandIdentity struct {
	Mission    string      `json:"mission"`
	Tagline    string      `json:"tagline"`
	BrandVoice string      `json:"brandVoice"`
	Colors     []Color     `json:"colors"`
	Theme      Theme       `json:"theme"`
	Typography FontPairing `json:"typography"`
}

// ImageSize selects the requested logo resolution.
type ImageSize string

const (
	Size1K ImageSize = "1K"
	Size2K ImageSize = "2K"
	Size4K ImageSize = "4K"
)

// LogoVariation is one on-demand transform of the primary sigil.
// Name is the stable machine identifier (e.g. "simplified"), Label the
// display string, Image the raw PNG bytes.
type LogoVariation struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Image []byte `json:"image"`
}

// LogoResult holds the primary sigil and secondary crest, either of which
// may be absent (nil) while generation is pending or after a partial
// failure, plus the ordered variation set. Variations are replaced
// wholesale on regeneration, never merged.
type LogoResult struct {
	Primary    []byte          `json:"primary,omitempty"`
	Secondary  []byte          `json:"secondary,omitempty"`
	Variations []LogoVariation `json:"variations"`
}

// HasPrimary reports whether the primary sigil has been generated.
func (l *LogoResult) HasPrimary() bool { return l != nil && len(l.Primary) > 0 }

// HasSecondary reports whether the secondary crest has been generated.
func (l *LogoResult) HasSecondary() bool { return l != nil && len(l.Secondary) > 0 }
