// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contrast computes WCAG relative luminance and contrast ratios
// for palette colours. All functions are pure and cheap enough to call
// once per swatch per render.
package contrast

import (
	"math"
	"regexp"
	"strconv"
)

// AA is the WCAG 2.1 AA minimum contrast ratio for normal text.
const AA = 4.5

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Result is the accessibility verdict for a background colour.
type Result struct {
	Ratio        float64 `json:"ratio"`
	BestText     string  `json:"bestText"`
	IsAccessible bool    `json:"isAccessible"`
}

// Luminance returns the WCAG relative luminance of a "#RRGGBB" colour.
// Input must already be validated; Analyze handles malformed values.
func Luminance(hex string) float64 {
	r := channel(hex[1:3])
	g := channel(hex[3:5])
	b := channel(hex[5:7])
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// Ratio returns the contrast ratio between two colours, always >= 1.
func Ratio(hex1, hex2 string) float64 {
	l1 := Luminance(hex1)
	l2 := Luminance(hex2)
	brightest := math.Max(l1, l2)
	darkest := math.Min(l1, l2)
	return (brightest + 0.05) / (darkest + 0.05)
}

// Analyze picks whichever of pure white or pure black reads best against
// the given background and reports whether that pairing meets WCAG AA.
// A malformed hex value short-circuits to a fixed accessible result
// (ratio 21, white text) rather than returning an error; callers treat
// unparseable colours as a non-fatal, visually neutral default.
func Analyze(bgHex string) Result {
	if !hexColor.MatchString(bgHex) {
		return Result{Ratio: 21, BestText: "#FFFFFF", IsAccessible: true}
	}

	white := Ratio(bgHex, "#FFFFFF")
	black := Ratio(bgHex, "#000000")

	best := "#000000"
	ratio := black
	if white > black {
		best = "#FFFFFF"
		ratio = white
	}

	return Result{
		Ratio:        ratio,
		BestText:     best,
		IsAccessible: ratio >= AA,
	}
}

// channel parses a two-digit hex channel into [0, 1].
func channel(s string) float64 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return float64(v) / 255
}

// linearize applies the sRGB transfer function inverse per WCAG 2.1.
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
