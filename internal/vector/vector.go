// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package vector converts raster logos into SVG documents by posterized
// colour-region tracing. The image is quantised to a small palette, each
// colour layer is traced with gotrace (a pure-Go potrace), and the layers
// are stacked into one SVG. Tracing itself is deterministic, so the same
// input and options always yield the same document.
package vector

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/dennwc/gotrace"

	"mantle/internal/imaging"
)

// ErrDecode marks input that could not be parsed as an image. It is a
// distinct failure from background removal so the two derivations can be
// retried independently.
var ErrDecode = errors.New("vector: image decode failed")

// Options tunes the tracer. Zero-valued fields fall back to the logo
// preset; caller-supplied values take precedence.
type Options struct {
	Colors       int     // maximum colour layers after posterization
	TurdSize     int     // suppress speckles smaller than this (pixels)
	AlphaMax     float64 // corner threshold
	OptTolerance float64 // curve optimisation tolerance
}

// DefaultOptions is the posterized preset favouring clean, low-colour
// output suitable for logos.
var DefaultOptions = Options{
	Colors:       8,
	TurdSize:     2,
	AlphaMax:     1.0,
	OptTolerance: 0.2,
}

// channelLevels controls the coarseness of the pre-quantisation grid each
// pixel snaps to before the palette is reduced to Options.Colors entries.
const channelLevels = 4

// minAlpha is the opacity below which a pixel belongs to no layer.
const minAlpha = 128

// Vectorize traces a raster logo into an SVG document string.
func Vectorize(data []byte, opts *Options) (string, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	o := DefaultOptions
	if opts != nil {
		if opts.Colors > 0 {
			o.Colors = opts.Colors
		}
		if opts.TurdSize > 0 {
			o.TurdSize = opts.TurdSize
		}
		if opts.AlphaMax > 0 {
			o.AlphaMax = opts.AlphaMax
		}
		if opts.OptTolerance > 0 {
			o.OptTolerance = opts.OptTolerance
		}
	}

	layers := posterize(img, o.Colors)

	params := &gotrace.Params{
		TurdSize:     o.TurdSize,
		TurnPolicy:   gotrace.TurnMinority,
		AlphaMax:     o.AlphaMax,
		OptiCurve:    true,
		OptTolerance: o.OptTolerance,
	}

	b := img.Bounds()
	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		b.Dx(), b.Dy(), b.Dx(), b.Dy())
	sb.WriteByte('\n')

	for _, layer := range layers {
		bm := gotrace.NewBitmapFromImage(img, layer.threshold)
		paths, err := gotrace.Trace(bm, params)
		if err != nil {
			return "", fmt.Errorf("vector: trace layer %s: %w", layer.hex, err)
		}
		if len(paths) == 0 {
			continue
		}
		sb.WriteString(`  <path fill="` + layer.hex + `" fill-rule="evenodd" d="`)
		for i := range paths {
			writePathData(&sb, &paths[i])
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// layer is one posterized colour region.
type layer struct {
	key   uint32
	hex   string
	count int
}

// threshold reports whether a source pixel belongs to this layer.
func (l layer) threshold(x, y int, c color.Color) bool {
	key, opaque := quantize(c)
	return opaque && key == l.key
}

// posterize snaps every opaque pixel to a coarse colour grid, then keeps
// the maxColors most frequent grid cells, ordered most frequent first so
// dominant regions render underneath finer detail.
func posterize(img image.Image, maxColors int) []layer {
	counts := map[uint32]int{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if key, opaque := quantize(img.At(x, y)); opaque {
				counts[key]++
			}
		}
	}

	layers := make([]layer, 0, len(counts))
	for key, n := range counts {
		layers = append(layers, layer{
			key:   key,
			hex:   fmt.Sprintf("#%02X%02X%02X", key>>16&0xFF, key>>8&0xFF, key&0xFF),
			count: n,
		})
	}
	sort.Slice(layers, func(i, j int) bool {
		if layers[i].count != layers[j].count {
			return layers[i].count > layers[j].count
		}
		return layers[i].key < layers[j].key // deterministic tie-break
	})

	if len(layers) > maxColors {
		layers = layers[:maxColors]
	}
	return layers
}

// quantize snaps a colour to the posterization grid and returns the packed
// RGB key plus whether the pixel is opaque enough to trace.
func quantize(c color.Color) (uint32, bool) {
	r, g, b, a := c.RGBA()
	if a>>8 < minAlpha {
		return 0, false
	}
	qr := snap(uint8(r >> 8))
	qg := snap(uint8(g >> 8))
	qb := snap(uint8(b >> 8))
	return uint32(qr)<<16 | uint32(qg)<<8 | uint32(qb), true
}

// snap maps a channel onto channelLevels evenly spaced values.
func snap(v uint8) uint8 {
	step := 255 / (channelLevels - 1)
	level := (int(v) + step/2) / step
	if level > channelLevels-1 {
		level = channelLevels - 1
	}
	return uint8(level * step)
}

// writePathData appends potrace curve output (and nested hole paths) as
// SVG path commands. Each closed curve starts at the final segment's
// endpoint, per the potrace representation.
func writePathData(sb *strings.Builder, p *gotrace.Path) {
	if n := len(p.Curve); n > 0 {
		start := p.Curve[n-1].Pnt[2]
		fmt.Fprintf(sb, "M%s %s", coord(start.X), coord(start.Y))
		for _, seg := range p.Curve {
			switch seg.Type {
			case gotrace.TypeBezier:
				fmt.Fprintf(sb, "C%s %s %s %s %s %s",
					coord(seg.Pnt[0].X), coord(seg.Pnt[0].Y),
					coord(seg.Pnt[1].X), coord(seg.Pnt[1].Y),
					coord(seg.Pnt[2].X), coord(seg.Pnt[2].Y))
			case gotrace.TypeCorner:
				fmt.Fprintf(sb, "L%s %sL%s %s",
					coord(seg.Pnt[1].X), coord(seg.Pnt[1].Y),
					coord(seg.Pnt[2].X), coord(seg.Pnt[2].Y))
			}
		}
		sb.WriteString("Z")
	}
	for i := range p.Childs {
		writePathData(sb, &p.Childs[i])
	}
}

// coord formats a path coordinate compactly (3 decimal places, trailing
// zeroes trimmed).
func coord(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
