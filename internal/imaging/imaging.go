// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging provides the deterministic raster post-processing used
// on generated logos: near-white background removal for the transparent
// PNG exports, plus the decode/encode plumbing shared by the AI client
// and the export assembler.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/jpeg" // registered for decoding model output that isn't PNG

	"golang.org/x/image/draw"
)

// WhiteThreshold is the per-channel cutoff for background removal. A pixel
// is cleared only when red, green, and blue all strictly exceed it, so an
// exact (230,230,230) pixel stays opaque.
const WhiteThreshold = 230

// RemoveBackground decodes a raster image, zeroes the alpha channel of
// every near-white pixel, and re-encodes the result as PNG. The operation
// is a single pass over the pixel buffer and is idempotent. If the input
// cannot be decoded it fails atomically; no partially edited image is
// ever produced.
func RemoveBackground(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("imaging: remove background: %w", err)
	}

	nrgba := toNRGBA(img)
	px := nrgba.Pix
	for i := 0; i < len(px); i += 4 {
		if px[i] > WhiteThreshold && px[i+1] > WhiteThreshold && px[i+2] > WhiteThreshold {
			px[i+3] = 0
		}
	}

	return EncodePNG(nrgba)
}

// Decode parses raw image bytes (PNG or JPEG).
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// EncodePNG serialises an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Resize scales an image to the target width, preserving aspect ratio,
// using Catmull-Rom interpolation. Used when slicing the dashboard
// capture into PDF pages.
func Resize(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == width || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// DecodeDataURL accepts either a "data:image/...;base64," URL or a bare
// base64 string and returns the raw image bytes. This is the wire form
// the generation service uses for inline image payloads.
func DecodeDataURL(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode base64: %w", err)
	}
	return data, nil
}

// EncodeDataURL wraps PNG bytes in a data URL suitable for an <img> src.
func EncodeDataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// toNRGBA returns the image as *image.NRGBA, copying only when the
// underlying representation differs.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
