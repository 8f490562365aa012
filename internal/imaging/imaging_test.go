// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// solidPNG builds a small PNG filled with one colour.
func solidPNG(t *testing.T, c color.NRGBA, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return data
}

// decodeNRGBA decodes PNG bytes into an NRGBA buffer for assertions. The
// decoder picks RGBA for fully-opaque images, so always convert.
func decodeNRGBA(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return toNRGBA(img)
}

func TestRemoveBackgroundAllWhite(t *testing.T) {
	in := solidPNG(t, color.NRGBA{255, 255, 255, 255}, 4, 4)

	out, err := RemoveBackground(in)
	if err != nil {
		t.Fatalf("RemoveBackground: %v", err)
	}

	img := decodeNRGBA(t, out)
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatalf("pixel %d alpha = %d, want 0", i/4, img.Pix[i])
		}
	}
}

func TestRemoveBackgroundThresholdIsStrict(t *testing.T) {
	// Exactly at the threshold: must remain opaque.
	at := solidPNG(t, color.NRGBA{230, 230, 230, 255}, 2, 2)
	out, err := RemoveBackground(at)
	if err != nil {
		t.Fatalf("RemoveBackground: %v", err)
	}
	img := decodeNRGBA(t, out)
	if img.Pix[3] != 255 {
		t.Errorf("(230,230,230) alpha = %d, want 255", img.Pix[3])
	}

	// One above: must become transparent.
	above := solidPNG(t, color.NRGBA{231, 231, 231, 255}, 2, 2)
	out, err = RemoveBackground(above)
	if err != nil {
		t.Fatalf("RemoveBackground: %v", err)
	}
	img = decodeNRGBA(t, out)
	if img.Pix[3] != 0 {
		t.Errorf("(231,231,231) alpha = %d, want 0", img.Pix[3])
	}
}

func TestRemoveBackgroundLeavesDarkPixels(t *testing.T) {
	in := solidPNG(t, color.NRGBA{10, 20, 30, 255}, 3, 3)

	out, err := RemoveBackground(in)
	if err != nil {
		t.Fatalf("RemoveBackground: %v", err)
	}

	got := decodeNRGBA(t, out)
	want := decodeNRGBA(t, in)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("dark image pixels changed; expected pass-through")
	}
}

func TestRemoveBackgroundRequiresAllChannelsAboveThreshold(t *testing.T) {
	// Red channel below threshold: pixel must stay opaque even though
	// green and blue exceed it.
	in := solidPNG(t, color.NRGBA{200, 255, 255, 255}, 2, 2)

	out, err := RemoveBackground(in)
	if err != nil {
		t.Fatalf("RemoveBackground: %v", err)
	}
	img := decodeNRGBA(t, out)
	if img.Pix[3] != 255 {
		t.Errorf("alpha = %d, want 255", img.Pix[3])
	}
}

func TestRemoveBackgroundIdempotent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	colors := []color.NRGBA{
		{255, 255, 255, 255},
		{231, 231, 231, 255},
		{230, 230, 230, 255},
		{0, 0, 0, 255},
	}
	for x, c := range colors {
		img.SetNRGBA(x, 0, c)
	}
	in, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	once, err := RemoveBackground(in)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := RemoveBackground(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if !bytes.Equal(decodeNRGBA(t, once).Pix, decodeNRGBA(t, twice).Pix) {
		t.Error("applying the filter twice changed the result")
	}
}

func TestRemoveBackgroundCorruptInput(t *testing.T) {
	if _, err := RemoveBackground([]byte("definitely not an image")); err == nil {
		t.Error("expected error for undecodable input")
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	raw := solidPNG(t, color.NRGBA{1, 2, 3, 255}, 1, 1)

	url := EncodeDataURL(raw)
	got, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("data URL round trip mismatch")
	}

	// Bare base64 (no data: prefix) must decode too.
	bare := url[len("data:image/png;base64,"):]
	got, err = DecodeDataURL(bare)
	if err != nil {
		t.Fatalf("DecodeDataURL bare: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("bare base64 round trip mismatch")
	}
}

func TestResizePreservesAspectRatio(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 40))

	out := Resize(img, 50)
	b := out.Bounds()
	if b.Dx() != 50 || b.Dy() != 20 {
		t.Errorf("resized to %dx%d, want 50x20", b.Dx(), b.Dy())
	}

	// Same width: no copy, same image back.
	if got := Resize(img, 100); got != image.Image(img) {
		t.Error("resize to identical width should return the input")
	}
}
