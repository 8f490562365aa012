// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"

	"mantle/internal/imaging"
)

// A4 portrait in points. The page width matches the dashboard capture
// scale used for the PDF guide.
const (
	pageWidthPt  = 595.28
	pageHeightPt = 841.89
)

// BuildGuidePDF renders a tall dashboard capture into a multi-page A4
// document. The capture is scaled to the page width and sliced
// vertically, one slice per page.
func BuildGuidePDF(capture []byte) ([]byte, error) {
	img, err := imaging.Decode(capture)
	if err != nil {
		return nil, fmt.Errorf("export: decode capture: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("export: empty capture")
	}

	scale := pageWidthPt / float64(width)
	slicePx := int(pageHeightPt / scale)
	if slicePx < 1 {
		slicePx = 1
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageWidthPt, Ht: pageHeightPt},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for page, y := 0, 0; y < height; page, y = page+1, y+slicePx {
		sliceHeight := slicePx
		if y+sliceHeight > height {
			sliceHeight = height - y
		}

		data, err := encodeSlice(img, bounds.Min.Y+y, sliceHeight)
		if err != nil {
			return nil, err
		}

		name := fmt.Sprintf("dashboard-page-%d", page)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))

		doc.AddPage()
		doc.ImageOptions(name, 0, 0, pageWidthPt, float64(sliceHeight)*scale, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return out.Bytes(), nil
}

// encodeSlice re-encodes a horizontal band of the capture as PNG.
func encodeSlice(img image.Image, y, height int) ([]byte, error) {
	bounds := img.Bounds()
	rect := image.Rect(bounds.Min.X, y, bounds.Max.X, y+height)

	slice := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for sy := 0; sy < rect.Dy(); sy++ {
		for sx := 0; sx < rect.Dx(); sx++ {
			slice.Set(sx, sy, img.At(rect.Min.X+sx, rect.Min.Y+sy))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, slice); err != nil {
		return nil, fmt.Errorf("export: encode slice: %w", err)
	}
	return buf.Bytes(), nil
}
