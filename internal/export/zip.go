// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export assembles the downloadable brand package: a zip archive
// holding the identity data, CSS tokens, usage guide and every sigil in
// raster, transparent and vector form, plus a PDF rendition of the
// dashboard.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mantle/internal/css"
	"mantle/internal/guide"
	"mantle/internal/imaging"
	"mantle/internal/models"
	"mantle/internal/slug"
	"mantle/internal/vector"
)

// Fixed file names inside the archive.
const (
	identityFile = "mantle-identity.json"
	cssFile      = "mantle.css"
	guideFile    = "README.md"
	sigilFolder  = "sigils/"

	primaryName   = "primary-sigil"
	secondaryName = "secondary-crest"
)

// sigilSet carries one logo through the derivation pipeline. Derived
// forms stay nil when their derivation fails; the original PNG is
// always written.
type sigilSet struct {
	name        string
	png         []byte
	transparent []byte
	svg         []byte
}

// ArchiveName returns the download file name for the package, derived
// from the tagline.
func ArchiveName(identity *models.BrandIdentity) string {
	return slug.Filename(identity.Tagline, "mantle-brand") + ".zip"
}

// BuildPackage assembles the full brand archive. Image derivations run
// concurrently per logo; a failed derivation is logged and its file
// omitted, never failing the whole package. The archive always carries
// the identity JSON, the CSS tokens and the usage guide.
func BuildPackage(ctx context.Context, identity *models.BrandIdentity, logos *models.LogoResult) ([]byte, error) {
	if identity == nil {
		return nil, fmt.Errorf("export: no identity to package")
	}

	sets := collectSigils(logos)
	derive(ctx, sets)

	identityJSON, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal identity: %w", err)
	}

	readme, err := guide.Markdown(identity)
	if err != nil {
		return nil, fmt.Errorf("export: render guide: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name string
		data []byte
	}{
		{identityFile, identityJSON},
		{cssFile, []byte(css.Tokens(identity))},
		{guideFile, []byte(readme)},
	}
	for _, f := range files {
		if err := writeEntry(zw, f.name, f.data); err != nil {
			return nil, err
		}
	}

	for _, set := range sets {
		if err := writeEntry(zw, sigilFolder+set.name+".png", set.png); err != nil {
			return nil, err
		}
		if set.transparent != nil {
			if err := writeEntry(zw, sigilFolder+set.name+"-transparent.png", set.transparent); err != nil {
				return nil, err
			}
		}
		if set.svg != nil {
			if err := writeEntry(zw, sigilFolder+set.name+".svg", set.svg); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// collectSigils flattens the logo result into named sets, skipping
// empty slots.
func collectSigils(logos *models.LogoResult) []*sigilSet {
	var sets []*sigilSet
	if logos == nil {
		return sets
	}
	if logos.HasPrimary() {
		sets = append(sets, &sigilSet{name: primaryName, png: logos.Primary})
	}
	if logos.HasSecondary() {
		sets = append(sets, &sigilSet{name: secondaryName, png: logos.Secondary})
	}
	for _, v := range logos.Variations {
		if len(v.Image) == 0 {
			continue
		}
		sets = append(sets, &sigilSet{name: "variation-" + slug.Kebab(v.Name), png: v.Image})
	}
	return sets
}

// derive computes the transparent and vector forms for every set. Each
// derivation is independent; the group never returns an error because
// failures only clear the affected slot.
func derive(ctx context.Context, sets []*sigilSet) {
	g, _ := errgroup.WithContext(ctx)
	for _, set := range sets {
		set := set
		g.Go(func() error {
			transparent, err := imaging.RemoveBackground(set.png)
			if err != nil {
				slog.Warn("background removal failed, omitting transparent sigil", "sigil", set.name, "error", err)
				return nil
			}
			set.transparent = transparent
			return nil
		})
		g.Go(func() error {
			svg, err := vector.Vectorize(set.png, nil)
			if err != nil {
				slog.Warn("vectorization failed, omitting svg sigil", "sigil", set.name, "error", err)
				return nil
			}
			set.svg = []byte(svg)
			return nil
		})
	}
	g.Wait()
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	return nil
}
