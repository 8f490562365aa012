// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the Mantle
// dashboard. It supports full-page and HTMX partial rendering,
// automatically detecting the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"mantle/internal/contrast"
	"mantle/internal/css"
	"mantle/internal/guide"
	"mantle/internal/imaging"
	"mantle/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Swatch is one palette entry enriched with its contrast verdict for
// the dashboard.
type Swatch struct {
	models.Color
	TextColor    string
	Ratio        string
	IsAccessible bool
}

// Sigil is one logo card ready for the dashboard.
type Sigil struct {
	Kind    string // "primary", "secondary" or "variation"
	Name    string
	Label   string
	DataURL template.URL
}

// PageData holds everything passed to dashboard templates.
type PageData struct {
	Title      string
	Theme      string // "summer" or "winter"
	HasKey     bool
	Identity   *models.BrandIdentity
	Swatches   []Swatch
	Sigils     []Sigil
	Messages   []models.ChatMessage
	CSSTokens  string
	FontImport template.URL
	GuideHTML  template.HTML
	Error      string
}

// Renderer handles template parsing and execution for dashboard pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmplName := name[:len(name)-len(".html")]
		tmpl, err := template.New("base.html").ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}
	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// BuildPageData assembles the dashboard view model from the current
// workspace state. Swatch text colors and accessibility verdicts come
// from the contrast analyzer; sigils are inlined as data URLs.
func BuildPageData(theme string, hasKey bool, identity *models.BrandIdentity, logos *models.LogoResult, messages []models.ChatMessage) *PageData {
	data := &PageData{
		Title:    "Mantle",
		Theme:    theme,
		HasKey:   hasKey,
		Identity: identity,
		Messages: messages,
	}

	if identity == nil {
		return data
	}

	data.CSSTokens = css.Tokens(identity)
	data.FontImport = template.URL(css.FontImportURL(identity.Typography))
	if html, err := guide.HTML(identity); err != nil {
		slog.Warn("guide rendering failed", "error", err)
	} else {
		data.GuideHTML = template.HTML(html)
	}

	for _, c := range identity.Colors {
		res := contrast.Analyze(c.Hex)
		data.Swatches = append(data.Swatches, Swatch{
			Color:        c,
			TextColor:    res.BestText,
			Ratio:        fmt.Sprintf("%.2f:1", res.Ratio),
			IsAccessible: res.IsAccessible,
		})
	}

	if logos != nil {
		if logos.HasPrimary() {
			data.Sigils = append(data.Sigils, Sigil{
				Kind: "primary", Name: "primary", Label: "Primary Sigil",
				DataURL: template.URL(imaging.EncodeDataURL(logos.Primary)),
			})
		}
		if logos.HasSecondary() {
			data.Sigils = append(data.Sigils, Sigil{
				Kind: "secondary", Name: "secondary", Label: "Secondary Crest",
				DataURL: template.URL(imaging.EncodeDataURL(logos.Secondary)),
			})
		}
		for _, v := range logos.Variations {
			data.Sigils = append(data.Sigils, Sigil{
				Kind: "variation", Name: v.Name, Label: v.Label,
				DataURL: template.URL(imaging.EncodeDataURL(v.Image)),
			})
		}
	}

	return data
}

func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
