package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/contrast"
	"github.com/color-palette/api/harmony"
	"github.com/color-palette/api/models"
	"github.com/color-palette/api/presets"
	"github.com/color-palette/api/variations"
)

const (
	defaultPresetCount = 5
	defaultSearchLimit = 20
)

func (app *Application) describe(hex string) models.ColorInfo {
	match := app.names().Lookup(hex)
	return models.ColorInfo{
		Hex:     hex,
		RGB:     colorspace.HexToRGB(hex),
		HSL:     colorspace.HexToHSL(hex),
		Oklab:   colorspace.HexToOklab(hex),
		Oklch:   colorspace.HexToOklch(hex),
		Name:    match.Name,
		CSSName: match.CSSName,
	}
}

// parseColors canonicalizes every color, allowing an empty list.
func parseColors(colors []string) ([]string, error) {
	out := make([]string, len(colors))
	for i, c := range colors {
		hex, err := colorspace.ParseHex(c)
		if err != nil {
			return nil, fmt.Errorf("color %d (%q): %w", i, c, err)
		}
		out[i] = hex
	}
	return out, nil
}

func (app *Application) hexParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.URL.Query().Get("hex")
	if raw == "" {
		app.badRequest(w, r, errors.New("hex query parameter is required"))
		return "", false
	}
	hex, err := colorspace.ParseHex(raw)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("%q: %w", raw, err))
		return "", false
	}
	return hex, true
}

// GET /v1/colors/convert?hex=
func (app *Application) convertColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	hex, ok := app.hexParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, app.describe(hex))
}

// GET /v1/colors/name?hex=
func (app *Application) nameColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	hex, ok := app.hexParam(w, r)
	if !ok {
		return
	}
	match := app.names().Lookup(hex)
	writeJSON(w, http.StatusOK, models.NameResponse{Hex: hex, Name: match.Name, CSSName: match.CSSName})
}

// GET /v1/colors/search?q=&limit=
func (app *Application) searchColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		app.badRequest(w, r, errors.New("q query parameter is required"))
		return
	}
	limit, err := countParam(r.URL.Query().Get("limit"), defaultSearchLimit)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SearchResponse{Query: query, Results: app.names().Search(query, limit)})
}

// GET /v1/colors/random?count=
func (app *Application) randomColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	count, err := countParam(r.URL.Query().Get("count"), 1)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	colors := harmony.New(app.Rand).Many(nil, harmony.Random, count)
	app.metrics().RecordGenerated(r.Context(), "random", len(colors))
	writeJSON(w, http.StatusOK, models.ColorsResponse{Colors: colors})
}

// POST /v1/colors/related
func (app *Application) relatedColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.RelatedRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	rel := harmony.Random
	if req.Relationship != "" {
		var ok bool
		if rel, ok = harmony.ParseRelationship(strings.ToLower(req.Relationship)); !ok {
			app.badRequest(w, r, fmt.Errorf("unknown relationship %q", req.Relationship))
			return
		}
	}

	refs, err := parseColors(req.References)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if len(refs) == 0 && req.Fallback != "" {
		fallback, err := colorspace.ParseHex(req.Fallback)
		if err != nil {
			app.badRequest(w, r, fmt.Errorf("fallback: %w", err))
			return
		}
		refs = []string{fallback}
	}

	count, err := checkCount(req.Count, 1)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	colors := harmony.New(app.Rand).Many(refs, rel, count)
	app.metrics().RecordGenerated(r.Context(), rel.String(), len(colors))
	writeJSON(w, http.StatusOK, models.ColorsResponse{Colors: colors})
}

// GET /v1/colors/variations?hex=&kind=&count=
func (app *Application) colorVariations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	hex, ok := app.hexParam(w, r)
	if !ok {
		return
	}

	kind := variations.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = variations.KindTints
	}
	count, err := countParam(r.URL.Query().Get("count"), variations.DefaultCount)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	colors := variations.Generate(kind, hex, count)
	if colors == nil {
		app.badRequest(w, r, fmt.Errorf("kind must be one of %s, %s or %s", variations.KindTints, variations.KindShades, variations.KindTones))
		return
	}
	app.metrics().RecordGenerated(r.Context(), string(kind), len(colors))
	writeJSON(w, http.StatusOK, models.ColorsResponse{Colors: colors})
}

// GET /v1/presets
func (app *Application) listPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	writeJSON(w, http.StatusOK, presets.Catalog())
}

// POST /v1/presets/generate
func (app *Application) generatePreset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.PresetGenerateRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	preset, ok := presets.Lookup(presets.ID(strings.ToLower(req.Preset)))
	if !ok {
		app.badRequest(w, r, fmt.Errorf("unknown preset %q", req.Preset))
		return
	}
	count, err := checkCount(req.Count, defaultPresetCount)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	colors := presets.Generate(app.Rand, preset, count)
	app.metrics().RecordGenerated(r.Context(), "preset:"+string(preset.ID), len(colors))
	writeJSON(w, http.StatusOK, models.ColorsResponse{Colors: colors})
}

// POST /v1/presets/match
func (app *Application) matchPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.PresetMatchRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}
	colors, err := parseColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PresetMatchResponse{Active: presets.ActivePresets(colors)})
}

// POST /v1/contrast
func (app *Application) checkContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.ContrastRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	fg, err := colorspace.ParseHex(req.Foreground)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("foreground: %w", err))
		return
	}

	backgrounds := contrast.DefaultBackgrounds
	if len(req.Backgrounds) > 0 {
		backgrounds = make([]contrast.Background, len(req.Backgrounds))
		for i, bg := range req.Backgrounds {
			hex, err := colorspace.ParseHex(bg.Hex)
			if err != nil {
				app.badRequest(w, r, fmt.Errorf("background %d: %w", i, err))
				return
			}
			name := strings.TrimSpace(bg.Name)
			if name == "" {
				name = hex
			}
			backgrounds[i] = contrast.Background{Name: name, Hex: hex}
		}
	}

	results := contrast.Evaluate(fg, backgrounds)
	writeJSON(w, http.StatusOK, models.ContrastResponse{
		Foreground: fg,
		Results:    results,
		Summary:    contrast.Describe(results),
	})
}

// POST /v1/contrast/summary
func (app *Application) summarizeContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := models.ContrastSummaryRequest{}
	if err := decodeJSON(r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}
	for i, res := range req.Results {
		switch res.Level {
		case contrast.AAA, contrast.AA, contrast.AA18, contrast.Fail:
		default:
			app.badRequest(w, r, fmt.Errorf("result %d: unknown level %q", i, res.Level))
			return
		}
	}
	writeJSON(w, http.StatusOK, models.ContrastSummaryResponse{Summary: contrast.Describe(req.Results)})
}
