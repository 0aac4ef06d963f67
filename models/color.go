package models

import (
	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/contrast"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/presets"
)

// ColorInfo describes one color in every supported space.
type ColorInfo struct {
	Hex     string           `json:"hex"`
	RGB     colorspace.RGB   `json:"rgb"`
	HSL     colorspace.HSL   `json:"hsl"`
	Oklab   colorspace.Oklab `json:"oklab"`
	Oklch   colorspace.Oklch `json:"oklch"`
	Name    string           `json:"name"`
	CSSName *string          `json:"cssName"`
}

type ColorsResponse struct {
	Colors []string `json:"colors"`
}

type RelatedRequest struct {
	References   []string `json:"references"`
	Relationship string   `json:"relationship"`
	Fallback     string   `json:"fallback,omitempty"`
	Count        int      `json:"count,omitempty"`
}

type PresetGenerateRequest struct {
	Preset string `json:"preset"`
	Count  int    `json:"count,omitempty"`
}

type PresetMatchRequest struct {
	Colors []string `json:"colors"`
}

type PresetMatchResponse struct {
	Active []presets.Preset `json:"active"`
}

type ContrastRequest struct {
	Foreground  string                `json:"foreground"`
	Backgrounds []contrast.Background `json:"backgrounds,omitempty"`
}

type ContrastResponse struct {
	Foreground string            `json:"foreground"`
	Results    []contrast.Result `json:"results"`
	Summary    string            `json:"summary"`
}

type ContrastSummaryRequest struct {
	Results []contrast.Result `json:"results"`
}

type ContrastSummaryResponse struct {
	Summary string `json:"summary"`
}

type NameResponse struct {
	Hex     string  `json:"hex"`
	Name    string  `json:"name"`
	CSSName *string `json:"cssName"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []naming.Entry `json:"results"`
}
