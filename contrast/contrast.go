// Package contrast implements WCAG 2.1 luminance and contrast checks.
package contrast

import (
	"math"
	"strings"

	"github.com/color-palette/api/colorspace"
)

type Level string

const (
	AAA  Level = "aaa"
	AA   Level = "aa"
	AA18 Level = "aa18"
	Fail Level = "fail"
)

// RelativeLuminance returns the WCAG relative luminance in [0,1].
func RelativeLuminance(hex string) float64 {
	c := colorspace.HexToRGB(hex)
	return 0.2126*colorspace.Linearize(c.R) +
		0.7152*colorspace.Linearize(c.G) +
		0.0722*colorspace.Linearize(c.B)
}

// Ratio is symmetric and always >= 1 for valid colors.
func Ratio(a, b string) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// LevelFor maps a ratio to its compliance tier. Boundaries belong to the
// higher tier.
func LevelFor(ratio float64) Level {
	switch {
	case ratio >= 7:
		return AAA
	case ratio >= 4.5:
		return AA
	case ratio >= 3:
		return AA18
	default:
		return Fail
	}
}

// Background is a named surface a color is checked against.
type Background struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var DefaultBackgrounds = []Background{
	{Name: "light", Hex: "#ffffff"},
	{Name: "gray", Hex: "#808080"},
	{Name: "dark", Hex: "#000000"},
}

type Result struct {
	Background string  `json:"bg"`
	Ratio      float64 `json:"ratio,omitempty"`
	Level      Level   `json:"level"`
}

// Evaluate checks fg against each background in order.
func Evaluate(fg string, backgrounds []Background) []Result {
	out := make([]Result, 0, len(backgrounds))
	for _, bg := range backgrounds {
		r := Ratio(fg, bg.Hex)
		out = append(out, Result{Background: bg.Name, Ratio: r, Level: LevelFor(r)})
	}
	return out
}

var tiers = []struct {
	level Level
	label string
}{
	{AAA, "excellent"},
	{AA, "good"},
	{AA18, "large text only"},
	{Fail, "poor"},
}

// Describe summarizes results in one line, e.g.
// "excellent on light and gray · poor on dark".
func Describe(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	byLevel := map[Level][]string{}
	for _, r := range results {
		byLevel[r.Level] = append(byLevel[r.Level], r.Background)
	}

	if len(byLevel[AAA]) == len(results) {
		return "excellent readability on all backgrounds"
	}
	if len(byLevel[Fail]) == len(results) {
		return "insufficient contrast on all backgrounds"
	}

	parts := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		names := byLevel[tier.level]
		if len(names) == 0 {
			continue
		}
		parts = append(parts, tier.label+" on "+joinNames(names))
	}
	return strings.Join(parts, " · ")
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
