// Package presets holds the curated palette presets and generates or matches
// palettes against their HSL ranges.
package presets

import (
	"math"
	"math/rand"

	"github.com/color-palette/api/colorspace"
)

type ID string

const (
	Pastel     ID = "pastel"
	Neon       ID = "neon"
	Earth      ID = "earth"
	Jewel      ID = "jewel"
	Monochrome ID = "monochrome"
	Warm       ID = "warm"
	Cool       ID = "cool"
	Muted      ID = "muted"
)

// Range is an inclusive [min, max] pair. For hue, min > max means the range
// wraps through 0 degrees and [0,0] means hue is irrelevant.
type Range [2]float64

type Preset struct {
	ID          ID     `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Hue         Range  `json:"hue"`
	Saturation  Range  `json:"saturation"`
	Lightness   Range  `json:"lightness"`
}

// Tolerance applied to every bound by IsActive.
const Tolerance = 2

var catalog = [...]Preset{
	{
		ID:          Pastel,
		Label:       "Pastel",
		Description: "Soft, light colors with gentle saturation",
		Hue:         Range{0, 360},
		Saturation:  Range{50, 90},
		Lightness:   Range{78, 92},
	},
	{
		ID:          Neon,
		Label:       "Neon",
		Description: "Fully saturated, glowing mid-lightness colors",
		Hue:         Range{0, 360},
		Saturation:  Range{90, 100},
		Lightness:   Range{50, 60},
	},
	{
		ID:          Earth,
		Label:       "Earth",
		Description: "Browns, ochres and clay tones",
		Hue:         Range{20, 60},
		Saturation:  Range{20, 55},
		Lightness:   Range{25, 60},
	},
	{
		ID:          Jewel,
		Label:       "Jewel",
		Description: "Deep, rich saturated colors",
		Hue:         Range{0, 360},
		Saturation:  Range{60, 90},
		Lightness:   Range{25, 45},
	},
	{
		ID:          Monochrome,
		Label:       "Monochrome",
		Description: "Grays from near-black to near-white",
		Hue:         Range{0, 0},
		Saturation:  Range{0, 5},
		Lightness:   Range{10, 90},
	},
	{
		ID:          Warm,
		Label:       "Warm",
		Description: "Reds, oranges and yellows",
		Hue:         Range{330, 60},
		Saturation:  Range{55, 95},
		Lightness:   Range{40, 70},
	},
	{
		ID:          Cool,
		Label:       "Cool",
		Description: "Greens, blues and purples",
		Hue:         Range{170, 270},
		Saturation:  Range{40, 85},
		Lightness:   Range{35, 70},
	},
	{
		ID:          Muted,
		Label:       "Muted",
		Description: "Desaturated, understated colors",
		Hue:         Range{0, 360},
		Saturation:  Range{10, 35},
		Lightness:   Range{35, 70},
	},
}

// Catalog returns a copy of the preset list in display order.
func Catalog() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup finds a preset by id.
func Lookup(id ID) (Preset, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

func (p Preset) fullCircle() bool {
	return p.Hue[0] == 0 && p.Hue[1] == 360
}

func (p Preset) wraps() bool {
	return p.Hue[0] > p.Hue[1]
}

// hueIrrelevant treats any preset whose saturation tops out at 5 as
// achromatic, regardless of id.
func (p Preset) hueIrrelevant() bool {
	return p.fullCircle() || p.Saturation[1] <= 5
}

// Generate builds count colors that fall inside the preset's ranges.
// Lightness is stratified across count segments and then shuffled.
func Generate(rng *rand.Rand, p Preset, count int) []string {
	if count <= 0 {
		return []string{}
	}
	r := source{rng}

	lights := make([]float64, count)
	span := (p.Lightness[1] - p.Lightness[0]) / float64(count)
	for i := range lights {
		lights[i] = p.Lightness[0] + span*(float64(i)+r.float64())
	}
	r.shuffle(lights)

	hues := make([]float64, count)
	switch {
	case p.ID == Monochrome:
		// hue stays 0
	case p.fullCircle():
		segment := 360 / float64(count)
		offset := r.float64() * 360
		for i := range hues {
			jitter := (r.float64()*2 - 1) * 0.3 * segment
			hues[i] = colorspace.NormalizeHue(offset + float64(i)*segment + jitter)
		}
	case p.wraps():
		hi := p.Hue[1] + 360
		for i := range hues {
			hues[i] = colorspace.NormalizeHue(p.Hue[0] + r.float64()*(hi-p.Hue[0]))
		}
	default:
		for i := range hues {
			hues[i] = p.Hue[0] + r.float64()*(p.Hue[1]-p.Hue[0])
		}
	}

	out := make([]string, count)
	for i := range out {
		s := p.Saturation[0] + r.float64()*(p.Saturation[1]-p.Saturation[0])
		out[i] = colorspace.HSLToHex(colorspace.HSL{
			H: hues[i],
			S: math.Round(colorspace.Clamp(s, 0, 100)),
			L: math.Round(colorspace.Clamp(lights[i], 0, 100)),
		})
	}
	return out
}

// IsActive reports whether every color lies within the preset's ranges,
// widened by Tolerance. An empty palette is never active.
func IsActive(colors []string, p Preset) bool {
	if len(colors) == 0 {
		return false
	}
	for _, c := range colors {
		hsl := colorspace.HexToHSL(c)
		if !within(hsl.S, p.Saturation) || !within(hsl.L, p.Lightness) {
			return false
		}
		if p.hueIrrelevant() {
			continue
		}
		if p.wraps() {
			if !(hsl.H >= p.Hue[0]-Tolerance || hsl.H <= p.Hue[1]+Tolerance) {
				return false
			}
		} else if !within(hsl.H, p.Hue) {
			return false
		}
	}
	return true
}

func within(v float64, r Range) bool {
	return v >= r[0]-Tolerance && v <= r[1]+Tolerance
}

// ActivePresets returns every catalog preset the palette satisfies.
func ActivePresets(colors []string) []Preset {
	out := []Preset{}
	for _, p := range catalog {
		if IsActive(colors, p) {
			out = append(out, p)
		}
	}
	return out
}

type source struct {
	rng *rand.Rand
}

func (s source) float64() float64 {
	if s.rng == nil {
		return rand.Float64()
	}
	return s.rng.Float64()
}

func (s source) shuffle(v []float64) {
	swap := func(i, j int) { v[i], v[j] = v[j], v[i] }
	if s.rng == nil {
		rand.Shuffle(len(v), swap)
		return
	}
	s.rng.Shuffle(len(v), swap)
}
