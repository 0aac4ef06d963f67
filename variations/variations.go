// Package variations derives tints, shades and tones from a single color.
package variations

import (
	"math"

	"github.com/color-palette/api/colorspace"
)

const (
	DefaultCount = 9

	tintTarget  = 97
	shadeTarget = 3
	toneTarget  = 2
)

type Kind string

const (
	KindTints  Kind = "tints"
	KindShades Kind = "shades"
	KindTones  Kind = "tones"
)

// Generate dispatches on kind. Unknown kinds return nil.
func Generate(kind Kind, hex string, count int) []string {
	switch kind {
	case KindTints:
		return Tints(hex, count)
	case KindShades:
		return Shades(hex, count)
	case KindTones:
		return Tones(hex, count)
	}
	return nil
}

// Tints moves lightness toward 97 in count equal steps. The source itself is
// not included; the last step lands on the target.
func Tints(hex string, count int) []string {
	base := colorspace.HexToHSL(hex)
	// Sources lighter than the target stay put rather than darken.
	target := math.Max(tintTarget, base.L)
	return steps(count, func(t float64) colorspace.HSL {
		return colorspace.HSL{H: base.H, S: base.S, L: lerp(base.L, target, t)}
	})
}

// Shades moves lightness toward 3.
func Shades(hex string, count int) []string {
	base := colorspace.HexToHSL(hex)
	// Sources darker than the target stay put rather than lighten.
	target := math.Min(shadeTarget, base.L)
	return steps(count, func(t float64) colorspace.HSL {
		return colorspace.HSL{H: base.H, S: base.S, L: lerp(base.L, target, t)}
	})
}

// Tones moves saturation toward 2, holding hue and lightness.
func Tones(hex string, count int) []string {
	base := colorspace.HexToHSL(hex)
	target := math.Min(toneTarget, base.S)
	return steps(count, func(t float64) colorspace.HSL {
		return colorspace.HSL{H: base.H, S: lerp(base.S, target, t), L: base.L}
	})
}

func steps(count int, at func(t float64) colorspace.HSL) []string {
	if count <= 0 {
		return []string{}
	}
	out := make([]string, count)
	for i := 1; i <= count; i++ {
		hsl := at(float64(i) / float64(count))
		out[i-1] = colorspace.HSLToHex(colorspace.HSL{
			H: hsl.H,
			S: math.Round(colorspace.Clamp(hsl.S, 0, 100)),
			L: math.Round(colorspace.Clamp(hsl.L, 0, 100)),
		})
	}
	return out
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
