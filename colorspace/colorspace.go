package colorspace

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// RGB holds 8-bit channels. Components are float64 so that malformed hex
// input can surface as NaN instead of an error.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Oklab is the perceptual space; L is typically [0,1].
type Oklab struct {
	L float64 `json:"L"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Oklch is Oklab in cylindrical form. L is a percentage [0,100].
type Oklch struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

var ErrInvalidHex = errors.New("invalid hex color")

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// ParseHex validates a hex color and returns it in canonical #rrggbb form.
// Three digit shorthand is expanded.
func ParseHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	digits := strings.ToLower(m[1])
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	return "#" + digits, nil
}

// IsHex reports whether s is a canonical #rrggbb color.
func IsHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// HexToRGB parses each two-digit group as a base-16 integer. The leading '#'
// is optional. Malformed groups yield NaN channels.
func HexToRGB(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	return RGB{
		R: parseChannel(hex, 0),
		G: parseChannel(hex, 2),
		B: parseChannel(hex, 4),
	}
}

func parseChannel(hex string, offset int) float64 {
	if len(hex) != 6 {
		return math.NaN()
	}
	v, err := strconv.ParseUint(hex[offset:offset+2], 16, 8)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

// RGBToHex rounds and clamps each channel into [0,255].
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B))
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(Clamp(v, 0, 255)))
}

// RGBToHSL converts without rounding.
func RGBToHSL(c RGB) HSL {
	r, g, b := c.R/255, c.G/255, c.B/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: h * 60, S: s * 100, L: l * 100}
}

// HexToHSL returns integer-rounded components: h in [0,360], s and l in [0,100].
// The rounding is lossy: HSLToHex of the result can differ from hex by up to
// 5 in a channel. Use RGBToHSL for an exact round trip.
func HexToHSL(hex string) HSL {
	hsl := RGBToHSL(HexToRGB(hex))
	return HSL{
		H: math.Round(hsl.H),
		S: math.Round(hsl.S),
		L: math.Round(hsl.L),
	}
}

// NormalizeHue maps any angle into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	if h == 360 {
		return 0
	}
	return h
}

// HSLToRGB converts to unrounded 0-255 channels. The hue is normalized before
// it is scaled to [0,1), so h=360 and h=-10 land in the right sector.
func HSLToRGB(c HSL) RGB {
	h := NormalizeHue(c.H) / 360
	s := Clamp(c.S, 0, 100) / 100
	l := Clamp(c.L, 0, 100) / 100

	if s == 0 {
		return RGB{R: l * 255, G: l * 255, B: l * 255}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: hueToChannel(p, q, h+1.0/3) * 255,
		G: hueToChannel(p, q, h) * 255,
		B: hueToChannel(p, q, h-1.0/3) * 255,
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// HSLToHex converts and rounds to a canonical #rrggbb string.
func HSLToHex(c HSL) string {
	return RGBToHex(HSLToRGB(c))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandomHex returns a uniformly random 24-bit color.
func RandomHex(rng *rand.Rand) string {
	var n int
	if rng == nil {
		n = rand.Intn(1 << 24)
	} else {
		n = rng.Intn(1 << 24)
	}
	return fmt.Sprintf("#%06x", n)
}
