package colorspace

import "math"

// Linearize applies the sRGB transfer function to an 8-bit channel and returns
// a linear value in [0,1]. Shared by Oklab conversion and WCAG luminance.
func Linearize(channel float64) float64 {
	v := channel / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Delinearize is the inverse of Linearize, returning an unclamped 0-255 value.
func Delinearize(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92 * 255
	}
	return (1.055*math.Pow(v, 1/2.4) - 0.055) * 255
}

// RGBToOklab runs sRGB -> linear -> LMS (M1) -> cube root -> Oklab (M2).
func RGBToOklab(c RGB) Oklab {
	r := Linearize(c.R)
	g := Linearize(c.G)
	b := Linearize(c.B)

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	return Oklab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// OklabToRGB is the inverse pipeline. Channels are unclamped.
func OklabToRGB(c Oklab) RGB {
	lp := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	mp := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	sp := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return RGB{R: Delinearize(r), G: Delinearize(g), B: Delinearize(b)}
}

func HexToOklab(hex string) Oklab {
	return RGBToOklab(HexToRGB(hex))
}

// OklabToHex clamps out-of-gamut channels.
func OklabToHex(c Oklab) string {
	return RGBToHex(OklabToRGB(c))
}

func OklabToOklch(c Oklab) Oklch {
	chroma := math.Sqrt(c.A*c.A + c.B*c.B)
	hue := math.Atan2(c.B, c.A) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	return Oklch{L: c.L * 100, C: chroma, H: hue}
}

func OklchToOklab(c Oklch) Oklab {
	rad := c.H * math.Pi / 180
	return Oklab{
		L: c.L / 100,
		A: c.C * math.Cos(rad),
		B: c.C * math.Sin(rad),
	}
}

func HexToOklch(hex string) Oklch {
	return OklabToOklch(HexToOklab(hex))
}

func OklchToHex(c Oklch) string {
	return OklabToHex(OklchToOklab(c))
}

// DistanceSquared is the squared Euclidean distance in Oklab.
func DistanceSquared(a, b Oklab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}
