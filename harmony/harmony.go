// Package harmony generates colors that stand in a chosen relationship to a
// set of reference colors.
package harmony

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/color-palette/api/colorspace"
)

type Relationship int

const (
	Random Relationship = iota
	Complementary
	Analogous
	Triadic
	Tetradic
	SplitComplementary
	Monochromatic
)

var relationshipNames = [...]string{
	Random:             "random",
	Complementary:      "complementary",
	Analogous:          "analogous",
	Triadic:            "triadic",
	Tetradic:           "tetradic",
	SplitComplementary: "split-complementary",
	Monochromatic:      "monochromatic",
}

func (r Relationship) String() string {
	if r < 0 || int(r) >= len(relationshipNames) {
		return "unknown"
	}
	return relationshipNames[r]
}

// ParseRelationship maps the wire name of a relationship to its value.
func ParseRelationship(s string) (Relationship, bool) {
	for i, name := range relationshipNames {
		if name == s {
			return Relationship(i), true
		}
	}
	return Random, false
}

// All lists every relationship in declaration order.
func All() []Relationship {
	out := make([]Relationship, len(relationshipNames))
	for i := range relationshipNames {
		out[i] = Relationship(i)
	}
	return out
}

// bounds describes how a relationship perturbs the averaged color.
type bounds struct {
	hueOffsets  []float64 // one is picked uniformly
	hueJitter   float64   // uniform in [-hueJitter, +hueJitter]
	satJitter   float64
	lightJitter float64
	satMin      float64
	satMax      float64
	lightMin    float64
	lightMax    float64
}

var relationshipBounds = map[Relationship]bounds{
	Complementary: {
		hueOffsets:  []float64{180},
		satJitter:   10,
		lightJitter: 10,
		satMin:      25,
		satMax:      90,
		lightMin:    25,
		lightMax:    75,
	},
	Analogous: {
		hueOffsets:  []float64{0},
		hueJitter:   30,
		satJitter:   10,
		lightJitter: 15,
		satMin:      20,
		satMax:      90,
		lightMin:    20,
		lightMax:    80,
	},
	Triadic: {
		hueOffsets:  []float64{120, 240},
		satJitter:   10,
		lightJitter: 10,
		satMin:      25,
		satMax:      90,
		lightMin:    25,
		lightMax:    75,
	},
	Tetradic: {
		hueOffsets:  []float64{90, 180, 270},
		satJitter:   10,
		lightJitter: 10,
		satMin:      25,
		satMax:      85,
		lightMin:    25,
		lightMax:    75,
	},
	SplitComplementary: {
		hueOffsets:  []float64{150, 210},
		satJitter:   10,
		lightJitter: 10,
		satMin:      25,
		satMax:      90,
		lightMin:    25,
		lightMax:    75,
	},
	Monochromatic: {
		hueOffsets:  []float64{0},
		satJitter:   20,
		lightJitter: 25,
		satMin:      15,
		satMax:      95,
		lightMin:    15,
		lightMax:    85,
	},
}

// Generator produces related colors. A nil Rand uses the package-level source.
type Generator struct {
	Rand *rand.Rand
}

func New(rng *rand.Rand) *Generator {
	return &Generator{Rand: rng}
}

func (g *Generator) float64() float64 {
	if g == nil || g.Rand == nil {
		return rand.Float64()
	}
	return g.Rand.Float64()
}

func (g *Generator) intn(n int) int {
	if g == nil || g.Rand == nil {
		return rand.Intn(n)
	}
	return g.Rand.Intn(n)
}

func (g *Generator) jitter(amount float64) float64 {
	return (g.float64()*2 - 1) * amount
}

func (g *Generator) randomHex() string {
	if g == nil {
		return colorspace.RandomHex(nil)
	}
	return colorspace.RandomHex(g.Rand)
}

// Related returns a color in the given relationship to the circular average of
// refs. With no refs the fallback is used, or a random color if fallback is
// empty. It always returns a valid #rrggbb color.
func (g *Generator) Related(refs []string, rel Relationship, fallback string) string {
	if rel == Random {
		return g.randomHex()
	}
	b, ok := relationshipBounds[rel]
	if !ok {
		return g.Related(refs, Random, fallback)
	}

	if len(refs) == 0 {
		if fallback != "" {
			refs = []string{fallback}
		} else {
			refs = []string{g.randomHex()}
		}
	}

	base := AverageHSL(refs)

	hue := base.H + b.hueOffsets[g.intn(len(b.hueOffsets))]
	if b.hueJitter > 0 {
		hue += g.jitter(b.hueJitter)
	}
	sat := colorspace.Clamp(base.S+g.jitter(b.satJitter), b.satMin, b.satMax)
	light := colorspace.Clamp(base.L+g.jitter(b.lightJitter), b.lightMin, b.lightMax)

	return colorspace.HSLToHex(colorspace.HSL{
		H: colorspace.NormalizeHue(hue),
		S: math.Round(sat),
		L: math.Round(light),
	})
}

// Many generates n colors one after another. Each color is related to refs
// plus every color generated before it.
func (g *Generator) Many(refs []string, rel Relationship, n int) []string {
	pool := append([]string(nil), refs...)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		c := g.Related(pool, rel, "")
		out = append(out, c)
		pool = append(pool, c)
	}
	return out
}

// AverageHSL averages hue on the circle and saturation/lightness arithmetically.
// Unparseable colors are skipped; an empty input yields the zero HSL.
func AverageHSL(colors []string) colorspace.HSL {
	hues := make([]float64, 0, len(colors))
	var sumS, sumL float64
	for _, c := range colors {
		hsl := colorspace.HexToHSL(c)
		if math.IsNaN(hsl.H) || math.IsNaN(hsl.S) || math.IsNaN(hsl.L) {
			continue
		}
		hues = append(hues, hsl.H*math.Pi/180)
		sumS += hsl.S
		sumL += hsl.L
	}
	if len(hues) == 0 {
		return colorspace.HSL{}
	}
	n := float64(len(hues))
	mean := stat.CircularMean(hues, nil) * 180 / math.Pi
	return colorspace.HSL{
		H: colorspace.NormalizeHue(mean),
		S: sumS / n,
		L: sumL / n,
	}
}
