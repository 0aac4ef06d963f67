package harmony

import (
	"math"
	"math/rand"
	"testing"

	"github.com/color-palette/api/colorspace"
)

func hueDistance(a, b float64) float64 {
	d := math.Abs(colorspace.NormalizeHue(a) - colorspace.NormalizeHue(b))
	return math.Min(d, 360-d)
}

func TestParseRelationship(t *testing.T) {
	for _, rel := range All() {
		got, ok := ParseRelationship(rel.String())
		if !ok || got != rel {
			t.Errorf("ParseRelationship(%q) = %v, %v", rel.String(), got, ok)
		}
	}
	if _, ok := ParseRelationship("pentadic"); ok {
		t.Error("ParseRelationship(pentadic) should fail")
	}
	if got := Relationship(42).String(); got != "unknown" {
		t.Errorf("Relationship(42).String() = %q", got)
	}
}

func TestAverageHSL_CircularHue(t *testing.T) {
	tests := []struct {
		name   string
		colors []string
		want   float64
	}{
		{"350 and 10 meet at 0", []string{colorspace.HSLToHex(colorspace.HSL{H: 350, S: 100, L: 50}), colorspace.HSLToHex(colorspace.HSL{H: 10, S: 100, L: 50})}, 0},
		{"single color", []string{"#00ff00"}, 120},
		{"red and yellow", []string{"#ff0000", "#ffff00"}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageHSL(tt.colors)
			if d := hueDistance(got.H, tt.want); d > 1 {
				t.Errorf("AverageHSL(%v).H = %f, want %f", tt.colors, got.H, tt.want)
			}
			if got.H < 0 || got.H >= 360 {
				t.Errorf("AverageHSL hue %f out of [0,360)", got.H)
			}
		})
	}
}

func TestAverageHSL_SaturationLightness(t *testing.T) {
	got := AverageHSL([]string{"#ff0000", "#808080"})
	if got.S != 50 || got.L != 50 {
		t.Errorf("AverageHSL s/l = %f/%f, want 50/50", got.S, got.L)
	}
	if empty := AverageHSL(nil); empty != (colorspace.HSL{}) {
		t.Errorf("AverageHSL(nil) = %+v", empty)
	}
}

func TestRelated_HueOffsets(t *testing.T) {
	tests := []struct {
		rel     Relationship
		offsets []float64
		slack   float64
	}{
		{Complementary, []float64{180}, 2},
		{Triadic, []float64{120, 240}, 2},
		{Tetradic, []float64{90, 180, 270}, 2},
		{SplitComplementary, []float64{150, 210}, 2},
		{Monochromatic, []float64{0}, 3},
		{Analogous, []float64{0}, 32},
	}
	for _, tt := range tests {
		t.Run(tt.rel.String(), func(t *testing.T) {
			g := New(rand.New(rand.NewSource(7)))
			for i := 0; i < 200; i++ {
				out := g.Related([]string{"#ff0000"}, tt.rel, "")
				if !colorspace.IsHex(out) {
					t.Fatalf("Related returned %q", out)
				}
				h := colorspace.HexToHSL(out).H
				best := 360.0
				for _, off := range tt.offsets {
					best = math.Min(best, hueDistance(h, off))
				}
				if best > tt.slack {
					t.Fatalf("%s of red produced hue %v (%s)", tt.rel, h, out)
				}
			}
		})
	}
}

func TestRelated_ClampRanges(t *testing.T) {
	g := New(rand.New(rand.NewSource(11)))
	for i := 0; i < 200; i++ {
		out := g.Related([]string{"#ffffff", "#fafafa"}, Complementary, "")
		hsl := colorspace.HexToHSL(out)
		if hsl.S < 23 || hsl.S > 92 || hsl.L < 23 || hsl.L > 77 {
			t.Fatalf("complementary of white = %s (%+v), outside clamp", out, hsl)
		}
	}
	for i := 0; i < 200; i++ {
		out := g.Related([]string{"#000000"}, Monochromatic, "")
		hsl := colorspace.HexToHSL(out)
		if hsl.L < 13 || hsl.L > 87 {
			t.Fatalf("monochromatic of black = %s (%+v), outside clamp", out, hsl)
		}
	}
}

func TestRelated_MonochromaticKeepsHue(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)))
	out := g.Related([]string{"#ff0000"}, Monochromatic, "")
	if d := hueDistance(colorspace.HexToHSL(out).H, 0); d > 3 {
		t.Errorf("monochromatic of red = %s, hue off by %v", out, d)
	}
}

func TestRelated_Fallbacks(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)))

	out := g.Related(nil, Complementary, "#0000ff")
	if d := hueDistance(colorspace.HexToHSL(out).H, 60); d > 2 {
		t.Errorf("complementary with blue fallback = %s", out)
	}

	if out := g.Related(nil, Triadic, ""); !colorspace.IsHex(out) {
		t.Errorf("Related with no refs and no fallback = %q", out)
	}
	if out := g.Related([]string{"#ff0000"}, Relationship(99), ""); !colorspace.IsHex(out) {
		t.Errorf("Related with unknown relationship = %q", out)
	}
	if out := g.Related([]string{"not a color"}, Analogous, ""); !colorspace.IsHex(out) {
		t.Errorf("Related with junk refs = %q", out)
	}
}

func TestRelated_Deterministic(t *testing.T) {
	a := New(rand.New(rand.NewSource(42)))
	b := New(rand.New(rand.NewSource(42)))
	for _, rel := range All() {
		x := a.Related([]string{"#3498db"}, rel, "")
		y := b.Related([]string{"#3498db"}, rel, "")
		if x != y {
			t.Errorf("%s: seeded generators diverged: %s vs %s", rel, x, y)
		}
	}
}

func TestMany(t *testing.T) {
	g := New(rand.New(rand.NewSource(9)))
	refs := []string{"#3498db"}
	out := g.Many(refs, Analogous, 4)
	if len(out) != 4 {
		t.Fatalf("Many returned %d colors, want 4", len(out))
	}
	for _, c := range out {
		if !colorspace.IsHex(c) {
			t.Errorf("Many produced %q", c)
		}
	}
	if len(refs) != 1 {
		t.Errorf("Many mutated refs: %v", refs)
	}
}

func TestNilGenerator(t *testing.T) {
	var g *Generator
	if out := g.Related([]string{"#ff0000"}, Complementary, ""); !colorspace.IsHex(out) {
		t.Errorf("nil generator produced %q", out)
	}
}
