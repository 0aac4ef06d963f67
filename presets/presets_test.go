package presets

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/color-palette/api/colorspace"
)

func mustLookup(t *testing.T, id ID) Preset {
	t.Helper()
	p, ok := Lookup(id)
	if !ok {
		t.Fatalf("preset %q missing from catalog", id)
	}
	return p
}

func TestCatalog(t *testing.T) {
	got := Catalog()
	if len(got) != 8 {
		t.Fatalf("catalog has %d presets, want 8", len(got))
	}
	want := []ID{Pastel, Neon, Earth, Jewel, Monochrome, Warm, Cool, Muted}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("catalog[%d] = %q, want %q", i, got[i].ID, id)
		}
	}

	got[0].Label = "mutated"
	if again := Catalog(); again[0].Label == "mutated" {
		t.Error("Catalog returned shared storage")
	}

	if _, ok := Lookup("vaporwave"); ok {
		t.Error("Lookup(vaporwave) should fail")
	}
}

func TestIsActive_Empty(t *testing.T) {
	for _, p := range Catalog() {
		if IsActive(nil, p) || IsActive([]string{}, p) {
			t.Errorf("%s: empty palette reported active", p.ID)
		}
	}
}

func TestIsActive_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		preset ID
		color  string
		want   bool
	}{
		{"monochrome lightness max+2", Monochrome, "#ebebeb", true},
		{"monochrome lightness max+3", Monochrome, "#ededed", false},
		{"monochrome lightness min-2", Monochrome, "#141414", true},
		{"monochrome lightness min-3", Monochrome, "#121212", false},
		{"monochrome saturation max+2", Monochrome, "#877676", true},
		{"monochrome saturation max+3", Monochrome, "#887575", false},
		{"earth hue min-2", Earth, "#8d553d", true},
		{"earth hue min-3", Earth, "#8d533d", false},
		{"earth hue max+2", Earth, "#8a8d3d", true},
		{"earth hue max+3", Earth, "#898d3d", false},
		{"warm wrapped hue min-2", Warm, "#d72683", true},
		{"warm wrapped hue min-3", Warm, "#d72686", false},
		{"warm wrapped hue max+2", Warm, "#d0d726", true},
		{"warm wrapped hue max+3", Warm, "#cdd726", false},
		{"warm wrapped hue at 0", Warm, "#d72626", true},
		{"cool rejects red", Cool, "#d72626", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustLookup(t, tt.preset)
			if got := IsActive([]string{tt.color}, p); got != tt.want {
				t.Errorf("IsActive(%s, %s) = %v, want %v (hsl %+v)", tt.color, tt.preset, got, tt.want, colorspace.HexToHSL(tt.color))
			}
		})
	}
}

func TestIsActive_HueIgnoredForFullCircle(t *testing.T) {
	neon := mustLookup(t, Neon)
	colors := []string{"#ff0000", "#00ff00", "#0000ff", "#ff00ff"}
	if !IsActive(colors, neon) {
		t.Error("saturated primaries should match neon regardless of hue")
	}
}

func TestIsActive_StructuralMonochrome(t *testing.T) {
	gray := Preset{ID: "custom", Hue: Range{200, 220}, Saturation: Range{0, 5}, Lightness: Range{0, 100}}
	if !IsActive([]string{"#808080"}, gray) {
		t.Error("a preset with saturation capped at 5 should ignore hue")
	}
}

func TestGenerate_StaysInsidePreset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, p := range Catalog() {
		t.Run(string(p.ID), func(t *testing.T) {
			for round := 0; round < 50; round++ {
				colors := Generate(rng, p, 5)
				if len(colors) != 5 {
					t.Fatalf("Generate returned %d colors", len(colors))
				}
				for _, c := range colors {
					if !colorspace.IsHex(c) {
						t.Fatalf("Generate produced %q", c)
					}
				}
				if !IsActive(colors, p) {
					t.Fatalf("generated palette %v does not match %s", colors, p.ID)
				}
			}
		})
	}
}

func TestGenerate_Monochrome(t *testing.T) {
	p := mustLookup(t, Monochrome)
	colors := Generate(rand.New(rand.NewSource(2)), p, 5)
	for _, c := range colors {
		if s := colorspace.HexToHSL(c).S; s > 7 {
			t.Errorf("monochrome color %s has saturation %v", c, s)
		}
	}
}

func TestGenerate_LightnessStratified(t *testing.T) {
	p := mustLookup(t, Monochrome)
	rng := rand.New(rand.NewSource(4))
	const count = 4
	colors := Generate(rng, p, count)

	lights := make([]float64, 0, count)
	for _, c := range colors {
		lights = append(lights, colorspace.HexToHSL(c).L)
	}
	sort.Float64s(lights)

	// Each sorted value lands in its own 20-point segment of [10,90].
	for i, l := range lights {
		lo := 10 + 20*float64(i) - 1
		hi := 10 + 20*float64(i+1) + 1
		if l < lo || l > hi {
			t.Errorf("lightness %v not in segment %d [%v,%v]", l, i, lo, hi)
		}
	}
}

func TestGenerate_WrappedHue(t *testing.T) {
	p := mustLookup(t, Warm)
	colors := Generate(rand.New(rand.NewSource(8)), p, 50)
	for _, c := range colors {
		h := colorspace.HexToHSL(c).H
		if h > 62 && h < 328 {
			t.Errorf("warm color %s has hue %v", c, h)
		}
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	if got := Generate(nil, mustLookup(t, Pastel), 0); len(got) != 0 {
		t.Errorf("Generate(count=0) = %v", got)
	}
}

func TestActivePresets(t *testing.T) {
	got := ActivePresets([]string{"#808080", "#333333"})
	ids := map[ID]bool{}
	for _, p := range got {
		ids[p.ID] = true
	}
	if !ids[Monochrome] {
		t.Errorf("ActivePresets(grays) = %v, want monochrome", got)
	}
	if ids[Neon] {
		t.Errorf("ActivePresets(grays) includes neon")
	}
	if len(ActivePresets(nil)) != 0 {
		t.Error("ActivePresets(nil) should be empty")
	}
}
