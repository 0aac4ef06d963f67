package contrast

import (
	"fmt"
	"math"
	"testing"
)

func TestRelativeLuminance(t *testing.T) {
	tests := []struct {
		hex  string
		want float64
	}{
		{"#000000", 0},
		{"#ffffff", 1},
		{"#ff0000", 0.2126},
		{"#00ff00", 0.7152},
		{"#0000ff", 0.0722},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := RelativeLuminance(tt.hex); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RelativeLuminance(%s) = %f, want %f", tt.hex, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("#000000", "#ffffff"); math.Abs(got-21) > 1e-9 {
		t.Errorf("Ratio(black, white) = %f, want 21", got)
	}
	if got := Ratio("#3498db", "#3498db"); got != 1 {
		t.Errorf("Ratio(x, x) = %f, want 1", got)
	}
}

func TestRatio_SymmetricAndBounded(t *testing.T) {
	for a := 0; a < 1<<24; a += 1 << 19 {
		for b := 0; b < 1<<24; b += 3 << 19 {
			x, y := fmt.Sprintf("#%06x", a), fmt.Sprintf("#%06x", b)
			r1, r2 := Ratio(x, y), Ratio(y, x)
			if r1 != r2 {
				t.Fatalf("Ratio(%s, %s) = %f but reversed = %f", x, y, r1, r2)
			}
			if r1 < 1 {
				t.Fatalf("Ratio(%s, %s) = %f < 1", x, y, r1)
			}
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Level
	}{
		{21, AAA},
		{7, AAA},
		{6.99, AA},
		{4.5, AA},
		{4.49, AA18},
		{3, AA18},
		{2.9, Fail},
		{1, Fail},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.ratio), func(t *testing.T) {
			if got := LevelFor(tt.ratio); got != tt.want {
				t.Errorf("LevelFor(%v) = %s, want %s", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    string
	}{
		{
			name:    "empty",
			results: nil,
			want:    "",
		},
		{
			name: "all excellent",
			results: []Result{
				{Background: "light", Level: AAA},
				{Background: "gray", Level: AAA},
				{Background: "dark", Level: AAA},
			},
			want: "excellent readability on all backgrounds",
		},
		{
			name: "all insufficient",
			results: []Result{
				{Background: "light", Level: Fail},
				{Background: "gray", Level: Fail},
				{Background: "dark", Level: Fail},
			},
			want: "insufficient contrast on all backgrounds",
		},
		{
			name: "two in a tier",
			results: []Result{
				{Background: "light", Level: AAA},
				{Background: "gray", Level: AAA},
				{Background: "dark", Level: Fail},
			},
			want: "excellent on light and gray · poor on dark",
		},
		{
			name: "three in a tier",
			results: []Result{
				{Background: "light", Level: AA},
				{Background: "paper", Level: AA},
				{Background: "gray", Level: AA},
				{Background: "dark", Level: AA18},
			},
			want: "good on light, paper and gray · large text only on dark",
		},
		{
			name: "tiers ordered best first",
			results: []Result{
				{Background: "light", Level: Fail},
				{Background: "gray", Level: AA18},
				{Background: "dark", Level: AAA},
			},
			want: "excellent on dark · large text only on gray · poor on light",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.results); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	got := Evaluate("#ffffff", DefaultBackgrounds)
	if len(got) != 3 {
		t.Fatalf("Evaluate returned %d results", len(got))
	}
	want := []Level{Fail, AA18, AAA}
	for i, r := range got {
		if r.Background != DefaultBackgrounds[i].Name {
			t.Errorf("result %d background = %s", i, r.Background)
		}
		if r.Level != want[i] {
			t.Errorf("white on %s = %s (%.2f), want %s", r.Background, r.Level, r.Ratio, want[i])
		}
	}
	if d := Describe(got); d != "excellent on dark · large text only on gray · poor on light" {
		t.Errorf("Describe(white) = %q", d)
	}
}
