package palette

import "testing"

func TestRandomStaysInPalette(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := Random()
		if !IsPaletteColor(c) {
			t.Fatalf("Random() returned %s, not a palette color", c)
		}
	}
}

func TestRandomVisibleMeetsLightnessFloor(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := RandomVisible()
		if c == DefaultColor {
			continue // bounded-retry fallback
		}
		l, err := Lightness(c)
		if err != nil {
			t.Fatalf("RandomVisible() returned invalid color %s: %v", c, err)
		}
		if l < MinLightness {
			t.Errorf("RandomVisible() returned %s with lightness %.3f < %.3f", c, l, MinLightness)
		}
	}
}

func TestLightness(t *testing.T) {
	tests := []struct {
		color string
		want  float64
	}{
		{"#000000", 0},
		{"#FFFFFF", 1},
		{"#FF0000", 0.5},
		{"#808080", 0.50196},
	}

	for _, tt := range tests {
		got, err := Lightness(tt.color)
		if err != nil {
			t.Fatalf("Lightness(%s) failed: %v", tt.color, err)
		}
		if diff := got - tt.want; diff > 0.01 || diff < -0.01 {
			t.Errorf("Lightness(%s) = %.4f, want %.4f", tt.color, got, tt.want)
		}
	}
}

func TestLightnessRejectsMalformed(t *testing.T) {
	for _, c := range []string{"", "#fff", "nope", "#GGGGGG"} {
		if _, err := Lightness(c); err == nil {
			t.Errorf("Lightness(%q) should fail", c)
		}
	}
}

func TestPaletteSize(t *testing.T) {
	if len(Colors) != 15 {
		t.Errorf("Expected 15 palette colors, got %d", len(Colors))
	}
}
