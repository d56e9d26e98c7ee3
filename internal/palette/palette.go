// Package palette holds the category color palette and random color
// selection.
package palette

import (
	"fmt"
	"math/rand"
	"strings"
)

// Colors is the fixed palette categories draw from on creation.
var Colors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
	"#D4A5A5", "#9B59B6", "#3498DB", "#E67E22", "#2ECC71",
	"#E74C3C", "#F1C40F", "#1ABC9C", "#34495E", "#95A5A6",
}

// DefaultColor is the fallback when random selection cannot satisfy the
// visibility constraint.
const DefaultColor = "#95A5A6"

// MinLightness is the lightness floor for randomly generated colors so cards
// stay readable on light backgrounds.
const MinLightness = 0.35

// maxAttempts bounds the random retry loop.
const maxAttempts = 20

// Random returns a palette color chosen uniformly at random.
func Random() string {
	return Colors[rand.Intn(len(Colors))]
}

// RandomVisible returns a random RGB color whose HSL lightness is at least
// MinLightness. After maxAttempts failed draws it falls back to
// DefaultColor, so it always terminates.
func RandomVisible() string {
	for i := 0; i < maxAttempts; i++ {
		c := fmt.Sprintf("#%02X%02X%02X", rand.Intn(256), rand.Intn(256), rand.Intn(256))
		if l, err := Lightness(c); err == nil && l >= MinLightness {
			return c
		}
	}
	return DefaultColor
}

// Lightness computes the HSL lightness of a #RRGGBB color in [0,1].
func Lightness(hexColor string) (float64, error) {
	s := strings.TrimPrefix(hexColor, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid hex color %q", hexColor)
	}

	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", hexColor, err)
	}

	maxC := max(r, max(g, b))
	minC := min(r, min(g, b))
	return float64(maxC+minC) / 510.0, nil
}

// IsPaletteColor reports whether c is one of the fixed palette entries.
func IsPaletteColor(c string) bool {
	for _, p := range Colors {
		if strings.EqualFold(p, c) {
			return true
		}
	}
	return false
}
