package domain

import "fmt"

// ColorScheme names one of the fixed accent palettes.
type ColorScheme string

const (
	SchemeBlue   ColorScheme = "blue"
	SchemeGreen  ColorScheme = "green"
	SchemePurple ColorScheme = "purple"
	SchemeOrange ColorScheme = "orange"
	SchemeRed    ColorScheme = "red"
)

// ShadeSteps are the token suffixes of each palette ramp, lightest first.
var ShadeSteps = [10]int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

var palettes = map[ColorScheme][10]string{
	SchemeBlue:   {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"},
	SchemeGreen:  {"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d"},
	SchemePurple: {"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87"},
	SchemeOrange: {"#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12"},
	SchemeRed:    {"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"},
}

// ColorSchemes lists the palettes in display order.
func ColorSchemes() []ColorScheme {
	return []ColorScheme{SchemeBlue, SchemeGreen, SchemePurple, SchemeOrange, SchemeRed}
}

// ParseColorScheme validates a stored or submitted palette name.
func ParseColorScheme(s string) (ColorScheme, error) {
	if _, ok := palettes[ColorScheme(s)]; ok {
		return ColorScheme(s), nil
	}
	return "", fmt.Errorf("%w: color scheme %q", ErrInvalidSetting, s)
}

// Palette returns the shade ramp of the scheme. Unknown schemes fall back to blue.
func (c ColorScheme) Palette() [10]string {
	if p, ok := palettes[c]; ok {
		return p
	}
	return palettes[SchemeBlue]
}
