// Package colorname maps RGB samples to human-readable clothing color names.
package colorname

import (
	"math"
)

// Unknown is returned when a sample is too far from every palette anchor.
// Callers must treat it as "no color assigned", not as an error.
const Unknown = "unknown"

// HSL holds a color in hue/saturation/lightness space. Hue is in degrees
// [0,360), saturation and lightness in [0,1].
type HSL struct {
	H float64
	S float64
	L float64
}

// RGBToHSL converts RGB channels (0-255) to HSL.
func RGBToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	l := (maxC + minC) / 2

	var s float64
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	var h float64
	switch {
	case delta == 0:
		h = 0
	case maxC == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case maxC == gf:
		h = 60 * ((bf-rf)/delta + 2)
	case maxC == bf:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	return HSL{H: h, S: s, L: l}
}

// ladderStep maps a lightness ceiling to a color name. Steps are evaluated
// in order, first ceiling at or above the sample's lightness wins.
type ladderStep struct {
	maxL float64
	name string
}

func climb(ladder []ladderStep, l float64) string {
	for _, step := range ladder {
		if l <= step.maxL {
			return step.name
		}
	}
	return ladder[len(ladder)-1].name
}

// Warm neutral ladder, darkest first. Applies to low-saturation r>g>b samples.
var warmNeutralLadder = []ladderStep{
	{0.30, "light brown"},
	{0.42, "camel"},
	{0.52, "khaki"},
	{0.62, "tan"},
	{0.72, "light beige"},
	{0.82, "beige"},
	{1.00, "cream"},
}

// True brown ladder for strongly red-dominant samples in the brown hue range.
var brownLadder = []ladderStep{
	{0.18, "dark brown"},
	{0.30, "brown"},
	{0.42, "chestnut"},
	{0.55, "light brown"},
	{1.00, "tan"},
}

// Nine-step grayscale ladder, black to white.
var grayscaleLadder = []ladderStep{
	{0.08, "black"},
	{0.18, "charcoal"},
	{0.30, "dark gray"},
	{0.45, "gray"},
	{0.58, "medium gray"},
	{0.70, "light gray"},
	{0.82, "silver"},
	{0.93, "off white"},
	{1.00, "white"},
}

// hueBand is one disjoint slice of the hue wheel with its own
// lightness/saturation sub-rules.
type hueBand struct {
	minH, maxH float64
	classify   func(hsl HSL) string
}

// Hue bands in ascending hue order. The red band wraps around 360 and is
// checked separately.
var hueBands = []hueBand{
	{10, 40, func(c HSL) string { // orange-browns
		switch {
		case c.L < 0.25:
			return "dark brown"
		case c.L < 0.40 && c.S < 0.60:
			return "brown"
		case c.L < 0.45:
			return "rust"
		case c.L < 0.60:
			return "orange"
		default:
			return "peach"
		}
	}},
	{40, 65, func(c HSL) string { // yellows
		switch {
		case c.L < 0.35:
			return "olive"
		case c.S < 0.45 || c.L < 0.55:
			return "mustard"
		case c.L < 0.75:
			return "yellow"
		default:
			return "light yellow"
		}
	}},
	{65, 90, func(c HSL) string { // yellow-greens
		switch {
		case c.L < 0.30:
			return "olive"
		case c.L < 0.55:
			return "olive green"
		default:
			return "lime"
		}
	}},
	{90, 150, func(c HSL) string { // greens
		switch {
		case c.L < 0.22:
			return "dark green"
		case c.L < 0.38:
			return "forest green"
		case c.L < 0.55:
			return "green"
		case c.L < 0.72:
			return "light green"
		default:
			return "mint"
		}
	}},
	{150, 195, func(c HSL) string { // cyans and teals
		switch {
		case c.L < 0.30:
			return "dark teal"
		case c.L < 0.50:
			return "teal"
		case c.L < 0.70:
			return "turquoise"
		default:
			return "aqua"
		}
	}},
	{195, 255, func(c HSL) string { // blues
		switch {
		case c.L < 0.22:
			return "navy"
		case c.L < 0.35:
			return "dark blue"
		case c.L < 0.50:
			return "blue"
		case c.L < 0.65:
			return "royal blue"
		case c.L < 0.80:
			return "light blue"
		default:
			return "sky blue"
		}
	}},
	{255, 280, func(c HSL) string { // blue-purples
		switch {
		case c.L < 0.35:
			return "indigo"
		case c.L < 0.60:
			return "violet"
		default:
			return "periwinkle"
		}
	}},
	{280, 320, func(c HSL) string { // purples
		switch {
		case c.L < 0.25:
			return "dark purple"
		case c.L < 0.40:
			return "plum"
		case c.L < 0.60:
			return "purple"
		default:
			return "lavender"
		}
	}},
	{320, 345, func(c HSL) string { // red-purples
		switch {
		case c.L < 0.35:
			return "wine"
		case c.L < 0.55:
			return "magenta"
		case c.L < 0.75:
			return "hot pink"
		default:
			return "pink"
		}
	}},
}

// classifyRed handles the wrap-around red band (345-360 and 0-10 degrees).
func classifyRed(c HSL) string {
	switch {
	case c.L < 0.20:
		return "maroon"
	case c.L < 0.35:
		return "burgundy"
	case c.L < 0.55:
		return "red"
	case c.L < 0.75:
		return "coral"
	default:
		return "light pink"
	}
}

// Classify maps an RGB triple to a clothing color name. It is deterministic
// and pure. The heuristic order matters: warm neutrals and browns must be
// caught before the grayscale test, and olive hues before both, otherwise
// low-saturation earth tones collapse into gray.
func Classify(r, g, b uint8) string {
	hsl := RGBToHSL(r, g, b)

	maxCh := max(r, g, b)
	minCh := min(r, g, b)
	spread := int(maxCh) - int(minCh)

	// Warm neutrals: red over green over blue with a modest channel spread.
	// The hue gate keeps olive greens out of this branch.
	if r > g && g > b && spread >= 10 && spread <= 90 && hsl.S < 0.35 && hsl.H < 50 {
		return climb(warmNeutralLadder, hsl.L)
	}

	// True browns: strong red dominance in the brown hue range.
	if r > g && g > b && int(r)-int(b) >= 50 && int(r)-int(g) >= 20 && hsl.H >= 10 && hsl.H <= 40 {
		return climb(brownLadder, hsl.L)
	}

	// Olive and khaki hues are low saturation but not gray.
	if hsl.H >= 50 && hsl.H <= 90 && hsl.S >= 0.05 && hsl.S < 0.40 {
		if hsl.L < 0.45 {
			return "olive"
		}
		return "khaki"
	}

	// Grayscale ladder.
	if hsl.S < 0.05 {
		return climb(grayscaleLadder, hsl.L)
	}

	// Hue band dispatch.
	if hsl.H >= 345 || hsl.H < 10 {
		return classifyRed(hsl)
	}
	for i := range hueBands {
		band := &hueBands[i]
		if hsl.H >= band.minH && hsl.H < band.maxH {
			return band.classify(hsl)
		}
	}

	// Hue bands cover the wheel, so this is only reached for samples the
	// rules cannot place. Fall back to the nearest palette anchor.
	return Nearest(r, g, b)
}
