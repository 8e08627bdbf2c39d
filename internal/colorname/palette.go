package colorname

import "math"

// anchor is a named reference color in the clothing palette.
type anchor struct {
	name    string
	r, g, b uint8
}

// Channel weights approximating perceptual luminance contribution, and the
// distance cutoff beyond which no anchor is considered a usable match.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114

	maxAnchorDistance = 60.0
)

// palette is the fixed clothing color table used by the nearest-neighbor
// fallback. Tuning it is a data change, not a logic change.
var palette = []anchor{
	{"black", 0, 0, 0},
	{"charcoal", 54, 54, 54},
	{"dark gray", 74, 74, 74},
	{"gray", 110, 110, 110},
	{"medium gray", 140, 140, 140},
	{"light gray", 180, 180, 180},
	{"silver", 205, 205, 205},
	{"off white", 238, 236, 230},
	{"white", 255, 255, 255},
	{"ivory", 255, 255, 240},
	{"cream", 250, 240, 215},
	{"beige", 222, 202, 170},
	{"light beige", 235, 220, 195},
	{"tan", 205, 170, 125},
	{"khaki", 186, 166, 125},
	{"camel", 175, 140, 90},
	{"sand", 216, 196, 160},
	{"taupe", 150, 130, 115},
	{"light brown", 150, 110, 70},
	{"chestnut", 130, 85, 50},
	{"brown", 110, 75, 45},
	{"dark brown", 70, 48, 30},
	{"chocolate", 90, 55, 35},
	{"coffee", 100, 70, 50},
	{"mahogany", 100, 45, 35},
	{"rust", 170, 80, 40},
	{"burnt orange", 190, 90, 40},
	{"orange", 240, 140, 40},
	{"peach", 250, 195, 160},
	{"apricot", 250, 180, 130},
	{"coral", 245, 125, 105},
	{"salmon", 245, 150, 130},
	{"red", 200, 40, 40},
	{"bright red", 235, 40, 40},
	{"dark red", 140, 25, 25},
	{"maroon", 100, 20, 25},
	{"burgundy", 125, 25, 45},
	{"wine", 110, 30, 55},
	{"crimson", 185, 25, 55},
	{"raspberry", 200, 50, 95},
	{"magenta", 210, 40, 150},
	{"fuchsia", 230, 50, 170},
	{"hot pink", 240, 90, 160},
	{"pink", 245, 170, 195},
	{"light pink", 250, 210, 220},
	{"blush", 245, 195, 190},
	{"rose", 225, 130, 150},
	{"mauve", 185, 140, 160},
	{"plum", 130, 70, 110},
	{"dark purple", 75, 40, 90},
	{"eggplant", 90, 50, 90},
	{"purple", 140, 70, 160},
	{"violet", 150, 90, 200},
	{"lavender", 200, 175, 225},
	{"lilac", 200, 160, 210},
	{"indigo", 70, 55, 130},
	{"periwinkle", 160, 165, 220},
	{"navy", 25, 35, 75},
	{"dark blue", 30, 45, 110},
	{"blue", 45, 80, 170},
	{"royal blue", 60, 90, 210},
	{"cobalt", 35, 70, 180},
	{"denim", 60, 90, 140},
	{"steel blue", 90, 120, 160},
	{"sky blue", 150, 200, 240},
	{"light blue", 170, 205, 235},
	{"baby blue", 190, 215, 240},
	{"turquoise", 55, 190, 195},
	{"aqua", 120, 220, 225},
	{"teal", 35, 125, 125},
	{"dark teal", 25, 85, 90},
	{"cyan", 70, 200, 225},
	{"mint", 170, 230, 195},
	{"seafoam", 150, 215, 185},
	{"light green", 150, 210, 140},
	{"green", 55, 140, 65},
	{"kelly green", 60, 160, 70},
	{"forest green", 40, 95, 50},
	{"dark green", 25, 60, 35},
	{"emerald", 40, 150, 100},
	{"hunter green", 35, 75, 50},
	{"olive", 110, 105, 55},
	{"olive green", 125, 125, 60},
	{"army green", 90, 95, 55},
	{"lime", 170, 210, 70},
	{"chartreuse", 180, 220, 50},
	{"yellow", 245, 215, 60},
	{"light yellow", 250, 240, 160},
	{"mustard", 205, 170, 55},
	{"gold", 215, 175, 70},
	{"lemon", 250, 235, 95},
}

// Nearest returns the palette anchor closest to the sample under a
// luminance-weighted Euclidean distance, or Unknown when the closest anchor
// is beyond the cutoff.
func Nearest(r, g, b uint8) string {
	best := Unknown
	bestDist := math.MaxFloat64

	for i := range palette {
		a := &palette[i]
		dr := float64(int(r) - int(a.r))
		dg := float64(int(g) - int(a.g))
		db := float64(int(b) - int(a.b))
		dist := math.Sqrt(weightR*dr*dr + weightG*dg*dg + weightB*db*db)
		if dist < bestDist {
			bestDist = dist
			best = a.name
		}
	}

	if bestDist > maxAnchorDistance {
		return Unknown
	}
	return best
}

// PaletteSize reports the number of anchors, exposed for tests.
func PaletteSize() int {
	return len(palette)
}
