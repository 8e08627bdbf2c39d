package colorname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGrayscaleEndpoints(t *testing.T) {
	assert.Equal(t, "black", Classify(0, 0, 0))
	assert.Equal(t, "white", Classify(255, 255, 255))
}

func TestClassifyGrayscaleLadder(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{10, 10, 10, "black"},
		{40, 40, 40, "charcoal"},
		{70, 70, 70, "dark gray"},
		{100, 100, 100, "gray"},
		{140, 140, 140, "medium gray"},
		{170, 170, 170, "light gray"},
		{200, 200, 200, "silver"},
		{230, 230, 230, "off white"},
		{250, 250, 250, "white"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.r, tt.g, tt.b), "rgb(%d,%d,%d)", tt.r, tt.g, tt.b)
	}
}

func TestSaturatedColorsNeverGrayscale(t *testing.T) {
	grayNames := map[string]bool{}
	for _, step := range grayscaleLadder {
		grayNames[step.name] = true
	}

	samples := [][3]uint8{
		{200, 40, 40},   // red
		{25, 35, 75},    // navy
		{55, 140, 65},   // green
		{240, 140, 40},  // orange
		{140, 70, 160},  // purple
		{110, 105, 55},  // olive
		{35, 125, 125},  // teal
		{245, 170, 195}, // pink
	}
	for _, s := range samples {
		got := Classify(s[0], s[1], s[2])
		assert.False(t, grayNames[got], "rgb(%d,%d,%d) classified as grayscale %q", s[0], s[1], s[2], got)
	}
}

func TestClassifyHueBands(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{200, 40, 40, "red"},
		{25, 35, 75, "navy"},
		{45, 80, 170, "blue"},
		{55, 140, 65, "green"},
		{25, 60, 35, "dark green"},
		{35, 125, 125, "teal"},
		{245, 215, 60, "yellow"},
		{140, 70, 160, "purple"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.r, tt.g, tt.b), "rgb(%d,%d,%d)", tt.r, tt.g, tt.b)
	}
}

func TestClassifyOliveBeforeGray(t *testing.T) {
	// Low saturation olive must not fall through to the grayscale or warm
	// neutral branches.
	assert.Equal(t, "olive", Classify(110, 105, 55))
	assert.Equal(t, "khaki", Classify(170, 165, 120))
}

func TestClassifyWarmNeutrals(t *testing.T) {
	got := Classify(205, 190, 160)
	warm := map[string]bool{
		"cream": true, "beige": true, "light beige": true, "tan": true,
		"khaki": true, "camel": true, "light brown": true,
	}
	assert.True(t, warm[got], "rgb(205,190,160) classified as %q", got)
}

func TestClassifyBrowns(t *testing.T) {
	assert.Equal(t, "dark brown", Classify(70, 48, 30))
	got := Classify(130, 85, 50)
	browns := map[string]bool{
		"dark brown": true, "brown": true, "chestnut": true,
		"light brown": true, "tan": true,
	}
	assert.True(t, browns[got], "rgb(130,85,50) classified as %q", got)
}

func TestNearestExactAnchors(t *testing.T) {
	assert.Equal(t, "navy", Nearest(25, 35, 75))
	assert.Equal(t, "mustard", Nearest(205, 170, 55))
	assert.Equal(t, "teal", Nearest(35, 125, 125))
}

func TestNearestBeyondCutoffIsUnknown(t *testing.T) {
	// Pure screen green sits far from every clothing anchor.
	assert.Equal(t, Unknown, Nearest(0, 255, 0))
}

func TestPaletteSize(t *testing.T) {
	assert.GreaterOrEqual(t, PaletteSize(), 90)
}

func TestRGBToHSL(t *testing.T) {
	hsl := RGBToHSL(255, 0, 0)
	assert.InDelta(t, 0.0, hsl.H, 0.01)
	assert.InDelta(t, 1.0, hsl.S, 0.01)
	assert.InDelta(t, 0.5, hsl.L, 0.01)

	hsl = RGBToHSL(0, 0, 255)
	assert.InDelta(t, 240.0, hsl.H, 0.01)

	hsl = RGBToHSL(128, 128, 128)
	assert.InDelta(t, 0.0, hsl.S, 0.01)
	assert.InDelta(t, 0.502, hsl.L, 0.01)
}
