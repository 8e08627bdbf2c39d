package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(c color.RGBA, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestInferShirtFromBlazer(t *testing.T) {
	items := []Detection{
		{Category: "blazer", Confidence: 92, BoundingBox: box(0.2, 0.1, 0.8, 0.6)},
		{Category: "tie", Confidence: 85, BoundingBox: box(0.45, 0.15, 0.55, 0.5)},
	}

	result := InferComplements(items, nil, nil)

	require.Len(t, result, 3)
	inferred := result[2]
	assert.Equal(t, "dress shirt", inferred.Category)
	assert.True(t, inferred.Inferred)
	assert.Nil(t, inferred.BoundingBox)
	assert.Equal(t, inferredFromOuterwearConfidence, inferred.Confidence)
	assert.Equal(t, "white", inferred.Color) // no image to sample
}

func TestInferShirtFromTie(t *testing.T) {
	items := []Detection{
		{Category: "tie", Confidence: 85, BoundingBox: box(0.45, 0.2, 0.55, 0.6)},
		{Category: "pants", Confidence: 80, BoundingBox: box(0.3, 0.5, 0.7, 0.95)},
	}

	result := InferComplements(items, nil, nil)

	require.Len(t, result, 3)
	inferred := result[2]
	assert.Equal(t, "dress shirt", inferred.Category)
	assert.Equal(t, inferredFromTieConfidence, inferred.Confidence)
	assert.True(t, inferred.Inferred)
}

func TestNoInferenceWhenShirtDetected(t *testing.T) {
	items := []Detection{
		{Category: "blazer", Confidence: 92},
		{Category: "t-shirt", Confidence: 70},
	}

	result := InferComplements(items, nil, nil)
	assert.Len(t, result, 2)
}

func TestNoInferenceWhenShirtInLabels(t *testing.T) {
	items := []Detection{
		{Category: "blazer", Confidence: 92},
	}

	result := InferComplements(items, []string{"Dress shirt", "Clothing"}, nil)
	assert.Len(t, result, 1)
}

func TestAtMostOneInferredItem(t *testing.T) {
	// Both the outerwear and tie rules fire; only the first may add an item.
	items := []Detection{
		{Category: "suit", Confidence: 90, BoundingBox: box(0.2, 0.1, 0.8, 0.9)},
		{Category: "tie", Confidence: 85, BoundingBox: box(0.45, 0.15, 0.55, 0.5)},
	}

	result := InferComplements(items, nil, nil)

	require.Len(t, result, 3)
	count := 0
	for i := range result {
		if result[i].Inferred {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, inferredFromOuterwearConfidence, result[2].Confidence)
}

func TestSampleRegionsStayInUnitSquare(t *testing.T) {
	// A box hugging the image edge pushes every raw region out of bounds.
	edgeBox := box(0.0, 0.0, 0.1, 0.1)

	outer := outerwearSampleRegions(edgeBox)
	require.Len(t, outer, 3)
	tie := tieSampleRegions(edgeBox)
	require.Len(t, tie, 3)

	for _, r := range append(outer, tie...) {
		assert.GreaterOrEqual(t, r.minX, 0.0)
		assert.GreaterOrEqual(t, r.minY, 0.0)
		assert.LessOrEqual(t, r.maxX, 1.0)
		assert.LessOrEqual(t, r.maxY, 1.0)
	}

	assert.Nil(t, outerwearSampleRegions(nil))
	assert.Nil(t, tieSampleRegions(nil))
}

func TestInferredColorSampledFromImage(t *testing.T) {
	// A uniform navy image should sample to a navy shirt.
	img := uniformImage(color.RGBA{R: 25, G: 35, B: 75, A: 255}, 100, 100)
	items := []Detection{
		{Category: "blazer", Confidence: 92, BoundingBox: box(0.1, 0.1, 0.9, 0.9)},
	}

	result := InferComplements(items, nil, img)

	require.Len(t, result, 2)
	assert.Equal(t, "navy", result[1].Color)
}

func TestInferredColorFallsBackOnDarkImage(t *testing.T) {
	// Every pixel is excluded as very dark, so the fallback applies.
	img := uniformImage(color.RGBA{R: 10, G: 10, B: 10, A: 255}, 50, 50)
	items := []Detection{
		{Category: "coat", Confidence: 90, BoundingBox: box(0.1, 0.1, 0.9, 0.9)},
	}

	result := InferComplements(items, nil, img)

	require.Len(t, result, 2)
	assert.Equal(t, "white", result[1].Color)
}
