package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	return img
}

func TestDecodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(40, 30), nil))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryImageDecode))
}

func TestCropAppliesPadding(t *testing.T) {
	img := testImage(200, 100)

	// Box covering x [0.25,0.75], y [0.2,0.8]: 100x60 px before padding.
	cropped, err := Crop(img, []detection.BoundingBox{box(0.25, 0.2, 0.75, 0.8)}, 0.10)
	require.NoError(t, err)

	// 10% padding per side adds 10px horizontally and 6px vertically each side.
	assert.InDelta(t, 120, cropped.Bounds().Dx(), 2)
	assert.InDelta(t, 72, cropped.Bounds().Dy(), 2)
}

func TestCropClampsToImageBounds(t *testing.T) {
	img := testImage(100, 100)

	cropped, err := Crop(img, []detection.BoundingBox{box(0.0, 0.0, 1.0, 1.0)}, 0.10)
	require.NoError(t, err)
	assert.Equal(t, 100, cropped.Bounds().Dx())
	assert.Equal(t, 100, cropped.Bounds().Dy())
}

func TestCropDegeneratePointBox(t *testing.T) {
	img := testImage(100, 100)

	_, err := Crop(img, []detection.BoundingBox{box(0.0, 0.0, 0.0, 0.0)}, 0.10)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCropGeometry(err))
}

func TestCropNoValidBox(t *testing.T) {
	img := testImage(100, 100)

	_, err := Crop(img, nil, 0.10)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCropGeometry(err))

	_, err = Crop(img, []detection.BoundingBox{{{X: 0.5, Y: 0.5}}}, 0.10)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidCropGeometry(err))
}

func TestCropUnionEnvelope(t *testing.T) {
	img := testImage(100, 100)

	// Two shoe boxes: the crop must cover both.
	boxes := []detection.BoundingBox{
		box(0.1, 0.8, 0.3, 0.95),
		box(0.6, 0.8, 0.8, 0.95),
	}
	cropped, err := Crop(img, boxes, 0)
	require.NoError(t, err)
	assert.InDelta(t, 70, cropped.Bounds().Dx(), 2)
	assert.InDelta(t, 15, cropped.Bounds().Dy(), 2)
}

func TestEnvelope(t *testing.T) {
	env := Envelope([]detection.BoundingBox{
		box(0.1, 0.2, 0.3, 0.4),
		box(0.5, 0.1, 0.9, 0.3),
	})
	require.NotNil(t, env)
	minX, minY, maxX, maxY := env.Extent()
	assert.InDelta(t, 0.1, minX, 1e-9)
	assert.InDelta(t, 0.1, minY, 1e-9)
	assert.InDelta(t, 0.9, maxX, 1e-9)
	assert.InDelta(t, 0.4, maxY, 1e-9)

	assert.Nil(t, Envelope(nil))
}
