package imageproc

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
)

// Decode decodes an image and normalizes its orientation using the embedded
// EXIF orientation tag. Phone photos are routinely stored rotated; all crop
// math happens against the oriented image's dimensions.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.New(err).
			Component("imageproc").
			Category(errors.CategoryImageDecode).
			Context("operation", "decode-image").
			Build()
	}
	return img, nil
}

// Envelope returns the union envelope of the given boxes as one axis-aligned
// bounding box. Invalid boxes are skipped; returns nil if none are usable.
func Envelope(boxes []detection.BoundingBox) detection.BoundingBox {
	found := false
	minX, minY, maxX, maxY := 1.0, 1.0, 0.0, 0.0

	for _, b := range boxes {
		if !b.Valid() {
			continue
		}
		bMinX, bMinY, bMaxX, bMaxY := b.Extent()
		if bMinX < minX {
			minX = bMinX
		}
		if bMinY < minY {
			minY = bMinY
		}
		if bMaxX > maxX {
			maxX = bMaxX
		}
		if bMaxY > maxY {
			maxY = bMaxY
		}
		found = true
	}

	if !found {
		return nil
	}
	return detection.BoundingBox{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// Crop cuts the region covered by the union envelope of boxes out of the
// oriented image, expanding the region by padding (a fraction of its width
// and height) on each side to compensate for tight detections, clamped to
// the image bounds.
//
// Returns a crop-geometry error when the final rectangle has non-positive
// dimensions, e.g. for a degenerate point box.
func Crop(img image.Image, boxes []detection.BoundingBox, padding float64) (image.Image, error) {
	envelope := Envelope(boxes)
	if envelope == nil {
		return nil, errors.Newf("no valid bounding box to crop").
			Component("imageproc").
			Category(errors.CategoryCropGeometry).
			Build()
	}

	bounds := img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	minX, minY, maxX, maxY := envelope.Extent()

	x0 := minX * width
	y0 := minY * height
	x1 := maxX * width
	y1 := maxY * height

	padX := (x1 - x0) * padding
	padY := (y1 - y0) * padding

	x0 = math.Max(0, x0-padX)
	y0 = math.Max(0, y0-padY)
	x1 = math.Min(width, x1+padX)
	y1 = math.Min(height, y1+padY)

	rect := image.Rect(
		bounds.Min.X+int(x0),
		bounds.Min.Y+int(y0),
		bounds.Min.X+int(math.Ceil(x1)),
		bounds.Min.Y+int(math.Ceil(y1)),
	)

	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, errors.Newf("crop rectangle is degenerate: %dx%d", rect.Dx(), rect.Dy()).
			Component("imageproc").
			Category(errors.CategoryCropGeometry).
			Context("min_x", minX).
			Context("min_y", minY).
			Context("max_x", maxX).
			Context("max_y", maxY).
			Build()
	}

	return imaging.Crop(img, rect), nil
}
