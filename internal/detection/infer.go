package detection

import (
	"image"
	"strings"

	"github.com/closetmonkey/wardrobe-go/internal/colorname"
)

// Categories that imply a shirt underneath when none is visible.
var outerwearTerms = []string{"suit", "blazer", "jacket", "coat"}

// Categories that count as a visible shirt.
var shirtTerms = []string{
	"shirt", "blouse", "t-shirt", "dress shirt", "tank top", "turtleneck", "crop top",
}

// Fixed confidences for inferred items, from the original heuristics.
const (
	inferredFromOuterwearConfidence = 85
	inferredFromTieConfidence       = 90
)

func containsAny(category string, terms []string) bool {
	c := strings.ToLower(category)
	for _, term := range terms {
		if strings.Contains(c, term) {
			return true
		}
	}
	return false
}

func hasShirtLike(items []Detection, labels []string) bool {
	for i := range items {
		if containsAny(items[i].Category, shirtTerms) {
			return true
		}
	}
	for _, label := range labels {
		if containsAny(label, shirtTerms) {
			return true
		}
	}
	return false
}

// InferComplements adds garments implied but not directly detected. A blazer
// with no visible shirt implies a dress shirt; so does a tie. At most one
// inferred item is added per analysis, first rule wins.
//
// img is the decoded, orientation-normalized analysis image used for color
// sampling; it may be nil, in which case the inferred color defaults to white.
func InferComplements(items []Detection, labels []string, img image.Image) []Detection {
	if hasShirtLike(items, labels) {
		return items
	}

	for i := range items {
		if !containsAny(items[i].Category, outerwearTerms) {
			continue
		}
		color := sampleShirtColor(img, outerwearSampleRegions(items[i].BoundingBox))
		return append(items, Detection{
			Category:   "dress shirt",
			Confidence: inferredFromOuterwearConfidence,
			Source:     items[i].Source,
			Inferred:   true,
			Color:      color,
		})
	}

	for i := range items {
		if !strings.Contains(strings.ToLower(items[i].Category), "tie") {
			continue
		}
		color := sampleShirtColor(img, tieSampleRegions(items[i].BoundingBox))
		return append(items, Detection{
			Category:   "dress shirt",
			Confidence: inferredFromTieConfidence,
			Source:     items[i].Source,
			Inferred:   true,
			Color:      color,
		})
	}

	return items
}

// region is a normalized sample rectangle.
type region struct {
	minX, minY, maxX, maxY float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (r region) clamped() region {
	return region{clamp01(r.minX), clamp01(r.minY), clamp01(r.maxX), clamp01(r.maxY)}
}

// outerwearSampleRegions returns the collar, chest, and cuff areas of an
// outerwear box, where the shirt underneath shows.
func outerwearSampleRegions(box BoundingBox) []region {
	if !box.Valid() {
		return nil
	}
	minX, minY, maxX, maxY := box.Extent()
	w := maxX - minX
	h := maxY - minY
	return []region{
		// Collar: narrow strip at the top center.
		region{minX + 0.35*w, minY + 0.02*h, minX + 0.65*w, minY + 0.15*h}.clamped(),
		// Chest: center of the upper half, between the lapels.
		region{minX + 0.40*w, minY + 0.15*h, minX + 0.60*w, minY + 0.45*h}.clamped(),
		// Cuff: just below the sleeve end.
		region{minX + 0.05*w, minY + 0.80*h, minX + 0.20*w, minY + 0.95*h}.clamped(),
	}
}

// tieSampleRegions returns areas to the left, right, and above a tie box.
func tieSampleRegions(box BoundingBox) []region {
	if !box.Valid() {
		return nil
	}
	minX, minY, maxX, maxY := box.Extent()
	w := maxX - minX
	h := maxY - minY
	return []region{
		region{minX - 0.8*w, minY + 0.1*h, minX - 0.1*w, minY + 0.6*h}.clamped(),
		region{maxX + 0.1*w, minY + 0.1*h, maxX + 0.8*w, minY + 0.6*h}.clamped(),
		region{minX - 0.2*w, minY - 0.25*h, maxX + 0.2*w, minY - 0.05*h}.clamped(),
	}
}

// sampleShirtColor averages the usable pixels of each region in turn and
// classifies the first region that yields a color. Skin-tone-adjacent and
// very dark samples are excluded so collars and shadows don't pollute the
// average. Falls back to white when nothing usable is found.
func sampleShirtColor(img image.Image, regions []region) string {
	if img == nil || len(regions) == 0 {
		return "white"
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return "white"
	}

	for _, reg := range regions {
		x0 := bounds.Min.X + int(reg.minX*float64(width))
		y0 := bounds.Min.Y + int(reg.minY*float64(height))
		x1 := bounds.Min.X + int(reg.maxX*float64(width))
		y1 := bounds.Min.Y + int(reg.maxY*float64(height))
		if x1 <= x0 || y1 <= y0 {
			continue
		}

		var sumR, sumG, sumB, count uint64
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				r8 := uint8(cr >> 8)
				g8 := uint8(cg >> 8)
				b8 := uint8(cb >> 8)
				if isSkinTone(r8, g8, b8) || isVeryDark(r8, g8, b8) {
					continue
				}
				sumR += uint64(r8)
				sumG += uint64(g8)
				sumB += uint64(b8)
				count++
			}
		}
		if count == 0 {
			continue
		}

		name := colorname.Classify(uint8(sumR/count), uint8(sumG/count), uint8(sumB/count))
		if name != colorname.Unknown {
			return name
		}
	}

	return "white"
}

// isSkinTone is a coarse RGB skin heuristic; precision doesn't matter here,
// it only has to keep neck and hand pixels out of the shirt sample.
func isSkinTone(r, g, b uint8) bool {
	return r > 95 && g > 40 && b > 20 &&
		r > g && r > b &&
		int(r)-int(b) > 15 && int(r)-int(g) > 10
}

func isVeryDark(r, g, b uint8) bool {
	return int(r)+int(g)+int(b) < 90
}
