// Package imageproc resolves detection geometry: overlap-based deduplication
// and orientation-normalized garment crops.
package imageproc

import (
	"math"
	"sort"
	"strings"

	"github.com/closetmonkey/wardrobe-go/internal/detection"
)

// IoU computes intersection-over-union between the axis-aligned extents of
// two bounding boxes. Returns 0 for malformed or non-overlapping boxes.
func IoU(a, b detection.BoundingBox) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	aMinX, aMinY, aMaxX, aMaxY := a.Extent()
	bMinX, bMinY, bMaxX, bMaxY := b.Extent()

	interMinX := math.Max(aMinX, bMinX)
	interMinY := math.Max(aMinY, bMinY)
	interMaxX := math.Min(aMaxX, bMaxX)
	interMaxY := math.Min(aMaxY, bMaxY)

	if interMaxX <= interMinX || interMaxY <= interMinY {
		return 0
	}

	interArea := (interMaxX - interMinX) * (interMaxY - interMinY)
	aArea := (aMaxX - aMinX) * (aMaxY - aMinY)
	bArea := (bMaxX - bMinX) * (bMaxY - bMinY)

	union := aArea + bArea - interArea
	if union <= 0 {
		return 0
	}
	return interArea / union
}

// categoriesOverlap reports whether two categories describe the same kind of
// garment, matching substrings in both directions ("shoe" vs "running shoe").
func categoriesOverlap(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Dedupe removes near-duplicate detections. Candidates are visited in
// descending confidence order; a candidate overlapping an already-accepted
// detection of the same or overlapping category beyond iouThreshold is
// discarded.
func Dedupe(items []detection.Detection, iouThreshold float64) []detection.Detection {
	if len(items) <= 1 {
		return items
	}

	sorted := make([]detection.Detection, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	accepted := make([]detection.Detection, 0, len(sorted))
	for i := range sorted {
		duplicate := false
		for j := range accepted {
			if !categoriesOverlap(sorted[i].Category, accepted[j].Category) {
				continue
			}
			if IoU(sorted[i].BoundingBox, accepted[j].BoundingBox) > iouThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, sorted[i])
		}
	}

	return accepted
}
