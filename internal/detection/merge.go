package detection

import "strings"

// isFootwear reports whether a category names a shoe-like garment.
func isFootwear(category string) bool {
	c := strings.ToLower(category)
	return strings.Contains(c, "shoe") || strings.Contains(c, "footwear")
}

// Merge collapses same-category detections into logical garments.
//
// All shoe-like detections in a batch merge into one "shoes" record carrying
// every member's bounding box, since a pair is one logical garment. Any other
// category with multiple exact-match detections keeps only the
// highest-confidence instance. Order is preserved except within merged
// groups, which collapse onto the first member's position.
func Merge(items []Detection) []Detection {
	if len(items) == 0 {
		return items
	}

	var shoes []Detection
	firstShoe := -1
	bestByCategory := make(map[string]int) // category -> index into merged
	merged := make([]Detection, 0, len(items))

	for i := range items {
		item := items[i]

		if isFootwear(item.Category) {
			if firstShoe == -1 {
				firstShoe = len(merged)
				merged = append(merged, Detection{}) // placeholder, filled below
			}
			shoes = append(shoes, item)
			continue
		}

		key := strings.ToLower(item.Category)
		if prev, ok := bestByCategory[key]; ok {
			if item.Confidence > merged[prev].Confidence {
				merged[prev] = item
			}
			continue
		}
		bestByCategory[key] = len(merged)
		merged = append(merged, item)
	}

	if firstShoe >= 0 {
		merged[firstShoe] = mergeFootwear(shoes)
	}

	return merged
}

// mergeFootwear collapses a group of shoe detections into one record. The
// multi-box list only exists for true multi-region merges; a lone shoe keeps
// its single box in the usual place.
func mergeFootwear(shoes []Detection) Detection {
	out := Detection{
		Category: "shoes",
		Source:   shoes[0].Source,
	}

	var boxes []BoundingBox
	for i := range shoes {
		if shoes[i].Confidence > out.Confidence {
			out.Confidence = shoes[i].Confidence
			out.Source = shoes[i].Source
		}
		if shoes[i].BoundingBox != nil {
			boxes = append(boxes, shoes[i].BoundingBox)
		}
	}

	if len(boxes) > 0 {
		out.BoundingBox = boxes[0]
	}
	if len(boxes) > 1 {
		out.AllBoundingBoxes = boxes
	}

	return out
}
