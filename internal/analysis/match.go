// Package analysis composes the garment reconciliation pipeline: detection
// aggregation, geometry resolution, merging, inference, wardrobe matching,
// and duplicate-outfit detection.
package analysis

import (
	"strings"

	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
)

// Additive match score weights. Hand-tuned in the original pipeline and kept
// as-is; the acceptance threshold lives in configuration.
const (
	scoreCategory = 40
	scoreColor    = 30
	scoreType     = 20
	scoreBrand    = 10
)

func fieldsEqual(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// matchScore computes the additive similarity between a garment record and a
// catalog item. Brand only counts when both sides carry one.
func matchScore(record *detection.GarmentRecord, item *datastore.WardrobeItem) int {
	score := 0
	if fieldsEqual(record.Category, item.Category) {
		score += scoreCategory
	}
	if fieldsEqual(record.Color, item.Color) {
		score += scoreColor
	}
	if fieldsEqual(record.Type, item.Type) {
		score += scoreType
	}
	if record.Brand != "" && item.Brand != "" && fieldsEqual(record.Brand, item.Brand) {
		score += scoreBrand
	}
	return score
}

// MatchWardrobe scores each record against the catalog and marks it new or
// existing. The highest-scoring item at or above threshold wins; ties go to
// the first catalog entry encountered.
func MatchWardrobe(records []detection.GarmentRecord, catalog []datastore.WardrobeItem, threshold int) (newCount, existingCount int) {
	for i := range records {
		records[i].Status = detection.StatusNew
		records[i].MatchedItem = nil

		bestScore := 0
		var best *datastore.WardrobeItem
		for j := range catalog {
			if score := matchScore(&records[i], &catalog[j]); score > bestScore {
				bestScore = score
				best = &catalog[j]
			}
		}

		if best != nil && bestScore >= threshold {
			records[i].Status = detection.StatusExisting
			records[i].MatchedItem = &detection.CatalogRef{
				ID:       best.ID,
				Name:     best.Name,
				Category: best.Category,
				Color:    best.Color,
				Type:     best.Type,
				Brand:    best.Brand,
			}
			existingCount++
			continue
		}
		newCount++
	}
	return newCount, existingCount
}
