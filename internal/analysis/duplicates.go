package analysis

import (
	"fmt"
	"strings"

	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
)

// signature builds the multiset of "type:color" keys describing an outfit's
// composition. Garment names and brands are deliberately excluded; two
// outfits are the same clothes regardless of what the user called them.
func signature(keys []string) map[string]int {
	sig := make(map[string]int, len(keys))
	for _, key := range keys {
		sig[key]++
	}
	return sig
}

func recordKeys(records []detection.GarmentRecord) []string {
	keys := make([]string, 0, len(records))
	for i := range records {
		keys = append(keys, compositionKey(records[i].Type, records[i].Color))
	}
	return keys
}

func outfitKeys(items []datastore.OutfitItem) []string {
	keys := make([]string, 0, len(items))
	for i := range items {
		keys = append(keys, compositionKey(items[i].Type, items[i].Color))
	}
	return keys
}

func compositionKey(garmentType, color string) string {
	return fmt.Sprintf("%s:%s",
		strings.ToLower(strings.TrimSpace(garmentType)),
		strings.ToLower(strings.TrimSpace(color)))
}

// jaccard computes multiset Jaccard similarity between two signatures.
func jaccard(a, b map[string]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	union := 0
	for key, countA := range a {
		countB := b[key]
		if countB < countA {
			intersection += countB
			union += countA
		} else {
			intersection += countA
			union += countB
		}
	}
	for key, countB := range b {
		if _, ok := a[key]; !ok {
			union += countB
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// FindDuplicates compares the candidate records against each saved outfit and
// reports outfits whose composition similarity strictly exceeds threshold.
// Similarity is reported as a percentage.
func FindDuplicates(records []detection.GarmentRecord, outfits []datastore.Outfit, threshold float64) []detection.DuplicateCandidate {
	if len(records) == 0 {
		return nil
	}

	candidate := signature(recordKeys(records))

	var duplicates []detection.DuplicateCandidate
	for i := range outfits {
		sim := jaccard(candidate, signature(outfitKeys(outfits[i].Items)))
		if sim > threshold {
			duplicates = append(duplicates, detection.DuplicateCandidate{
				OutfitID:   outfits[i].ID,
				Name:       outfits[i].Name,
				Similarity: sim * 100,
			})
		}
	}
	return duplicates
}
