package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
)

func record(garmentType, color string) detection.GarmentRecord {
	return detection.GarmentRecord{Type: garmentType, Color: color}
}

func outfitWith(id uint, name string, items ...datastore.OutfitItem) datastore.Outfit {
	return datastore.Outfit{ID: id, Name: name, Items: items}
}

func outfitItem(garmentType, color string) datastore.OutfitItem {
	return datastore.OutfitItem{Type: garmentType, Color: color}
}

func TestFindDuplicatesIdenticalComposition(t *testing.T) {
	records := []detection.GarmentRecord{
		record("blazer", "navy"),
		record("pants", "gray"),
		record("shoes", "brown"),
	}
	outfits := []datastore.Outfit{
		outfitWith(1, "Monday Navy Look",
			outfitItem("blazer", "navy"),
			outfitItem("pants", "gray"),
			outfitItem("shoes", "brown"),
		),
	}

	duplicates := FindDuplicates(records, outfits, 0.7)

	require.Len(t, duplicates, 1)
	assert.Equal(t, uint(1), duplicates[0].OutfitID)
	assert.Equal(t, "Monday Navy Look", duplicates[0].Name)
	assert.InDelta(t, 100.0, duplicates[0].Similarity, 0.001)
}

func TestFindDuplicatesThresholdIsExclusive(t *testing.T) {
	// 2 shared keys of 2+2 distinct: 2/2 = 1.0 only when identical. Here one
	// differs: intersection 2, union 4, similarity 0.5, below threshold.
	records := []detection.GarmentRecord{
		record("blazer", "navy"),
		record("pants", "gray"),
		record("shoes", "brown"),
	}
	outfits := []datastore.Outfit{
		outfitWith(1, "A",
			outfitItem("blazer", "navy"),
			outfitItem("pants", "gray"),
			outfitItem("shoes", "black"),
		),
	}

	// Similarity is exactly 2/4 = 0.5.
	assert.Empty(t, FindDuplicates(records, outfits, 0.7))
	// At threshold equal to similarity nothing is reported either.
	assert.Empty(t, FindDuplicates(records, outfits, 0.5))
	// Strictly below, it is.
	assert.Len(t, FindDuplicates(records, outfits, 0.49), 1)
}

func TestFindDuplicatesIgnoresNamesAndBrands(t *testing.T) {
	records := []detection.GarmentRecord{
		{Name: "Something Else", Brand: "Nike", Type: "t-shirt", Color: "white"},
	}
	outfits := []datastore.Outfit{
		outfitWith(2, "B", datastore.OutfitItem{Name: "Old Tee", Type: "T-Shirt", Color: "White"}),
	}

	duplicates := FindDuplicates(records, outfits, 0.7)
	require.Len(t, duplicates, 1)
	assert.InDelta(t, 100.0, duplicates[0].Similarity, 0.001)
}

func TestFindDuplicatesMultisetCounts(t *testing.T) {
	// Two white shirts vs one: intersection 1, union 2.
	records := []detection.GarmentRecord{
		record("shirt", "white"),
		record("shirt", "white"),
	}
	outfits := []datastore.Outfit{
		outfitWith(3, "C", outfitItem("shirt", "white")),
	}

	assert.Empty(t, FindDuplicates(records, outfits, 0.7))
	assert.Len(t, FindDuplicates(records, outfits, 0.4), 1)
}

func TestFindDuplicatesNoRecords(t *testing.T) {
	outfits := []datastore.Outfit{
		outfitWith(4, "D", outfitItem("shirt", "white")),
	}
	assert.Nil(t, FindDuplicates(nil, outfits, 0.7))
}

func TestFindDuplicatesEmptyOutfitNotSimilar(t *testing.T) {
	records := []detection.GarmentRecord{record("shirt", "white")}
	outfits := []datastore.Outfit{outfitWith(5, "E")}

	assert.Empty(t, FindDuplicates(records, outfits, 0.7))
}

func TestJaccardProperties(t *testing.T) {
	a := signature([]string{"blazer:navy", "pants:gray"})
	b := signature([]string{"pants:gray", "blazer:navy"})

	assert.InDelta(t, 1.0, jaccard(a, b), 0.001)
	assert.InDelta(t, jaccard(a, b), jaccard(b, a), 0.001)
	assert.Zero(t, jaccard(nil, nil))
}
