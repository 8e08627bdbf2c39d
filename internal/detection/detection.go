// Package detection defines the garment detection data model shared by the
// aggregation and reconciliation stages.
package detection

// Source identifies which vision mode surfaced a detection.
type Source string

const (
	SourceObjectDetection Source = "object-detection"
	SourceLabelDetection  Source = "label-detection"
	SourceWebDetection    Source = "web-detection"
)

// Status of a reconciled garment against the wardrobe catalog.
type Status string

const (
	StatusNew      Status = "new"
	StatusExisting Status = "existing"
)

// Point is a normalized image coordinate, x and y in [0,1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is an ordered sequence of 4 normalized corner points.
// A nil box means the detection carries no localization.
type BoundingBox []Point

// Valid reports whether the box has exactly 4 points inside the unit square.
func (b BoundingBox) Valid() bool {
	if len(b) != 4 {
		return false
	}
	for _, p := range b {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return false
		}
	}
	return true
}

// Extent returns the axis-aligned min/max extent of the box.
func (b BoundingBox) Extent() (minX, minY, maxX, maxY float64) {
	minX, minY = 1, 1
	for _, p := range b {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}

// Detection is a single candidate garment surfaced by the aggregator.
type Detection struct {
	Category         string        `json:"category"`
	Confidence       int           `json:"confidence"` // 0-100
	BoundingBox      BoundingBox   `json:"boundingBox,omitempty"`
	Source           Source        `json:"source"`
	AllBoundingBoxes []BoundingBox `json:"allBoundingBoxes,omitempty"` // merged multi-region items only
	UseFullImage     bool          `json:"useFullImage,omitempty"`     // label fallback carries no box
	Inferred         bool          `json:"inferred,omitempty"`
	Color            string        `json:"color,omitempty"`
}

// ColorSample is a dominant color reported by the vision service.
type ColorSample struct {
	R, G, B       uint8   `json:"-"`
	PixelFraction float64 `json:"pixelFraction"`
	ColorName     string  `json:"colorName"`
}

// CatalogRef is a read-only snapshot of a matched wardrobe catalog entry.
type CatalogRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Type     string `json:"type"`
	Brand    string `json:"brand,omitempty"`
}

// GarmentRecord is the reconciled output unit shown to the user for
// confirmation. It is mutable during the review stage.
type GarmentRecord struct {
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Color           string      `json:"color"`
	Type            string      `json:"type"`
	Brand           string      `json:"brand,omitempty"`
	Confidence      float64     `json:"confidence"` // 0-1
	CroppedImageURL string      `json:"croppedImageUrl,omitempty"`
	Status          Status      `json:"status"`
	MatchedItem     *CatalogRef `json:"matchedItem,omitempty"` // present iff Status == existing
	Inferred        bool        `json:"inferred"`
}

// DuplicateCandidate reports an existing outfit similar to the candidate one.
type DuplicateCandidate struct {
	OutfitID   uint    `json:"outfitId"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"` // percentage, 0-100
}
