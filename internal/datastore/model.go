// model.go this code defines the data model for the wardrobe catalog
package datastore

import "time"

// WardrobeItem is a single garment in the user's catalog.
type WardrobeItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_wardrobe_user"`
	Name      string
	Category  string `gorm:"index:idx_wardrobe_category"`
	Color     string
	Type      string
	Brand     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outfit is a saved combination of garments with its photo.
type Outfit struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index:idx_outfits_user"`
	Name      string
	ImagePath string
	CreatedAt time.Time `gorm:"index"`
	Items     []OutfitItem `gorm:"foreignKey:OutfitID;constraint:OnDelete:CASCADE"`
}

// OutfitItem is a join row between an outfit and its garments, carrying a
// snapshot of the garment at save time. WardrobeItemID links back to the
// catalog entry when the garment matched or was persisted.
type OutfitItem struct {
	ID             uint  `gorm:"primaryKey"`
	OutfitID       uint  `gorm:"index;not null;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;foreignKey:OutfitID;references:ID"`
	WardrobeItemID *uint `gorm:"index"`
	Name           string
	Category       string
	Color          string
	Type           string
}
