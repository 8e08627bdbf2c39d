// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// catalog store operations used by the pipeline.
type Interface interface {
	Open() error
	Close() error

	SaveWardrobeItem(item *WardrobeItem) error
	GetWardrobeItems(userID string) ([]WardrobeItem, error)
	GetWardrobeItem(id uint) (WardrobeItem, error)

	SaveOutfit(outfit *Outfit) error
	GetOutfits(userID string) ([]Outfit, error)
	GetOutfit(id uint) (Outfit, error)
	AttachPhoto(outfitID uint, imagePath string) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// createGormLogger creates a GORM logger that stays quiet except for slow
// queries and errors.
func createGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// SaveWardrobeItem inserts or updates a catalog item.
func (ds *DataStore) SaveWardrobeItem(item *WardrobeItem) error {
	if err := ds.DB.Save(item).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save-wardrobe-item").
			Build()
	}
	return nil
}

// GetWardrobeItems fetches all catalog items for a user. No filtering is
// pushed down; match scoring happens in memory.
func (ds *DataStore) GetWardrobeItems(userID string) ([]WardrobeItem, error) {
	var items []WardrobeItem
	if err := ds.DB.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get-wardrobe-items").
			Build()
	}
	return items, nil
}

// GetWardrobeItem retrieves a single catalog item by id.
func (ds *DataStore) GetWardrobeItem(id uint) (WardrobeItem, error) {
	var item WardrobeItem
	if err := ds.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WardrobeItem{}, errors.Newf("wardrobe item %d not found", id).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return WardrobeItem{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return item, nil
}

// SaveOutfit stores an outfit and its item rows as a single transaction.
func (ds *DataStore) SaveOutfit(outfit *Outfit) error {
	tx := ds.DB.Begin()
	if tx.Error != nil {
		return errors.New(tx.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "begin-transaction").
			Build()
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	items := outfit.Items
	outfit.Items = nil
	if err := tx.Create(outfit).Error; err != nil {
		tx.Rollback()
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "save-outfit").
			Build()
	}

	for i := range items {
		items[i].OutfitID = outfit.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return errors.New(err).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("operation", "save-outfit-item").
				Build()
		}
	}
	outfit.Items = items

	if err := tx.Commit().Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "commit-transaction").
			Build()
	}
	return nil
}

// GetOutfits fetches all outfits for a user, items included.
func (ds *DataStore) GetOutfits(userID string) ([]Outfit, error) {
	var outfits []Outfit
	if err := ds.DB.Preload("Items").Where("user_id = ?", userID).Order("id").Find(&outfits).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "get-outfits").
			Build()
	}
	return outfits, nil
}

// GetOutfit retrieves one outfit by id, items included.
func (ds *DataStore) GetOutfit(id uint) (Outfit, error) {
	var outfit Outfit
	if err := ds.DB.Preload("Items").First(&outfit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Outfit{}, errors.Newf("outfit %d not found", id).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return Outfit{}, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return outfit, nil
}

// AttachPhoto updates an outfit's photo path, used when the user decides a
// duplicate outfit should get the new picture instead of a new record.
func (ds *DataStore) AttachPhoto(outfitID uint, imagePath string) error {
	result := ds.DB.Model(&Outfit{}).Where("id = ?", outfitID).Update("image_path", imagePath)
	if result.Error != nil {
		return errors.New(result.Error).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "attach-photo").
			Build()
	}
	if result.RowsAffected == 0 {
		return errors.Newf("outfit %d not found", outfitID).
			Component("datastore").
			Category(errors.CategoryNotFound).
			Build()
	}
	return nil
}
