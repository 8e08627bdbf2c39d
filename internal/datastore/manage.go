package datastore

import (
	"gorm.io/gorm"

	"github.com/closetmonkey/wardrobe-go/internal/errors"
	"github.com/closetmonkey/wardrobe-go/internal/logging"
)

// performAutoMigration runs GORM auto-migration for the catalog schema.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&WardrobeItem{}, &Outfit{}, &OutfitItem{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "auto-migration").
			Context("db_type", dbType).
			Build()
	}

	if debug {
		logging.Debug("database connection initialized", "db_type", dbType, "connection", connectionInfo)
	}
	return nil
}
