// Package session coordinates the two-phase save flow. Analysis produces a
// pending session holding the reconciled garments and the temp image; the
// user then confirms, force-saves past duplicate warnings, or cancels.
package session

import (
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
	"github.com/closetmonkey/wardrobe-go/internal/filestore"
	"github.com/closetmonkey/wardrobe-go/internal/logging"
)

// PendingAnalysis is the state parked between analysis and confirmation.
type PendingAnalysis struct {
	Token         string
	UserID        string
	TempImagePath string
	Records       []detection.GarmentRecord
	SuggestedName string
	Duplicates    []detection.DuplicateCandidate
	CreatedAt     time.Time
}

// SaveResult reports what a confirmed session persisted.
type SaveResult struct {
	Outfit     *datastore.Outfit
	SavedItems []datastore.WardrobeItem
}

// Coordinator owns pending sessions. Sessions expire on a TTL so abandoned
// analyses don't pin temp images forever.
type Coordinator struct {
	cache  *gocache.Cache
	store  datastore.Interface
	files  *filestore.Store
	logger *slog.Logger
}

// NewCoordinator creates a session coordinator with the configured TTL.
func NewCoordinator(settings *conf.Settings, store datastore.Interface, files *filestore.Store) *Coordinator {
	logger := logging.ForService("session")
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		cache:  gocache.New(settings.Session.TTL, settings.Session.CleanupInterval),
		store:  store,
		files:  files,
		logger: logger,
	}
}

// Begin parks an analysis result and returns its session token.
func (c *Coordinator) Begin(pending PendingAnalysis) string {
	pending.CreatedAt = time.Now()
	c.cache.SetDefault(pending.Token, &pending)
	c.logger.Debug("session started",
		"token", pending.Token,
		"user", pending.UserID,
		"items", len(pending.Records))
	return pending.Token
}

// Get returns the pending analysis for a token, or a session error when the
// token is unknown or expired.
func (c *Coordinator) Get(token string) (*PendingAnalysis, error) {
	value, found := c.cache.Get(token)
	if !found {
		return nil, missingSessionError(token, "session not found or expired")
	}
	return value.(*PendingAnalysis), nil
}

// Update replaces a pending session's records with the user's edits, e.g.
// corrected colors or names from the review stage.
func (c *Coordinator) Update(token string, records []detection.GarmentRecord) error {
	pending, err := c.Get(token)
	if err != nil {
		return err
	}
	pending.Records = records
	c.cache.SetDefault(token, pending)
	return nil
}

// Confirm persists a pending session: new wardrobe items are cataloged, the
// outfit row is written with its item links, and the temp image is promoted.
//
// When the session carries duplicate-outfit warnings, Confirm refuses with a
// conflict error; the caller resolves it with ForceSave or Cancel.
func (c *Coordinator) Confirm(token, name string) (*SaveResult, error) {
	pending, err := c.Get(token)
	if err != nil {
		return nil, err
	}

	if len(pending.Duplicates) > 0 {
		return nil, errors.Newf("outfit resembles %d existing outfit(s)", len(pending.Duplicates)).
			Component("session").
			Category(errors.CategoryConflict).
			Context("token", token).
			Build()
	}

	return c.save(pending, name)
}

// ForceSave persists a pending session regardless of duplicate warnings.
func (c *Coordinator) ForceSave(token, name string) (*SaveResult, error) {
	pending, err := c.Get(token)
	if err != nil {
		return nil, err
	}
	return c.save(pending, name)
}

// Cancel ends a session. With discard set, the temp image is deleted too;
// otherwise it is left for the janitor sweep.
func (c *Coordinator) Cancel(token string, discard bool) error {
	pending, err := c.Get(token)
	if err != nil {
		return err
	}

	c.cache.Delete(token)
	if discard {
		c.files.DeleteTemp(pending.TempImagePath)
	}
	c.logger.Debug("session cancelled", "token", token, "discard", discard)
	return nil
}

func (c *Coordinator) save(pending *PendingAnalysis, name string) (*SaveResult, error) {
	if !c.files.TempExists(pending.TempImagePath) {
		c.cache.Delete(pending.Token)
		return nil, missingSessionError(pending.Token, "temp image no longer exists")
	}

	if name == "" {
		name = pending.SuggestedName
	}

	permanent, err := c.files.Promote(pending.TempImagePath)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{}
	outfitItems := make([]datastore.OutfitItem, 0, len(pending.Records))

	for i := range pending.Records {
		record := &pending.Records[i]
		outfitItem := datastore.OutfitItem{
			Name:     record.Name,
			Category: record.Category,
			Color:    record.Color,
			Type:     record.Type,
		}

		// Records whose crop is the whole photo follow it to its
		// permanent location.
		imageURL := record.CroppedImageURL
		if imageURL == pending.TempImagePath {
			imageURL = permanent
		}

		switch {
		case record.Status == detection.StatusExisting && record.MatchedItem != nil:
			id := record.MatchedItem.ID
			outfitItem.WardrobeItemID = &id
		default:
			item := datastore.WardrobeItem{
				UserID:   pending.UserID,
				Name:     record.Name,
				Category: record.Category,
				Color:    record.Color,
				Type:     record.Type,
				Brand:    record.Brand,
				ImageURL: imageURL,
			}
			// A failing item save degrades to an unlinked outfit row
			// rather than losing the whole outfit.
			if err := c.store.SaveWardrobeItem(&item); err != nil {
				c.logger.Warn("failed to catalog wardrobe item",
					"name", record.Name, "error", err)
			} else {
				id := item.ID
				outfitItem.WardrobeItemID = &id
				result.SavedItems = append(result.SavedItems, item)
				// The record now exists in the catalog; a retried
				// confirm must link it, not catalog it twice.
				record.Status = detection.StatusExisting
				record.MatchedItem = &detection.CatalogRef{
					ID:       item.ID,
					Name:     item.Name,
					Category: item.Category,
					Color:    item.Color,
					Type:     item.Type,
					Brand:    item.Brand,
				}
			}
		}

		outfitItems = append(outfitItems, outfitItem)
	}

	outfit := &datastore.Outfit{
		UserID:    pending.UserID,
		Name:      name,
		ImagePath: permanent,
		Items:     outfitItems,
	}
	if err := c.store.SaveOutfit(outfit); err != nil {
		// Put the photo back so the session stays confirmable.
		if restoreErr := c.files.Unpromote(permanent, pending.TempImagePath); restoreErr != nil {
			c.logger.Warn("failed to restore temp image after save failure",
				"path", permanent, "error", restoreErr)
		}
		return nil, err
	}

	c.cache.Delete(pending.Token)
	c.logger.Info("outfit saved",
		"outfit_id", outfit.ID,
		"name", outfit.Name,
		"items", len(outfitItems),
		"new_items", len(result.SavedItems))

	result.Outfit = outfit
	return result, nil
}

func missingSessionError(token, msg string) error {
	return errors.Newf("%s", msg).
		Component("session").
		Category(errors.CategorySession).
		Context("token", token).
		Build()
}
