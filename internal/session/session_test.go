package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
	"github.com/closetmonkey/wardrobe-go/internal/filestore"
)

type testEnv struct {
	coordinator *Coordinator
	store       datastore.Interface
	files       *filestore.Store
	settings    *conf.Settings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	settings := conf.TestSettings()
	settings.Storage.UploadPath = filepath.Join(root, "uploads")
	settings.Storage.TempPath = filepath.Join(root, "uploads", "temp")
	settings.Storage.CropPath = filepath.Join(root, "uploads", "crops")
	settings.Storage.OutfitPath = filepath.Join(root, "uploads", "outfits")
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(root, "test.db")

	store := datastore.New(settings)
	require.NoError(t, store.Open())
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	files, err := filestore.New(settings)
	require.NoError(t, err)

	return &testEnv{
		coordinator: NewCoordinator(settings, store, files),
		store:       store,
		files:       files,
		settings:    settings,
	}
}

func (e *testEnv) beginSession(t *testing.T, records []detection.GarmentRecord, duplicates []detection.DuplicateCandidate) string {
	t.Helper()
	tempPath, err := e.files.SaveTemp([]byte("photo-bytes"))
	require.NoError(t, err)

	return e.coordinator.Begin(PendingAnalysis{
		Token:         "token-1",
		UserID:        "user-1",
		TempImagePath: tempPath,
		Records:       records,
		SuggestedName: "Saturday Navy Look",
		Duplicates:    duplicates,
	})
}

func sampleRecords() []detection.GarmentRecord {
	return []detection.GarmentRecord{
		{Name: "Navy Blazer", Category: "blazer", Color: "navy", Type: "blazer", Status: detection.StatusNew},
		{Name: "Gray Pants", Category: "pants", Color: "gray", Type: "pants", Status: detection.StatusNew},
	}
}

func TestConfirmSavesOutfitAndCatalogsNewItems(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	result, err := env.coordinator.Confirm(token, "")
	require.NoError(t, err)

	require.NotNil(t, result.Outfit)
	assert.Equal(t, "Saturday Navy Look", result.Outfit.Name)
	assert.NotZero(t, result.Outfit.ID)
	assert.Len(t, result.SavedItems, 2)

	saved, err := env.store.GetOutfit(result.Outfit.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 2)
	require.NotNil(t, saved.Items[0].WardrobeItemID)

	items, err := env.store.GetWardrobeItems("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// The temp image was promoted into the outfit namespace.
	assert.Contains(t, result.Outfit.ImagePath, "outfits")
}

func TestConfirmUsesProvidedName(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	result, err := env.coordinator.Confirm(token, "Date Night")
	require.NoError(t, err)
	assert.Equal(t, "Date Night", result.Outfit.Name)
}

func TestConfirmLinksExistingItemsWithoutRecataloging(t *testing.T) {
	env := newTestEnv(t)

	existing := &datastore.WardrobeItem{UserID: "user-1", Name: "Navy Blazer", Category: "blazer", Color: "navy", Type: "blazer"}
	require.NoError(t, env.store.SaveWardrobeItem(existing))

	records := sampleRecords()
	records[0].Status = detection.StatusExisting
	records[0].MatchedItem = &detection.CatalogRef{ID: existing.ID, Name: existing.Name}
	token := env.beginSession(t, records, nil)

	result, err := env.coordinator.Confirm(token, "")
	require.NoError(t, err)

	// Only the pants were new.
	assert.Len(t, result.SavedItems, 1)

	items, err := env.store.GetWardrobeItems("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	saved, err := env.store.GetOutfit(result.Outfit.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.Items[0].WardrobeItemID)
	assert.Equal(t, existing.ID, *saved.Items[0].WardrobeItemID)
}

func TestUpdateAppliesUserEditsBeforeConfirm(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	edited := sampleRecords()
	edited[0].Name = "Midnight Blazer"
	edited[0].Color = "midnight blue"
	require.NoError(t, env.coordinator.Update(token, edited))

	result, err := env.coordinator.Confirm(token, "")
	require.NoError(t, err)

	saved, err := env.store.GetOutfit(result.Outfit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Blazer", saved.Items[0].Name)
	assert.Equal(t, "midnight blue", saved.Items[0].Color)

	require.Error(t, env.coordinator.Update(token, edited), "session is gone after confirm")
}

func TestConfirmRefusesWithDuplicateWarnings(t *testing.T) {
	env := newTestEnv(t)
	duplicates := []detection.DuplicateCandidate{{OutfitID: 1, Name: "Old Look", Similarity: 100}}
	token := env.beginSession(t, sampleRecords(), duplicates)

	_, err := env.coordinator.Confirm(token, "")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConflict))

	// The session survives a refused confirmation.
	_, err = env.coordinator.Get(token)
	require.NoError(t, err)
}

func TestForceSaveIgnoresDuplicateWarnings(t *testing.T) {
	env := newTestEnv(t)
	duplicates := []detection.DuplicateCandidate{{OutfitID: 1, Name: "Old Look", Similarity: 100}}
	token := env.beginSession(t, sampleRecords(), duplicates)

	result, err := env.coordinator.ForceSave(token, "")
	require.NoError(t, err)
	assert.NotZero(t, result.Outfit.ID)
}

func TestConfirmTwiceFailsWithMissingSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	_, err := env.coordinator.Confirm(token, "")
	require.NoError(t, err)

	_, err = env.coordinator.Confirm(token, "")
	require.Error(t, err)
	assert.True(t, errors.IsMissingTempImage(err))
}

func TestConfirmUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.coordinator.Confirm("no-such-token", "")
	require.Error(t, err)
	assert.True(t, errors.IsMissingTempImage(err))
}

func TestConfirmAfterTempImageDeleted(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	pending, err := env.coordinator.Get(token)
	require.NoError(t, err)
	env.files.DeleteTemp(pending.TempImagePath)

	_, err = env.coordinator.Confirm(token, "")
	require.Error(t, err)
	assert.True(t, errors.IsMissingTempImage(err))

	// The dead session was dropped too.
	_, err = env.coordinator.Get(token)
	require.Error(t, err)
}

// failingOutfitStore rejects outfit writes while fail is set.
type failingOutfitStore struct {
	datastore.Interface
	fail bool
}

func (s *failingOutfitStore) SaveOutfit(outfit *datastore.Outfit) error {
	if s.fail {
		return errors.Newf("disk full").
			Category(errors.CategoryDatabase).
			Build()
	}
	return s.Interface.SaveOutfit(outfit)
}

func TestOutfitSaveFailureKeepsSessionConfirmable(t *testing.T) {
	env := newTestEnv(t)
	flaky := &failingOutfitStore{Interface: env.store, fail: true}
	coordinator := NewCoordinator(env.settings, flaky, env.files)

	tempPath, err := env.files.SaveTemp([]byte("photo-bytes"))
	require.NoError(t, err)
	token := coordinator.Begin(PendingAnalysis{
		Token:         "token-1",
		UserID:        "user-1",
		TempImagePath: tempPath,
		Records:       sampleRecords(),
		SuggestedName: "Saturday Navy Look",
	})

	_, err = coordinator.Confirm(token, "")
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))

	// The photo is back in the temp namespace and the session survived.
	assert.True(t, env.files.TempExists(tempPath))
	_, err = coordinator.Get(token)
	require.NoError(t, err)

	flaky.fail = false
	result, err := coordinator.Confirm(token, "")
	require.NoError(t, err)
	assert.NotZero(t, result.Outfit.ID)

	// The first attempt's cataloged items were linked, not recataloged.
	items, err := env.store.GetWardrobeItems("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Empty(t, result.SavedItems)
}

func TestCancelDiscardsTempImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	pending, err := env.coordinator.Get(token)
	require.NoError(t, err)
	tempPath := pending.TempImagePath

	require.NoError(t, env.coordinator.Cancel(token, true))
	assert.False(t, env.files.TempExists(tempPath))

	_, err = env.coordinator.Get(token)
	require.Error(t, err)
}

func TestCancelKeepsTempImageForJanitor(t *testing.T) {
	env := newTestEnv(t)
	token := env.beginSession(t, sampleRecords(), nil)

	pending, err := env.coordinator.Get(token)
	require.NoError(t, err)

	require.NoError(t, env.coordinator.Cancel(token, false))
	assert.True(t, env.files.TempExists(pending.TempImagePath))
}
