package analysis

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/datastore"
	"github.com/closetmonkey/wardrobe-go/internal/detection"
	"github.com/closetmonkey/wardrobe-go/internal/filestore"
	"github.com/closetmonkey/wardrobe-go/internal/imageproc"
	"github.com/closetmonkey/wardrobe-go/internal/logging"
	"github.com/closetmonkey/wardrobe-go/internal/session"
	"github.com/closetmonkey/wardrobe-go/internal/vision"
)

// Pipeline runs one outfit photo through detection, reconciliation, matching,
// and duplicate checks, parking the result in a pending session.
type Pipeline struct {
	settings   *conf.Settings
	aggregator *vision.Aggregator
	store      datastore.Interface
	files      *filestore.Store
	sessions   *session.Coordinator
	logger     *slog.Logger
}

// Output is the analysis result returned for user review.
type Output struct {
	Token          string                         `json:"token"`
	SuggestedName  string                         `json:"suggestedName"`
	Records        []detection.GarmentRecord      `json:"items"`
	Duplicates     []detection.DuplicateCandidate `json:"duplicates,omitempty"`
	DominantColors []string                       `json:"dominantColors,omitempty"`
	NewItems       int                            `json:"newItems"`
	ExistingItems  int                            `json:"existingItems"`
}

// NewPipeline assembles the analysis pipeline.
func NewPipeline(settings *conf.Settings, aggregator *vision.Aggregator, store datastore.Interface, files *filestore.Store, sessions *session.Coordinator) *Pipeline {
	logger := logging.ForService("analysis")
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		settings:   settings,
		aggregator: aggregator,
		store:      store,
		files:      files,
		sessions:   sessions,
		logger:     logger,
	}
}

// Analyze runs the full pipeline on one uploaded photo.
//
// Undecodable images and temp storage failures abort; everything downstream
// degrades per stage so a partially sighted analysis still reaches review.
func (p *Pipeline) Analyze(ctx context.Context, userID string, imageData []byte) (*Output, error) {
	start := time.Now()

	img, err := imageproc.Decode(imageData)
	if err != nil {
		return nil, err
	}

	tempPath, err := p.files.SaveTemp(imageData)
	if err != nil {
		return nil, err
	}

	result := p.aggregator.Analyze(ctx, imageData)
	p.logger.Debug("vision aggregation complete",
		"detections", len(result.Detections),
		"colors", len(result.Colors),
		"brands", len(result.Brands))

	items := imageproc.Dedupe(result.Detections, p.settings.ImageProc.IoUThreshold)
	items = detection.Merge(items)
	items = detection.InferComplements(items, result.Labels, img)

	// Detected garments take the outfit's leading dominant color; inferred
	// garments keep the color sampled from their own pixel regions.
	for i := range items {
		if !items[i].Inferred && items[i].Color == "" && len(result.Colors) > 0 {
			items[i].Color = result.Colors[0]
		}
	}

	crops := p.cropAll(ctx, img, items, tempPath)
	records := p.buildRecords(items, crops, result.Brands)

	catalog, err := p.store.GetWardrobeItems(userID)
	if err != nil {
		p.logger.Warn("wardrobe catalog unavailable, treating all items as new", "error", err)
		catalog = nil
	}
	newCount, existingCount := MatchWardrobe(records, catalog, p.settings.Analysis.MatchThreshold)

	outfits, err := p.store.GetOutfits(userID)
	if err != nil {
		p.logger.Warn("saved outfits unavailable, skipping duplicate check", "error", err)
		outfits = nil
	}
	duplicates := FindDuplicates(records, outfits, p.settings.Analysis.DuplicateSimilarity)

	suggested := SuggestName(records, result.Colors)
	token := p.sessions.Begin(session.PendingAnalysis{
		Token:         uuid.NewString(),
		UserID:        userID,
		TempImagePath: tempPath,
		Records:       records,
		SuggestedName: suggested,
		Duplicates:    duplicates,
	})

	p.logger.Info("outfit analysis complete",
		"user", userID,
		"items", len(records),
		"new", newCount,
		"existing", existingCount,
		"duplicates", len(duplicates),
		"duration_ms", time.Since(start).Milliseconds())

	return &Output{
		Token:          token,
		SuggestedName:  suggested,
		Records:        records,
		Duplicates:     duplicates,
		DominantColors: result.Colors,
		NewItems:       newCount,
		ExistingItems:  existingCount,
	}, nil
}

// cropAll cuts and stores a crop per localized item, concurrently. Box-less
// detections fall back to the full analysis image; a failed crop leaves that
// one item without an image rather than failing its siblings.
func (p *Pipeline) cropAll(ctx context.Context, img image.Image, items []detection.Detection, tempPath string) []string {
	crops := make([]string, len(items))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for i := range items {
		item := &items[i]
		index := i

		if item.Inferred {
			continue
		}
		if item.UseFullImage || (!item.BoundingBox.Valid() && len(item.AllBoundingBoxes) == 0) {
			crops[index] = tempPath
			continue
		}

		g.Go(func() error {
			boxes := item.AllBoundingBoxes
			if len(boxes) == 0 {
				boxes = []detection.BoundingBox{item.BoundingBox}
			}

			cropped, err := imageproc.Crop(img, boxes, p.settings.ImageProc.CropPadding)
			if err != nil {
				p.logger.Warn("crop failed, item keeps no image",
					"category", item.Category, "error", err)
				return nil
			}

			path, err := p.files.SaveCrop(cropped, item.Category)
			if err != nil {
				p.logger.Warn("crop save failed, item keeps no image",
					"category", item.Category, "error", err)
				return nil
			}
			mu.Lock()
			crops[index] = path
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return crops
}

// buildRecords converts reconciled detections into review records. A detected
// brand carries through to every visible garment; inferred garments were never
// photographed and get none.
func (p *Pipeline) buildRecords(items []detection.Detection, crops []string, brands []string) []detection.GarmentRecord {
	records := make([]detection.GarmentRecord, 0, len(items))

	brand := ""
	if len(brands) > 0 {
		brand = brands[0]
	}

	for i := range items {
		record := detection.GarmentRecord{
			Name:       garmentName(items[i].Color, items[i].Category),
			Category:   items[i].Category,
			Color:      items[i].Color,
			Type:       strings.ToLower(strings.TrimSpace(items[i].Category)),
			Confidence: float64(items[i].Confidence) / 100,
			Status:     detection.StatusNew,
			Inferred:   items[i].Inferred,
		}
		if i < len(crops) {
			record.CroppedImageURL = crops[i]
		}
		if !items[i].Inferred {
			record.Brand = brand
		}
		records = append(records, record)
	}

	return records
}

// garmentName builds the display name, e.g. "Navy Blazer".
func garmentName(color, category string) string {
	if color == "" {
		return titleCase(category)
	}
	return fmt.Sprintf("%s %s", titleCase(color), titleCase(category))
}

// SuggestName proposes an outfit name from the day of week and the leading
// color, e.g. "Saturday Navy Look".
func SuggestName(records []detection.GarmentRecord, dominantColors []string) string {
	color := ""
	for i := range records {
		if !records[i].Inferred && records[i].Color != "" {
			color = records[i].Color
			break
		}
	}
	if color == "" && len(dominantColors) > 0 {
		color = dominantColors[0]
	}

	day := time.Now().Weekday().String()
	if color == "" {
		return day + " Look"
	}
	return fmt.Sprintf("%s %s Look", day, titleCase(color))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
