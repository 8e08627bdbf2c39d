// conf/validate.go validation of user provided settings
package conf

import (
	"time"

	"github.com/closetmonkey/wardrobe-go/internal/errors"
)

// ValidateSettings checks settings for values that would break the pipeline.
func ValidateSettings(settings *Settings) error {
	if settings.Vision.MinObjectConfidence < 0 || settings.Vision.MinObjectConfidence > 1 {
		return errors.Newf("vision.minobjectconfidence must be in [0,1], got %f", settings.Vision.MinObjectConfidence).
			Category(errors.CategoryConfiguration).
			Context("setting", "vision.minobjectconfidence").
			Build()
	}

	if settings.Vision.MaxDominantColors < 1 {
		return errors.Newf("vision.maxdominantcolors must be at least 1, got %d", settings.Vision.MaxDominantColors).
			Category(errors.CategoryConfiguration).
			Context("setting", "vision.maxdominantcolors").
			Build()
	}

	if settings.Analysis.MatchThreshold <= 0 {
		return errors.Newf("analysis.matchthreshold must be positive, got %d", settings.Analysis.MatchThreshold).
			Category(errors.CategoryConfiguration).
			Context("setting", "analysis.matchthreshold").
			Build()
	}

	if settings.Analysis.DuplicateSimilarity < 0 || settings.Analysis.DuplicateSimilarity > 1 {
		return errors.Newf("analysis.duplicatesimilarity must be in [0,1], got %f", settings.Analysis.DuplicateSimilarity).
			Category(errors.CategoryConfiguration).
			Context("setting", "analysis.duplicatesimilarity").
			Build()
	}

	if settings.ImageProc.IoUThreshold <= 0 || settings.ImageProc.IoUThreshold > 1 {
		return errors.Newf("imageproc.iouthreshold must be in (0,1], got %f", settings.ImageProc.IoUThreshold).
			Category(errors.CategoryConfiguration).
			Context("setting", "imageproc.iouthreshold").
			Build()
	}

	if settings.ImageProc.CropPadding < 0 || settings.ImageProc.CropPadding > 1 {
		return errors.Newf("imageproc.croppadding must be in [0,1], got %f", settings.ImageProc.CropPadding).
			Category(errors.CategoryConfiguration).
			Context("setting", "imageproc.croppadding").
			Build()
	}

	if settings.Session.TTL <= 0 {
		return errors.Newf("session.ttl must be positive, got %s", settings.Session.TTL).
			Category(errors.CategoryConfiguration).
			Context("setting", "session.ttl").
			Build()
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return errors.Newf("no database enabled, enable output.sqlite or output.mysql").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// TestSettings returns settings populated with defaults, for use in unit tests.
func TestSettings() *Settings {
	return &Settings{
		Vision: VisionSettings{
			MinObjectConfidence: 0.4,
			MaxDominantColors:   5,
			EnableWebDetection:  true,
		},
		Analysis: AnalysisSettings{
			MatchThreshold:      60,
			DuplicateSimilarity: 0.7,
		},
		ImageProc: ImageProcSettings{
			IoUThreshold: 0.3,
			CropPadding:  0.10,
			CropQuality:  90,
		},
		Session: SessionSettings{
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Storage: StorageSettings{
			UploadPath: "uploads/",
			TempPath:   "uploads/temp/",
			CropPath:   "uploads/crops/",
			OutfitPath: "uploads/outfits/",
		},
	}
}
