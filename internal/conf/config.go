// config.go: settings struct and functions to load the wardrobe-go configuration.
package conf

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// VisionSettings controls the external vision service client and the
// detection aggregator thresholds.
type VisionSettings struct {
	Debug               bool    // true to enable vision request debug logging
	CredentialsFile     string  // path to the service account JSON, empty for ADC
	MinObjectConfidence float64 // minimum score for object localization results
	MaxDominantColors   int     // dominant colors kept per analysis
	EnableWebDetection  bool    // use web entities as a third detection source
}

// AnalysisSettings holds the reconciliation thresholds. The values are
// hand-tuned and intentionally preserved from the original pipeline.
type AnalysisSettings struct {
	MatchThreshold      int     // minimum wardrobe match score (category 40 + color 30 + type 20 + brand 10)
	DuplicateSimilarity float64 // Jaccard similarity above which an outfit counts as a duplicate
}

// ImageProcSettings controls geometry resolution and cropping.
type ImageProcSettings struct {
	IoUThreshold float64 // overlap ratio above which detections are duplicates
	CropPadding  float64 // padding added to each side of a crop, fraction of box size
	CropQuality  int     // JPEG quality for crop output
}

// SessionSettings controls the pending-analysis coordinator.
type SessionSettings struct {
	TTL             time.Duration // how long a pending analysis stays confirmable
	CleanupInterval time.Duration // janitor sweep interval for leaked temp files
}

// StorageSettings holds the file store namespaces.
type StorageSettings struct {
	UploadPath string // originally uploaded images
	TempPath   string // in-flight analysis images awaiting confirm/cancel
	CropPath   string // derived garment crops
	OutfitPath string // confirmed outfit photos
}

// LogConfig defines the main log file settings.
type LogConfig struct {
	Enabled bool
	Path    string
}

// OutputSettings selects and configures the catalog database.
type OutputSettings struct {
	SQLite struct {
		Enabled bool
		Path    string
	}
	MySQL struct {
		Enabled  bool
		Username string
		Password string
		Host     string
		Port     string
		Database string
	}
}

// Settings is the root configuration for the application.
type Settings struct {
	Debug bool

	Main struct {
		Name string // node name, used to identify the source of records
		User string // wardrobe owner all CLI operations act on
		Log  LogConfig
	}

	Vision    VisionSettings
	Analysis  AnalysisSettings
	ImageProc ImageProcSettings
	Session   SessionSettings
	Storage   StorageSettings
	Output    OutputSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Setting returns the global settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		settingsMutex.Lock()
		defer settingsMutex.Unlock()
		settingsInstance = initSettings()
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Load reads the configuration from disk and returns the populated settings.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return settings, nil
}

// initViper sets up viper with config paths, env bindings and defaults.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("WARDROBE")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	return nil
}

func initSettings() *Settings {
	settings, err := Load()
	if err != nil {
		log.Fatalf("error loading settings: %v", err)
	}
	return settings
}
