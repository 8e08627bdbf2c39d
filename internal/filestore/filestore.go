// Package filestore manages the image namespaces: uploads, in-flight temp
// images, derived garment crops, and confirmed outfit photos.
package filestore

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/closetmonkey/wardrobe-go/internal/conf"
	"github.com/closetmonkey/wardrobe-go/internal/errors"
	"github.com/closetmonkey/wardrobe-go/internal/logging"
)

// Store provides file operations rooted at the configured storage paths.
type Store struct {
	settings *conf.Settings
	logger   *slog.Logger
}

// New creates a file store and ensures every namespace directory exists.
func New(settings *conf.Settings) (*Store, error) {
	logger := logging.ForService("filestore")
	if logger == nil {
		logger = slog.Default()
	}

	for _, dir := range []string{
		settings.Storage.UploadPath,
		settings.Storage.TempPath,
		settings.Storage.CropPath,
		settings.Storage.OutfitPath,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.New(err).
				Component("filestore").
				Category(errors.CategoryFileIO).
				Context("operation", "create-storage-dir").
				Build()
		}
	}

	return &Store{settings: settings, logger: logger}, nil
}

// ReadImage reads an uploaded image by path.
func (s *Store) ReadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	return data, nil
}

// SaveTemp writes the analysis image into the temp namespace under a
// generated name and returns its path. The temp file is owned by exactly one
// pending analysis session.
func (s *Store) SaveTemp(data []byte) (string, error) {
	path := filepath.Join(s.settings.Storage.TempPath, uuid.NewString()+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			FileContext(path, int64(len(data))).
			Build()
	}
	return path, nil
}

// TempExists reports whether a temp image is still on disk.
func (s *Store) TempExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// SaveCrop encodes a garment crop into the crop namespace and returns its
// path. The label only flavors the file name for debuggability.
func (s *Store) SaveCrop(img image.Image, label string) (string, error) {
	name := fmt.Sprintf("%s-%s.jpg", sanitizeLabel(label), uuid.NewString()[:8])
	path := filepath.Join(s.settings.Storage.CropPath, name)

	if err := imaging.Save(img, path, imaging.JPEGQuality(s.settings.ImageProc.CropQuality)); err != nil {
		return "", errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			Context("operation", "save-crop").
			Build()
	}
	return path, nil
}

// Promote moves a temp image into the outfit namespace, returning the
// permanent path.
func (s *Store) Promote(tempPath string) (string, error) {
	permanent := filepath.Join(s.settings.Storage.OutfitPath, filepath.Base(tempPath))
	if err := s.move(tempPath, permanent); err != nil {
		return "", errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			Context("operation", "promote-temp").
			Build()
	}
	return permanent, nil
}

// Unpromote moves a promoted outfit image back to its temp path, undoing
// Promote when the save it belonged to did not go through.
func (s *Store) Unpromote(permanentPath, tempPath string) error {
	if err := s.move(permanentPath, tempPath); err != nil {
		return errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			Context("operation", "unpromote-outfit").
			Build()
	}
	return nil
}

// move renames a file, falling back to copy+delete across filesystems.
func (s *Store) move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		s.logger.Warn("failed to remove source after copy", "path", src, "error", err)
	}
	return nil
}

// DeleteTemp removes a temp image. Missing files are not an error; cleanup
// is best effort.
func (s *Store) DeleteTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to delete temp image", "path", path, "error", err)
	}
}

// CleanupTemp deletes temp files older than maxAge, sweeping files leaked by
// crashed or abandoned sessions. Returns the number of files removed.
func (s *Store) CleanupTemp(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.settings.Storage.TempPath)
	if err != nil {
		s.logger.Warn("temp cleanup sweep failed", "error", err)
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.settings.Storage.TempPath, entry.Name())
		if err := os.Remove(path); err == nil {
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("removed leaked temp images", "count", removed)
	}
	return removed
}

func sanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, label)
	if label == "" {
		label = "item"
	}
	return label
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
