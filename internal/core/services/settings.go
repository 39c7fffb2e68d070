package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyIndexRoot          = "index.root"
	keyIndexExtensions    = "index.extensions"
	keyIndexProgressEvery = "index.progress_every"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with
// defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	exts := domain.NormalizeExtensions(s.configStore.GetStringSlice(keyIndexExtensions))
	if len(exts) == 0 {
		exts = defaults.Index.Extensions
	}

	settings := &domain.AppSettings{
		Index: domain.IndexSettings{
			Root:          s.configStore.GetString(keyIndexRoot),
			Extensions:    exts,
			ProgressEvery: s.getInt(keyIndexProgressEvery, defaults.Index.ProgressEvery),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyIndexRoot, settings.Index.Root); err != nil {
		return fmt.Errorf("save index root: %w", err)
	}
	if err := s.configStore.Set(keyIndexExtensions, settings.Index.Extensions); err != nil {
		return fmt.Errorf("save index extensions: %w", err)
	}
	if err := s.configStore.Set(keyIndexProgressEvery, settings.Index.ProgressEvery); err != nil {
		return fmt.Errorf("save index progress_every: %w", err)
	}

	return nil
}

// SetRoot remembers root, made absolute, as the default index root.
// The directory must exist.
func (s *SettingsService) SetRoot(root string) error {
	if root == "" {
		return fmt.Errorf("%w: root is empty", domain.ErrInvalidInput)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, abs)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Index.Root = abs
	return s.Save(settings)
}

// SetExtensions replaces the indexed extensions. Values are normalised, so
// "PDF" and ".pdf" are the same extension.
func (s *SettingsService) SetExtensions(exts []string) error {
	normalized := domain.NormalizeExtensions(exts)
	if len(normalized) == 0 {
		return fmt.Errorf("%w: at least one extension is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Index.Extensions = normalized
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getInt returns a positive config value or the default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
