package driving

import "github.com/inah-tools/archivo/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// SetRoot remembers the root directory used by index runs.
	SetRoot(root string) error

	// SetExtensions replaces the indexed file extensions.
	SetExtensions(exts []string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
