package domain

import (
	"fmt"
	"strings"
)

// DefaultExtension is the document extension indexed when none is configured.
const DefaultExtension = ".pdf"

// DefaultProgressEvery is how many documents pass between progress events.
const DefaultProgressEvery = 100

// AppSettings holds user-configurable application settings.
type AppSettings struct {
	Index IndexSettings
}

// IndexSettings configures index runs.
type IndexSettings struct {
	// Root is the remembered root directory. May be empty.
	Root string

	// Extensions lists file extensions to index, including the dot.
	// Matching is case-insensitive.
	Extensions []string

	// ProgressEvery is the number of documents between progress events.
	ProgressEvery int
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Index: IndexSettings{
			Extensions:    []string{DefaultExtension},
			ProgressEvery: DefaultProgressEvery,
		},
	}
}

// Validate checks the settings for invalid values.
func (s *AppSettings) Validate() error {
	if len(s.Index.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidInput)
	}
	for _, ext := range s.Index.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalidInput, ext)
		}
	}
	if s.Index.ProgressEvery <= 0 {
		return fmt.Errorf("%w: progress interval must be positive", ErrInvalidInput)
	}
	return nil
}

// NormalizeExtensions lower-cases extensions, adds a missing leading dot,
// and drops blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
