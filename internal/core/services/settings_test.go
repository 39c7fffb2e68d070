package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/adapters/driven/storage/memory"
	"github.com/inah-tools/archivo/internal/core/domain"
)

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, svc.GetDefaults(), *settings)
	assert.Empty(t, settings.Index.Root)
	assert.Equal(t, []string{".pdf"}, settings.Index.Extensions)
	assert.Equal(t, domain.DefaultProgressEvery, settings.Index.ProgressEvery)
}

func TestSettingsService_Get_FromStore(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"index.root":           "/srv/pdf",
		"index.extensions":     []any{"PDF", ".tif"},
		"index.progress_every": int64(25),
	})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/pdf", settings.Index.Root)
	assert.Equal(t, []string{".pdf", ".tif"}, settings.Index.Extensions)
	assert.Equal(t, 25, settings.Index.ProgressEvery)
}

func TestSettingsService_Get_InvalidProgressFallsBack(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"index.progress_every": -3})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProgressEvery, settings.Index.ProgressEvery)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	settings := svc.GetDefaults()
	settings.Index.Root = "/data"
	settings.Index.ProgressEvery = 10
	require.NoError(t, svc.Save(&settings))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, svc.Save(nil), domain.ErrInvalidInput)

	bad := svc.GetDefaults()
	bad.Index.Extensions = nil
	assert.ErrorIs(t, svc.Save(&bad), domain.ErrInvalidInput)

	bad = svc.GetDefaults()
	bad.Index.ProgressEvery = 0
	assert.ErrorIs(t, svc.Save(&bad), domain.ErrInvalidInput)
}

func TestSettingsService_SetRoot(t *testing.T) {
	dir := t.TempDir()
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.SetRoot(dir))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, dir, settings.Index.Root)
}

func TestSettingsService_SetRoot_Invalid(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())
	file := filepath.Join(t.TempDir(), "acta.pdf")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	tests := []struct {
		name string
		root string
	}{
		{"empty", ""},
		{"missing", filepath.Join(t.TempDir(), "nope")},
		{"file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.SetRoot(tt.root), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetExtensions(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.SetExtensions([]string{"PDF", " tif ", ".pdf"}))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{".pdf", ".tif"}, settings.Index.Extensions)

	assert.ErrorIs(t, svc.SetExtensions([]string{" ", "."}), domain.ErrInvalidInput)
}
