package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/adapters/driving/tui"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/messages"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "Reindex")
}

func TestNewTUIApp(t *testing.T) {
	setupTestServices(t)
	tuiCmd.SetContext(t.Context())

	app, err := newTUIApp(tuiCmd)

	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewTUIApp_NoSearchService(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)
	tuiCmd.SetContext(t.Context())

	_, err := newTUIApp(tuiCmd)

	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
}
