package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/core/domain"
)

func TestConfigCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(configCmd.Commands()))
	for _, c := range configCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set-root", "set-extensions"}, names)
}

func TestConfigShow_Defaults(t *testing.T) {
	setupTestServices(t)

	for _, args := range [][]string{{"config"}, {"config", "show"}} {
		out, err := execute(t, args...)

		require.NoError(t, err)
		assert.Contains(t, out, "Index root:     (not set)")
		assert.Contains(t, out, "Extensions:     .pdf")
		assert.Contains(t, out, "Progress every: 100")
		assert.Contains(t, out, "Documents:      0")
	}
}

func TestConfigShow_DataDir(t *testing.T) {
	setupTestServices(t)
	dataDir = "/tmp/archivo-data"

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Data directory: /tmp/archivo-data")
}

func TestConfigShow_CountsDocuments(t *testing.T) {
	env := setupTestServices(t)
	env.index(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents:      3")
}

func TestConfigSetRoot(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "config", "set-root", env.root)

	require.NoError(t, err)
	abs, _ := filepath.Abs(env.root)
	assert.Contains(t, out, "Index root set to "+abs)

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, abs)
}

func TestConfigSetRoot_NotADirectory(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "config", "set-root", filepath.Join(env.root, "Hidalgo", "Tula", "acta.pdf"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSetExtensions(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "set-extensions", "PDF", "docx")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexing .pdf, .docx")
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := execute(t, "config", "show")

	assert.EqualError(t, err, "settings service not configured")
}
