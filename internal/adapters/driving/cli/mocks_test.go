package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inah-tools/archivo/internal/adapters/driven/storage/memory"
	"github.com/inah-tools/archivo/internal/connectors/filesystem"
	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/services"
)

// mockActionService records the paths it was asked to act on.
type mockActionService struct {
	opened []string
	copied []string
	err    error
}

func (m *mockActionService) OpenDocument(_ context.Context, record *domain.DocumentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, record.FullPath)
	return nil
}

func (m *mockActionService) CopyPath(_ context.Context, record *domain.DocumentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, record.FullPath)
	return nil
}

// mockAutoIndexer replays events instead of watching a tree.
type mockAutoIndexer struct {
	events   []domain.IndexEvent
	err      error
	lastRoot string
}

func (m *mockAutoIndexer) Watch(_ context.Context, root string, onEvent func(domain.IndexEvent)) error {
	m.lastRoot = root
	for _, ev := range m.events {
		onEvent(ev)
	}
	return m.err
}

// testEnv holds the services wired by setupTestServices.
type testEnv struct {
	root     string
	store    *memory.DocumentStore
	actions  *mockActionService
	watcher  *mockAutoIndexer
	settings *services.SettingsService
}

// writeArchive creates a small region/site/document tree under dir.
func writeArchive(t *testing.T, dir string) {
	t.Helper()
	files := []string{
		"CDMX/Templo Mayor/plano.pdf",
		"Hidalgo/Tula/acta.pdf",
		"Yucatán/Uxmal/informe.pdf",
		"Yucatán/Uxmal/notas.txt",
	}
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}
}

// setupTestServices wires real services over in-memory stores and an
// archive in a temp dir. Everything is reset when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	writeArchive(t, root)

	store := memory.NewDocumentStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	env := &testEnv{
		root:     root,
		store:    store,
		actions:  &mockActionService{},
		watcher:  &mockAutoIndexer{},
		settings: settings,
	}

	SetServices(&Services{
		Search:   services.NewSearchService(store),
		Sorter:   services.NewResultSorter(),
		Index:    services.NewIndexService(filesystem.NewCollector(".pdf"), store, 1),
		Watch:    env.watcher,
		Actions:  env.actions,
		Settings: settings,
	})

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }

	t.Cleanup(func() {
		SetServices(nil)
		stdinIsTerminal = origTerminal
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}

// resetFlags restores command flags to their defaults; cobra keeps values
// from earlier executions.
func resetFlags() {
	searchSort, searchDesc, searchJSON = "", false, false
	indexYes, indexSave = false, false
	openCopy = false
	verboseFlag, dataDirFlag = false, ""
	_ = mcpServeCmd.Flags().Set("port", "0")
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// index fills the store from env.root.
func (env *testEnv) index(t *testing.T) {
	t.Helper()
	_, err := execute(t, "index", "--yes", env.root)
	require.NoError(t, err)
}
