// Command archivo indexes and searches archives of PDF documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/inah-tools/archivo/internal/adapters/driven/config/file"
	"github.com/inah-tools/archivo/internal/adapters/driven/storage/sqlite"
	"github.com/inah-tools/archivo/internal/adapters/driving/cli"
	"github.com/inah-tools/archivo/internal/connectors/filesystem"
	"github.com/inah-tools/archivo/internal/core/services"
	"github.com/inah-tools/archivo/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, bootstrap)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap opens the config and index in dataDir and wires the services.
func bootstrap(dataDir string) (*cli.Services, func(), error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".archivo")
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening index: %w", err)
	}
	docs := store.DocumentStore()
	if err := docs.EnsureSchema(context.Background()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("creating schema: %w", err)
	}
	logger.Debug("Index at %s", store.Path())

	collector := filesystem.NewCollector(settings.Index.Extensions...)
	indexService := services.NewIndexService(collector, docs, settings.Index.ProgressEvery)

	release := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing index: %v", err)
		}
	}

	return &cli.Services{
		Search:   services.NewSearchService(docs),
		Sorter:   services.NewResultSorter(),
		Index:    indexService,
		Watch:    services.NewAutoIndexer(indexService, filesystem.NewWatcher(), 0, 0),
		Actions:  services.NewResultActionService(),
		Settings: settingsService,
		DataDir:  dataDir,
	}, release, nil
}
