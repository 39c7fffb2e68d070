// Package cli provides the archivo command line, built with cobra.
//
// Commands reach the core only through driving ports. Services are built
// lazily by a Bootstrap function once global flags are parsed, so
// commands such as version never open the store.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inah-tools/archivo/internal/core/ports/driving"
	"github.com/inah-tools/archivo/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Services groups the driving ports used by the commands.
type Services struct {
	Search   driving.SearchService
	Sorter   driving.ResultSorter
	Index    driving.IndexService
	Watch    driving.AutoIndexService
	Actions  driving.ResultActionService
	Settings driving.SettingsService

	// DataDir is where the index and config file live. Informational.
	DataDir string
}

// Bootstrap builds the services for a data directory. The returned cleanup
// function releases whatever the services hold open.
type Bootstrap func(dataDir string) (*Services, func(), error)

// Service ports used by commands.
var (
	searchService   driving.SearchService
	resultSorter    driving.ResultSorter
	indexService    driving.IndexService
	autoIndexer     driving.AutoIndexService
	actionService   driving.ResultActionService
	settingsService driving.SettingsService
	dataDir         string
)

var (
	bootstrap Bootstrap
	cleanup   func()
)

// Global flags.
var (
	verboseFlag bool
	dataDirFlag string
)

// annotationNoServices marks commands that run without opening the store.
const annotationNoServices = "archivo/no-services"

var rootCmd = &cobra.Command{
	Use:   "archivo",
	Short: "Index and search archives of PDF documents",
	Long: `archivo indexes a directory tree of documents, infers the region and
site of each file from its folder path, and searches names, sites, and
regions by substring.

Folder layout:
  <root>/<region>/<site>/<document>.pdf

Run "archivo index <root>" once, then "archivo search <text>" or
"archivo tui" for the interactive browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRun: func(*cobra.Command, []string) {
		releaseServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.archivo)")
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	resultSorter = s.Sorter
	indexService = s.Index
	autoIndexer = s.Watch
	actionService = s.Actions
	settingsService = s.Settings
	dataDir = s.DataDir
}

// Execute runs the root command. boot is called after flag parsing unless
// services were injected with SetServices. Bootstrapped services are
// released even when the command fails.
func Execute(ctx context.Context, boot Bootstrap) error {
	bootstrap = boot
	defer releaseServices()
	return rootCmd.ExecuteContext(ctx)
}

// releaseServices runs the bootstrap cleanup at most once.
func releaseServices() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// setupServices applies global flags and builds the services.
func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}
	if searchService != nil || bootstrap == nil {
		return nil
	}

	services, release, err := bootstrap(dataDirFlag)
	if err != nil {
		return fmt.Errorf("starting archivo: %w", err)
	}
	SetServices(services)
	cleanup = release
	return nil
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
