package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/inah-tools/archivo/internal/adapters/driving/tui"
	"github.com/inah-tools/archivo/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

Search the index, sort results by region, site or document, open a
document or copy its path, and rebuild the index from the configured root.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Select
  1/2/3    - Sort by region / site / document
  r        - Reindex
  Esc      - Back
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	ports := &tui.Ports{
		Search:   searchService,
		Sorter:   resultSorter,
		Index:    indexService,
		Actions:  actionService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	// Log lines would corrupt the alt screen.
	restore := logger.Suspend()
	defer restore()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
