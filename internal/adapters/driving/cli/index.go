package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inah-tools/archivo/internal/core/domain"
)

var (
	indexYes  bool
	indexSave bool
)

// stdinIsTerminal reports whether confirmation prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

var indexCmd = &cobra.Command{
	Use:   "index [root]",
	Short: "Rebuild the document index",
	Long: `Walks root and replaces the index with every document found.
Each document is classified by its folder path:

  <root>/<region>/<site>/<document>

When root is omitted the configured root is used (see "archivo config").
The previous index is kept if the run fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexYes, "yes", "y", false, "skip the confirmation prompt")
	indexCmd.Flags().BoolVar(&indexSave, "save", false, "remember root as the default index root")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errNotConfigured("index")
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	if !indexYes && stdinIsTerminal() {
		if !confirm(cmd, fmt.Sprintf("Replace the index with the contents of %s?", root)) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if indexSave {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		if err := settingsService.SetRoot(root); err != nil {
			return fmt.Errorf("saving root: %w", err)
		}
	}

	events, err := indexService.Start(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	var runErr error
	for ev := range events {
		if ev.Type == domain.IndexFailed {
			runErr = ev.Err
		}
		printIndexEvent(cmd, ev)
	}
	if runErr != nil {
		return fmt.Errorf("index failed: %w", runErr)
	}
	return nil
}

// resolveRoot returns the root argument made absolute, or the configured
// root when no argument is given.
func resolveRoot(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return abs, nil
	}

	if settingsService == nil {
		return "", domain.ErrRootNotSet
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", err
	}
	if settings.Index.Root == "" {
		return "", fmt.Errorf("%w: pass a directory or run \"archivo config set-root <dir>\"", domain.ErrRootNotSet)
	}
	return settings.Index.Root, nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// printIndexEvent writes one line per index event.
func printIndexEvent(cmd *cobra.Command, ev domain.IndexEvent) {
	switch ev.Type {
	case domain.IndexStarted:
		cmd.Printf("Indexing %s...\n", ev.Root)
	case domain.IndexProgress:
		cmd.Printf("  %d documents\n", ev.Processed)
	case domain.IndexCompleted:
		if ev.Summary == nil {
			cmd.Printf("Indexed %d documents.\n", ev.Processed)
			return
		}
		cmd.Printf("Indexed %d documents (%d skipped) in %s.\n",
			ev.Summary.Documents, ev.Summary.Skipped, ev.Summary.Duration.Round(time.Millisecond))
	case domain.IndexFailed:
		cmd.PrintErrf("Index run failed: %v\n", ev.Err)
	}
}
