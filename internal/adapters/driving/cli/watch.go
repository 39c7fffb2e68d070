package cli

import (
	"github.com/spf13/cobra"

	"github.com/inah-tools/archivo/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Keep the index up to date as files change",
	Long: `Indexes root, then watches it and rebuilds the index whenever
documents are added, renamed, or removed. Runs until interrupted.

When root is omitted the configured root is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if autoIndexer == nil {
		return errNotConfigured("watch")
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)
	err = autoIndexer.Watch(cmd.Context(), root, func(ev domain.IndexEvent) {
		printIndexEvent(cmd, ev)
	})
	if err != nil {
		return err
	}
	cmd.Println("Stopped.")
	return nil
}
