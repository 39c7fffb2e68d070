package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inah-tools/archivo/internal/core/domain"
)

var openCopy bool

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a document with the default application",
	Long: `Opens the document at path with the system's default application.
With --copy the path is copied to the clipboard instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVarP(&openCopy, "copy", "c", false, "copy the path to the clipboard instead of opening")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("action")
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	record := &domain.DocumentRecord{
		DocumentName: filepath.Base(path),
		FullPath:     path,
	}

	if openCopy {
		if err := actionService.CopyPath(cmd.Context(), record); err != nil {
			return err
		}
		cmd.Printf("Copied %s\n", path)
		return nil
	}

	if err := actionService.OpenDocument(cmd.Context(), record); err != nil {
		if errors.Is(err, domain.ErrOpenTargetMissing) {
			return fmt.Errorf("%w; run \"archivo index\" to refresh", err)
		}
		return err
	}
	cmd.Printf("Opened %s\n", path)
	return nil
}
