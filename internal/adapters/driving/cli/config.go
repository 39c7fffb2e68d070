package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetRootCmd = &cobra.Command{
	Use:   "set-root <dir>",
	Short: "Set the default index root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		if err := settingsService.SetRoot(args[0]); err != nil {
			return err
		}
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		cmd.Printf("Index root set to %s\n", settings.Index.Root)
		return nil
	},
}

var configSetExtensionsCmd = &cobra.Command{
	Use:   "set-extensions <ext>...",
	Short: "Set the indexed file extensions",
	Long: `Replaces the list of file extensions that index runs collect.
Extensions are case-insensitive and may omit the leading dot:

  archivo config set-extensions pdf docx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		if err := settingsService.SetExtensions(args); err != nil {
			return err
		}
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		cmd.Printf("Indexing %s\n", strings.Join(settings.Index.Extensions, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetRootCmd)
	configCmd.AddCommand(configSetExtensionsCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	root := settings.Index.Root
	if root == "" {
		root = "(not set)"
	}

	cmd.Println("Settings:")
	if dataDir != "" {
		cmd.Printf("  Data directory: %s\n", dataDir)
	}
	cmd.Printf("  Index root:     %s\n", root)
	cmd.Printf("  Extensions:     %s\n", strings.Join(settings.Index.Extensions, ", "))
	cmd.Printf("  Progress every: %d\n", settings.Index.ProgressEvery)

	if searchService != nil {
		count, err := searchService.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting documents: %w", err)
		}
		cmd.Printf("  Documents:      %d\n", count)
	}
	return nil
}
