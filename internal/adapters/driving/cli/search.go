package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/inah-tools/archivo/internal/core/domain"
)

var (
	searchSort string
	searchDesc bool
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search indexed documents",
	Long: `Searches document names, sites, and regions for a substring.
Matching ignores case. With no query every indexed document is listed.

Results are ordered by region, site, document, and path unless --sort
names a column (region, site, or document).`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "sort by column: region, site, document")
	searchCmd.Flags().BoolVar(&searchDesc, "desc", false, "sort in descending order (requires --sort)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	results, err := searchService.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchSort != "" {
		results, err = sortResults(results, searchSort, searchDesc)
		if err != nil {
			return err
		}
	} else if searchDesc {
		return fmt.Errorf("%w: --desc requires --sort", domain.ErrInvalidInput)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

// sortResults applies the sorter once for ascending order and twice for
// descending, as the sorter toggles direction on repeated use.
func sortResults(rs domain.ResultSet, name string, desc bool) (domain.ResultSet, error) {
	if resultSorter == nil {
		return nil, errNotConfigured("sort")
	}
	col, err := domain.ParseSortColumn(name)
	if err != nil {
		return nil, err
	}

	state := domain.NewSortState()
	rs, state, err = resultSorter.Sort(rs, col, state)
	if err != nil {
		return nil, err
	}
	if desc {
		rs, _, err = resultSorter.Sort(rs, col, state)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func outputSearchJSON(cmd *cobra.Command, results domain.ResultSet) error {
	if results == nil {
		results = domain.ResultSet{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results domain.ResultSet) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("REGION", "SITE", "DOCUMENT", "PATH").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for i := range results {
		t.Row(results[i].RegionName, results[i].SiteName, results[i].DocumentName, results[i].FullPath)
	}

	cmd.Println(t.String())
	cmd.Printf("%d result(s)\n", len(results))
	return nil
}
