// Package list provides list display components for the TUI.
package list

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/inah-tools/archivo/internal/adapters/driving/tui/styles"
	"github.com/inah-tools/archivo/internal/core/domain"
)

// Column headings in display order.
var headings = map[domain.SortColumn]string{
	domain.SortByRegion:   "Region",
	domain.SortBySite:     "Site",
	domain.SortByDocument: "Document",
}

// Sort indicators appended to the sorted column's heading.
const (
	arrowAsc  = " ▲"
	arrowDesc = " ▼"
)

// chromeLines is the number of lines the table uses around its rows:
// the count line, borders and the heading row.
const chromeLines = 5

// ResultList displays search results as a navigable table.
type ResultList struct {
	results  domain.ResultSet
	selected int
	offset   int
	styles   *styles.Styles
	width    int
	height   int

	sortColumn domain.SortColumn
	sortDir    domain.SortDirection
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		results:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		case tea.KeyHome:
			r.SetSelected(0)
		case tea.KeyEnd:
			r.SetSelected(len(r.results) - 1)
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			r.MoveUp()
		case "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result table.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := r.visibleRows()
	r.scrollTo(visible)
	end := min(r.offset+visible, len(r.results))

	// Document and site get more room than region; PATH is left out to keep
	// rows on one line.
	inner := max(r.width-10, 30)
	regionW := inner / 4
	siteW := inner * 3 / 8
	docW := inner - regionW - siteW

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.styles.Theme().Border)).
		Headers(r.heading(domain.SortByRegion), r.heading(domain.SortBySite), r.heading(domain.SortByDocument)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.styles.TableHeader
			case r.offset+row == r.selected:
				return r.styles.Selected.Padding(0, 1)
			default:
				return r.styles.TableCell
			}
		})

	for i := r.offset; i < end; i++ {
		rec := r.results[i]
		t.Row(
			truncate(rec.RegionName, regionW),
			truncate(rec.SiteName, siteW),
			truncate(rec.DocumentName, docW),
		)
	}

	count := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	path := r.styles.Muted.Render(truncate(r.results[r.selected].FullPath, r.width-2))

	return lipgloss.JoinVertical(lipgloss.Left, count, t.String(), path)
}

// heading returns the column heading with its sort indicator.
func (r *ResultList) heading(col domain.SortColumn) string {
	h := headings[col]
	if col != r.sortColumn {
		return h
	}
	if r.sortDir == domain.Descending {
		return h + arrowDesc
	}
	return h + arrowAsc
}

// visibleRows returns how many rows fit in the list's height.
func (r *ResultList) visibleRows() int {
	return max(r.height-chromeLines, 1)
}

// scrollTo keeps the selected row inside the visible window.
func (r *ResultList) scrollTo(visible int) {
	if r.selected < r.offset {
		r.offset = r.selected
	}
	if r.selected >= r.offset+visible {
		r.offset = r.selected - visible + 1
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

// truncate shortens s to at most n display cells.
func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// SetResults updates the result list and moves the selection to the top.
func (r *ResultList) SetResults(results domain.ResultSet) {
	r.results = results
	r.selected = 0
	r.offset = 0
}

// Reorder replaces the results with a re-ordered copy, keeping the same
// record selected.
func (r *ResultList) Reorder(results domain.ResultSet) {
	current := r.SelectedResult()
	r.results = results
	if current == nil {
		r.selected = 0
		return
	}
	for i := range results {
		if results[i].FullPath == current.FullPath {
			r.selected = i
			return
		}
	}
	r.selected = 0
}

// SetSortIndicator marks col as sorted in dir. An empty column clears it.
func (r *ResultList) SetSortIndicator(col domain.SortColumn, dir domain.SortDirection) {
	r.sortColumn = col
	r.sortDir = dir
}

// Results returns the current results.
func (r *ResultList) Results() domain.ResultSet {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.DocumentRecord {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	rec := r.results[r.selected]
	return &rec
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
