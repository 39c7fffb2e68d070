// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inah-tools/archivo/internal/adapters/driving/tui/components/input"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/components/list"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/components/status"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/keymap"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/messages"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/styles"
	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// Result actions offered by the action menu.
const (
	ActionOpen   = "Open document"
	ActionCopy   = "Copy path"
	ActionCancel = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	record   *domain.DocumentRecord
}

// Services holds the driving ports used by the search view. Only Search
// is required.
type Services struct {
	Search   driving.SearchService
	Sorter   driving.ResultSorter
	Index    driving.IndexService
	Actions  driving.ResultActionService
	Settings driving.SettingsService
}

// View represents the search view with input, results table, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	services Services
	ctx      context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	actionMenu *ActionMenu

	sortState domain.SortState

	// confirmRoot is the root awaiting reindex confirmation, if any.
	confirmRoot string
	indexing    bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		services:   services,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true, // Start in input mode
		sortState:  domain.NewSortState(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.IndexEventReceived:
		return v, v.handleIndexEvent(msg)

	case messages.IndexFinished:
		v.indexing = false
		if v.statusbar.State() == status.StateIndexing {
			v.statusbar.SetState(status.StateResults)
		}
		return v, nil

	case messages.ActionCompleted:
		v.handleActionCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // key dispatch across input, results and overlay modes
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirmRoot != "" {
		return v.handleConfirmKey(msg)
	}

	// If action menu is visible, handle its keys
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits search. An empty query lists everything.
	if msg.Type == tea.KeyEnter && v.focusInput {
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage("")
		return v, v.performSearch(v.input.Value())
	}

	// Input mode: all keys go to input
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode: handle Enter to open action menu
	if msg.Type == tea.KeyEnter {
		if record := v.list.SelectedResult(); record != nil {
			v.actionMenu = &ActionMenu{
				actions:  []string{ActionOpen, ActionCopy, ActionCancel},
				selected: 0,
				visible:  true,
				record:   record,
			}
		}
		return v, nil
	}

	keyStr := msg.String()
	if name, ok := v.keymap.SortColumn(keyStr); ok {
		v.sortBy(domain.SortColumn(name))
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		// New search: clear input and focus it
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.Reindex):
		v.requestReindex()
		return v, nil
	}

	// Results mode: navigation
	v.list, _ = v.list.Update(msg)
	return v, nil
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		action := v.actionMenu.actions[v.actionMenu.selected]
		record := v.actionMenu.record
		v.actionMenu = nil // Close menu
		return v, v.executeAction(action, record)
	case tea.KeyEsc:
		v.actionMenu = nil // Close menu
		return v, nil
	}

	switch keyStr := msg.String(); {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	}

	return v, nil
}

// handleConfirmKey answers the reindex confirmation prompt.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Confirm):
		root := v.confirmRoot
		v.confirmRoot = ""
		return v, v.startReindex(root)
	case keymap.Matches(keyStr, v.keymap.Deny):
		v.confirmRoot = ""
		v.statusbar.SetMessage("Reindex cancelled")
	}
	return v, nil
}

// executeAction performs the selected action on a record.
func (v *View) executeAction(action string, record *domain.DocumentRecord) tea.Cmd {
	if record == nil || action == ActionCancel {
		return nil
	}
	if v.services.Actions == nil {
		v.statusbar.SetMessage(action + " not available")
		return nil
	}

	actions := v.services.Actions
	ctx := v.ctx
	return func() tea.Msg {
		var err error
		switch action {
		case ActionOpen:
			err = actions.OpenDocument(ctx, record)
		case ActionCopy:
			err = actions.CopyPath(ctx, record)
		}
		return messages.ActionCompleted{Action: action, Path: record.FullPath, Err: err}
	}
}

// handleActionCompleted reports an action's outcome in the status bar.
func (v *View) handleActionCompleted(msg messages.ActionCompleted) {
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrOpenTargetMissing) {
			v.setError(fmt.Errorf("%w; press r to reindex", msg.Err))
			return
		}
		v.setError(fmt.Errorf("%s: %w", strings.ToLower(msg.Action), msg.Err))
		return
	}

	switch msg.Action {
	case ActionOpen:
		v.statusbar.SetMessage("Opening document...")
	case ActionCopy:
		v.statusbar.SetMessage("Path copied to clipboard")
	}
}

// sortBy re-orders the current results by col without querying the store.
func (v *View) sortBy(col domain.SortColumn) {
	if v.services.Sorter == nil || v.list.IsEmpty() {
		return
	}

	sorted, state, err := v.services.Sorter.Sort(v.list.Results(), col, v.sortState)
	if err != nil {
		v.setError(err)
		return
	}
	v.sortState = state
	dir, _ := state.Direction(col)
	v.list.Reorder(sorted)
	v.list.SetSortIndicator(col, dir)
}

// requestReindex asks for confirmation before replacing the index.
func (v *View) requestReindex() {
	if v.indexing {
		v.statusbar.SetMessage("Index run already in progress")
		return
	}
	if v.services.Index == nil {
		v.setError(ErrNoIndexService)
		return
	}

	root := v.root()
	if root == "" {
		v.setError(fmt.Errorf("%w: choose one in Settings", domain.ErrRootNotSet))
		return
	}
	v.confirmRoot = root
}

// root returns the configured index root.
func (v *View) root() string {
	if v.services.Settings == nil {
		return ""
	}
	settings, err := v.services.Settings.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.Index.Root
}

// startReindex launches a background run and waits for its first event.
func (v *View) startReindex(root string) tea.Cmd {
	v.indexing = true
	v.err = nil
	v.list.SetResults(nil)
	v.statusbar.SetResultCount(0)
	v.statusbar.SetState(status.StateIndexing)
	v.statusbar.SetMessage("Starting index run...")

	index := v.services.Index
	ctx := v.ctx
	return func() tea.Msg {
		events, err := index.Start(ctx, root)
		if err != nil {
			return messages.IndexEventReceived{
				Event: domain.IndexEvent{Type: domain.IndexFailed, Root: root, Err: err},
			}
		}
		return waitForIndexEvent(events)()
	}
}

// waitForIndexEvent reads the next event of a run.
func waitForIndexEvent(events <-chan domain.IndexEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.IndexFinished{}
		}
		return messages.IndexEventReceived{Event: ev, Events: events}
	}
}

// handleIndexEvent applies one index event and keeps listening for more.
func (v *View) handleIndexEvent(msg messages.IndexEventReceived) tea.Cmd {
	ev := msg.Event
	var cmds []tea.Cmd

	switch ev.Type {
	case domain.IndexStarted:
		v.statusbar.SetState(status.StateIndexing)
		v.statusbar.SetMessage("Indexing " + ev.Root + "...")
	case domain.IndexProgress:
		v.statusbar.SetState(status.StateIndexing)
		v.statusbar.SetMessage(fmt.Sprintf("Indexing... %d documents", ev.Processed))
	case domain.IndexCompleted:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("Indexed %d documents", ev.Processed))
		// Show the fresh index.
		v.input.SetValue("")
		cmds = append(cmds, v.performSearch(""))
	case domain.IndexFailed:
		v.setError(ev.Err)
	}

	if msg.Events == nil {
		// The run never started.
		v.indexing = false
	} else {
		v.indexing = true
		cmds = append(cmds, waitForIndexEvent(msg.Events))
	}
	return tea.Batch(cmds...)
}

// performSearch executes a search and returns results.
func (v *View) performSearch(query string) tea.Cmd {
	search := v.services.Search
	ctx := v.ctx
	return func() tea.Msg {
		if search == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		results, err := search.Run(ctx, query)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.sortState = domain.NewSortState()
	v.list.SetSortIndicator("", domain.Ascending)
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	if len(msg.Results) == 0 && msg.Query != "" {
		v.statusbar.SetMessage(fmt.Sprintf("No results for %q", strings.TrimSpace(msg.Query)))
	}

	// Switch to results mode after a search
	v.focusInput = false
	v.input.Blur()
}

// setError shows err in the view and the status bar.
func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	// Header
	header := v.styles.Title.Render("Archivo")
	if root := v.root(); root != "" {
		header += "  " + v.styles.Muted.Render(root)
	}
	sections = append(sections, header, "")

	// Search input
	sections = append(sections, v.input.View(), "")

	// Error display
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	// Results table
	sections = append(sections, v.list.View())

	// Overlays
	if v.confirmRoot != "" {
		sections = append(sections, "", v.renderConfirm())
	} else if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	if v.actionMenu == nil {
		return ""
	}

	lines := make([]string, 0, len(v.actionMenu.actions)+1)
	lines = append(lines, v.styles.Subtitle.Render(v.actionMenu.record.DocumentName))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// renderConfirm renders the reindex confirmation prompt.
func (v *View) renderConfirm() string {
	text := v.styles.Warning.Render("Replace the index with the contents of") + "\n" +
		v.styles.Normal.Render(v.confirmRoot) + "\n\n" +
		v.styles.Muted.Render("Existing entries will be overwritten. Continue? [y/N]")
	return v.styles.Border.Padding(0, 1).Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current results in display order.
func (v *View) Results() domain.ResultSet {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.DocumentRecord {
	return v.list.SelectedResult()
}

// SortState returns the current sort state.
func (v *View) SortState() domain.SortState {
	return v.sortState
}

// Indexing reports whether a reindex started from this view is running.
func (v *View) Indexing() bool {
	return v.indexing
}

// Confirming reports whether the reindex prompt is showing.
func (v *View) Confirming() bool {
	return v.confirmRoot != ""
}

// ActionMenuVisible reports whether the action menu is showing.
func (v *View) ActionMenuVisible() bool {
	return v.actionMenu != nil && v.actionMenu.visible
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode. A running reindex keeps
// running and its events are still applied.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.list.SetSortIndicator("", domain.Ascending)
	v.sortState = domain.NewSortState()
	v.actionMenu = nil
	v.confirmRoot = ""
	v.err = nil
	v.statusbar.Clear()
	if v.indexing {
		v.statusbar.SetState(status.StateIndexing)
	}
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
