// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inah-tools/archivo/internal/adapters/driving/tui/components/input"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/messages"
	"github.com/inah-tools/archivo/internal/adapters/driving/tui/styles"
	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
)

// ErrNoSettingsService is returned when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Field identifies an editable setting.
type Field int

const (
	FieldRoot Field = iota
	FieldExtensions
)

const fieldCount = 2

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	saved    bool

	focused    Field
	root       *input.Field
	extensions *input.Field

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:          s,
		settingsService: settingsService,
		root:            input.NewField(s, "Index root: ", "/path/to/archive"),
		extensions:      input.NewField(s, "Extensions: ", ".pdf"),
	}
	v.extensions.Blur()
	return v
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		v.err = nil
		if v.settings != nil {
			v.root.SetValue(v.settings.Index.Root)
			v.extensions.SetValue(strings.Join(v.settings.Index.Extensions, ", "))
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = false
			return v, nil
		}
		v.err = nil
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles navigation between fields and saving. Other keys
// edit the focused field.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "tab", "down":
		return v, v.focus((v.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	case "enter":
		return v, v.save()
	}

	v.saved = false
	var cmd tea.Cmd
	if v.focused == FieldRoot {
		v.root, cmd = v.root.Update(msg)
	} else {
		v.extensions, cmd = v.extensions.Update(msg)
	}
	return v, cmd
}

// focus moves the cursor to field f.
func (v *View) focus(f Field) tea.Cmd {
	v.focused = f
	if f == FieldRoot {
		v.extensions.Blur()
		return v.root.Focus()
	}
	v.root.Blur()
	return v.extensions.Focus()
}

// save returns a command that stores the edited fields.
func (v *View) save() tea.Cmd {
	svc := v.settingsService
	root := strings.TrimSpace(v.root.Value())
	exts := splitExtensions(v.extensions.Value())

	current := ""
	if v.settings != nil {
		current = v.settings.Index.Root
	}

	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		if root != "" && root != current {
			if err := svc.SetRoot(root); err != nil {
				return messages.SettingsSaved{Err: fmt.Errorf("index root: %w", err)}
			}
		}
		if err := svc.SetExtensions(exts); err != nil {
			return messages.SettingsSaved{Err: fmt.Errorf("extensions: %w", err)}
		}
		return messages.SettingsSaved{}
	}
}

// splitExtensions splits a list separated by commas or spaces.
func splitExtensions(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.root.View())
	b.WriteString("\n")
	b.WriteString(v.extensions.View())
	b.WriteString("\n\n")

	if v.settings != nil {
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("Progress every %d documents", v.settings.Index.ProgressEvery)))
		b.WriteString("\n")
	}
	if v.saved {
		b.WriteString(v.styles.Success.Render("Settings saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] save  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.root.SetWidth(width)
	v.extensions.SetWidth(width)
}

// Settings returns the last loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Focused returns the field being edited.
func (v *View) Focused() Field {
	return v.focused
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.err = nil
	v.saved = false
	v.focus(FieldRoot)
}
