// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/allie-tui/internal/config"
	"github.com/jeranaias/allie-tui/internal/model"
	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/ui/components"
	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// Placeholder is shown in the empty input line.
const Placeholder = "Ask me anything..."

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the widget.
type Options struct {
	// OnClose is called once when the user dismisses the widget
	OnClose func()

	// Title is shown in the header (default: config.DefaultTitle)
	Title string

	// Theme styles the widget (default: styles.NewTheme())
	Theme *styles.Theme

	// ShowTimestamps adds the time to each turn label
	ShowTimestamps bool

	// MaxWidth caps the layout width; 0 uses the whole terminal
	MaxWidth int

	// Context is the parent of every exchange (default: context.Background())
	Context context.Context

	// Clipboard writes copied answers (default: the system clipboard)
	Clipboard func(string) error

	// Logger receives UI diagnostics (default: disabled)
	Logger *zerolog.Logger
}

// =============================================================================
// WIDGET MODEL
// =============================================================================

// Model is the Bubble Tea model of the widget.
type Model struct {
	ctrl *session.Controller
	opts Options
	log  zerolog.Logger

	theme       *styles.Theme
	header      *components.Header
	turns       *components.TurnView
	suggestions *components.SuggestionList

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	width  int
	height int
	status string
	closed bool
}

// New creates a widget over ctrl.
func New(ctrl *session.Controller, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = config.DefaultTitle
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	theme := opts.Theme

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.Placeholder = Placeholder
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	suggestions := components.NewSuggestionList(theme)
	suggestions.SetItems(ctrl.Suggestions())

	turns := components.NewTurnView(theme, 80)
	turns.ShowTimestamps = opts.ShowTimestamps

	h := help.New()
	h.Styles.ShortKey = theme.StatusBar.Bold(true)
	h.Styles.ShortDesc = theme.StatusBar
	h.Styles.ShortSeparator = theme.StatusBar

	m := Model{
		ctrl:        ctrl,
		opts:        opts,
		log:         log.With().Str("component", "widget").Str("session_id", ctrl.ID()).Logger(),
		theme:       theme,
		header:      components.NewHeader(theme, opts.Title),
		turns:       turns,
		suggestions: suggestions,
		viewport:    vp,
		input:       ti,
		spinner:     components.NewThinkingSpinner(theme),
		help:        h,
		keys:        DefaultKeyMap(),
		width:       80,
		height:      24,
	}
	m.layout()
	return m
}

// Controller returns the session behind the widget.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Closed reports whether the user dismissed the widget.
func (m Model) Closed() bool {
	return m.closed
}

// Draft returns the current contents of the input line.
func (m Model) Draft() string {
	return m.input.Value()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.opts.MaxWidth > 0 && m.opts.MaxWidth < m.width {
			m.width = m.opts.MaxWidth
		}
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case OutcomeMsg:
		if m.ctrl.Resolve(msg.Outcome) {
			m.status = ""
			// Text typed while awaiting was not tracked by the session.
			m.ctrl.UpdateDraft(m.input.Value())
		}
		m.refresh()
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("clipboard write failed")
			m.status = "Copy failed"
		} else {
			m.status = "Copied answer to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Copy):
		answer, ok := lastAnswer(m.ctrl.Turns())
		if !ok {
			m.status = "Nothing to copy yet"
			return m, nil
		}
		return m, CopyText(m.opts.Clipboard, answer)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Next) && m.browsingSuggestions():
		m.suggestions.Next()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Prev) && m.browsingSuggestions():
		m.suggestions.Prev()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.UpdateDraft(m.input.Value())
	return m, cmd
}

// browsingSuggestions reports whether arrow keys move the suggestion
// highlight: suggestions are offered and nothing has been typed.
func (m Model) browsingSuggestions() bool {
	return m.suggestions.Len() > 0 && strings.TrimSpace(m.input.Value()) == ""
}

// submit sends the draft, or the highlighted suggestion when the draft is
// blank. The input is cleared as soon as the message is accepted.
func (m Model) submit() (tea.Model, tea.Cmd) {
	var (
		ex  *session.Exchange
		err error
	)
	if m.browsingSuggestions() {
		ex, err = m.ctrl.SelectSuggestionAt(m.suggestions.Selected())
	} else {
		ex, err = m.ctrl.Submit(m.input.Value())
	}

	switch {
	case errors.Is(err, session.ErrBusy):
		m.status = "Waiting for the current answer..."
		return m, nil
	case err != nil:
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.refresh()
	return m, tea.Batch(RunExchange(m.opts.Context, ex), m.spinner.Tick)
}

func (m *Model) close() {
	if m.closed {
		return
	}
	m.closed = true
	m.ctrl.Close()
	m.log.Debug().Msg("widget closed")
	if m.opts.OnClose != nil {
		m.opts.OnClose()
	}
}

// View renders the widget.
func (m Model) View() string {
	if m.closed {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.inputView(),
		m.statusView(),
	)
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.turns.Width = m.width
	m.input.Width = m.width - 6
	m.help.Width = m.width

	chrome := lipgloss.Height(m.header.View()) + lipgloss.Height(m.inputView()) + 1
	height := m.height - chrome
	if height < 3 {
		height = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
	m.refresh()
}

// refresh rebuilds the conversation pane and keeps it scrolled to the end.
func (m *Model) refresh() {
	m.suggestions.Sync(m.ctrl.Suggestions())

	var parts []string
	if sv := m.suggestions.View(m.width); sv != "" {
		parts = append(parts, sv)
	}
	if turns := m.ctrl.Turns(); len(turns) > 0 {
		parts = append(parts, m.turns.RenderAll(turns))
	}
	if m.ctrl.Pending() {
		parts = append(parts, components.RenderThinking(m.theme, m.spinner.View()))
	}

	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

func (m Model) inputView() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) statusView() string {
	if m.status != "" {
		return m.theme.StatusBar.Render(m.status)
	}
	return m.help.View(m.keys)
}

// lastAnswer returns the text of the most recent real answer. Fallback
// turns are skipped.
func lastAnswer(turns []model.Turn) (string, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].IsAssistant() && !turns[i].Fallback {
			return turns[i].Text, true
		}
	}
	return "", false
}
