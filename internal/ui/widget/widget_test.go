// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/suggest"
	"github.com/jeranaias/allie-tui/internal/transport"
	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeSender struct {
	mu    sync.Mutex
	reply *transport.Reply
	err   error
	sent  []string
}

func (f *fakeSender) Send(_ context.Context, msg string) (*transport.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.reply, f.err
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestWidget(t *testing.T, sender session.Sender, opts Options) Model {
	t.Helper()
	ctrl := session.New(session.Options{
		Sender:  sender,
		Sampler: suggest.Static{"What is Allora?", "How do workers earn?", "What is a topic?"},
	})
	if opts.Theme == nil {
		opts.Theme = styles.NewPlainTheme()
	}
	m := New(ctrl, opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// collect runs cmd and flattens batches, skipping spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds every resulting message back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestWidget_SubmitShowsAnswer(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "**Allora** is a network.", Sources: []string{"intro.md"}}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "What is Allora?")
	assert.Equal(t, session.PhaseComposing, m.Controller().Phase())

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.Draft(), "input is cleared on submit")
	assert.Equal(t, session.PhaseAwaitingResponse, m.Controller().Phase())
	assert.Contains(t, ansi.Strip(m.View()), "Thinking...")

	m = deliver(t, m, cmd)
	assert.Equal(t, session.PhaseIdle, m.Controller().Phase())
	assert.Equal(t, []string{"What is Allora?"}, sender.messages())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Allora is a network.")
	assert.Contains(t, view, "Sources:")
	assert.Contains(t, view, "📄 intro.md")
	assert.NotContains(t, view, "Thinking...")
}

func TestWidget_FailureShowsFallback(t *testing.T) {
	sender := &fakeSender{err: &transport.Error{Kind: transport.KindServerError, Status: 500}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "hello")
	m, cmd := press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	assert.Contains(t, ansi.Strip(m.View()), session.DefaultFallbackText)
	assert.Equal(t, session.PhaseIdle, m.Controller().Phase())
}

func TestWidget_BlankEnterWithoutSuggestionsDoesNothing(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "first")
	m, cmd := press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	m = typeText(t, m, "   ")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Len(t, m.Controller().Turns(), 2)
}

func TestWidget_SubmitWhileAwaitingIsRejected(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "first")
	m, first := press(t, m, tea.KeyEnter)

	m = typeText(t, m, "second")
	m, second := press(t, m, tea.KeyEnter)
	assert.Nil(t, second)
	assert.Equal(t, "second", m.Draft(), "rejected draft is kept")
	assert.Contains(t, ansi.Strip(m.View()), "Waiting for the current answer")

	m = deliver(t, m, first)
	assert.Len(t, m.Controller().Turns(), 2)
	assert.Equal(t, []string{"first"}, sender.messages())
}

func TestWidget_TypingWhileAwaitingKeepsComposingPhase(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "first")
	m, pending := press(t, m, tea.KeyEnter)
	m = typeText(t, m, "follow-up")
	assert.Equal(t, session.PhaseAwaitingResponse, m.Controller().Phase())

	m = deliver(t, m, pending)
	assert.Equal(t, "follow-up", m.Draft())
	assert.Equal(t, session.PhaseComposing, m.Controller().Phase())

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m = deliver(t, m, cmd)
	assert.Equal(t, []string{"first", "follow-up"}, sender.messages())
	assert.Equal(t, session.PhaseIdle, m.Controller().Phase())
}

func TestWidget_IdleAfterAnswerWhenDraftBlank(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "first")
	m, pending := press(t, m, tea.KeyEnter)
	m = deliver(t, m, pending)
	assert.Equal(t, session.PhaseIdle, m.Controller().Phase())
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

func TestWidget_SuggestionsShownUntilFirstSubmit(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Try asking about:")
	assert.Contains(t, view, "What is Allora?")

	m = typeText(t, m, "custom")
	m, cmd := press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	assert.NotContains(t, ansi.Strip(m.View()), "Try asking about:")
	assert.Empty(t, m.Controller().Suggestions())
}

func TestWidget_SelectSuggestionWithKeys(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m, _ = press(t, m, tea.KeyDown)
	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m = deliver(t, m, cmd)

	turns := m.Controller().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "How do workers earn?", turns[0].Text)
	assert.Equal(t, []string{"How do workers earn?"}, sender.messages())
}

func TestWidget_ArrowsIgnoredForSuggestionsWhileTyping(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "mine")
	m, _ = press(t, m, tea.KeyDown)
	m, cmd := press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	assert.Equal(t, []string{"mine"}, sender.messages())
}

// =============================================================================
// CLOSE AND COPY
// =============================================================================

func TestWidget_CloseCallsOnCloseOnce(t *testing.T) {
	calls := 0
	sender := &fakeSender{reply: &transport.Reply{Text: "ok"}}
	m := newTestWidget(t, sender, Options{OnClose: func() { calls++ }})

	m, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.Closed())
	assert.True(t, m.Controller().Closed())
	assert.Equal(t, "", m.View())

	m, cmd = press(t, m, tea.KeyCtrlC)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)
}

func TestWidget_LateOutcomeAfterCloseIsDropped(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "late"}}
	m := newTestWidget(t, sender, Options{})

	m = typeText(t, m, "question")
	m, pending := press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyEsc)

	outcome := collect(pending)
	require.Len(t, outcome, 1)
	next, _ := m.Update(outcome[0])
	m = next.(Model)

	assert.Len(t, m.Controller().Turns(), 1)
}

func TestWidget_CopyLastAnswer(t *testing.T) {
	var copied string
	sender := &fakeSender{reply: &transport.Reply{Text: "the answer"}}
	m := newTestWidget(t, sender, Options{Clipboard: func(s string) error {
		copied = s
		return nil
	}})

	m, cmd := press(t, m, tea.KeyCtrlY)
	assert.Nil(t, cmd)
	assert.Contains(t, ansi.Strip(m.View()), "Nothing to copy yet")

	m = typeText(t, m, "q")
	m, cmd = press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	m, cmd = press(t, m, tea.KeyCtrlY)
	m = deliver(t, m, cmd)
	assert.Equal(t, "the answer", copied)
	assert.Contains(t, ansi.Strip(m.View()), "Copied answer")
}

func TestWidget_CopyFailureReported(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "x"}}
	m := newTestWidget(t, sender, Options{Clipboard: func(string) error {
		return errors.New("no clipboard")
	}})

	m = typeText(t, m, "q")
	m, cmd := press(t, m, tea.KeyEnter)
	m = deliver(t, m, cmd)

	m, cmd = press(t, m, tea.KeyCtrlY)
	m = deliver(t, m, cmd)
	assert.Contains(t, ansi.Strip(m.View()), "Copy failed")
}

// =============================================================================
// LAYOUT
// =============================================================================

func TestWidget_ViewShowsChrome(t *testing.T) {
	m := newTestWidget(t, &fakeSender{}, Options{Title: "Allie"})
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "Allie")
	assert.Contains(t, view, "esc to close")
	assert.Contains(t, view, Placeholder)
}

func TestLastAnswer_SkipsFallback(t *testing.T) {
	sender := &fakeSender{reply: &transport.Reply{Text: "good"}}
	ctrl := session.New(session.Options{Sender: sender, Sampler: suggest.Static{}})
	_, err := ctrl.Ask(context.Background(), "one")
	require.NoError(t, err)

	sender.reply = nil
	sender.err = transport.ErrUnreachable
	_, err = ctrl.Ask(context.Background(), "two")
	require.Error(t, err)

	got, ok := lastAnswer(ctrl.Turns())
	require.True(t, ok)
	assert.Equal(t, "good", got)
}

func TestWidget_MaxWidthCapsLayout(t *testing.T) {
	ctrl := session.New(session.Options{Sender: &fakeSender{}, Sampler: suggest.Static{"a"}})
	m := New(ctrl, Options{Theme: styles.NewPlainTheme(), MaxWidth: 50})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 50)
	}
}
