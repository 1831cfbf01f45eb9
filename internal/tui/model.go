// Package tui draws the game window in a terminal with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/shell"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle     = lipgloss.NewStyle().Italic(true).Width(44).Align(lipgloss.Center)
	maskedStyle   = lipgloss.NewStyle().Bold(true)
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// viewMsg carries a view published by the shell.
type viewMsg shell.View

// closedMsg reports that the shell ended the subscription.
type closedMsg struct{}

// errMsg carries a failed action.
type errMsg struct{ err error }

// Model is the bubbletea model for one player.
type Model struct {
	ctx    context.Context
	sh     *shell.Shell
	views  <-chan shell.View
	cancel func()

	input textinput.Model
	view  shell.View
	err   error
}

// New subscribes to sh. The round starts when the program runs.
func New(ctx context.Context, sh *shell.Shell) Model {
	ti := textinput.New()
	ti.Placeholder = "your guess"
	ti.CharLimit = 32
	ti.Width = 20
	ti.Focus()

	views, cancel := sh.Subscribe()
	return Model{ctx: ctx, sh: sh, views: views, cancel: cancel, input: ti, view: sh.View()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.start(), waitView(m.views))
}

func (m Model) start() tea.Cmd {
	return func() tea.Msg {
		if err := m.sh.Start(m.ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) submit(guess string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.sh.Submit(m.ctx, guess); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) newWord() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.sh.NewWord(m.ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// waitView blocks until the shell publishes the next view.
func waitView(ch <-chan shell.View) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return viewMsg(v)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancel()
			return m, tea.Quit
		case tea.KeyEnter:
			m.err = nil
			return m, m.submit(m.input.Value())
		case tea.KeyCtrlN:
			m.err = nil
			m.input.SetValue("")
			return m, m.newWord()
		}

	case viewMsg:
		m.view = shell.View(msg)
		if m.view.Input == "" {
			m.input.SetValue("")
		}
		return m, waitView(m.views)

	case closedMsg:
		return m, tea.Quit

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Guess the word") + "\n\n")

	v := m.view
	if v.Fatal != "" {
		b.WriteString(errorStyle.Render(v.Fatal) + "\n\n")
	} else if v.Hint == "" {
		b.WriteString(helpStyle.Render("Drawing a word...") + "\n\n")
	} else {
		b.WriteString(hintStyle.Render(v.Hint) + "\n\n")
		b.WriteString(maskedStyle.Render(v.Masked) + fmt.Sprintf("  (%d letters)", v.WordLength) + "\n\n")
	}

	b.WriteString(feedbackStyle.Render(v.Feedback) + " " + m.input.View() + "\n")
	b.WriteString(v.AttemptsLabel + "\n")
	if m.err != nil && !errors.Is(m.err, game.ErrNoRound) {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: guess • ctrl+n: new word • esc: quit") + "\n")
	return b.String()
}
