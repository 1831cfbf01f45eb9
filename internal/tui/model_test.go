package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/oracle"
	"github.com/robalobadob/wordguess/internal/shell"
	"github.com/robalobadob/wordguess/internal/words"
)

type brokenOracle struct{}

func (brokenOracle) Draw(context.Context, string) (string, error) {
	return "", errors.New("offline")
}

func (brokenOracle) Hint(context.Context, string) (string, error) {
	return "", errors.New("offline")
}

func newModel(t *testing.T, o game.Oracle) Model {
	t.Helper()
	sh := shell.New(context.Background(), game.New(o), shell.Config{
		FeedbackDelay:  time.Hour,
		MaxRoundStarts: 2,
	})
	t.Cleanup(sh.Close)
	return New(context.Background(), sh)
}

func offlineOracle(t *testing.T) game.Oracle {
	t.Helper()
	l, err := words.Parse([]string{"gato|'Small feline'"})
	if err != nil {
		t.Fatal(err)
	}
	return oracle.NewOffline(l)
}

// step feeds msg to the model and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestRoundAppearsAfterStart(t *testing.T) {
	m := newModel(t, offlineOracle(t))
	if msg := m.start()(); msg != nil {
		t.Fatalf("start = %v", msg)
	}
	m, _ = step(t, m, waitView(m.views)())

	out := m.View()
	for _, want := range []string{"Small feline", "4 letters", shell.FeedbackPrompt, "Lives left: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestWrongGuessKeepsInput(t *testing.T) {
	m := newModel(t, offlineOracle(t))
	m.start()()
	m, _ = step(t, m, waitView(m.views)())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("rato")})
	if m.input.Value() != "rato" {
		t.Fatalf("input = %q", m.input.Value())
	}
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("submit = %v", msg)
	}
	m, _ = step(t, m, waitView(m.views)())

	if m.view.Feedback != shell.FeedbackWrong || m.input.Value() != "rato" {
		t.Errorf("feedback = %q, input = %q", m.view.Feedback, m.input.Value())
	}
	if !strings.Contains(m.View(), "Lives left: 4") {
		t.Errorf("attempts not updated:\n%s", m.View())
	}
}

func TestBlankViewInputClearsField(t *testing.T) {
	m := newModel(t, offlineOracle(t))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	m, _ = step(t, m, viewMsg(shell.View{Feedback: shell.FeedbackPrompt}))
	if m.input.Value() != "" {
		t.Errorf("input = %q", m.input.Value())
	}
}

func TestFatalStart(t *testing.T) {
	m := newModel(t, brokenOracle{})
	msg := m.start()()
	em, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("start msg = %#v", msg)
	}
	var rie *shell.RoundInitError
	if !errors.As(em.err, &rie) {
		t.Errorf("err = %v", em.err)
	}
	m, _ = step(t, m, em)
	m, _ = step(t, m, waitView(m.views)())
	if !strings.Contains(m.View(), shell.FatalMessage) {
		t.Errorf("fatal message missing:\n%s", m.View())
	}
}

func TestEscQuits(t *testing.T) {
	m := newModel(t, offlineOracle(t))
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-m.views:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("subscription should be closed")
		}
	}
}
