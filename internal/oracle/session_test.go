package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/wordguess/internal/words"
)

type fakeChat struct {
	replies []string
	err     error
	sent    []string
}

func (c *fakeChat) Send(ctx context.Context, text string) (string, error) {
	c.sent = append(c.sent, text)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r, nil
}

type fakeStarter struct {
	chat   *fakeChat
	starts int
	err    error
}

func (s *fakeStarter) StartChat(ctx context.Context) (Chat, error) {
	s.starts++
	if s.err != nil {
		return nil, s.err
	}
	return s.chat, nil
}

func TestSessionReusesConversation(t *testing.T) {
	chat := &fakeChat{replies: []string{"Abacaxi", "'Fruit with a crown'", "banana"}}
	st := &fakeStarter{chat: chat}
	s := NewSession(st, Options{})

	if s.Started() {
		t.Fatal("session should start lazily")
	}
	ctx := context.Background()
	if w, err := s.Draw(ctx, ""); err != nil || w != "Abacaxi" {
		t.Fatalf("Draw = %q, %v", w, err)
	}
	if h, err := s.Hint(ctx, "abacaxi"); err != nil || h != "'Fruit with a crown'" {
		t.Fatalf("Hint = %q, %v", h, err)
	}
	if _, err := s.Draw(ctx, "abacaxi"); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if st.starts != 1 {
		t.Errorf("expected one conversation, got %d", st.starts)
	}
	if len(chat.sent) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(chat.sent))
	}
	if !strings.Contains(chat.sent[2], `"abacaxi"`) {
		t.Errorf("draw prompt should exclude previous word: %q", chat.sent[2])
	}
	if strings.Contains(chat.sent[0], "cannot be") {
		t.Errorf("first draw has nothing to exclude: %q", chat.sent[0])
	}
}

func TestDrawCleansDecoration(t *testing.T) {
	chat := &fakeChat{replies: []string{"  **\"Volcano\".**\n"}}
	s := NewSession(&fakeStarter{chat: chat}, Options{})
	w, err := s.Draw(context.Background(), "")
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if w != "Volcano" {
		t.Errorf("got %q", w)
	}
}

func TestDrawMalformedReply(t *testing.T) {
	chat := &fakeChat{replies: []string{"two words"}}
	s := NewSession(&fakeStarter{chat: chat}, Options{})
	_, err := s.Draw(context.Background(), "")
	var oe *Error
	if !errors.As(err, &oe) || oe.Op != "draw" {
		t.Fatalf("expected draw *Error, got %v", err)
	}
	if !errors.Is(err, ErrMalformedReply) {
		t.Errorf("expected ErrMalformedReply, got %v", err)
	}
}

func TestEmptyReply(t *testing.T) {
	s := NewSession(&fakeStarter{chat: &fakeChat{replies: []string{"   "}}}, Options{})
	_, err := s.Hint(context.Background(), "sun")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestTransportErrorIsOracleError(t *testing.T) {
	boom := errors.New("connection reset")
	s := NewSession(&fakeStarter{chat: &fakeChat{err: boom}}, Options{})
	_, err := s.Hint(context.Background(), "sun")
	var oe *Error
	if !errors.As(err, &oe) || oe.Op != "hint" {
		t.Fatalf("expected hint *Error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestStartFailure(t *testing.T) {
	st := &fakeStarter{err: errors.New("unauthorized")}
	s := NewSession(st, Options{})
	_, err := s.Draw(context.Background(), "")
	var oe *Error
	if !errors.As(err, &oe) || oe.Op != "start" {
		t.Fatalf("expected start *Error, got %v", err)
	}
	if s.Started() {
		t.Error("failed start must not be cached")
	}
}

func TestPromptsCarryLimits(t *testing.T) {
	d := drawPrompt("Portuguese", "casa")
	if !strings.Contains(d, "Portuguese") || !strings.Contains(d, "10 letters") || !strings.Contains(d, "spelling") {
		t.Errorf("draw prompt: %q", d)
	}
	h := hintPrompt("English", "casa")
	if !strings.Contains(h, "35") || !strings.Contains(h, `"casa"`) {
		t.Errorf("hint prompt: %q", h)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	if !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestOffline(t *testing.T) {
	l, err := words.Parse([]string{"sun|'Hot and bright'", "moon|'Shines at night'"})
	if err != nil {
		t.Fatal(err)
	}
	o := NewOffline(l)
	ctx := context.Background()
	w, err := o.Draw(ctx, "sun")
	if err != nil || w != "moon" {
		t.Fatalf("Draw = %q, %v", w, err)
	}
	if h, err := o.Hint(ctx, "moon"); err != nil || h != "'Shines at night'" {
		t.Fatalf("Hint = %q, %v", h, err)
	}
	if _, err := o.Hint(ctx, "star"); !errors.Is(err, ErrUnknownWord) {
		t.Errorf("expected ErrUnknownWord, got %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := o.Draw(cctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled, got %v", err)
	}
}
