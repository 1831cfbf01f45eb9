// Package oracle talks to the text-generation service that supplies secret
// words and hints.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Chat is a persistent conversation. Each Send appends to its history.
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
}

// Starter opens new conversations.
type Starter interface {
	StartChat(ctx context.Context) (Chat, error)
}

// Options tune a Session.
type Options struct {
	Language string        // language words and hints are asked in; default "English"
	Limiter  *rate.Limiter // optional; shared across sessions to bound provider traffic
	Timeout  time.Duration // per-message timeout; zero means none
}

// Session draws words and hints over a single conversation, so the
// provider keeps the context of words it already handed out.
// The conversation is opened on first use and reused afterwards.
type Session struct {
	starter Starter
	opts    Options
	log     zerolog.Logger

	mu   sync.Mutex
	chat Chat
}

// NewSession returns a Session that opens its conversation through st.
func NewSession(st Starter, opts Options) *Session {
	if opts.Language == "" {
		opts.Language = "English"
	}
	return &Session{
		starter: st,
		opts:    opts,
		log:     log.With().Str("component", "oracle").Logger(),
	}
}

// conversation returns the session's chat, starting it if needed.
func (s *Session) conversation(ctx context.Context) (Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat != nil {
		return s.chat, nil
	}
	c, err := s.starter.StartChat(ctx)
	if err != nil {
		return nil, wrap("start", err)
	}
	s.log.Debug().Msg("conversation started")
	s.chat = c
	return c, nil
}

// Started reports whether the conversation has been opened.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat != nil
}

func (s *Session) send(ctx context.Context, op, prompt string) (string, error) {
	chat, err := s.conversation(ctx)
	if err != nil {
		return "", err
	}
	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Wait(ctx); err != nil {
			return "", wrap(op, err)
		}
	}
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := chat.Send(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("send failed")
		return "", wrap(op, err)
	}
	reply = strings.TrimSpace(reply)
	s.log.Debug().Str("op", op).Dur("took", time.Since(start)).Str("reply", reply).Msg("oracle replied")
	if reply == "" {
		return "", &Error{Op: op, Err: ErrEmptyReply}
	}
	return reply, nil
}

// Draw asks for a new secret word other than exclude.
// The reply is stripped of quotes and punctuation but not lowercased.
func (s *Session) Draw(ctx context.Context, exclude string) (string, error) {
	reply, err := s.send(ctx, "draw", drawPrompt(s.opts.Language, exclude))
	if err != nil {
		return "", err
	}
	word := cleanWord(reply)
	if word == "" || strings.ContainsAny(word, " \t\r\n") {
		return "", &Error{Op: "draw", Err: fmt.Errorf("%w: %q", ErrMalformedReply, reply)}
	}
	return word, nil
}

// Hint asks for a hint describing word. Its length is not checked here.
func (s *Session) Hint(ctx context.Context, word string) (string, error) {
	return s.send(ctx, "hint", hintPrompt(s.opts.Language, word))
}

// cleanWord drops decoration models like to wrap single words in.
func cleanWord(reply string) string {
	return strings.TrimSpace(strings.Trim(reply, " \t\r\n\"'`*.,;:!?“”‘’"))
}
