// Package shell is the presentation model of the game window: the labels a
// front end draws and the two actions it offers (submit a guess, ask for a
// new word). Terminal and HTTP front ends both drive a Shell.
package shell

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/hint"
)

const (
	DefaultFeedbackDelay  = 1500 * time.Millisecond
	DefaultMaxRoundStarts = 5
	DefaultStartTimeout   = 90 * time.Second
)

// Config wires a Shell. Zero values fall back to defaults.
type Config struct {
	ID             string // session id, used in logs and history
	FeedbackDelay  time.Duration
	MaxRoundStarts int
	StartTimeout   time.Duration // bounds one round-start sequence, retries included
	Clock          Clock
	Recorder       Recorder
}

// Shell serialises every state change behind one mutex, the way a window
// toolkit runs callbacks on its UI thread.
type Shell struct {
	id           string
	base         context.Context // round starts run on it, never on a caller's context
	state        *game.State
	clock        Clock
	rec          Recorder
	delay        time.Duration
	maxStarts    int
	startTimeout time.Duration
	log          zerolog.Logger

	mu         sync.Mutex
	view       View
	ready      bool   // a round is on screen
	roundOver  bool   // won or out of attempts, restart pending
	gen        uint64 // bumped by every round start and every scheduled settle
	pending    Timer  // the one outstanding settle, if any
	subs       map[int]chan View
	nextSub    int
	lastActive time.Time
	closed     bool
}

// New returns a Shell over st. Nothing is drawn until Start.
func New(ctx context.Context, st *game.State, cfg Config) *Shell {
	if cfg.FeedbackDelay <= 0 {
		cfg.FeedbackDelay = DefaultFeedbackDelay
	}
	if cfg.MaxRoundStarts <= 0 {
		cfg.MaxRoundStarts = DefaultMaxRoundStarts
	}
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = DefaultStartTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Shell{
		id:           cfg.ID,
		base:         ctx,
		state:        st,
		clock:        cfg.Clock,
		rec:          cfg.Recorder,
		delay:        cfg.FeedbackDelay,
		maxStarts:    cfg.MaxRoundStarts,
		startTimeout: cfg.StartTimeout,
		log:          log.With().Str("component", "shell").Str("session", cfg.ID).Logger(),
		view: View{
			Feedback:      FeedbackPrompt,
			Attempts:      st.Attempts(),
			AttemptsLabel: attemptsLabel(st.Attempts()),
		},
		subs:       make(map[int]chan View),
		lastActive: time.Now(),
	}
}

// ID returns the session id the shell was created with.
func (s *Shell) ID() string { return s.id }

// View returns the current labels.
func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Ready reports whether a round is on screen.
func (s *Shell) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// LastActive is the time of the last user action.
func (s *Shell) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Start runs the round-start sequence with full attempts. A caller whose
// ctx is already done gets its error and nothing changes; once the
// sequence runs it is bounded by the shell's own context and timeout.
func (s *Shell) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	err := s.startLocked()
	s.publishLocked()
	return err
}

// Begin starts a round unless one is already on screen.
func (s *Shell) Begin(ctx context.Context) (View, error) {
	if err := ctx.Err(); err != nil {
		return s.View(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if s.ready {
		return s.view, nil
	}
	err := s.startLocked()
	s.publishLocked()
	return s.view, err
}

// NewWord abandons the current round and starts another one.
func (s *Shell) NewWord(ctx context.Context) (View, error) {
	if err := ctx.Err(); err != nil {
		return s.View(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	s.view.Input = ""
	if s.ready && !s.roundOver {
		s.record(ctx, Skipped)
	}
	err := s.startLocked()
	s.publishLocked()
	return s.view, err
}

// Submit checks a guess. Feedback is shown for the feedback delay; after
// that the input is cleared and, if the round is over, a new one starts.
// A blank guess only clears the input.
func (s *Shell) Submit(ctx context.Context, guess string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if strings.TrimSpace(guess) == "" {
		s.view.Input = ""
		s.publishLocked()
		return s.view, nil
	}
	if !s.ready {
		return s.view, game.ErrNoRound
	}
	if s.roundOver {
		return s.view, nil
	}

	s.view.Input = guess
	if s.state.CheckGuess(guess) {
		s.roundOver = true
		s.view.Feedback = FeedbackCorrect
		s.record(ctx, Won)
	} else {
		left := s.state.RecordWrongGuess()
		s.view.Feedback = FeedbackWrong
		s.view.Attempts = left
		s.view.AttemptsLabel = attemptsLabel(left)
		if left == 0 {
			s.roundOver = true
			s.record(ctx, Lost)
		}
	}
	s.log.Debug().Bool("roundOver", s.roundOver).Int("attempts", s.state.Attempts()).Msg("guess checked")

	s.scheduleSettle()
	s.publishLocked()
	return s.view, nil
}

// Subscribe streams views after every change, starting with the current
// one. Slow readers only see the latest view.
func (s *Shell) Subscribe() (<-chan View, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan View, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.view
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close cancels pending delayed actions and ends all subscriptions.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopPending()
	for id, c := range s.subs {
		delete(s.subs, id)
		close(c)
	}
}

// startLocked resets attempts and tries up to maxStarts times to draw a
// word with a displayable hint.
func (s *Shell) startLocked() error {
	s.gen++
	s.stopPending()
	s.state.ResetAttempts()

	ctx, cancel := context.WithTimeout(s.base, s.startTimeout)
	defer cancel()

	var (
		last  error
		tries int
	)
	for tries < s.maxStarts {
		if err := ctx.Err(); err != nil {
			last = err
			break
		}
		tries++
		text, err := s.tryStart(ctx)
		if err != nil {
			last = err
			s.log.Warn().Err(err).Int("try", tries).Msg("round start failed")
			continue
		}
		s.ready, s.roundOver = true, false
		s.view = View{
			Hint:          text,
			Masked:        s.state.Masked(),
			WordLength:    s.state.WordLength(),
			Feedback:      FeedbackPrompt,
			Attempts:      s.state.Attempts(),
			AttemptsLabel: attemptsLabel(s.state.Attempts()),
			Round:         s.state.Round(),
		}
		s.log.Info().Uint64("round", s.state.Round()).Int("letters", s.state.WordLength()).Int("tries", tries).Msg("round started")
		return nil
	}

	err := &RoundInitError{Attempts: tries, Err: last}
	s.log.Error().Err(err).Msg("giving up on round start")
	s.ready, s.roundOver = false, false
	s.view = View{
		Feedback:      FeedbackPrompt,
		Attempts:      s.state.Attempts(),
		AttemptsLabel: attemptsLabel(s.state.Attempts()),
		Round:         s.state.Round(),
		Fatal:         FatalMessage,
	}
	return err
}

// tryStart draws a word and lays out its hint.
func (s *Shell) tryStart(ctx context.Context) (string, error) {
	if err := s.state.StartRound(ctx); err != nil {
		return "", err
	}
	h, err := s.state.FetchHint(ctx)
	if err != nil {
		return "", err
	}
	return hint.Layout(h)
}

// scheduleSettle replaces any pending settle, so every feedback is shown
// for the full delay.
func (s *Shell) scheduleSettle() {
	if s.closed {
		return
	}
	s.stopPending()
	s.gen++
	gen := s.gen
	s.pending = s.clock.AfterFunc(s.delay, func() { s.settle(gen) })
}

func (s *Shell) stopPending() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// settle runs after the feedback delay. It is a no-op once a newer guess
// or round start has happened.
func (s *Shell) settle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	s.pending = nil
	s.view.Feedback = FeedbackPrompt
	s.view.Input = ""
	if s.roundOver {
		_ = s.startLocked()
	}
	s.publishLocked()
}

func (s *Shell) record(ctx context.Context, r Result) {
	if s.rec == nil {
		return
	}
	o := Outcome{
		Session:    s.id,
		Round:      s.state.Round(),
		Word:       s.state.Word(),
		Result:     r,
		WrongCount: game.DefaultAttempts - s.state.Attempts(),
		At:         time.Now().UTC(),
	}
	// The outcome is stored even if the caller goes away.
	if err := s.rec.Record(context.WithoutCancel(ctx), o); err != nil {
		s.log.Warn().Err(err).Str("result", string(r)).Msg("record round")
	}
}

// publishLocked hands the view to every subscriber, replacing any view
// they have not read yet.
func (s *Shell) publishLocked() {
	for _, c := range s.subs {
		select {
		case <-c:
		default:
		}
		c <- s.view
	}
}
