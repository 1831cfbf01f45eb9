// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (session cookie): POST /game/start, GET /game/view,
//     POST /game/guess, POST /game/new-word, GET /game/ws.
//   - History endpoint: GET /stats/me (when a history database is configured).
//
// Notes:
//   - Each session owns one shell.Shell; shells live in store.Sessions.
//   - Action routes are rate limited per session.
//   - Oracle calls run on the request goroutine; the shell serialises them.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/assets"
	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/history"
	"github.com/robalobadob/wordguess/internal/shell"
	"github.com/robalobadob/wordguess/internal/store"
)

// actionTimeout bounds a request that may run the whole round-start
// sequence, retries included.
const actionTimeout = 2 * time.Minute

// StatsSource serves per-session round statistics.
type StatsSource interface {
	Stats(ctx context.Context, session string) (history.Stats, error)
}

// Options configures a Server.
type Options struct {
	Sessions      *store.Sessions
	NewShell      func(sessionID string) *shell.Shell
	Stats         StatsSource // nil disables /stats/me
	SessionSecret string
	Secure        bool   // production cookies
	ClientOrigin  string // allowed CORS / websocket origin
	ActionRPS     float64
	ActionBurst   int
}

// Server bundles router, session store, and per-session limiters.
type Server struct {
	r        *chi.Mux
	sessions *store.Sessions
	newShell func(string) *shell.Shell
	stats    StatsSource
	secret   []byte
	secure   bool
	origin   string
	limiters *lru.Cache
	rps      float64
	burst    int
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	limiters, _ := lru.New(limiterCapacity)
	s := &Server{
		r:        chi.NewRouter(),
		sessions: opts.Sessions,
		newShell: opts.NewShell,
		stats:    opts.Stats,
		secret:   []byte(opts.SessionSecret),
		secure:   opts.Secure,
		origin:   opts.ClientOrigin,
		limiters: limiters,
		rps:      opts.ActionRPS,
		burst:    opts.ActionBurst,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)              // add X-Request-ID
	s.r.Use(chimw.RealIP)                 // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))  // request-scoped logger
	s.r.Use(requestIDLogger)              // tag it with the request id
	s.r.Use(hlog.AccessHandler(accessLog)) // one line per request
	s.r.Use(chimw.Recoverer)              // recover from panics
	s.r.Use(jsonContentType)              // default JSON responses
	s.r.Use(s.cors)                       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})

	// --- game ---
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withSession)
		// The websocket outlives any request timeout.
		r.Get("/ws", s.handleWS)
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(actionTimeout))
			r.Get("/view", s.handleView)
			r.With(s.rateLimit).Post("/start", s.handleStart)
			r.With(s.rateLimit).Post("/guess", s.handleGuess)
			r.With(s.rateLimit).Post("/new-word", s.handleNewWord)
		})
	})

	s.r.With(s.withSession).Get("/stats/me", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// shellFor returns the caller's shell, creating it on first use.
func (s *Server) shellFor(r *http.Request) *shell.Shell {
	id := sessionID(r)
	return s.sessions.GetOrCreate(id, func() *shell.Shell { return s.newShell(id) })
}

// ------------------------------ GAME ---------------------------------------

// viewRes wraps the window state returned by every game endpoint.
type viewRes struct {
	View  shell.View `json:"view"`
	Error string     `json:"error,omitempty"`
}

// handleIndex serves the embedded browser page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := assets.IndexHTML()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "asset_missing")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleStart draws the first word for a session. Calling it again while a
// round is on screen just returns the view.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	v, err := s.shellFor(r).Begin(r.Context())
	if err != nil {
		s.writeShellError(w, r, v, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{View: v})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(viewRes{View: s.shellFor(r).View()})
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	v, err := s.shellFor(r).Submit(r.Context(), req.Guess)
	if err != nil {
		s.writeShellError(w, r, v, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{View: v})
}

func (s *Server) handleNewWord(w http.ResponseWriter, r *http.Request) {
	v, err := s.shellFor(r).NewWord(r.Context())
	if err != nil {
		s.writeShellError(w, r, v, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{View: v})
}

// handleStats returns round statistics for the caller's session.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"enabled": false})
		return
	}
	st, err := s.stats.Stats(r.Context(), sessionID(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"enabled": true, "stats": st})
}

// writeShellError maps shell failures to status codes.
func (s *Server) writeShellError(w http.ResponseWriter, r *http.Request, v shell.View, err error) {
	var rie *shell.RoundInitError
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.As(err, &rie):
		status, code = http.StatusServiceUnavailable, "round_init_failed"
	case errors.Is(err, game.ErrNoRound):
		status, code = http.StatusConflict, "no_round"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status, code = http.StatusGatewayTimeout, "timeout"
	}
	ev := hlog.FromRequest(r).Warn()
	if status == http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Err(err).Str("code", code).Msg("game action failed")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(viewRes{View: v, Error: code})
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// accessLog writes one line per request at info level.
func accessLog(r *http.Request, status, size int, d time.Duration) {
	var ev *zerolog.Event
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	} else {
		ev = hlog.FromRequest(r).Info()
	}
	ev.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
}
