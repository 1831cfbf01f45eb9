// internal/httpserver/session.go
//
// Player sessions.
// Every browser or API client gets a random session id carried in an HS256
// JWT, either in the session cookie or as "Authorization: Bearer <token>".
// A request without a valid token gets a fresh session and the token is
// returned in both the cookie and the X-Session-Token header.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const (
	sessionCookieName = "wordguess_session"
	sessionLifetime   = 30 * 24 * time.Hour
)

// ctxSessionKey is the context key type for the session id.
type ctxSessionKey struct{}

// sessionID returns the id placed in the context by withSession.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}

// withSession resolves or creates the caller's session id.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.parseSession(bearerOrCookie(r))
		if id == "" {
			id = uuid.NewString()
			tok, exp, err := s.signSession(id)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
			s.setSessionCookie(w, tok, exp)
			w.Header().Set("X-Session-Token", tok)
		}
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("session", id)
		})
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signSession creates a token for id.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(sessionLifetime)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parseSession returns the session id in tok, or "" if tok is not valid.
func (s *Server) parseSession(tok string) string {
	if tok == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	id, _ := claims["sid"].(string)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
