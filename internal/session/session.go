// Package session implements cookie-backed sessions as signed HS256 tokens.
// The cookie carries the username and an expiry; there is no server-side
// session storage.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cookieName = "booking_session"

// Session is the per-client authentication state carried by the cookie
type Session struct {
	Authenticated bool
	Username      string
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager issues, reads, and clears session cookies
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager signing with the given secret
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the username and sets it as a cookie
func (m *Manager) Issue(w http.ResponseWriter, username string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current returns the session carried by the request, if any. A missing,
// expired, or tampered cookie yields an unauthenticated session.
func (m *Manager) Current(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Session{}, false
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || c.Username == "" {
		return Session{}, false
	}

	return Session{Authenticated: true, Username: c.Username}, true
}

// Clear expires the session cookie
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
