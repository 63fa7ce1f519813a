package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueRequest(t *testing.T, m *Manager, username string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, username))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestIssueAndCurrent(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	sess, ok := m.Current(issueRequest(t, m, "alice"))
	require.True(t, ok)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "alice", sess.Username)
}

func TestCurrent_NoCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, ok := m.Current(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestCurrent_TamperedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	req := issueRequest(t, m, "alice")
	cookie, err := req.Cookie(cookieName)
	require.NoError(t, err)

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: cookieName, Value: cookie.Value + "x"})

	_, ok := m.Current(tampered)
	assert.False(t, ok)
}

func TestCurrent_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	_, ok := verifier.Current(issueRequest(t, issuer, "alice"))
	assert.False(t, ok)
}

func TestCurrent_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	_, ok := m.Current(issueRequest(t, m, "alice"))
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
