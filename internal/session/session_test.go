package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Manager, *Session) {
	t.Helper()
	m := NewManager([]byte("0123456789abcdef0123456789abcdef"), false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return m, m.Load(r)
}

func TestNewStateReplacesPrior(t *testing.T) {
	_, sess := newTestSession(t)

	first := sess.NewState()
	second := sess.NewState()
	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
	require.Equal(t, second, sess.State())
}

func TestClearAuthKeepsFlashes(t *testing.T) {
	_, sess := newTestSession(t)

	sess.SetUser(7, "Alice", "alice@example.com", "alice.png")
	sess.SetCredentials("tok", "sub")
	sess.Flash("hello")

	sess.ClearAuth()

	_, ok := sess.UserID()
	require.False(t, ok)
	require.Empty(t, sess.AccessToken())
	require.Empty(t, sess.Subject())
	require.Equal(t, []string{"hello"}, sess.Flashes())
}

func TestFlashesDrain(t *testing.T) {
	_, sess := newTestSession(t)

	sess.Flash("one")
	sess.Flash("two")
	require.Equal(t, []string{"one", "two"}, sess.Flashes())
	require.Empty(t, sess.Flashes())
}

func TestRoundTripThroughCookie(t *testing.T) {
	m, sess := newTestSession(t)

	sess.SetUser(7, "Alice", "alice@example.com", "alice.png")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	require.NoError(t, sess.Save(r, w))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	loaded := m.Load(next)

	id, ok := loaded.UserID()
	require.True(t, ok)
	require.Equal(t, uint(7), id)
	require.Equal(t, "Alice", loaded.Username())
}
