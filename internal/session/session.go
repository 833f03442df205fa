// Package session wraps the cookie store behind an explicit per-request
// session value. Handlers receive a *Session loaded at the top of the
// request instead of reading from ambient state.
package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "_catalog_session"

	keyState       = "state"
	keyUserID      = "user_id"
	keyUsername    = "username"
	keyEmail       = "email"
	keyPicture     = "picture"
	keyAccessToken = "access_token"
	keySubject     = "subject"
)

// Manager owns the cookie store.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret []byte, secure bool) *Manager {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	return &Manager{store: store}
}

// Load returns the browser's session, creating a fresh one if the
// cookie is absent or fails to decode.
func (m *Manager) Load(r *http.Request) *Session {
	s, err := m.store.Get(r, cookieName)
	if err != nil {
		// A bad cookie means a fresh session, not a failed request.
		s, _ = m.store.New(r, cookieName)
	}
	return &Session{s: s}
}

// Session is the per-browser state: anti-forgery token, authentication
// fields, OAuth transients, and flash notices.
type Session struct {
	s *sessions.Session
}

// NewState issues a fresh anti-forgery token, replacing any prior one.
func (s *Session) NewState() string {
	state := uuid.NewString()
	s.s.Values[keyState] = state
	return state
}

func (s *Session) State() string {
	return s.str(keyState)
}

func (s *Session) SetUser(id uint, name, email, picture string) {
	s.s.Values[keyUserID] = id
	s.s.Values[keyUsername] = name
	s.s.Values[keyEmail] = email
	s.s.Values[keyPicture] = picture
}

// UserID returns the authenticated user id, or false when the session
// is not authenticated.
func (s *Session) UserID() (uint, bool) {
	id, ok := s.s.Values[keyUserID].(uint)
	return id, ok && id != 0
}

func (s *Session) Username() string { return s.str(keyUsername) }
func (s *Session) Email() string    { return s.str(keyEmail) }
func (s *Session) Picture() string  { return s.str(keyPicture) }

func (s *Session) SetCredentials(accessToken, subject string) {
	s.s.Values[keyAccessToken] = accessToken
	s.s.Values[keySubject] = subject
}

func (s *Session) AccessToken() string { return s.str(keyAccessToken) }
func (s *Session) Subject() string     { return s.str(keySubject) }

// ClearAuth removes authentication-related keys only; the rest of the
// session (pending flashes included) survives logout.
func (s *Session) ClearAuth() {
	for _, k := range []string{keyUserID, keyUsername, keyEmail, keyPicture, keyAccessToken, keySubject} {
		delete(s.s.Values, k)
	}
}

// Flash queues a one-shot notice for the next rendered page.
func (s *Session) Flash(msg string) {
	s.s.AddFlash(msg)
}

// Flashes drains and returns pending notices.
func (s *Session) Flashes() []string {
	raw := s.s.Flashes()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

func (s *Session) Save(r *http.Request, w http.ResponseWriter) error {
	return s.s.Save(r, w)
}

func (s *Session) str(key string) string {
	v, _ := s.s.Values[key].(string)
	return v
}
