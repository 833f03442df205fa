package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kheyer/RESTful-App/internal/oauth"
)

// Login renders the login page with a fresh anti-forgery state token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	state := h.bridge.BeginLogin(sess)
	h.renderPage(w, r, sess, "login.html", map[string]any{
		"State":   state,
		"AuthURL": h.bridge.AuthURL(state),
	})
}

// OAuthCallback completes the external login. The state rides in the
// query string; the request body carries the authorization code.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	code, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		jsonMessage(w, http.StatusBadRequest, "Unable to read authorization code.")
		return
	}

	result, err := h.bridge.CompleteLogin(r.Context(), sess, r.URL.Query().Get("state"), string(code))
	if err != nil {
		h.loginFailure(w, err)
		return
	}

	if result.AlreadyConnected {
		jsonMessage(w, http.StatusOK, "User is already connected.")
		return
	}

	sess.Flash(fmt.Sprintf("you are now logged in as %s", result.Username))
	if err := sess.Save(r, w); err != nil {
		h.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>Welcome, %s!</h1><img src=%q class=\"welcome-picture\">", result.Username, result.Picture)
}

func (h *Handler) loginFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, oauth.ErrStateMismatch):
		jsonMessage(w, http.StatusUnauthorized, "Invalid state parameter.")
	case errors.Is(err, oauth.ErrExchangeFailed):
		jsonMessage(w, http.StatusUnauthorized, "Failed to upgrade the authorization code.")
	case errors.Is(err, oauth.ErrProviderReported):
		jsonMessage(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, oauth.ErrTokenInvalid):
		jsonMessage(w, http.StatusUnauthorized, err.Error())
	default:
		h.serverError(w, err)
	}
}

// Disconnect revokes the provider token and clears the authenticated
// session.
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)

	err := h.bridge.Logout(r.Context(), sess)
	switch {
	case err == nil:
		h.flashRedirect(w, r, sess, "You are now logged out.", "/catalog/")
	case errors.Is(err, oauth.ErrNotConnected):
		jsonMessage(w, http.StatusUnauthorized, "Current user not connected.")
	case errors.Is(err, oauth.ErrRevokeFailed):
		jsonMessage(w, http.StatusBadRequest, "Failed to revoke token for given user.")
	default:
		h.serverError(w, err)
	}
}
