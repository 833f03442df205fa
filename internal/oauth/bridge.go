// Package oauth exchanges authorization codes with the external
// identity provider and populates the session on successful login.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kheyer/RESTful-App/internal/identity"
	"github.com/kheyer/RESTful-App/internal/session"
)

var (
	ErrStateMismatch  = errors.New("state mismatch")
	ErrExchangeFailed = errors.New("exchange failed")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrNotConnected   = errors.New("not connected")
	ErrRevokeFailed   = errors.New("revoke failed")

	// ErrProviderReported wraps ErrTokenInvalid when the provider itself
	// reported the token as bad; handlers answer 500 instead of 401.
	ErrProviderReported = errors.New("provider reported an error")
)

// Bridge drives the login and logout flows against a Provider.
type Bridge struct {
	provider Provider
	resolver *identity.Resolver
	clientID string
	logger   *slog.Logger
}

func NewBridge(provider Provider, resolver *identity.Resolver, clientID string, logger *slog.Logger) *Bridge {
	return &Bridge{
		provider: provider,
		resolver: resolver,
		clientID: clientID,
		logger:   logger,
	}
}

// BeginLogin issues a fresh anti-forgery state token into the session
// and returns it for embedding in the login page.
func (b *Bridge) BeginLogin(sess *session.Session) string {
	return sess.NewState()
}

// AuthURL returns the provider's authorization page for a state token.
func (b *Bridge) AuthURL(state string) string {
	return b.provider.AuthURL(state)
}

// LoginResult reports how CompleteLogin finished.
type LoginResult struct {
	AlreadyConnected bool
	Username         string
	Picture          string
}

// CompleteLogin validates the callback and, on success, resolves the
// local user and populates the session. On any failure the session is
// left untouched.
func (b *Bridge) CompleteLogin(ctx context.Context, sess *session.Session, receivedState, code string) (*LoginResult, error) {
	if receivedState == "" || receivedState != sess.State() {
		return nil, ErrStateMismatch
	}

	creds, err := b.provider.Exchange(ctx, code)
	if err != nil {
		b.logger.Warn("authorization code exchange failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	info, err := b.provider.VerifyToken(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if info.Error != "" {
		return nil, fmt.Errorf("%w: %w: %s", ErrTokenInvalid, ErrProviderReported, info.Error)
	}
	if info.UserID != creds.Subject {
		return nil, fmt.Errorf("%w: token's user ID doesn't match", ErrTokenInvalid)
	}
	if info.IssuedTo != b.clientID {
		return nil, fmt.Errorf("%w: token's client ID does not match app's", ErrTokenInvalid)
	}

	if sess.AccessToken() != "" && sess.Subject() == creds.Subject {
		return &LoginResult{AlreadyConnected: true, Username: sess.Username()}, nil
	}

	profile, err := b.provider.Profile(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	userID, err := b.resolver.Resolve(ctx, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	sess.SetCredentials(creds.AccessToken, creds.Subject)
	sess.SetUser(userID, profile.Name, profile.Email, profile.Picture)
	b.logger.Info("user logged in", slog.String("email", profile.Email), slog.Uint64("user_id", uint64(userID)))

	return &LoginResult{Username: profile.Name, Picture: profile.Picture}, nil
}

// Logout revokes the session's access token with the provider. Only a
// confirmed revocation clears the authentication keys; on failure the
// session stays intact.
func (b *Bridge) Logout(ctx context.Context, sess *session.Session) error {
	token := sess.AccessToken()
	if token == "" {
		return ErrNotConnected
	}

	if err := b.provider.Revoke(ctx, token); err != nil {
		b.logger.Warn("token revocation failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrRevokeFailed, err)
	}

	sess.ClearAuth()
	return nil
}
