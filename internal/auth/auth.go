// Package auth guards mutating routes: authentication via middleware,
// ownership via a guard clause run before any write.
package auth

import (
	"context"
	"net/http"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/internal/identity"
	"github.com/kheyer/RESTful-App/internal/session"
)

// RequireUser redirects to the login page unless the session carries an
// authenticated user id.
func RequireUser(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := manager.Load(r)
			if _, ok := sess.UserID(); !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckOwner compares the resource owner against the session user. On
// mismatch it returns a NotOwner error naming the actual owner; the
// caller flashes the message and redirects without writing anything.
// A dangling owner reference is an integrity fault and comes back as a
// plain error.
func CheckOwner(ctx context.Context, resolver *identity.Resolver, sess *session.Session, ownerID uint, verb, kind string) error {
	userID, ok := sess.UserID()
	if !ok {
		return apperror.ErrUnauthenticated
	}
	if userID == ownerID {
		return nil
	}
	owner, err := resolver.Describe(ctx, ownerID)
	if err != nil {
		return err
	}
	return apperror.NotOwner(verb, kind, owner.Name)
}
