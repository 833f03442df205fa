// Package identity maps an external-provider identity to a local user
// record.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/internal/repository"
	"github.com/kheyer/RESTful-App/models"
)

type Resolver struct {
	users repository.UserRepository
}

func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the local user id for email, creating the record on
// first sight. Repeat logins keep the stored name and picture; there is
// no profile sync.
func (r *Resolver) Resolve(ctx context.Context, email, name, picture string) (uint, error) {
	user, err := r.users.UserByEmail(ctx, email)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return 0, err
	}

	user = &models.User{Name: name, Email: email, Picture: picture}
	if err := r.users.CreateUser(ctx, user); err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// Describe returns the full user record. Every category and item must
// have a resolvable owner, so callers treat a not-found here as an
// integrity fault, not a user error.
func (r *Resolver) Describe(ctx context.Context, id uint) (*models.User, error) {
	return r.users.UserByID(ctx, id)
}
