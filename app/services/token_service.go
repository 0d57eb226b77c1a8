package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/crypt"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

const (
	TokenLength   = 60
	TokenTTL      = 2 * time.Hour
	TokenExtendBy = time.Hour
)

// TokenService issues and checks session tokens.
type TokenService struct {
	tokens *repositories.TokenRepository
	users  *repositories.UserRepository
	locker lock.Locker
	secret string
	now    func() time.Time
}

func NewTokenService(tokens *repositories.TokenRepository, users *repositories.UserRepository, locker lock.Locker, secret string) *TokenService {
	return &TokenService{tokens: tokens, users: users, locker: locker, secret: secret, now: time.Now}
}

// WithClock replaces the time source.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue checks the password against the stored hash and creates a token
// that expires in two hours.
func (s *TokenService) Issue(ctx context.Context, email, password string) (*models.Token, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Could not find the specified user.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the specified user.", err)
	}

	if !crypt.Verify(s.secret, password, user.HashedPassword) {
		return nil, invalid("Password did not match the specified user's stored password.")
	}

	id, err := crypt.RandomString(TokenLength)
	if err != nil {
		return nil, storageFailure("Could not create the token.", err)
	}
	token := &models.Token{
		ID:      id,
		Email:   user.Email,
		Expires: s.now().Add(TokenTTL).UnixMilli(),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, storageFailure("Could not create the token.", err)
	}

	logger.WithCtx(ctx).Info("token issued", "email", user.Email)
	return token, nil
}

// Get returns the token with id.
func (s *TokenService) Get(ctx context.Context, id string) (*models.Token, error) {
	token, err := s.tokens.Find(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Token not found.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the token.", err)
	}
	return token, nil
}

// Verify reports whether id names a live token belonging to email. Any
// failure, including a storage error, counts as not valid.
func (s *TokenService) Verify(ctx context.Context, id, email string) bool {
	if id == "" || email == "" {
		return false
	}
	token, err := s.tokens.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.WithCtx(ctx).Warn("token verify failed", "error", err)
		}
		return false
	}
	return token.Email == email && token.Live(s.now())
}

// Authorize is Verify returning the forbidden error.
func (s *TokenService) Authorize(ctx context.Context, id, email string) error {
	if !s.Verify(ctx, id, email) {
		return forbidden()
	}
	return nil
}

// Extend pushes a live token's expiry to one hour from now. Expired tokens
// are left untouched.
func (s *TokenService) Extend(ctx context.Context, id string) (*models.Token, error) {
	release, err := s.locker.Acquire(ctx, "token:"+id)
	if err != nil {
		return nil, storageFailure("Could not update the token's expiration.", err)
	}
	defer release()

	token, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound("Specified token does not exist.")
		}
		return nil, err
	}

	now := s.now()
	if !token.Live(now) {
		return nil, invalid("The token has already expired and cannot be extended.")
	}

	token.Expires = now.Add(TokenExtendBy).UnixMilli()
	if err := s.tokens.Update(ctx, token); err != nil {
		return nil, storageFailure("Could not update the token's expiration.", err)
	}
	return token, nil
}

// Revoke deletes a token.
func (s *TokenService) Revoke(ctx context.Context, id string) error {
	err := s.tokens.Delete(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound("Specified token does not exist.")
	case err != nil:
		return storageFailure("Could not delete the specified token.", err)
	}
	return nil
}

// IDs lists every stored token id.
func (s *TokenService) IDs(ctx context.Context) ([]string, error) {
	return s.tokens.IDs(ctx)
}

// DeleteIfExpired removes the token when it has expired and reports
// whether it did.
func (s *TokenService) DeleteIfExpired(ctx context.Context, id string) (bool, error) {
	token, err := s.tokens.Find(ctx, id)
	if err != nil {
		return false, err
	}
	if token.Live(s.now()) {
		return false, nil
	}
	if err := s.tokens.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	return true, nil
}
