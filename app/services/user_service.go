package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/crypt"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// SignupInput is the payload for creating an account.
type SignupInput struct {
	FirstName    string `json:"firstName"    validate:"required"`
	LastName     string `json:"lastName"     validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Address      string `json:"address"      validate:"required"`
	Password     string `json:"password"     validate:"required"`
	TOSAgreement bool   `json:"tosAgreement" validate:"accepted"`
}

// UpdateInput changes the non-empty fields of an account.
type UpdateInput struct {
	Email     string `json:"email"     validate:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

// Empty reports whether no field would change.
func (in UpdateInput) Empty() bool {
	return in.FirstName == "" && in.LastName == "" && in.Address == "" && in.Password == ""
}

// UserService manages accounts.
type UserService struct {
	users  *repositories.UserRepository
	carts  *CartService
	tokens *TokenService
	locker lock.Locker
	secret string
}

func NewUserService(users *repositories.UserRepository, carts *CartService, tokens *TokenService, locker lock.Locker, secret string) *UserService {
	return &UserService{users: users, carts: carts, tokens: tokens, locker: locker, secret: secret}
}

// Create stores a new account. The email must not be taken.
func (s *UserService) Create(ctx context.Context, in SignupInput) error {
	user := &models.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Address:        in.Address,
		HashedPassword: crypt.Hash(s.secret, in.Password),
		TOSAgreement:   true,
	}

	err := s.users.Create(ctx, user)
	switch {
	case errors.Is(err, store.ErrExists):
		return &Error{Kind: ErrConflict, Message: "A user with that email address already exists."}
	case errors.Is(err, store.ErrInvalidKey):
		return invalidFields("Missing required field.", map[string]string{"email": "The email must be a valid email address."})
	case err != nil:
		return storageFailure("Could not create the new user.", err)
	}

	logger.WithCtx(ctx).Info("user created", "email", user.Email)
	return nil
}

// Get returns the account for email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("The requested user does not exist.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the specified user.", err)
	}
	return user, nil
}

// Update applies the non-empty fields of in.
func (s *UserService) Update(ctx context.Context, in UpdateInput) error {
	if in.Empty() {
		return invalid("Missing fields to update.")
	}

	release, err := s.locker.Acquire(ctx, "user:"+in.Email)
	if err != nil {
		return storageFailure("Could not update the user.", err)
	}
	defer release()

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return invalid("The specified user does not exist.")
	}
	if err != nil {
		return storageFailure("Could not update the user.", err)
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Password != "" {
		user.HashedPassword = crypt.Hash(s.secret, in.Password)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return storageFailure("Could not update the user.", err)
	}
	return nil
}

// Delete removes the account. Its cart goes first (taking the cart's orders
// with it), then the user document, then the session token used for the
// request. Earlier steps are not undone when a later one fails.
func (s *UserService) Delete(ctx context.Context, email, tokenID string) error {
	user, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	if user.Cart != "" {
		if err := s.carts.Delete(ctx, user.Cart); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	release, err := s.locker.Acquire(ctx, "user:"+email)
	if err != nil {
		return storageFailure("Could not delete the specified user.", err)
	}
	err = s.users.Delete(ctx, email)
	release()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return storageFailure("Could not delete the specified user.", err)
	}

	if tokenID != "" {
		if err := s.tokens.Revoke(ctx, tokenID); err != nil && !errors.Is(err, ErrNotFound) {
			return storageFailure("Error encountered while trying to delete user token.", err)
		}
	}

	logger.WithCtx(ctx).Info("user deleted", "email", email)
	return nil
}

// Emails lists every account key.
func (s *UserService) Emails(ctx context.Context) ([]string, error) {
	emails, err := s.users.Emails(ctx)
	if err != nil {
		return nil, storageFailure("Could not list users.", err)
	}
	return emails, nil
}
