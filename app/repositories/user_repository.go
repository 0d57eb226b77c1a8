package repositories

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// UserRepository persists users keyed by email.
type UserRepository struct {
	docs *store.Collection[models.User]
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{docs: store.NewCollection[models.User](s, "users")}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.docs.Read(ctx, email)
}

// Create persists a new user. store.ErrExists means the email is taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.docs.Create(ctx, user.Email, user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.docs.Update(ctx, user.Email, user)
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	return r.docs.Delete(ctx, email)
}

// Emails lists every stored user key.
func (r *UserRepository) Emails(ctx context.Context) ([]string, error) {
	return r.docs.List(ctx)
}
