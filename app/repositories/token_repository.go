package repositories

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// TokenRepository persists session tokens keyed by id.
type TokenRepository struct {
	docs *store.Collection[models.Token]
}

func NewTokenRepository(s *store.Store) *TokenRepository {
	return &TokenRepository{docs: store.NewCollection[models.Token](s, "tokens")}
}

func (r *TokenRepository) Find(ctx context.Context, id string) (*models.Token, error) {
	return r.docs.Read(ctx, id)
}

func (r *TokenRepository) Create(ctx context.Context, t *models.Token) error {
	return r.docs.Create(ctx, t.ID, t)
}

func (r *TokenRepository) Update(ctx context.Context, t *models.Token) error {
	return r.docs.Update(ctx, t.ID, t)
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *TokenRepository) IDs(ctx context.Context) ([]string, error) {
	return r.docs.List(ctx)
}
