package repositories

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// CartRepository persists carts keyed by id.
type CartRepository struct {
	docs *store.Collection[models.Cart]
}

func NewCartRepository(s *store.Store) *CartRepository {
	return &CartRepository{docs: store.NewCollection[models.Cart](s, "carts")}
}

func (r *CartRepository) Find(ctx context.Context, id string) (*models.Cart, error) {
	return r.docs.Read(ctx, id)
}

func (r *CartRepository) Create(ctx context.Context, c *models.Cart) error {
	return r.docs.Create(ctx, c.ID, c)
}

func (r *CartRepository) Update(ctx context.Context, c *models.Cart) error {
	return r.docs.Update(ctx, c.ID, c)
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *CartRepository) IDs(ctx context.Context) ([]string, error) {
	return r.docs.List(ctx)
}
