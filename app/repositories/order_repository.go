package repositories

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// OrderRepository persists orders keyed by id.
type OrderRepository struct {
	docs *store.Collection[models.Order]
}

func NewOrderRepository(s *store.Store) *OrderRepository {
	return &OrderRepository{docs: store.NewCollection[models.Order](s, "orders")}
}

func (r *OrderRepository) Find(ctx context.Context, id string) (*models.Order, error) {
	return r.docs.Read(ctx, id)
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.docs.Create(ctx, o.ID, o)
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	return r.docs.Update(ctx, o.ID, o)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *OrderRepository) IDs(ctx context.Context) ([]string, error) {
	return r.docs.List(ctx)
}
