package store

import "context"

// Collection is a typed view over one collection of a Store.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Create(ctx context.Context, id string, v *T) error {
	return c.store.Create(ctx, c.name, id, v)
}

func (c *Collection[T]) Read(ctx context.Context, id string) (*T, error) {
	var v T
	if err := c.store.Read(ctx, c.name, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, v *T) error {
	return c.store.Update(ctx, c.name, id, v)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) List(ctx context.Context) ([]string, error) {
	return c.store.List(ctx, c.name)
}
