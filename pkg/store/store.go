// Package store keeps JSON documents in named collections on a storage.Disk.
// Each document lives at <collection>/<id>.json.
//
//	users := store.NewCollection[models.User](s, "users")
//	err := users.Create(ctx, u.Email, &u)      // ErrExists when taken
//	u, err := users.Read(ctx, "ada@example.com") // ErrNotFound when missing
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
)

var (
	ErrNotFound   = errors.New("store: document not found")
	ErrExists     = errors.New("store: document already exists")
	ErrInvalidKey = errors.New("store: invalid document key")
)

const ext = ".json"

// Store reads and writes documents through a disk.
type Store struct {
	disk storage.Disk
}

func New(disk storage.Disk) *Store {
	return &Store{disk: disk}
}

// Create writes a new document and fails with ErrExists if id is taken.
func (s *Store) Create(ctx context.Context, collection, id string, v any) error {
	defer metrics.ObserveStore(collection, "create", time.Now())

	p, err := docPath(collection, id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", collection, id, err)
	}

	if err := s.disk.Create(ctx, p, data); err != nil {
		if errors.Is(err, storage.ErrExist) {
			return ErrExists
		}
		return err
	}
	return nil
}

// Read decodes the document into v.
func (s *Store) Read(ctx context.Context, collection, id string, v any) error {
	defer metrics.ObserveStore(collection, "read", time.Now())

	p, err := docPath(collection, id)
	if err != nil {
		return err
	}
	data, err := s.disk.Get(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update replaces an existing document. Missing documents yield ErrNotFound.
func (s *Store) Update(ctx context.Context, collection, id string, v any) error {
	defer metrics.ObserveStore(collection, "update", time.Now())

	p, err := docPath(collection, id)
	if err != nil {
		return err
	}
	ok, err := s.disk.Exists(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", collection, id, err)
	}
	return s.disk.Put(ctx, p, data)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	defer metrics.ObserveStore(collection, "delete", time.Now())

	p, err := docPath(collection, id)
	if err != nil {
		return err
	}
	if err := s.disk.Delete(ctx, p); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns the ids stored in collection, sorted.
func (s *Store) List(ctx context.Context, collection string) ([]string, error) {
	defer metrics.ObserveStore(collection, "list", time.Now())

	if err := checkKey(collection); err != nil {
		return nil, err
	}
	names, err := s.disk.Files(ctx, collection)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, ext) {
			ids = append(ids, strings.TrimSuffix(n, ext))
		}
	}
	return ids, nil
}

func docPath(collection, id string) (string, error) {
	if err := checkKey(collection); err != nil {
		return "", err
	}
	if err := checkKey(id); err != nil {
		return "", err
	}
	return collection + "/" + id + ext, nil
}

func checkKey(k string) error {
	if k == "" || k == "." || k == ".." || len(k) > 200 ||
		strings.ContainsAny(k, "/\\\x00") || strings.HasPrefix(k, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, k)
	}
	return nil
}
