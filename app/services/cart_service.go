package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/crypt"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// IDLength is the length of cart, line and order ids.
const IDLength = 20

// LineInput is one requested cart line.
type LineInput struct {
	Code     int `json:"code"`
	Quantity int `json:"quantity"`
}

// CartService manages shopping carts.
type CartService struct {
	carts  *repositories.CartRepository
	users  *repositories.UserRepository
	orders *repositories.OrderRepository
	menu   *MenuService
	locker lock.Locker
}

func NewCartService(carts *repositories.CartRepository, users *repositories.UserRepository, orders *repositories.OrderRepository, menu *MenuService, locker lock.Locker) *CartService {
	return &CartService{carts: carts, users: users, orders: orders, menu: menu, locker: locker}
}

// Get returns the cart with id.
func (s *CartService) Get(ctx context.Context, id string) (*models.Cart, error) {
	cart, err := s.carts.Find(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Requested cart does not exist.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the cart.", err)
	}
	return cart, nil
}

// GetOrCreate returns the user's cart, creating and linking one when the
// user has none. Concurrent calls for one user yield a single cart.
func (s *CartService) GetOrCreate(ctx context.Context, email string) (*models.Cart, error) {
	release, err := s.locker.Acquire(ctx, "user:"+email)
	if err != nil {
		return nil, storageFailure("Could not read user cart.", err)
	}
	defer release()

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Could not find the specified user.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the specified user.", err)
	}

	if user.Cart != "" {
		cart, err := s.carts.Find(ctx, user.Cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, storageFailure("Could not read user cart.", err)
		}
		logger.WithCtx(ctx).Warn("cart: user links a missing cart, creating a new one", "email", email, "cart_id", user.Cart)
	}

	id, err := crypt.RandomString(IDLength)
	if err != nil {
		return nil, storageFailure("Could not create a cart for the user.", err)
	}
	cart := &models.Cart{ID: id, Email: user.Email, Items: []models.CartLine{}, Orders: []string{}}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, storageFailure("Could not create a cart for the user.", err)
	}

	user.Cart = id
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storageFailure("Could not update the user with the new cart.", err)
	}
	return cart, nil
}

// AddUserItem adds a line to the user's cart, creating the cart on first
// use. The item is checked before any cart is created.
func (s *CartService) AddUserItem(ctx context.Context, email string, code, quantity int) (*models.Cart, error) {
	if err := s.checkItem(code, quantity); err != nil {
		return nil, err
	}
	cart, err := s.GetOrCreate(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.AddItem(ctx, cart.ID, code, quantity)
}

// AddItem appends a line for code to the cart.
func (s *CartService) AddItem(ctx context.Context, cartID string, code, quantity int) (*models.Cart, error) {
	if err := s.checkItem(code, quantity); err != nil {
		return nil, err
	}

	line, err := newLine(code, quantity)
	if err != nil {
		return nil, storageFailure("Could not update the cart with the new item.", err)
	}

	return s.mutate(ctx, cartID, "Could not update the cart with the new item.", func(c *models.Cart) {
		c.Items = append(c.Items, line)
	})
}

// ReplaceItems swaps the cart's lines for items. Lines with an unknown code
// or a quantity below one are dropped and logged.
func (s *CartService) ReplaceItems(ctx context.Context, cartID string, items []LineInput) (*models.Cart, error) {
	lines := make([]models.CartLine, 0, len(items))
	for _, it := range items {
		if _, ok := s.menu.Find(it.Code); !ok || it.Quantity < 1 {
			logger.WithCtx(ctx).Debug("cart: item skipped", "cart_id", cartID, "code", it.Code, "quantity", it.Quantity)
			continue
		}
		line, err := newLine(it.Code, it.Quantity)
		if err != nil {
			return nil, storageFailure("Could not update cart.", err)
		}
		lines = append(lines, line)
	}

	return s.mutate(ctx, cartID, "Could not update cart.", func(c *models.Cart) {
		c.Items = lines
	})
}

// RemoveLines drops the lines whose ids are listed and keeps the rest,
// including lines added after ids were read.
func (s *CartService) RemoveLines(ctx context.Context, cartID string, ids []string) (*models.Cart, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	return s.mutate(ctx, cartID, "Could not clear the cart.", func(c *models.Cart) {
		kept := make([]models.CartLine, 0, len(c.Items))
		for _, l := range c.Items {
			if _, ok := drop[l.ID]; !ok {
				kept = append(kept, l)
			}
		}
		c.Items = kept
	})
}

// AttachOrder records orderID on the cart.
func (s *CartService) AttachOrder(ctx context.Context, cartID, orderID string) error {
	_, err := s.mutate(ctx, cartID, "Could not link the order to the cart.", func(c *models.Cart) {
		c.Orders = append(c.Orders, orderID)
	})
	return err
}

// CalculateTotal returns the cart total in cents.
func (s *CartService) CalculateTotal(ctx context.Context, cartID string) (int64, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return s.Total(ctx, cart), nil
}

// Total sums round(price*100)*quantity over the cart's lines. Lines whose
// code is no longer on the menu are left out.
func (s *CartService) Total(ctx context.Context, cart *models.Cart) int64 {
	var total int64
	for _, line := range cart.Items {
		item, ok := s.menu.Find(line.ItemCode)
		if !ok {
			logger.WithCtx(ctx).Warn("cart: line with unknown code excluded from total", "cart_id", cart.ID, "code", line.ItemCode)
			continue
		}
		total += item.Cents() * int64(line.Quantity)
	}
	return total
}

// Delete removes the cart and every order checked out from it, then unlinks
// the cart from its owner.
func (s *CartService) Delete(ctx context.Context, cartID string) error {
	release, err := s.locker.Acquire(ctx, "cart:"+cartID)
	if err != nil {
		return storageFailure("Could not delete the requested cart data.", err)
	}
	defer release()

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}

	if err := s.carts.Delete(ctx, cartID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return storageFailure("Could not delete the requested cart data.", err)
	}

	var failed []error
	for _, orderID := range cart.Orders {
		if err := s.orders.Delete(ctx, orderID); err != nil && !errors.Is(err, store.ErrNotFound) {
			failed = append(failed, fmt.Errorf("order %s: %w", orderID, err))
		}
	}
	if len(failed) > 0 {
		return storageFailure("Errors encountered while attempting to delete all the cart orders.", errors.Join(failed...))
	}

	return s.unlink(ctx, cart)
}

func (s *CartService) unlink(ctx context.Context, cart *models.Cart) error {
	release, err := s.locker.Acquire(ctx, "user:"+cart.Email)
	if err != nil {
		return storageFailure("Failed to update user after deleting user cart.", err)
	}
	defer release()

	user, err := s.users.FindByEmail(ctx, cart.Email)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Owner of Cart not found.")
	}
	if err != nil {
		return storageFailure("Failed to update user after deleting user cart.", err)
	}
	if user.Cart != cart.ID {
		return nil
	}

	user.Cart = ""
	if err := s.users.Update(ctx, user); err != nil {
		return storageFailure("Failed to update user after deleting user cart.", err)
	}
	return nil
}

// mutate runs fn on the cart while holding its lock and persists the result.
func (s *CartService) mutate(ctx context.Context, cartID, failMsg string, fn func(*models.Cart)) (*models.Cart, error) {
	release, err := s.locker.Acquire(ctx, "cart:"+cartID)
	if err != nil {
		return nil, storageFailure(failMsg, err)
	}
	defer release()

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, storageFailure(failMsg, err)
	}
	return cart, nil
}

func (s *CartService) checkItem(code, quantity int) error {
	if _, ok := s.menu.Find(code); !ok {
		return invalid("No item found matches the provided code.")
	}
	if quantity < 1 {
		return invalidFields("Missing required field.", map[string]string{"quantity": "The quantity must be at least 1."})
	}
	return nil
}

func newLine(code, quantity int) (models.CartLine, error) {
	id, err := crypt.RandomString(IDLength)
	if err != nil {
		return models.CartLine{}, err
	}
	return models.CartLine{ID: id, ItemCode: code, Quantity: quantity}, nil
}
