package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/crypt"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/mail"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
)

// CheckoutInput is the payload for placing an order. Token is the payment
// source from the card processor, not the session token.
type CheckoutInput struct {
	CartID string `json:"cartId" validate:"required,size=20"`
	Token  string `json:"token"  validate:"required"`
}

// CheckoutDeps wires a CheckoutService.
type CheckoutDeps struct {
	Carts    *CartService
	Orders   *repositories.OrderRepository
	Users    *repositories.UserRepository
	Tokens   *TokenService
	Menu     *MenuService
	Payments payment.Gateway
	Mailer   mail.Mailer
	Locker   lock.Locker
	Currency string
}

// CheckoutService turns a cart into a paid order.
type CheckoutService struct {
	CheckoutDeps
	now func() time.Time
}

func NewCheckoutService(d CheckoutDeps) *CheckoutService {
	if d.Currency == "" {
		d.Currency = "usd"
	}
	return &CheckoutService{CheckoutDeps: d, now: time.Now}
}

// WithClock replaces the time source.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// Checkout runs the order steps in sequence, holding the cart's checkout
// lock throughout:
//
//  1. read the cart and check the session token against its owner
//  2. total the cart
//  3. store the order as "payment pending" and link it to the cart
//  4. charge the payment source
//  5. mark the order paid
//  6. mail the receipt and remove the charged lines from the cart
//
// A failure stops the sequence and leaves earlier steps in place. Lines added
// to the cart while the charge is in flight stay in the cart.
func (s *CheckoutService) Checkout(ctx context.Context, sessionToken string, in CheckoutInput) (order *models.Order, err error) {
	outcome := "failed"
	defer func() { metrics.CheckoutTotal.WithLabelValues(outcome).Inc() }()

	release, err := s.Locker.Acquire(ctx, "checkout:"+in.CartID)
	if err != nil {
		return nil, storageFailure("Could not lock the cart for checkout.", err)
	}
	defer release()

	cart, err := s.Carts.Get(ctx, in.CartID)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.Authorize(ctx, sessionToken, cart.Email); err != nil {
		outcome = "forbidden"
		return nil, err
	}

	total := s.Carts.Total(ctx, cart)
	if len(cart.Items) == 0 || total <= 0 {
		outcome = "empty_cart"
		return nil, &Error{Kind: ErrEmptyCart, Message: "The shopping cart is empty."}
	}

	user, err := s.Users.FindByEmail(ctx, cart.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Could not find the specified user.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the specified user.", err)
	}

	order, err = s.placeOrder(ctx, cart, user, total)
	if err != nil {
		return nil, err
	}
	log := logger.WithCtx(ctx).With("order_id", order.ID, "cart_id", cart.ID)

	charge, err := s.Payments.Charge(ctx, payment.ChargeRequest{
		OrderID:     order.ID,
		AmountCents: order.Amount,
		Currency:    order.Currency,
		Description: fmt.Sprintf("Pizza order %s for %s", order.ID, order.Email),
		Source:      in.Token,
	})
	switch {
	case errors.Is(err, payment.ErrDeclined) || (err == nil && !charge.Paid):
		outcome = "declined"
		return nil, gatewayFailure("The payment was declined.", err)
	case err != nil:
		outcome = "gateway_error"
		return nil, gatewayFailure("Could not process the payment.", err)
	}

	order, err = s.markPaid(ctx, order.ID, charge.ID)
	if err != nil {
		return nil, err
	}
	log.Info("checkout: order paid", "charge_id", charge.ID, "amount", order.Amount)

	if err := s.Mailer.Send(ctx, Receipt(order)); err != nil {
		outcome = "mail_error"
		return nil, gatewayFailure("The order was paid but the receipt could not be sent.", err)
	}

	if _, err := s.Carts.RemoveLines(ctx, cart.ID, lineIDs(cart.Items)); err != nil {
		return nil, err
	}

	outcome = "paid"
	return order, nil
}

// Order returns an order to its owner.
func (s *CheckoutService) Order(ctx context.Context, sessionToken, id string) (*models.Order, error) {
	order, err := s.Orders.Find(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Order not found.")
	}
	if err != nil {
		return nil, storageFailure("Could not read the order.", err)
	}
	if err := s.Tokens.Authorize(ctx, sessionToken, order.Email); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, cart *models.Cart, user *models.User, total int64) (*models.Order, error) {
	id, err := crypt.RandomString(IDLength)
	if err != nil {
		return nil, storageFailure("Could not create the order.", err)
	}

	lines := make([]models.OrderLine, 0, len(cart.Items))
	for _, l := range cart.Items {
		item, ok := s.Menu.Find(l.ItemCode)
		if !ok {
			continue
		}
		lines = append(lines, models.OrderLine{
			ItemCode: item.Code,
			ItemName: item.Name,
			Quantity: l.Quantity,
			Price:    item.Cents(),
		})
	}

	order := &models.Order{
		ID:              id,
		Email:           user.Email,
		DeliveryAddress: user.Address,
		CartID:          cart.ID,
		Items:           lines,
		Amount:          total,
		Currency:        s.Currency,
		Status:          models.OrderPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, storageFailure("Could not create the order.", err)
	}
	if err := s.Carts.AttachOrder(ctx, cart.ID, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) markPaid(ctx context.Context, orderID, chargeID string) (*models.Order, error) {
	release, err := s.Locker.Acquire(ctx, "order:"+orderID)
	if err != nil {
		return nil, storageFailure("Could not update the order.", err)
	}
	defer release()

	order, err := s.Orders.Find(ctx, orderID)
	if err != nil {
		return nil, storageFailure("Could not read the order after payment.", err)
	}

	paidAt := s.now().UTC()
	order.Status = models.OrderPaid
	order.StripeID = chargeID
	order.PaidAt = &paidAt
	if err := s.Orders.Update(ctx, order); err != nil {
		return nil, storageFailure("Could not update the order after payment.", err)
	}
	return order, nil
}

// Receipt renders the plain-text receipt mailed after payment.
func Receipt(o *models.Order) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\nOrder: %s\n", o.ID)
	for _, l := range o.Items {
		fmt.Fprintf(&b, "%d x %s @ %s\n", l.Quantity, l.ItemName, money(l.Price))
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n", money(o.Amount), strings.ToUpper(o.Currency))
	fmt.Fprintf(&b, "Delivering to: %s\n", o.DeliveryAddress)

	return mail.Message{
		To:      o.Email,
		Subject: "Your pizza order " + o.ID,
		Text:    b.String(),
	}
}

func lineIDs(lines []models.CartLine) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	return ids
}

func money(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
