package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/mail"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
	"github.com/shashiranjanraj/pizzeria/resources"
)

const secret = "test-secret"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type mailerMock struct{ mock.Mock }

func (m *mailerMock) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type gatewayMock struct{ mock.Mock }

func (m *gatewayMock) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Charge, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.Charge), args.Error(1)
}

type env struct {
	clock    *clock
	users    *services.UserService
	tokens   *services.TokenService
	carts    *services.CartService
	checkout *services.CheckoutService
	cartRepo *repositories.CartRepository
	orders   *repositories.OrderRepository
	userRepo *repositories.UserRepository
	pay      *gatewayMock
	mailer   *mailerMock
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s := store.New(storage.NewLocalDisk(t.TempDir()))
	locker := lock.NewLocal()
	clk := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	items, err := services.ParseMenu(resources.Menu)
	require.NoError(t, err)
	menu, err := services.NewMenuService(items)
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(s)
	tokenRepo := repositories.NewTokenRepository(s)
	cartRepo := repositories.NewCartRepository(s)
	orderRepo := repositories.NewOrderRepository(s)

	tokens := services.NewTokenService(tokenRepo, userRepo, locker, secret).WithClock(clk.Now)
	carts := services.NewCartService(cartRepo, userRepo, orderRepo, menu, locker)
	users := services.NewUserService(userRepo, carts, tokens, locker, secret)

	pay := &gatewayMock{}
	mailer := &mailerMock{}
	checkout := services.NewCheckoutService(services.CheckoutDeps{
		Carts:    carts,
		Orders:   orderRepo,
		Users:    userRepo,
		Tokens:   tokens,
		Menu:     menu,
		Payments: pay,
		Mailer:   mailer,
		Locker:   locker,
	}).WithClock(clk.Now)

	return &env{
		clock:    clk,
		users:    users,
		tokens:   tokens,
		carts:    carts,
		checkout: checkout,
		cartRepo: cartRepo,
		orders:   orderRepo,
		userRepo: userRepo,
		pay:      pay,
		mailer:   mailer,
	}
}

// signup creates ada@example.com and logs her in.
func (e *env) signup(t *testing.T) *models.Token {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.users.Create(ctx, services.SignupInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Address:      "12 Analytical Row",
		Password:     "engine",
		TOSAgreement: true,
	}))
	token, err := e.tokens.Issue(ctx, "ada@example.com", "engine")
	require.NoError(t, err)
	return token
}
