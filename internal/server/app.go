// Package server boots the pizzeria: configuration, storage, locks, the
// services and gateways, the HTTP handler and the background scheduler.
package server

import (
	"context"
	"fmt"
	"os"

	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/routes"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/app/workers"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/internal/kernel"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/mail"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
	"github.com/shashiranjanraj/pizzeria/pkg/store"
	"github.com/shashiranjanraj/pizzeria/pkg/view"
	"github.com/shashiranjanraj/pizzeria/resources"
)

// App is a fully wired pizzeria.
type App struct {
	Store    *store.Store
	Users    *services.UserService
	Tokens   *services.TokenService
	Carts    *services.CartService
	Menu     *services.MenuService
	Checkout *services.CheckoutService
	Orders   *repositories.OrderRepository
	Sweeper  *workers.TokenSweeper
	Router   *router.Router
}

// Boot loads configuration and wires every component from it.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := storage.Connect(ctx); err != nil {
		return nil, err
	}
	locker, err := lock.New(ctx)
	if err != nil {
		return nil, err
	}
	pay, err := payment.New()
	if err != nil {
		return nil, err
	}
	mailer, err := mail.New()
	if err != nil {
		return nil, err
	}
	menu, err := loadMenu()
	if err != nil {
		return nil, err
	}
	views, err := view.New(resources.Views(), view.Globals{
		AppName:     config.AppName(),
		CompanyName: config.Get("COMPANY_NAME", ""),
		YearCreated: config.Get("YEAR_CREATED", ""),
		BaseURL:     config.Get("BASE_URL", "/"),
	})
	if err != nil {
		return nil, err
	}

	return Wire(Deps{
		Disk:     storage.Default(),
		Locker:   locker,
		Menu:     menu,
		Payments: pay,
		Mailer:   mailer,
		Views:    views,
		Secret:   config.HashingSecret(),
		Currency: config.Get("CURRENCY", "usd"),
	}), nil
}

// Deps are the external pieces Wire assembles the app from.
type Deps struct {
	Disk     storage.Disk
	Locker   lock.Locker
	Menu     *services.MenuService
	Payments payment.Gateway
	Mailer   mail.Mailer
	Views    *view.Renderer
	Secret   string
	Currency string
}

// Wire builds the repositories, services and routes on top of d.
func Wire(d Deps) *App {
	s := store.New(d.Disk)

	userRepo := repositories.NewUserRepository(s)
	tokenRepo := repositories.NewTokenRepository(s)
	cartRepo := repositories.NewCartRepository(s)
	orderRepo := repositories.NewOrderRepository(s)

	tokens := services.NewTokenService(tokenRepo, userRepo, d.Locker, d.Secret)
	carts := services.NewCartService(cartRepo, userRepo, orderRepo, d.Menu, d.Locker)
	users := services.NewUserService(userRepo, carts, tokens, d.Locker, d.Secret)
	checkout := services.NewCheckoutService(services.CheckoutDeps{
		Carts:    carts,
		Orders:   orderRepo,
		Users:    userRepo,
		Tokens:   tokens,
		Menu:     d.Menu,
		Payments: d.Payments,
		Mailer:   d.Mailer,
		Locker:   d.Locker,
		Currency: d.Currency,
	})

	c := controllers.New(controllers.Deps{
		Users:    users,
		Tokens:   tokens,
		Carts:    carts,
		Menu:     d.Menu,
		Checkout: checkout,
		Views:    d.Views,
		Public:   resources.Public(),
	})

	r := kernel.New(
		func(r *router.Router) { routes.RegisterAPI(r, c) },
		func(r *router.Router) { routes.RegisterWeb(r, c) },
	)

	return &App{
		Store:    s,
		Users:    users,
		Tokens:   tokens,
		Carts:    carts,
		Menu:     d.Menu,
		Checkout: checkout,
		Orders:   orderRepo,
		Sweeper:  workers.NewTokenSweeper(tokens, config.Int("SWEEP_WORKERS", 8)),
		Router:   r,
	}
}

// loadMenu reads MENU_PATH when set, else the embedded menu.
func loadMenu() (*services.MenuService, error) {
	raw := resources.Menu
	if path := config.Get("MENU_PATH", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read menu: %w", err)
		}
		raw = b
		logger.Info("menu loaded", "path", path)
	}

	items, err := services.ParseMenu(raw)
	if err != nil {
		return nil, err
	}
	return services.NewMenuService(items)
}
