// Package controllers adapts HTTP requests to the services. Each controller
// validates its input, checks the session token where the resource has an
// owner, calls one service operation and replies with JSON.
package controllers

import (
	"io/fs"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/view"
)

// Deps are the services and assets the controllers need.
type Deps struct {
	Users    *services.UserService
	Tokens   *services.TokenService
	Carts    *services.CartService
	Menu     *services.MenuService
	Checkout *services.CheckoutService
	Views    *view.Renderer
	Public   fs.FS
}

// Controllers groups every controller for route registration.
type Controllers struct {
	Users  *UserController
	Tokens *TokenController
	Menu   *MenuController
	Carts  *CartController
	Orders *OrderController
	Pages  *PageController
	Static *StaticController
}

func New(d Deps) *Controllers {
	return &Controllers{
		Users:  &UserController{users: d.Users, tokens: d.Tokens},
		Tokens: &TokenController{tokens: d.Tokens},
		Menu:   &MenuController{menu: d.Menu, tokens: d.Tokens},
		Carts:  &CartController{carts: d.Carts, tokens: d.Tokens},
		Orders: &OrderController{checkout: d.Checkout},
		Pages:  &PageController{views: d.Views, menu: d.Menu},
		Static: &StaticController{files: d.Public},
	}
}

type emailQuery struct {
	Email string `json:"email" validate:"required,email"`
}

type idQuery struct {
	ID string `json:"id" validate:"required,size=20,alpha_num"`
}

type tokenQuery struct {
	ID string `json:"id" validate:"required,size=60,alpha_num"`
}
