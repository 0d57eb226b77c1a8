package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type MenuController struct {
	menu   *services.MenuService
	tokens *services.TokenService
}

// Index handles GET /api/menu?email=.
func (mc *MenuController) Index(c *ctx.Context) {
	q := emailQuery{Email: c.Query("email")}
	if !c.Validate(&q) {
		return
	}
	if err := mc.tokens.Authorize(c.Context(), c.Token(), q.Email); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, mc.menu.Items())
}
