package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type OrderController struct {
	checkout *services.CheckoutService
}

// Store handles POST /api/orders: checks out a cart.
func (oc *OrderController) Store(c *ctx.Context) {
	var in services.CheckoutInput
	if !c.BindJSON(&in) {
		return
	}
	order, err := oc.checkout.Checkout(c.Context(), c.Token(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Show handles GET /api/orders?id=.
func (oc *OrderController) Show(c *ctx.Context) {
	q := idQuery{ID: c.Query("id")}
	if !c.Validate(&q) {
		return
	}
	order, err := oc.checkout.Order(c.Context(), c.Token(), q.ID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
