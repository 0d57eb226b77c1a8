package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type CartController struct {
	carts  *services.CartService
	tokens *services.TokenService
}

type addItemInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Code     int    `json:"code"     validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type replaceItemsInput struct {
	ID    string               `json:"id"    validate:"required,size=20,alpha_num"`
	Items []services.LineInput `json:"items" validate:"required,min=1"`
}

// Store handles POST /api/carts: adds an item to the user's cart, creating
// the cart on first use.
func (cc *CartController) Store(c *ctx.Context) {
	var in addItemInput
	if !c.BindJSON(&in) {
		return
	}
	if err := cc.tokens.Authorize(c.Context(), c.Token(), in.Email); err != nil {
		c.Fail(err)
		return
	}

	cart, err := cc.carts.AddUserItem(c.Context(), in.Email, in.Code, in.Quantity)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Show handles GET /api/carts?id=.
func (cc *CartController) Show(c *ctx.Context) {
	q := idQuery{ID: c.Query("id")}
	if !c.Validate(&q) {
		return
	}
	cart, ok := cc.owned(c, q.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Update handles PUT /api/carts: replaces the cart's items.
func (cc *CartController) Update(c *ctx.Context) {
	var in replaceItemsInput
	if !c.BindJSON(&in) {
		return
	}
	if _, ok := cc.owned(c, in.ID); !ok {
		return
	}

	cart, err := cc.carts.ReplaceItems(c.Context(), in.ID, in.Items)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Destroy handles DELETE /api/carts?id=.
func (cc *CartController) Destroy(c *ctx.Context) {
	q := idQuery{ID: c.Query("id")}
	if !c.Validate(&q) {
		return
	}
	if _, ok := cc.owned(c, q.ID); !ok {
		return
	}
	if err := cc.carts.Delete(c.Context(), q.ID); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

// owned loads the cart and checks the session token against its owner,
// replying on failure.
func (cc *CartController) owned(c *ctx.Context, id string) (*models.Cart, bool) {
	cart, err := cc.carts.Get(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return nil, false
	}
	if err := cc.tokens.Authorize(c.Context(), c.Token(), cart.Email); err != nil {
		c.Fail(err)
		return nil, false
	}
	return cart, true
}
