package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type TokenController struct {
	tokens *services.TokenService
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type extendInput struct {
	ID     string `json:"id"     validate:"required,size=60,alpha_num"`
	Extend bool   `json:"extend" validate:"accepted"`
}

// Store handles POST /api/tokens (log in).
func (tc *TokenController) Store(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	token, err := tc.tokens.Issue(c.Context(), in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Show handles GET /api/tokens?id=.
func (tc *TokenController) Show(c *ctx.Context) {
	q := tokenQuery{ID: c.Query("id")}
	if !c.Validate(&q) {
		return
	}
	token, err := tc.tokens.Get(c.Context(), q.ID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Update handles PUT /api/tokens: extends a live token by an hour.
func (tc *TokenController) Update(c *ctx.Context) {
	var in extendInput
	if !c.BindJSON(&in) {
		return
	}
	token, err := tc.tokens.Extend(c.Context(), in.ID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Destroy handles DELETE /api/tokens?id= (log out).
func (tc *TokenController) Destroy(c *ctx.Context) {
	q := tokenQuery{ID: c.Query("id")}
	if !c.Validate(&q) {
		return
	}
	if err := tc.tokens.Revoke(c.Context(), q.ID); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, nil)
}
