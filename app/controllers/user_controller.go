package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/resource"
)

// UserResource is the public view of an account.
var UserResource = resource.Func[*models.User](func(u *models.User) resource.Map {
	m := resource.Map{
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"email":        u.Email,
		"address":      u.Address,
		"tosAgreement": u.TOSAgreement,
	}
	if u.Cart != "" {
		m["cart"] = u.Cart
	}
	return m
})

type UserController struct {
	users  *services.UserService
	tokens *services.TokenService
}

// Store handles POST /api/users.
func (uc *UserController) Store(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}
	if err := uc.users.Create(c.Context(), in); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

// Show handles GET /api/users?email=.
func (uc *UserController) Show(c *ctx.Context) {
	q := emailQuery{Email: c.Query("email")}
	if !c.Validate(&q) {
		return
	}
	if err := uc.tokens.Authorize(c.Context(), c.Token(), q.Email); err != nil {
		c.Fail(err)
		return
	}

	user, err := uc.users.Get(c.Context(), q.Email)
	if err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, resource.One(UserResource, user))
}

// Update handles PUT /api/users.
func (uc *UserController) Update(c *ctx.Context) {
	var in services.UpdateInput
	if !c.BindJSON(&in) {
		return
	}
	if in.Empty() {
		c.Error(http.StatusBadRequest, "Missing fields to update.")
		return
	}
	if err := uc.tokens.Authorize(c.Context(), c.Token(), in.Email); err != nil {
		c.Fail(err)
		return
	}
	if err := uc.users.Update(c.Context(), in); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

// Destroy handles DELETE /api/users?email=.
func (uc *UserController) Destroy(c *ctx.Context) {
	q := emailQuery{Email: c.Query("email")}
	if !c.Validate(&q) {
		return
	}
	if err := uc.tokens.Authorize(c.Context(), c.Token(), q.Email); err != nil {
		c.Fail(err)
		return
	}
	if err := uc.users.Delete(c.Context(), q.Email, c.Token()); err != nil {
		c.Fail(err)
		return
	}
	c.JSON(http.StatusOK, nil)
}
